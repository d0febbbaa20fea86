package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type commentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

func (s *Server) listPostComments(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Comments.ListByPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getComment(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Comments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) listReplies(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Comments.Replies(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Comments.Create(r.Context(), userID(r.Context()), req.PostID, req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) replyComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Comments.Reply(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Comments.Update(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Comments.Delete(r.Context(), userID(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reactComment(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Comments.React(r.Context(), chi.URLParam(r, "id"), reactionFromPath(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/dmitrijs2005/skillshare/internal/server/posts"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.svc.Posts.List(r.Context(), r.URL.Query().Get("userId"), page, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	in, err := postFromForm(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Posts.Create(r.Context(), userID(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	in, err := postFromForm(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Posts.Update(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// deletePost also removes the post's comments.
func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.svc.Posts.Delete(r.Context(), userID(r.Context()), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.svc.Comments.DeleteByPost(r.Context(), id); err != nil {
		s.logger.Warn(r.Context(), "comments of deleted post kept", "post_id", id, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reactPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Posts.React(r.Context(), chi.URLParam(r, "id"), reactionFromPath(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func reactionFromPath(r *http.Request) models.Reaction {
	if strings.HasSuffix(r.URL.Path, "/dislike") {
		return models.Dislike
	}
	return models.Like
}

func postFromForm(w http.ResponseWriter, r *http.Request) (posts.Input, error) {
	f, err := parseForm(w, r)
	if err != nil {
		return posts.Input{}, err
	}
	img, err := f.image("image")
	if err != nil {
		return posts.Input{}, err
	}
	return posts.Input{
		Title:       f.value("title"),
		Description: f.value("description"),
		Slogan:      f.optional("slogan"),
		OwnerID:     f.value("userId"),
		Image:       img,
	}, nil
}

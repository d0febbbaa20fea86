package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) myEnrollments(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Enrollments.Mine(r.Context(), userID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) enroll(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Enrollments.Enroll(r.Context(), userID(r.Context()), chi.URLParam(r, "courseID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) unenroll(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Enrollments.Unenroll(r.Context(), userID(r.Context()), chi.URLParam(r, "courseID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) enrollmentStatus(w http.ResponseWriter, r *http.Request) {
	ok, err := s.svc.Enrollments.IsEnrolled(r.Context(), userID(r.Context()), chi.URLParam(r, "courseID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) toggleLesson(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Enrollments.Toggle(r.Context(), userID(r.Context()),
		chi.URLParam(r, "courseID"), chi.URLParam(r, "lessonID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

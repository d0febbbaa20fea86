package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.svc.Courses.List(r.Context(), r.URL.Query().Get("userId"), page, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Courses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	var in models.Course
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Courses.Create(r.Context(), userID(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCourse(w http.ResponseWriter, r *http.Request) {
	var in models.Course
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Courses.Update(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// deleteCourse also drops the course's enrollments.
func (s *Server) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.svc.Courses.Delete(r.Context(), userID(r.Context()), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.svc.Enrollments.DeleteByCourse(r.Context(), id); err != nil {
		s.logger.Warn(r.Context(), "enrollments of deleted course kept", "course_id", id, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

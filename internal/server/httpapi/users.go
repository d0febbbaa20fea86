package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/skillshare/internal/server/users"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	p, err := profileFromForm(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.svc.Users.Register(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	p, err := profileFromForm(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.svc.Users.Update(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Users.Delete(r.Context(), userID(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func profileFromForm(w http.ResponseWriter, r *http.Request) (users.Profile, error) {
	f, err := parseForm(w, r)
	if err != nil {
		return users.Profile{}, err
	}
	age, err := f.number("age")
	if err != nil {
		return users.Profile{}, err
	}
	profile, err := f.image("profilePhoto")
	if err != nil {
		return users.Profile{}, err
	}
	cover, err := f.image("coverPhoto")
	if err != nil {
		return users.Profile{}, err
	}
	return users.Profile{
		Name:         f.value("name"),
		Username:     f.optional("username"),
		Email:        f.value("email"),
		Password:     f.r.FormValue("password"),
		Age:          age,
		Location:     f.optional("location"),
		Bio:          f.optional("bio"),
		ProfilePhoto: profile,
		CoverPhoto:   cover,
	}, nil
}

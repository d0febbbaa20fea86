package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/skillshare/internal/common"
)

const (
	maxJSONBody      = 1 << 20
	maxMultipartBody = 16 << 20
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps domain errors to statuses. Unknown errors are logged and
// reported as 500 without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "you can only change your own content")
	case errors.Is(err, common.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrAlreadyExists):
		writeMessage(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return common.Invalidf("request body is empty")
		}
		return common.Invalidf("malformed JSON: %v", err)
	}
	return nil
}

// pageParams reads the optional zero-based page and size query parameters.
func pageParams(r *http.Request) (page, size int, err error) {
	q := r.URL.Query()
	if page, err = intParam(q.Get("page")); err != nil {
		return 0, 0, common.Invalidf("page must be a non-negative integer")
	}
	if size, err = intParam(q.Get("size")); err != nil {
		return 0, 0, common.Invalidf("size must be a non-negative integer")
	}
	if size > 0 && page > math.MaxInt/size {
		return 0, 0, common.Invalidf("page %d is out of range", page)
	}
	return page, size, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

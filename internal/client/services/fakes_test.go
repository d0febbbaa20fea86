package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

const (
	annID = "65f1a2b3c4d5e6f708091a2b"
	bobID = "65f1a2b3c4d5e6f708091a2c"
)

// fakeAPI records requests and answers with canned JSON-able values.
type fakeAPI struct {
	mu sync.Mutex

	Responses map[string]any
	Errors    map[string]error
	Err       error

	Requests    []client.Request
	LastRequest client.Request
}

func key(method, path string) string { return method + " " + path }

func (f *fakeAPI) Do(_ context.Context, req client.Request, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Requests = append(f.Requests, req)
	f.LastRequest = req

	if err, ok := f.Errors[key(req.Method, req.Path)]; ok {
		return err
	}
	if f.Err != nil {
		return f.Err
	}
	resp, ok := f.Responses[key(req.Method, req.Path)]
	if !ok || out == nil {
		return nil
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

type fakeStore struct {
	token string
	user  *models.User

	CommitErr  error
	ClearErr   error
	RestoreErr error

	Commits  int
	Clears   int
	Restores int
}

func (f *fakeStore) Commit(_ context.Context, token string, user models.User) error {
	f.Commits++
	if f.CommitErr != nil {
		return f.CommitErr
	}
	f.token, f.user = token, &user
	return nil
}

func (f *fakeStore) Clear(context.Context) error {
	f.Clears++
	f.token, f.user = "", nil
	return f.ClearErr
}

func (f *fakeStore) Restore(context.Context) error {
	f.Restores++
	return f.RestoreErr
}

func (f *fakeStore) UpdateUser(_ context.Context, user models.User) error {
	f.user = &user
	return nil
}

func (f *fakeStore) CurrentUser() (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}

func signedIn(id string) *fakeStore {
	return &fakeStore{token: "tok", user: &models.User{ID: id, Email: "ann@example.com"}}
}

type fakeNavigator struct {
	Redirects int
}

func (f *fakeNavigator) RedirectToLogin(context.Context) { f.Redirects++ }

func apiError(kind error, status int) error {
	return &client.APIError{Kind: kind, Status: status, Method: "GET", Path: "/x"}
}

package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(api *fakeAPI, store *fakeStore) (AuthService, *fakeNavigator) {
	nav := &fakeNavigator{}
	return NewAuthService(api, store, nav, "http://localhost:8080/oauth2/authorization/google"), nav
}

func TestLogin_CommitsTokenAndUser(t *testing.T) {
	api := &fakeAPI{Responses: map[string]any{
		key(http.MethodPost, "/auth/login"): models.AuthResponse{Token: "jwt", User: models.User{ID: annID, Email: "ann@example.com"}},
	}}
	store := &fakeStore{}
	svc, _ := newAuth(api, store)

	u, err := svc.Login(context.Background(), " ann@example.com ", "secret")
	require.NoError(t, err)

	assert.Equal(t, annID, u.ID)
	assert.Equal(t, "jwt", store.token)
	assert.True(t, api.LastRequest.Public)
	assert.Equal(t, models.Credentials{Email: "ann@example.com", Password: "secret"}, api.LastRequest.Body)
}

func TestLogin_WrongCredentialsLeaveSessionUntouched(t *testing.T) {
	api := &fakeAPI{Err: apiError(client.ErrAuthentication, http.StatusUnauthorized)}
	store := &fakeStore{}
	svc, _ := newAuth(api, store)

	_, err := svc.Login(context.Background(), "ann@example.com", "wrong")
	require.ErrorIs(t, err, client.ErrAuthentication)
	assert.Equal(t, 0, store.Commits)
}

func TestLogin_MalformedResponseWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		resp models.AuthResponse
	}{
		{name: "no token", resp: models.AuthResponse{User: models.User{ID: annID}}},
		{name: "email as id", resp: models.AuthResponse{Token: "jwt", User: models.User{ID: "ann@example.com"}}},
		{name: "empty user", resp: models.AuthResponse{Token: "jwt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{Responses: map[string]any{key(http.MethodPost, "/auth/login"): tt.resp}}
			store := &fakeStore{}
			svc, _ := newAuth(api, store)

			_, err := svc.Login(context.Background(), "ann@example.com", "secret")
			require.ErrorIs(t, err, client.ErrValidation)
			assert.Equal(t, 0, store.Commits)
		})
	}
}

func TestLogin_RequiresCredentials(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newAuth(api, &fakeStore{})

	_, err := svc.Login(context.Background(), "", "x")
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Empty(t, api.Requests)
}

func TestLogin_StorageFailure(t *testing.T) {
	api := &fakeAPI{Responses: map[string]any{
		key(http.MethodPost, "/auth/login"): models.AuthResponse{Token: "jwt", User: models.User{ID: annID}},
	}}
	store := &fakeStore{CommitErr: errors.New("disk full")}
	svc, _ := newAuth(api, store)

	_, err := svc.Login(context.Background(), "ann@example.com", "secret")
	require.ErrorContains(t, err, "disk full")
	_, ok := store.CurrentUser()
	assert.False(t, ok)
}

func TestRegister_SendsMultipartAndCommits(t *testing.T) {
	api := &fakeAPI{Responses: map[string]any{
		key(http.MethodPost, "/users"): models.AuthResponse{Token: "jwt", User: models.User{ID: annID}},
	}}
	store := &fakeStore{}
	svc, _ := newAuth(api, store)

	_, err := svc.Register(context.Background(), models.UserForm{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.NotNil(t, api.LastRequest.Multipart)
	assert.True(t, api.LastRequest.Public)
	assert.Equal(t, 1, store.Commits)
}

func TestRegister_InvalidFormNotSent(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newAuth(api, &fakeStore{})

	_, err := svc.Register(context.Background(), models.UserForm{Email: "x"})
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Empty(t, api.Requests)
}

func TestLogout_ClearsAndRedirects(t *testing.T) {
	store := signedIn(annID)
	svc, nav := newAuth(&fakeAPI{}, store)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, store.Clears)
	assert.Equal(t, 1, nav.Redirects)
	_, ok := svc.CurrentUser()
	assert.False(t, ok)
}

func TestRestoreSession(t *testing.T) {
	store := signedIn(annID)
	svc, _ := newAuth(&fakeAPI{}, store)

	u, ok, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, annID, u.ID)
	assert.Equal(t, 1, store.Restores)

	store = &fakeStore{RestoreErr: errors.New("io")}
	svc, _ = newAuth(&fakeAPI{}, store)
	_, _, err = svc.RestoreSession(context.Background())
	require.Error(t, err)
}

func TestCompleteOAuth(t *testing.T) {
	userJSON := `{"id":"` + annID + `","email":"ann@example.com","name":"Ann"}`

	tests := []struct {
		name    string
		token   string
		payload string
		wantErr bool
	}{
		{name: "plain json", token: "jwt", payload: userJSON},
		{name: "url encoded json", token: "jwt", payload: url.QueryEscape(userJSON)},
		{name: "missing payload", token: "jwt", payload: "", wantErr: true},
		{name: "missing token", token: "", payload: userJSON, wantErr: true},
		{name: "garbage payload", token: "jwt", payload: "%%%not-json", wantErr: true},
		{name: "bad id", token: "jwt", payload: `{"id":"ann@example.com"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc, _ := newAuth(&fakeAPI{}, store)

			u, err := svc.CompleteOAuth(context.Background(), tt.token, tt.payload)
			if tt.wantErr {
				require.ErrorIs(t, err, client.ErrValidation)
				assert.Equal(t, 0, store.Commits)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ann", u.Name)
			assert.Equal(t, "jwt", store.token)
		})
	}
}

func TestParseOAuthRedirect(t *testing.T) {
	userJSON := `{"id":"` + annID + `"}`
	raw := "http://localhost:3000/oauth2/callback?token=jwt&userData=" + url.QueryEscape(userJSON)

	token, payload, err := ParseOAuthRedirect(raw)
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)
	assert.Equal(t, userJSON, payload)

	_, _, err = ParseOAuthRedirect("http://localhost:3000/oauth2/callback?token=jwt")
	require.ErrorIs(t, err, client.ErrValidation)
}

func TestPasswordReset(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newAuth(api, &fakeStore{})
	ctx := context.Background()

	require.ErrorIs(t, svc.RequestPasswordReset(ctx, "nope"), client.ErrValidation)
	require.NoError(t, svc.RequestPasswordReset(ctx, "ann@example.com"))
	assert.Equal(t, "/auth/password-reset-request", api.LastRequest.Path)

	require.ErrorIs(t, svc.ResetPassword(ctx, "t", "123"), client.ErrValidation)
	require.NoError(t, svc.ResetPassword(ctx, "t", "secret1"))
	assert.Equal(t, "/auth/reset-password", api.LastRequest.Path)
	assert.Equal(t, map[string]string{"token": "t", "newPassword": "secret1"}, api.LastRequest.Body)
}

func TestGoogleLoginURL(t *testing.T) {
	svc, _ := newAuth(&fakeAPI{}, &fakeStore{})
	assert.Equal(t, "http://localhost:8080/oauth2/authorization/google", svc.GoogleLoginURL())
}

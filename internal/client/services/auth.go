package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

// AuthService manages how a session starts and ends.
//
// Contract:
//   - Login, Register and CompleteOAuth commit token and user together or
//     not at all.
//   - Logout clears both and shows the login view.
//   - RestoreSession loads a stored session at startup; bad data yields an
//     anonymous session, not an error.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, form models.UserForm) (models.User, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (models.User, bool, error)
	CompleteOAuth(ctx context.Context, token, userPayload string) (models.User, error)
	GoogleLoginURL() string
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	CurrentUser() (models.User, bool)
}

type authService struct {
	api       API
	store     SessionStore
	navigator client.Navigator
	oauthURL  string
}

// NewAuthService wires the auth flows. oauthURL is the provider entry point
// the user opens in a browser.
func NewAuthService(api API, store SessionStore, navigator client.Navigator, oauthURL string) AuthService {
	return &authService{api: api, store: store, navigator: navigator, oauthURL: oauthURL}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, invalid("email and password are required")
	}

	var resp models.AuthResponse
	err := a.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   models.Credentials{Email: email, Password: password},
		Public: true,
	}, &resp)
	if err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}

	return a.commit(ctx, resp)
}

func (a *authService) Register(ctx context.Context, form models.UserForm) (models.User, error) {
	if err := form.ValidateRegistration(); err != nil {
		return models.User{}, invalid("%w", err)
	}

	var resp models.AuthResponse
	err := a.api.Do(ctx, client.Request{
		Method:    http.MethodPost,
		Path:      "/users",
		Multipart: userMultipart(form),
		Public:    true,
	}, &resp)
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	return a.commit(ctx, resp)
}

// commit validates an auth response and stores it. A response without a
// token or with a malformed user id is rejected and nothing is written.
func (a *authService) commit(ctx context.Context, resp models.AuthResponse) (models.User, error) {
	if strings.TrimSpace(resp.Token) == "" {
		return models.User{}, invalid("server returned no token")
	}
	if err := resp.User.Validate(); err != nil {
		return models.User{}, invalid("server returned an unusable user: %w", err)
	}
	if err := a.store.Commit(ctx, resp.Token, resp.User); err != nil {
		return models.User{}, fmt.Errorf("save session: %w", err)
	}
	return resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	err := a.store.Clear(ctx)
	if a.navigator != nil {
		a.navigator.RedirectToLogin(ctx)
	}
	return err
}

func (a *authService) RestoreSession(ctx context.Context) (models.User, bool, error) {
	if err := a.store.Restore(ctx); err != nil {
		return models.User{}, false, err
	}
	u, ok := a.store.CurrentUser()
	return u, ok, nil
}

// CompleteOAuth finishes a provider login from the redirect parameters.
// userPayload is JSON, possibly still URL-encoded.
func (a *authService) CompleteOAuth(ctx context.Context, token, userPayload string) (models.User, error) {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(userPayload) == "" {
		return models.User{}, invalid("oauth redirect is missing token or user data")
	}

	user, err := decodeOAuthUser(userPayload)
	if err != nil {
		return models.User{}, invalid("oauth user data: %w", err)
	}

	return a.commit(ctx, models.AuthResponse{Token: token, User: user})
}

func decodeOAuthUser(payload string) (models.User, error) {
	var user models.User
	if err := json.Unmarshal([]byte(payload), &user); err == nil {
		return user, nil
	}
	decoded, err := url.QueryUnescape(payload)
	if err != nil {
		return models.User{}, err
	}
	if err := json.Unmarshal([]byte(decoded), &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ParseOAuthRedirect extracts the token and userData parameters from the
// URL the provider redirected the browser to.
func ParseOAuthRedirect(rawURL string) (token, userPayload string, err error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", invalid("oauth redirect url: %w", err)
	}
	q := u.Query()
	token, userPayload = q.Get("token"), q.Get("userData")
	if token == "" || userPayload == "" {
		return "", "", invalid("oauth redirect url has no token or userData")
	}
	return token, userPayload, nil
}

func (a *authService) GoogleLoginURL() string {
	return a.oauthURL
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	if !strings.Contains(email, "@") {
		return invalid("a valid email is required")
	}
	return a.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/password-reset-request",
		Body:   map[string]string{"email": strings.TrimSpace(email)},
		Public: true,
	}, nil)
}

func (a *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return invalid("reset token is required")
	}
	if len(newPassword) < 6 {
		return invalid("password must have at least 6 characters")
	}
	return a.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/reset-password",
		Body:   map[string]string{"token": strings.TrimSpace(token), "newPassword": newPassword},
		Public: true,
	}, nil)
}

func (a *authService) CurrentUser() (models.User, bool) {
	return a.store.CurrentUser()
}

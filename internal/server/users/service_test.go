package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server/config"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewService(NewMemoryRepository(), cfg, logging.NewNopLogger())
}

func register(t *testing.T, s *Service, email string) models.AuthResponse {
	t.Helper()
	resp, err := s.Register(context.Background(), Profile{Name: "Ann", Email: email, Password: "secret1"})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	reg := register(t, s, "ann@example.com")
	assert.Len(t, reg.User.ID, 24)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, []string{"USER"}, reg.User.Roles)

	login, err := s.Login(ctx, "ANN@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	id, err := s.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id)
}

func TestRegister_Rejects(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	register(t, s, "ann@example.com")

	_, err := s.Register(ctx, Profile{Name: "Other", Email: " Ann@Example.com ", Password: "secret1"})
	require.ErrorIs(t, err, common.ErrAlreadyExists)

	_, err = s.Register(ctx, Profile{Email: "nope", Password: "x", Age: -1})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "email is not valid")
	assert.Contains(t, err.Error(), "age must not be negative")
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newService(t)
	register(t, s, "ann@example.com")

	_, err := s.Login(context.Background(), "ann@example.com", "wrong!")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Login(context.Background(), "nobody@example.com", "secret1")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestUpdate(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	ann := register(t, s, "ann@example.com").User
	bob := register(t, s, "bob@example.com").User

	_, err := s.Update(ctx, bob.ID, ann.ID, Profile{Bio: common.Text("hacked")})
	require.ErrorIs(t, err, common.ErrForbidden)

	u, err := s.Update(ctx, strings.ToUpper(ann.ID), ann.ID, Profile{
		Bio:          common.Text("Gopher"),
		Age:          30,
		ProfilePhoto: &models.Image{ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gopher", u.Bio)
	assert.Equal(t, 30, u.Age)
	assert.Equal(t, "Ann", u.Name, "empty fields keep their value")
	assert.Equal(t, "cG5n", u.ProfilePhotoBase64)
	assert.Equal(t, "data:image/png;base64,cG5n", u.AvatarURL)

	_, err = s.Update(ctx, ann.ID, ann.ID, Profile{Email: "BOB@example.com"})
	require.ErrorIs(t, err, common.ErrAlreadyExists)

	_, err = s.Update(ctx, ann.ID, ann.ID, Profile{Password: "123"})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Update(ctx, ann.ID, ann.ID, Profile{Password: "newsecret"})
	require.NoError(t, err)
	_, err = s.Login(ctx, "ann@example.com", "newsecret")
	require.NoError(t, err)
}

func TestUpdate_ClearsTextFieldsOnlyWhenSent(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	ann := register(t, s, "ann@example.com").User

	_, err := s.Update(ctx, ann.ID, ann.ID, Profile{
		Username: common.Text("ann"),
		Location: common.Text("Riga"),
		Bio:      common.Text("Gopher"),
	})
	require.NoError(t, err)

	u, err := s.Update(ctx, ann.ID, ann.ID, Profile{Age: 31})
	require.NoError(t, err)
	assert.Equal(t, "ann", u.Username)
	assert.Equal(t, "Riga", u.Location)
	assert.Equal(t, "Gopher", u.Bio)

	u, err = s.Update(ctx, ann.ID, ann.ID, Profile{Location: common.Text(""), Bio: common.Text("  ")})
	require.NoError(t, err)
	assert.Empty(t, u.Location)
	assert.Empty(t, u.Bio)
	assert.Equal(t, "ann", u.Username)
}

func TestDelete(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	ann := register(t, s, "ann@example.com")
	bob := register(t, s, "bob@example.com")

	require.ErrorIs(t, s.Delete(ctx, bob.User.ID, ann.User.ID), common.ErrForbidden)
	require.NoError(t, s.Delete(ctx, ann.User.ID, ann.User.ID))

	_, err := s.Get(ctx, ann.User.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.Authenticate(ctx, ann.Token)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPasswordReset(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	register(t, s, "ann@example.com")

	token, err := s.RequestPasswordReset(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = s.RequestPasswordReset(ctx, "nope")
	require.ErrorIs(t, err, common.ErrValidation)

	token, err = s.RequestPasswordReset(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.ErrorIs(t, s.ResetPassword(ctx, token, "123"), common.ErrValidation)
	require.ErrorIs(t, s.ResetPassword(ctx, "bogus", "brandnew"), common.ErrInvalidToken)
	require.NoError(t, s.ResetPassword(ctx, token, "brandnew"))

	_, err = s.Login(ctx, "ann@example.com", "secret1")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = s.Login(ctx, "ann@example.com", "brandnew")
	require.NoError(t, err)

	require.ErrorIs(t, s.ResetPassword(ctx, token, "again123"), common.ErrInvalidToken, "tokens are single use")
}

func TestPasswordReset_Expired(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	register(t, s, "ann@example.com")

	token, err := s.RequestPasswordReset(ctx, "ann@example.com")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(time.Hour) }
	require.ErrorIs(t, s.ResetPassword(ctx, token, "brandnew"), common.ErrTokenExpired)
}

type fixedImages string

func (f fixedImages) Save(_ context.Context, _ string, img *models.Image) (string, error) {
	if img == nil {
		return "", nil
	}
	return string(f), nil
}

func TestAvatarComesFromImageStore(t *testing.T) {
	s := newService(t).WithImages(fixedImages("https://cdn.example.com/avatar.png"))
	ctx := context.Background()

	resp, err := s.Register(ctx, Profile{
		Name: "Ann", Email: "ann@example.com", Password: "secret1",
		ProfilePhoto: &models.Image{ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatar.png", resp.User.AvatarURL)
	assert.Equal(t, "cG5n", resp.User.ProfilePhotoBase64)

	u, err := s.Update(ctx, resp.User.ID, resp.User.ID, Profile{Age: 30})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatar.png", u.AvatarURL, "no new photo keeps the avatar")
}

// Package users owns accounts: registration, login, profiles and password
// resets.
package users

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/cryptox"
	"github.com/dmitrijs2005/skillshare/internal/identity"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server/auth"
	"github.com/dmitrijs2005/skillshare/internal/server/config"
	"github.com/dmitrijs2005/skillshare/internal/server/images"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

const minPasswordLength = 6

// Profile carries registration or profile-edit input. On update, empty
// Name, Email and Password and a zero Age leave the stored value unchanged.
// A nil Username, Location or Bio is kept; a non-nil one replaces the stored
// value, so an empty string clears it.
type Profile struct {
	Name         string
	Username     *string
	Email        string
	Password     string
	Age          int
	Location     *string
	Bio          *string
	ProfilePhoto *models.Image
	CoverPhoto   *models.Image
}

type Service struct {
	repo                        Repository
	images                      images.Store
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	resetTokenValidityDuration  time.Duration
	frontendURL                 string
	now                         func() time.Time
}

func NewService(repo Repository, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		repo:                        repo,
		images:                      images.Inline{},
		logger:                      logger,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		resetTokenValidityDuration:  cfg.ResetTokenValidityDuration,
		frontendURL:                 strings.TrimRight(cfg.FrontendURL, "/"),
		now:                         time.Now,
	}
}

// WithImages sets where avatars are stored. The default keeps them inline.
func (s *Service) WithImages(store images.Store) *Service {
	s.images = store
	return s
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, p Profile) (models.AuthResponse, error) {
	if err := validateRegistration(p); err != nil {
		return models.AuthResponse{}, err
	}

	id, err := common.NewObjectID()
	if err != nil {
		return models.AuthResponse{}, err
	}
	hash, err := cryptox.HashPassword([]byte(p.Password))
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	acc := models.Account{
		User: models.User{
			ID:       id,
			Name:     strings.TrimSpace(p.Name),
			Username: strings.TrimSpace(common.TextValue(p.Username)),
			Email:    strings.TrimSpace(p.Email),
			Age:      p.Age,
			Location: strings.TrimSpace(common.TextValue(p.Location)),
			Bio:      strings.TrimSpace(common.TextValue(p.Bio)),
			Roles:    []string{"USER"},
		},
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	avatar, err := s.images.Save(ctx, "avatars", p.ProfilePhoto)
	if err != nil {
		return models.AuthResponse{}, err
	}
	applyPhotos(&acc.User, p, avatar)

	if err := s.repo.Create(ctx, acc); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return models.AuthResponse{}, fmt.Errorf("email %s: %w", acc.Email, err)
		}
		return models.AuthResponse{}, fmt.Errorf("error creating user: %w", err)
	}
	s.logger.Info(ctx, "user registered", "user_id", id)

	return s.authResponse(acc.User)
}

// Login checks credentials. Unknown emails and wrong passwords both yield
// common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	acc, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.AuthResponse{}, common.ErrInvalidCredentials
		}
		return models.AuthResponse{}, err
	}

	if err := cryptox.CheckPassword(acc.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return models.AuthResponse{}, common.ErrInvalidCredentials
		}
		return models.AuthResponse{}, err
	}

	return s.authResponse(acc.User)
}

func (s *Service) authResponse(u models.User) (models.AuthResponse, error) {
	token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("generate token: %w", err)
	}
	return models.AuthResponse{Token: token, User: u}, nil
}

// Authenticate resolves a bearer token to an existing user id.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", err
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.User, error) {
	acc, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return acc.User, nil
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	accs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(accs))
	for _, a := range accs {
		out = append(out, a.User)
	}
	return out, nil
}

// Update edits the actor's own profile.
func (s *Service) Update(ctx context.Context, actorID, id string, p Profile) (models.User, error) {
	if !identity.CanModify(actorID, id) {
		return models.User{}, common.ErrForbidden
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return models.User{}, common.Invalidf("email is not valid")
	}
	if p.Password != "" && len(p.Password) < minPasswordLength {
		return models.User{}, common.Invalidf("password must have at least %d characters", minPasswordLength)
	}
	if p.Age < 0 {
		return models.User{}, common.Invalidf("age must not be negative")
	}

	var hash []byte
	if p.Password != "" {
		h, err := cryptox.HashPassword([]byte(p.Password))
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}
	avatar, err := s.images.Save(ctx, "avatars", p.ProfilePhoto)
	if err != nil {
		return models.User{}, err
	}

	acc, err := s.repo.Update(ctx, id, func(acc *models.Account) error {
		setIfNotEmpty(&acc.Name, p.Name)
		setIfNotEmpty(&acc.Email, p.Email)
		setIfPresent(&acc.Username, p.Username)
		setIfPresent(&acc.Location, p.Location)
		setIfPresent(&acc.Bio, p.Bio)
		if p.Age > 0 {
			acc.Age = p.Age
		}
		if hash != nil {
			acc.PasswordHash = hash
		}
		applyPhotos(&acc.User, p, avatar)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return acc.User, nil
}

// Delete removes the actor's own account.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if !identity.CanModify(actorID, id) {
		return common.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// RequestPasswordReset stores a fresh reset token digest and logs the reset
// link. The raw token is returned for the caller to deliver. An unknown
// email yields an empty token and no error.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if !strings.Contains(email, "@") {
		return "", common.Invalidf("a valid email is required")
	}

	acc, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		s.logger.Info(ctx, "password reset requested for unknown email")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token, digest, err := cryptox.NewResetToken()
	if err != nil {
		return "", err
	}
	_, err = s.repo.Update(ctx, acc.ID, func(a *models.Account) error {
		a.ResetDigest = digest
		a.ResetExpires = s.now().Add(s.resetTokenValidityDuration)
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "password reset link issued",
		"user_id", acc.ID, "link", s.frontendURL+"/reset-password?token="+url.QueryEscape(token))
	return token, nil
}

// ResetPassword sets a new password for the account holding token. The
// token is single use.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return common.Invalidf("reset token is required")
	}
	if len(newPassword) < minPasswordLength {
		return common.Invalidf("password must have at least %d characters", minPasswordLength)
	}

	token = strings.TrimSpace(token)
	acc, err := s.repo.GetByResetDigest(ctx, cryptox.HashToken(token))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidToken
		}
		return err
	}
	if s.now().After(acc.ResetExpires) {
		return common.ErrTokenExpired
	}

	hash, err := cryptox.HashPassword([]byte(newPassword))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.repo.Update(ctx, acc.ID, func(a *models.Account) error {
		// a concurrent reset may have consumed the token already
		if !cryptox.TokenMatches(token, a.ResetDigest) {
			return common.ErrInvalidToken
		}
		a.PasswordHash = hash
		a.ResetDigest = ""
		a.ResetExpires = time.Time{}
		return nil
	})
	return err
}

func validateRegistration(p Profile) error {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !strings.Contains(p.Email, "@") {
		problems = append(problems, "email is not valid")
	}
	if len(p.Password) < minPasswordLength {
		problems = append(problems, fmt.Sprintf("password must have at least %d characters", minPasswordLength))
	}
	if p.Age < 0 {
		problems = append(problems, "age must not be negative")
	}
	if len(problems) > 0 {
		return common.Invalidf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func applyPhotos(u *models.User, p Profile, avatarURL string) {
	if p.ProfilePhoto != nil {
		u.ProfilePhotoBase64 = base64.StdEncoding.EncodeToString(p.ProfilePhoto.Data)
		u.AvatarURL = avatarURL
	}
	if p.CoverPhoto != nil {
		u.CoverPhotoBase64 = base64.StdEncoding.EncodeToString(p.CoverPhoto.Data)
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

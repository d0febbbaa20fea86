// Package posts serves the skill-showcase posts: listing, authoring and
// reactions.
package posts

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/identity"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server/images"
	"github.com/dmitrijs2005/skillshare/internal/server/memstore"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

// Input is the multipart form of a post. OwnerID, when set, must be the
// actor. On update, empty fields and a nil Image keep the stored value.
type Input struct {
	Title       string
	Description string
	Slogan      *string // nil keeps the current slogan on update
	OwnerID     string
	Image       *models.Image
}

type Service struct {
	repo   Repository
	images images.Store
	logger logging.Logger
	now    func() time.Time
}

// NewService keeps images inline until WithImages sets another store.
func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, images: images.Inline{}, logger: logger, now: time.Now}
}

func (s *Service) WithImages(store images.Store) *Service {
	s.images = store
	return s
}

// List returns posts newest first, optionally only those of ownerID.
func (s *Service) List(ctx context.Context, ownerID string, page, size int) ([]models.Post, error) {
	var filter func(models.Post) bool
	if strings.TrimSpace(ownerID) != "" {
		filter = func(p models.Post) bool { return identity.SameID(p.OwnerID, ownerID) }
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	slices.Reverse(items)
	slices.SortStableFunc(items, func(a, b models.Post) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return memstore.Page(items, page, size), nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Post, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actorID string, in Input) (models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Post{}, common.Invalidf("title is required")
	}
	if in.OwnerID != "" && !identity.SameID(actorID, in.OwnerID) {
		return models.Post{}, common.ErrForbidden
	}

	id, err := common.NewObjectID()
	if err != nil {
		return models.Post{}, err
	}
	imageURL, err := s.images.Save(ctx, "posts", in.Image)
	if err != nil {
		return models.Post{}, err
	}
	now := s.now()
	p := models.Post{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Slogan:      strings.TrimSpace(common.TextValue(in.Slogan)),
		ImageURL:    imageURL,
		OwnerID:     actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return models.Post{}, err
	}
	s.logger.Info(ctx, "post created", "post_id", id, "user_id", actorID)
	return p, nil
}

func (s *Service) Update(ctx context.Context, actorID, id string, in Input) (models.Post, error) {
	var imageURL string
	if in.Image != nil {
		current, err := s.repo.Get(ctx, id)
		if err != nil {
			return models.Post{}, err
		}
		if !identity.CanModify(actorID, current.OwnerID) {
			return models.Post{}, common.ErrForbidden
		}
		if imageURL, err = s.images.Save(ctx, "posts", in.Image); err != nil {
			return models.Post{}, err
		}
	}

	return s.repo.Update(ctx, id, func(p *models.Post) error {
		if !identity.CanModify(actorID, p.OwnerID) {
			return common.ErrForbidden
		}
		if t := strings.TrimSpace(in.Title); t != "" {
			p.Title = t
		}
		if in.Description != "" {
			p.Description = in.Description
		}
		if in.Slogan != nil {
			p.Slogan = strings.TrimSpace(*in.Slogan)
		}
		if imageURL != "" {
			p.ImageURL = imageURL
		}
		p.UpdatedAt = s.now()
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !identity.CanModify(actorID, p.OwnerID) {
		return common.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "post deleted", "post_id", id, "user_id", actorID)
	return nil
}

// React adds one like or dislike and returns the updated post.
func (s *Service) React(ctx context.Context, id string, r models.Reaction) (models.Post, error) {
	return s.repo.Update(ctx, id, func(p *models.Post) error {
		switch r {
		case models.Like:
			p.Likes++
		case models.Dislike:
			p.Dislikes++
		}
		return nil
	})
}

// Package comments serves post comments and their one-level replies.
package comments

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/identity"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

// PostLookup confirms that a post exists.
type PostLookup interface {
	Get(ctx context.Context, id string) (models.Post, error)
}

// AuthorLookup resolves the display data stamped on new comments.
type AuthorLookup interface {
	Get(ctx context.Context, id string) (models.User, error)
}

type Service struct {
	repo    Repository
	posts   PostLookup
	authors AuthorLookup
	logger  logging.Logger
	now     func() time.Time
}

func NewService(repo Repository, posts PostLookup, authors AuthorLookup, logger logging.Logger) *Service {
	return &Service{repo: repo, posts: posts, authors: authors, logger: logger, now: time.Now}
}

// ListByPost returns the post's top-level comments newest first, each
// followed by its replies oldest first.
func (s *Service) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	all, err := s.repo.List(ctx, func(c models.Comment) bool { return identity.SameID(c.PostID, postID) })
	if err != nil {
		return nil, err
	}

	var top []models.Comment
	replies := make(map[string][]models.Comment)
	for _, c := range all {
		if c.Reply {
			key := identity.Normalize(c.ReplyTo)
			replies[key] = append(replies[key], c)
			continue
		}
		top = append(top, c)
	}
	newestFirst(top)

	out := make([]models.Comment, 0, len(all))
	for _, c := range top {
		out = append(out, c)
		rs := replies[identity.Normalize(c.ID)]
		oldestFirst(rs)
		out = append(out, rs...)
	}
	return out, nil
}

// Replies returns the replies to a comment, oldest first.
func (s *Service) Replies(ctx context.Context, id string) ([]models.Comment, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	rs, err := s.repo.List(ctx, func(c models.Comment) bool { return c.Reply && identity.SameID(c.ReplyTo, id) })
	if err != nil {
		return nil, err
	}
	oldestFirst(rs)
	return rs, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Comment, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a top-level comment to an existing post.
func (s *Service) Create(ctx context.Context, actorID, postID, content string) (models.Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return models.Comment{}, common.Invalidf("postId is required")
	}
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return models.Comment{}, err
	}
	return s.insert(ctx, actorID, models.Comment{PostID: postID, Content: content})
}

// Reply answers a comment. Replies to a reply attach to the same thread
// root, keeping threads one level deep.
func (s *Service) Reply(ctx context.Context, actorID, parentID, content string) (models.Comment, error) {
	parent, err := s.repo.Get(ctx, parentID)
	if err != nil {
		return models.Comment{}, err
	}
	root := parent.ID
	if parent.Reply {
		root = parent.ReplyTo
	}
	return s.insert(ctx, actorID, models.Comment{PostID: parent.PostID, Content: content, Reply: true, ReplyTo: root})
}

func (s *Service) insert(ctx context.Context, actorID string, c models.Comment) (models.Comment, error) {
	c.Content = strings.TrimSpace(c.Content)
	if c.Content == "" {
		return models.Comment{}, common.Invalidf("content is required")
	}

	id, err := common.NewObjectID()
	if err != nil {
		return models.Comment{}, err
	}
	author, err := s.authors.Get(ctx, actorID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return models.Comment{}, err
	}

	now := s.now()
	c.ID = id
	c.UserID = actorID
	c.AuthorName = displayName(author)
	c.AvatarURL = author.AvatarURL
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Create(ctx, c); err != nil {
		return models.Comment{}, err
	}
	s.logger.Debug(ctx, "comment created", "comment_id", id, "post_id", c.PostID, "reply", c.Reply)
	return c, nil
}

func (s *Service) Update(ctx context.Context, actorID, id, content string) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, common.Invalidf("content is required")
	}
	return s.repo.Update(ctx, id, func(c *models.Comment) error {
		if !identity.CanModify(actorID, c.UserID) {
			return common.ErrForbidden
		}
		c.Content = content
		c.UpdatedAt = s.now()
		return nil
	})
}

// Delete removes the actor's comment together with its replies.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !identity.CanModify(actorID, c.UserID) {
		return common.ErrForbidden
	}
	_, err = s.repo.DeleteWhere(ctx, func(x models.Comment) bool {
		return identity.SameID(x.ID, c.ID) || (x.Reply && identity.SameID(x.ReplyTo, c.ID))
	})
	return err
}

// DeleteByPost removes every comment on a post.
func (s *Service) DeleteByPost(ctx context.Context, postID string) (int, error) {
	return s.repo.DeleteWhere(ctx, func(c models.Comment) bool { return identity.SameID(c.PostID, postID) })
}

// React adds one like or dislike and returns the updated comment.
func (s *Service) React(ctx context.Context, id string, r models.Reaction) (models.Comment, error) {
	return s.repo.Update(ctx, id, func(c *models.Comment) error {
		switch r {
		case models.Like:
			c.Likes++
		case models.Dislike:
			c.Dislikes++
		}
		return nil
	})
}

func displayName(u models.User) string {
	for _, s := range []string{u.Name, u.Username, u.Email} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func newestFirst(cs []models.Comment) {
	slices.Reverse(cs)
	slices.SortStableFunc(cs, func(a, b models.Comment) int { return b.CreatedAt.Compare(a.CreatedAt) })
}

func oldestFirst(cs []models.Comment) {
	slices.SortStableFunc(cs, func(a, b models.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) })
}

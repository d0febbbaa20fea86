package cli

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

func (a *App) ListComments(ctx context.Context, args []string) error {
	a.println("Loading comments...")
	return a.refreshComments(ctx, args[0])
}

func (a *App) refreshComments(ctx context.Context, postID string) error {
	list, err := a.comments.ListByPost(ctx, postID)
	if err != nil {
		return err
	}
	a.renderComments(list)
	return nil
}

func (a *App) NewComment(ctx context.Context, args []string) error {
	postID := args[0]
	content, err := GetMultiline(a.reader, "Your comment", a.out)
	if err != nil {
		return err
	}

	err = a.gate.Run("comment", postID, func() error {
		_, err := a.comments.Create(ctx, postID, content)
		return err
	})
	if err != nil {
		return err
	}
	return a.refreshComments(ctx, postID)
}

func (a *App) ReplyComment(ctx context.Context, args []string) error {
	parent, err := a.comments.Get(ctx, args[0])
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Your reply", a.out)
	if err != nil {
		return err
	}

	err = a.gate.Run("reply", parent.ID, func() error {
		_, err := a.comments.Reply(ctx, parent.ID, content)
		return err
	})
	if err != nil {
		return err
	}
	return a.refreshComments(ctx, parent.PostID)
}

func (a *App) EditComment(ctx context.Context, args []string) error {
	c, err := a.comments.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.requireOwner("comment", c.UserID); err != nil {
		return err
	}

	a.printf("Current: %s\n", c.Content)
	content, err := GetMultiline(a.reader, "New text", a.out)
	if err != nil {
		return err
	}

	err = a.gate.Run("editcomment", c.ID, func() error {
		_, err := a.comments.Update(ctx, c.ID, content)
		return err
	})
	if err != nil {
		return err
	}
	return a.refreshComments(ctx, c.PostID)
}

func (a *App) DeleteComment(ctx context.Context, args []string) error {
	c, err := a.comments.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.requireOwner("comment", c.UserID); err != nil {
		return err
	}

	if err := a.gate.Run("delcomment", c.ID, func() error { return a.comments.Delete(ctx, c.ID) }); err != nil {
		return err
	}
	a.println("Comment deleted.")
	return a.refreshComments(ctx, c.PostID)
}

func (a *App) LikeComment(ctx context.Context, args []string) error {
	return a.reactComment(ctx, "likecomment", args[0], a.comments.Like)
}

func (a *App) DislikeComment(ctx context.Context, args []string) error {
	return a.reactComment(ctx, "dislikecomment", args[0], a.comments.Dislike)
}

func (a *App) reactComment(ctx context.Context, action, id string, send func(context.Context, string) (models.Comment, error)) error {
	var updated models.Comment
	err := a.gate.Run(action, id, func() error {
		var err error
		updated, err = send(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	postID := updated.PostID
	if postID == "" {
		c, err := a.comments.Get(ctx, id)
		if err != nil {
			return err
		}
		postID = c.PostID
	}
	return a.refreshComments(ctx, postID)
}

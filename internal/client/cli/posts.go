package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

func (a *App) ListPosts(ctx context.Context, args []string) error {
	page, err := parsePage(args)
	if err != nil {
		return err
	}

	a.println("Loading posts...")
	list, err := a.posts.List(ctx, page)
	if err != nil {
		return err
	}
	a.renderPostList(list)
	return nil
}

func (a *App) renderPostList(list []models.Post) {
	if len(list) == 0 {
		a.println("No posts yet.")
		return
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		title := p.Title
		if a.ownedByMe(p.OwnerID) {
			title += " *"
		}
		rows = append(rows, []string{p.ID, title, strconv.Itoa(p.Likes), strconv.Itoa(p.Dislikes)})
	}
	a.table("ID\tTITLE\tLIKES\tDISLIKES", rows)
}

// ShowPost prints a post followed by its comments.
func (a *App) ShowPost(ctx context.Context, args []string) error {
	return a.showPost(ctx, args[0], true)
}

func (a *App) showPost(ctx context.Context, id string, withComments bool) error {
	p, err := a.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	a.renderPost(p)
	if !withComments {
		return nil
	}

	a.println()
	list, err := a.comments.ListByPost(ctx, p.ID)
	if err != nil {
		return err
	}
	a.renderComments(list)
	return nil
}

func (a *App) NewPost(ctx context.Context, _ []string) error {
	var form models.PostForm
	var err error

	if form.Title, err = a.ask("Title"); err != nil {
		return err
	}
	if form.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	if form.Slogan, err = a.ask("Slogan (optional)"); err != nil {
		return err
	}
	if form.Image, err = a.askImage("Image"); err != nil {
		return err
	}

	var created models.Post
	err = a.gate.Run("newpost", form.Title, func() error {
		created, err = a.posts.Create(ctx, form)
		return err
	})
	if err != nil {
		return err
	}
	a.println("Post published.")
	return a.showPost(ctx, created.ID, false)
}

func (a *App) EditPost(ctx context.Context, args []string) error {
	p, err := a.posts.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.requireOwner("post", p.OwnerID); err != nil {
		return err
	}

	form := models.PostForm{}
	if form.Title, err = a.askDefault("Title", p.Title); err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "Description (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	form.Description = p.Description
	if desc != "" {
		form.Description = desc
	}
	if form.Slogan, err = a.askClearable("Slogan", p.Slogan); err != nil {
		return err
	}
	if form.Image, err = a.askImage("New image"); err != nil {
		return err
	}

	err = a.gate.Run("editpost", p.ID, func() error {
		_, err := a.posts.Update(ctx, p.ID, form)
		return err
	})
	if err != nil {
		return err
	}
	a.println("Post updated.")
	return a.showPost(ctx, p.ID, false)
}

func (a *App) DeletePost(ctx context.Context, args []string) error {
	p, err := a.posts.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.requireOwner("post", p.OwnerID); err != nil {
		return err
	}
	ok, err := a.confirm("Delete \"" + p.Title + "\"?")
	if err != nil || !ok {
		return err
	}

	if err := a.gate.Run("delpost", p.ID, func() error { return a.posts.Delete(ctx, p.ID) }); err != nil {
		return err
	}
	a.println("Post deleted.")
	return a.ListPosts(ctx, nil)
}

func (a *App) LikePost(ctx context.Context, args []string) error {
	return a.reactPost(ctx, "like", args[0], a.posts.Like)
}

func (a *App) DislikePost(ctx context.Context, args []string) error {
	return a.reactPost(ctx, "dislike", args[0], a.posts.Dislike)
}

func (a *App) reactPost(ctx context.Context, action, id string, send func(context.Context, string) (models.Post, error)) error {
	err := a.gate.Run(action, id, func() error {
		_, err := send(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	p, err := a.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s: %d likes, %d dislikes\n", p.Title, p.Likes, p.Dislikes)
	return nil
}

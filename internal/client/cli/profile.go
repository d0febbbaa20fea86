package cli

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

// ShowProfile prints a user and their posts. Without an argument it shows
// the signed-in user.
func (a *App) ShowProfile(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else if u, ok := a.currentUser(); ok {
		id = u.ID
	} else {
		return ErrNotSignedIn
	}

	u, err := a.users.Get(ctx, id)
	if err != nil {
		return err
	}

	a.printf("%s", u.DisplayName())
	if u.Username != "" {
		a.printf(" (@%s)", u.Username)
	}
	a.println()
	if u.Location != "" {
		a.printf("location: %s\n", u.Location)
	}
	if u.Age > 0 {
		a.printf("age: %d\n", u.Age)
	}
	if u.Bio != "" {
		a.println(u.Bio)
	}

	posts, err := a.users.Posts(ctx, u.ID)
	if err != nil {
		return err
	}
	courses, err := a.users.Courses(ctx, u.ID)
	if err != nil {
		return err
	}

	a.println()
	a.renderPostList(posts)
	if len(courses) > 0 {
		a.println()
		a.renderCourseList(courses)
	}
	return nil
}

func (a *App) EditProfile(ctx context.Context, _ []string) error {
	u, ok := a.currentUser()
	if !ok {
		return ErrNotSignedIn
	}

	form := models.UserForm{}
	var err error
	if form.Name, err = a.askDefault("Full name", u.Name); err != nil {
		return err
	}
	if form.Username, err = a.askClearable("Username", u.Username); err != nil {
		return err
	}
	if form.Age, err = a.askInt("Age", u.Age); err != nil {
		return err
	}
	if form.Location, err = a.askClearable("Location", u.Location); err != nil {
		return err
	}
	if form.Bio, err = a.askClearable("Bio", u.Bio); err != nil {
		return err
	}
	if form.ProfilePhoto, err = a.askImage("Profile photo"); err != nil {
		return err
	}
	if form.CoverPhoto, err = a.askImage("Cover photo"); err != nil {
		return err
	}

	err = a.gate.Run("editprofile", u.ID, func() error {
		_, err := a.users.Update(ctx, u.ID, form)
		return err
	})
	if err != nil {
		return err
	}
	a.println("Profile updated.")
	return a.ShowProfile(ctx, nil)
}

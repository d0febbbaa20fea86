package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/dmitrijs2005/skillshare/internal/identity"
)

const pageSize = 10

var ErrNotOwner = errors.New("only the owner can change this")

// parsePage reads an optional 1-based page number. No argument means all items.
func parsePage(args []string) (models.PageRequest, error) {
	if len(args) == 0 {
		return models.PageRequest{}, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return models.PageRequest{}, fmt.Errorf("page must be a positive number, got %q", args[0])
	}
	return models.PageRequest{Page: n - 1, Size: pageSize}, nil
}

// requireOwner allows a mutation only for the signed-in owner of a resource.
func (a *App) requireOwner(kind, ownerID string) error {
	u, ok := a.currentUser()
	if !ok {
		return ErrNotSignedIn
	}
	if !identity.CanModify(u.ID, ownerID) {
		return fmt.Errorf("%w: this %s belongs to someone else", ErrNotOwner, kind)
	}
	return nil
}

func (a *App) ownedByMe(ownerID string) bool {
	u, ok := a.currentUser()
	return ok && identity.CanModify(u.ID, ownerID)
}

func (a *App) table(header string, rows [][]string) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func (a *App) renderPost(p models.Post) {
	mine := ""
	if a.ownedByMe(p.OwnerID) {
		mine = " (yours)"
	}
	a.printf("%s%s\n", p.Title, mine)
	if p.Slogan != "" {
		a.printf("  %s\n", p.Slogan)
	}
	a.printf("id: %s  likes: %d  dislikes: %d\n", p.ID, p.Likes, p.Dislikes)
	if p.ImageURL != "" {
		a.printf("image: %s\n", p.ImageURL)
	}
	if !p.CreatedAt.IsZero() {
		a.printf("posted: %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if p.Description != "" {
		a.println()
		a.println(p.Description)
	}
}

func (a *App) renderComments(list []models.Comment) {
	if len(list) == 0 {
		a.println("No comments yet.")
		return
	}
	for _, c := range list {
		indent := ""
		if c.Reply {
			indent = "    "
		}
		author := c.AuthorName
		if author == "" {
			author = c.UserID
		}
		if a.ownedByMe(c.UserID) {
			author += " (you)"
		}
		a.printf("%s[%s] %s: %s  (+%d/-%d)\n", indent, c.ID, author, c.Content, c.Likes, c.Dislikes)
	}
}

func (a *App) renderCourse(c models.Course, enrollment *models.Enrollment) {
	mine := ""
	if a.ownedByMe(c.OwnerID) {
		mine = " (yours)"
	}
	a.printf("%s%s\n", c.Name, mine)
	a.printf("id: %s\n%s · %s · %s", c.ID, c.Institute, c.Level, c.Type)
	if c.Duration > 0 {
		a.printf(" · %d weeks", c.Duration)
	}
	a.println()
	if c.StartDate != "" {
		a.printf("starts: %s\n", c.StartDate)
	}
	if enrollment != nil {
		a.printf("enrolled, progress: %d%%\n", enrollment.Progress)
	}

	for i, m := range c.Modules {
		a.printf("\n%d. %s\n", i+1, m.Title)
		if m.Description != "" {
			a.printf("   %s\n", m.Description)
		}
		for _, l := range m.Lessons {
			mark := "[ ]"
			if enrollment != nil && enrollment.IsCompleted(l.ID) {
				mark = "[x]"
			}
			a.printf("   %s %s  (%s)\n", mark, l.Title, l.ID)
		}
	}
}

func (a *App) renderCourseList(list []models.Course) {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{c.ID, c.Name, c.Institute, c.Level, strconv.Itoa(c.LessonCount())})
	}
	a.table("ID\tNAME\tINSTITUTE\tLEVEL\tLESSONS", rows)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"golang.org/x/sync/errgroup"
)

var ErrSearchDisabled = errors.New("AI search is not configured (set COHERE_API_KEY)")

func (a *App) ListCourses(ctx context.Context, args []string) error {
	page, err := parsePage(args)
	if err != nil {
		return err
	}

	a.println("Loading courses...")
	list, err := a.courses.List(ctx, page)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No courses yet.")
		return nil
	}
	a.renderCourseList(list)
	return nil
}

func (a *App) MyCourses(ctx context.Context, _ []string) error {
	u, ok := a.currentUser()
	if !ok {
		return ErrNotSignedIn
	}
	list, err := a.courses.ListByOwner(ctx, u.ID, models.PageRequest{})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("You have not created any courses. Use 'newcourse'.")
		return nil
	}
	a.renderCourseList(list)
	return nil
}

// ShowCourse prints a course. For a signed-in learner the lesson checklist
// reflects their enrollment.
func (a *App) ShowCourse(ctx context.Context, args []string) error {
	return a.showCourse(ctx, args[0])
}

func (a *App) showCourse(ctx context.Context, id string) error {
	c, err := a.courses.Get(ctx, id)
	if err != nil {
		return err
	}

	var enrollment *models.Enrollment
	if a.isLoggedIn() {
		enrollment, err = a.findEnrollment(ctx, c.ID)
		if err != nil {
			return err
		}
	}
	a.renderCourse(c, enrollment)
	return nil
}

// findEnrollment returns nil when the user is not enrolled in courseID.
func (a *App) findEnrollment(ctx context.Context, courseID string) (*models.Enrollment, error) {
	enrolled, err := a.enrollments.IsEnrolled(ctx, courseID)
	if err != nil || !enrolled {
		return nil, err
	}
	mine, err := a.enrollments.Mine(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range mine {
		if e.CourseID == courseID {
			return &e, nil
		}
	}
	return nil, nil
}

func (a *App) NewCourse(ctx context.Context, _ []string) error {
	var c models.Course
	var err error

	if c.Name, err = a.ask("Course name"); err != nil {
		return err
	}
	if c.Institute, err = a.ask("Institute"); err != nil {
		return err
	}
	if c.Level, err = a.ask("Level (e.g. Beginner)"); err != nil {
		return err
	}
	if c.Type, err = a.ask("Type (e.g. Online)"); err != nil {
		return err
	}
	if c.Duration, err = a.askInt("Duration in weeks", 0); err != nil {
		return err
	}
	if c.StartDate, err = a.ask("Start date YYYY-MM-DD (optional)"); err != nil {
		return err
	}
	if err := checkStartDate(c.StartDate); err != nil {
		return err
	}
	if c.Modules, err = a.askModules(); err != nil {
		return err
	}

	var created models.Course
	err = a.gate.Run("newcourse", c.Name, func() error {
		created, err = a.courses.Create(ctx, c)
		return err
	})
	if err != nil {
		return err
	}
	a.println("Course created.")
	return a.showCourse(ctx, created.ID)
}

func checkStartDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("start date %q is not YYYY-MM-DD", s)
	}
	return nil
}

// EditCourse changes one of the user's courses. Modules and lessons are kept,
// with their ids, unless the user chooses to enter them again.
func (a *App) EditCourse(ctx context.Context, args []string) error {
	c, err := a.courses.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.requireOwner("course", c.OwnerID); err != nil {
		return err
	}

	if c.Name, err = a.askDefault("Course name", c.Name); err != nil {
		return err
	}
	if c.Institute, err = a.askDefault("Institute", c.Institute); err != nil {
		return err
	}
	if c.Level, err = a.askDefault("Level", c.Level); err != nil {
		return err
	}
	if c.Type, err = a.askDefault("Type", c.Type); err != nil {
		return err
	}
	if c.Duration, err = a.askInt("Duration in weeks", c.Duration); err != nil {
		return err
	}
	if c.StartDate, err = a.askClearable("Start date YYYY-MM-DD", c.StartDate); err != nil {
		return err
	}
	if err := checkStartDate(c.StartDate); err != nil {
		return err
	}
	replace, err := a.confirm(fmt.Sprintf("Replace the %d modules? Lesson progress of enrolled learners resets", len(c.Modules)))
	if err != nil {
		return err
	}
	if replace {
		if c.Modules, err = a.askModules(); err != nil {
			return err
		}
	}

	err = a.gate.Run("editcourse", c.ID, func() error {
		_, err := a.courses.Update(ctx, c.ID, c)
		return err
	})
	if err != nil {
		return err
	}
	a.println("Course updated.")
	return a.showCourse(ctx, c.ID)
}

func (a *App) askModules() ([]models.Module, error) {
	var modules []models.Module
	for {
		title, err := a.ask(fmt.Sprintf("Module %d title (empty to finish)", len(modules)+1))
		if err != nil {
			return nil, err
		}
		if title == "" {
			return modules, nil
		}
		m := models.Module{Title: title}
		if m.Description, err = a.ask("Module description (optional)"); err != nil {
			return nil, err
		}
		for {
			lesson, err := a.ask(fmt.Sprintf("  Lesson %d title (empty to finish)", len(m.Lessons)+1))
			if err != nil {
				return nil, err
			}
			if lesson == "" {
				break
			}
			m.Lessons = append(m.Lessons, models.Lesson{Title: lesson})
		}
		modules = append(modules, m)
	}
}

func (a *App) DeleteCourse(ctx context.Context, args []string) error {
	c, err := a.courses.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.requireOwner("course", c.OwnerID); err != nil {
		return err
	}
	ok, err := a.confirm("Delete \"" + c.Name + "\"?")
	if err != nil || !ok {
		return err
	}

	if err := a.gate.Run("delcourse", c.ID, func() error { return a.courses.Delete(ctx, c.ID) }); err != nil {
		return err
	}
	a.println("Course deleted.")
	return a.MyCourses(ctx, nil)
}

// SearchCourses ranks all courses against the prompt. An empty prompt clears
// the search and lists everything.
func (a *App) SearchCourses(ctx context.Context, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		a.println("Search cleared.")
		return a.ListCourses(ctx, nil)
	}
	if a.ranker == nil {
		return ErrSearchDisabled
	}

	a.println("Searching...")
	all, err := a.courses.List(ctx, models.PageRequest{})
	if err != nil {
		return err
	}
	results, err := a.ranker.Rank(ctx, prompt, all)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		a.println("No matching courses.")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{fmt.Sprintf("%.3f", r.Score), r.Course.ID, r.Course.Name, r.Course.Institute})
	}
	a.table("SCORE\tID\tNAME\tINSTITUTE", rows)
	return nil
}

func (a *App) Enroll(ctx context.Context, args []string) error {
	id := args[0]
	if err := a.gate.Run("enroll", id, func() error {
		_, err := a.enrollments.Enroll(ctx, id)
		return err
	}); err != nil {
		if errors.Is(err, client.ErrConflict) {
			a.println("You are already enrolled.")
			return nil
		}
		return err
	}
	a.println("Enrolled.")
	return a.showCourse(ctx, id)
}

func (a *App) Unenroll(ctx context.Context, args []string) error {
	id := args[0]
	if err := a.gate.Run("unenroll", id, func() error { return a.enrollments.Unenroll(ctx, id) }); err != nil {
		return err
	}
	a.println("You left the course.")
	return a.MyLearning(ctx, nil)
}

// MyLearning lists enrollments with course names, fetched a few at a time.
func (a *App) MyLearning(ctx context.Context, _ []string) error {
	a.println("Loading your courses...")
	mine, err := a.enrollments.Mine(ctx)
	if err != nil {
		return err
	}
	if len(mine) == 0 {
		a.println("You are not enrolled in any course. Use 'enroll <courseId>'.")
		return nil
	}

	names := make([]string, len(mine))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, e := range mine {
		g.Go(func() error {
			c, err := a.courses.Get(gctx, e.CourseID)
			switch {
			case errors.Is(err, client.ErrNotFound):
				names[i] = "(course removed)"
			case err != nil:
				return err
			default:
				names[i] = c.Name
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(mine))
	for i, e := range mine {
		rows = append(rows, []string{e.CourseID, names[i], fmt.Sprintf("%d%%", e.Progress)})
	}
	a.table("COURSE\tNAME\tPROGRESS", rows)
	return nil
}

// ToggleLesson flips a lesson and shows the progress the server computed.
func (a *App) ToggleLesson(ctx context.Context, args []string) error {
	courseID, lessonID := args[0], args[1]

	var e models.Enrollment
	err := a.gate.Run("toggle", courseID+"/"+lessonID, func() error {
		var err error
		e, err = a.enrollments.ToggleLesson(ctx, courseID, lessonID)
		return err
	})
	if err != nil {
		return err
	}

	state := "not done"
	if e.IsCompleted(lessonID) {
		state = "done"
	}
	a.printf("Lesson %s marked %s. Progress: %d%%\n", lessonID, state, e.Progress)
	return nil
}

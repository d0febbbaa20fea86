package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/dmitrijs2005/skillshare/internal/client/search"
	"github.com/dmitrijs2005/skillshare/internal/client/services"
	"github.com/dmitrijs2005/skillshare/internal/logging"
)

type View string

const (
	ViewLogin View = "login"
	ViewHome  View = "home"
)

// CourseRanker orders courses by relevance to a free-text prompt.
type CourseRanker interface {
	Rank(ctx context.Context, prompt string, courses []models.Course) ([]search.Result, error)
}

// Deps are the collaborators App talks to. Ranker may be nil when AI search
// is not configured.
type Deps struct {
	Auth        services.AuthService
	Users       services.UserService
	Posts       services.PostService
	Comments    services.CommentService
	Courses     services.CourseService
	Enrollments services.EnrollmentService
	Ranker      CourseRanker
	Logger      logging.Logger
	In          io.Reader
	Out         io.Writer
}

type App struct {
	auth        services.AuthService
	users       services.UserService
	posts       services.PostService
	comments    services.CommentService
	courses     services.CourseService
	enrollments services.EnrollmentService
	ranker      CourseRanker
	logger      logging.Logger

	reader *bufio.Reader
	out    io.Writer
	gate   *Gate

	mu   sync.Mutex
	view View
}

func NewApp(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Logger == nil {
		d.Logger = logging.NewNopLogger()
	}
	return &App{
		auth:        d.Auth,
		users:       d.Users,
		posts:       d.Posts,
		comments:    d.Comments,
		courses:     d.Courses,
		enrollments: d.Enrollments,
		ranker:      d.Ranker,
		logger:      d.Logger,
		reader:      bufio.NewReader(d.In),
		out:         d.Out,
		gate:        NewGate(),
		view:        ViewLogin,
	}
}

// Run restores a saved session and then serves commands until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to SkillShare (type 'help' for commands)")

	user, ok, err := a.auth.RestoreSession(ctx)
	switch {
	case err != nil:
		a.logger.Error(ctx, "restore session", "error", err)
		a.println("Could not load the saved session; please log in.")
	case ok:
		a.setView(ViewHome)
		a.printf("Signed in as %s\n", user.DisplayName())
	default:
		a.println("You are not signed in. Use 'login', 'register' or 'oauth'.")
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

// RedirectToLogin implements client.Navigator.
func (a *App) RedirectToLogin(ctx context.Context) {
	a.logger.Info(ctx, "switching to login view")
	if a.setView(ViewLogin) {
		a.println("You have been signed out. Use 'login' to continue.")
	}
}

// setView reports whether the view changed.
func (a *App) setView(v View) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	changed := a.view != v
	a.view = v
	return changed
}

func (a *App) currentView() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.CurrentUser()
	return ok
}

func (a *App) currentUser() (models.User, bool) {
	return a.auth.CurrentUser()
}

func (a *App) status() string {
	if u, ok := a.currentUser(); ok {
		return u.DisplayName()
	}
	return "guest"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

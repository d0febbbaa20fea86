package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/dmitrijs2005/skillshare/internal/client/search"
)

const (
	annID = "65f1a2b3c4d5e6f708091a2b"
	bobID = "65f1a2b3c4d5e6f708091a2c"
)

var notFound = &client.APIError{Kind: client.ErrNotFound, Status: 404, Method: "GET", Path: "/x"}

type fakeAuth struct {
	user     *models.User
	loginErr error
	nav      *App

	logins      []string
	oauthTokens []string
	logouts     int
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (models.User, error) {
	f.logins = append(f.logins, email)
	if f.loginErr != nil {
		return models.User{}, f.loginErr
	}
	f.user = &models.User{ID: annID, Name: "Ann", Email: email}
	return *f.user, nil
}

func (f *fakeAuth) Register(_ context.Context, form models.UserForm) (models.User, error) {
	f.user = &models.User{ID: annID, Name: form.Name, Email: form.Email}
	return *f.user, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	f.user = nil
	if f.nav != nil {
		f.nav.RedirectToLogin(ctx)
	}
	return nil
}

func (f *fakeAuth) RestoreSession(context.Context) (models.User, bool, error) {
	if f.user == nil {
		return models.User{}, false, nil
	}
	return *f.user, true, nil
}

func (f *fakeAuth) CompleteOAuth(_ context.Context, token, _ string) (models.User, error) {
	f.oauthTokens = append(f.oauthTokens, token)
	f.user = &models.User{ID: annID, Name: "Ann"}
	return *f.user, nil
}

func (f *fakeAuth) GoogleLoginURL() string {
	return "http://localhost:8080/oauth2/authorization/google"
}

func (f *fakeAuth) RequestPasswordReset(context.Context, string) error { return nil }

func (f *fakeAuth) ResetPassword(context.Context, string, string) error { return nil }

func (f *fakeAuth) CurrentUser() (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}

type fakeUsers struct {
	users   map[string]models.User
	updates []models.UserForm
	posts   []models.Post
	courses []models.Course
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) { return nil, nil }
func (f *fakeUsers) Get(_ context.Context, id string) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, notFound
	}
	return u, nil
}
func (f *fakeUsers) Create(context.Context, models.UserForm) (models.User, error) {
	return models.User{}, nil
}
func (f *fakeUsers) Update(_ context.Context, id string, form models.UserForm) (models.User, error) {
	f.updates = append(f.updates, form)
	u := f.users[id]
	u.Name = form.Name
	f.users[id] = u
	return u, nil
}
func (f *fakeUsers) Delete(context.Context, string) error { return nil }
func (f *fakeUsers) Courses(context.Context, string) ([]models.Course, error) {
	return f.courses, nil
}
func (f *fakeUsers) Posts(context.Context, string) ([]models.Post, error) {
	return f.posts, nil
}

type fakePosts struct {
	mu    sync.Mutex
	posts map[string]models.Post

	listErr error
	started chan struct{}
	block   chan struct{}

	gets, lists, likes, deletes int
	updates                     []models.PostForm
	creates                     []models.PostForm
}

func (f *fakePosts) List(context.Context, models.PageRequest) ([]models.Post, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Post
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}
func (f *fakePosts) ListByOwner(_ context.Context, owner string, _ models.PageRequest) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if p.OwnerID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakePosts) Get(_ context.Context, id string) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	p, ok := f.posts[id]
	if !ok {
		return models.Post{}, notFound
	}
	return p, nil
}
func (f *fakePosts) Create(_ context.Context, form models.PostForm) (models.Post, error) {
	f.creates = append(f.creates, form)
	p := models.Post{ID: "p-new", Title: form.Title, Description: form.Description, OwnerID: annID}
	f.posts[p.ID] = p
	return p, nil
}
func (f *fakePosts) Update(_ context.Context, id string, form models.PostForm) (models.Post, error) {
	f.updates = append(f.updates, form)
	p := f.posts[id]
	p.Title = form.Title
	f.posts[id] = p
	return p, nil
}
func (f *fakePosts) Delete(_ context.Context, id string) error {
	f.deletes++
	delete(f.posts, id)
	return nil
}
func (f *fakePosts) Like(_ context.Context, id string) (models.Post, error) {
	if f.block != nil {
		f.started <- struct{}{}
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes++
	p := f.posts[id]
	p.Likes++
	f.posts[id] = p
	return p, nil
}
func (f *fakePosts) Dislike(_ context.Context, id string) (models.Post, error) {
	p := f.posts[id]
	p.Dislikes++
	f.posts[id] = p
	return p, nil
}

type fakeComments struct {
	comments map[string]models.Comment
	created  []string
	updated  []string
	deleted  []string
	lists    int
}

func (f *fakeComments) ListByPost(_ context.Context, postID string) ([]models.Comment, error) {
	f.lists++
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeComments) Get(_ context.Context, id string) (models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return models.Comment{}, notFound
	}
	return c, nil
}
func (f *fakeComments) Replies(context.Context, string) ([]models.Comment, error) { return nil, nil }
func (f *fakeComments) Create(_ context.Context, postID, content string) (models.Comment, error) {
	f.created = append(f.created, content)
	return models.Comment{ID: "c-new", PostID: postID, Content: content}, nil
}
func (f *fakeComments) Reply(_ context.Context, id, content string) (models.Comment, error) {
	f.created = append(f.created, content)
	return models.Comment{ID: "c-reply", PostID: f.comments[id].PostID, Content: content, Reply: true}, nil
}
func (f *fakeComments) Update(_ context.Context, id, content string) (models.Comment, error) {
	f.updated = append(f.updated, id)
	c := f.comments[id]
	c.Content = content
	f.comments[id] = c
	return c, nil
}
func (f *fakeComments) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.comments, id)
	return nil
}
func (f *fakeComments) Like(_ context.Context, id string) (models.Comment, error) {
	c := f.comments[id]
	c.Likes++
	f.comments[id] = c
	return c, nil
}
func (f *fakeComments) Dislike(_ context.Context, id string) (models.Comment, error) {
	c := f.comments[id]
	c.Dislikes++
	f.comments[id] = c
	return c, nil
}

type fakeCourses struct {
	courses map[string]models.Course
	created []models.Course
	updates []models.Course
	deletes int
}

func (f *fakeCourses) List(context.Context, models.PageRequest) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		out = append(out, c)
	}
	return out, nil
}
func (f *fakeCourses) ListByOwner(_ context.Context, owner string, _ models.PageRequest) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if c.OwnerID == owner {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCourses) Get(_ context.Context, id string) (models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return models.Course{}, notFound
	}
	return c, nil
}
func (f *fakeCourses) Create(_ context.Context, c models.Course) (models.Course, error) {
	if err := c.Validate(); err != nil {
		return models.Course{}, err
	}
	c.ID = "c-new"
	c.OwnerID = annID
	f.created = append(f.created, c)
	f.courses[c.ID] = c
	return c, nil
}
func (f *fakeCourses) Update(_ context.Context, id string, c models.Course) (models.Course, error) {
	f.updates = append(f.updates, c)
	f.courses[id] = c
	return c, nil
}
func (f *fakeCourses) Delete(_ context.Context, id string) error {
	f.deletes++
	delete(f.courses, id)
	return nil
}

type fakeEnrollments struct {
	mine    []models.Enrollment
	toggled models.Enrollment
	enrolls []string
}

func (f *fakeEnrollments) Enroll(_ context.Context, courseID string) (models.Enrollment, error) {
	f.enrolls = append(f.enrolls, courseID)
	e := models.Enrollment{UserID: annID, CourseID: courseID}
	f.mine = append(f.mine, e)
	return e, nil
}
func (f *fakeEnrollments) Mine(context.Context) ([]models.Enrollment, error) { return f.mine, nil }
func (f *fakeEnrollments) IsEnrolled(_ context.Context, courseID string) (bool, error) {
	for _, e := range f.mine {
		if e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeEnrollments) ToggleLesson(context.Context, string, string) (models.Enrollment, error) {
	return f.toggled, nil
}
func (f *fakeEnrollments) Unenroll(_ context.Context, courseID string) error {
	var keep []models.Enrollment
	for _, e := range f.mine {
		if e.CourseID != courseID {
			keep = append(keep, e)
		}
	}
	f.mine = keep
	return nil
}

type fakeRanker struct {
	prompts []string
	results []search.Result
}

func (f *fakeRanker) Rank(_ context.Context, prompt string, _ []models.Course) ([]search.Result, error) {
	f.prompts = append(f.prompts, prompt)
	return f.results, nil
}

type testApp struct {
	*App
	out         *bytes.Buffer
	auth        *fakeAuth
	users       *fakeUsers
	posts       *fakePosts
	comments    *fakeComments
	courses     *fakeCourses
	enrollments *fakeEnrollments
}

// newTestApp builds an App over fakes. input feeds the interactive prompts.
func newTestApp(user *models.User, input ...string) *testApp {
	t := &testApp{
		out:         &bytes.Buffer{},
		auth:        &fakeAuth{user: user},
		users:       &fakeUsers{users: map[string]models.User{}},
		posts:       &fakePosts{posts: map[string]models.Post{}},
		comments:    &fakeComments{comments: map[string]models.Comment{}},
		courses:     &fakeCourses{courses: map[string]models.Course{}},
		enrollments: &fakeEnrollments{},
	}
	t.App = NewApp(Deps{
		Auth:        t.auth,
		Users:       t.users,
		Posts:       t.posts,
		Comments:    t.comments,
		Courses:     t.courses,
		Enrollments: t.enrollments,
		In:          strings.NewReader(strings.Join(input, "\n") + "\n"),
		Out:         t.out,
	})
	t.auth.nav = t.App
	return t
}

func ann() *models.User {
	return &models.User{ID: annID, Name: "Ann", Email: "ann@example.com"}
}

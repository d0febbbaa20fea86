// Package httpapi exposes the SkillShare REST API over chi.
//
// Routes live under /api. Reads are public; every mutation needs a bearer
// token. Errors are JSON objects with a "message" field.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server/comments"
	"github.com/dmitrijs2005/skillshare/internal/server/courses"
	"github.com/dmitrijs2005/skillshare/internal/server/enrollments"
	"github.com/dmitrijs2005/skillshare/internal/server/posts"
	"github.com/dmitrijs2005/skillshare/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Services bundles the domain services the handlers call.
type Services struct {
	Users       *users.Service
	Posts       *posts.Service
	Comments    *comments.Service
	Courses     *courses.Service
	Enrollments *enrollments.Service
}

type Server struct {
	address         string
	svc             Services
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewServer(address string, l logging.Logger, svc Services, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		svc:             svc,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/oauth2/authorization/{provider}", s.oauthUnavailable)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/health", s.health)

		r.Post("/auth/login", s.login)
		r.Post("/auth/password-reset-request", s.requestPasswordReset)
		r.Post("/auth/reset-password", s.resetPassword)

		r.Get("/users", s.listUsers)
		r.Get("/users/{id}", s.getUser)
		r.Post("/users", s.registerUser)

		r.Get("/posts", s.listPosts)
		r.Get("/posts/{id}", s.getPost)

		r.Get("/courses", s.listCourses)
		r.Get("/courses/{id}", s.getCourse)

		r.Get("/comments/post/{postID}", s.listPostComments)
		r.Get("/comments/{id}", s.getComment)
		r.Get("/comments/{id}/replies", s.listReplies)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Put("/users/{id}", s.updateUser)
			r.Delete("/users/{id}", s.deleteUser)

			r.Post("/posts", s.createPost)
			r.Put("/posts/{id}", s.updatePost)
			r.Delete("/posts/{id}", s.deletePost)
			r.Put("/posts/{id}/like", s.reactPost)
			r.Put("/posts/{id}/dislike", s.reactPost)

			r.Post("/courses", s.createCourse)
			r.Put("/courses/{id}", s.updateCourse)
			r.Delete("/courses/{id}", s.deleteCourse)

			r.Post("/comments", s.createComment)
			r.Post("/comments/{id}/reply", s.replyComment)
			r.Put("/comments/{id}", s.updateComment)
			r.Delete("/comments/{id}", s.deleteComment)
			r.Put("/comments/{id}/like", s.reactComment)
			r.Put("/comments/{id}/dislike", s.reactComment)

			r.Get("/enrollments/user", s.myEnrollments)
			r.Post("/enrollments/{courseID}", s.enroll)
			r.Delete("/enrollments/{courseID}", s.unenroll)
			r.Get("/enrollments/{courseID}/status", s.enrollmentStatus)
			r.Post("/enrollments/{courseID}/lessons/{lessonID}/toggle", s.toggleLesson)
		})
	})

	return r
}

// Run serves until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

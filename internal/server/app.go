// Package server assembles the SkillShare reference backend: repositories
// (in memory or PostgreSQL), the image store, domain services and the chi
// HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server/comments"
	"github.com/dmitrijs2005/skillshare/internal/server/config"
	"github.com/dmitrijs2005/skillshare/internal/server/courses"
	"github.com/dmitrijs2005/skillshare/internal/server/enrollments"
	"github.com/dmitrijs2005/skillshare/internal/server/httpapi"
	"github.com/dmitrijs2005/skillshare/internal/server/images"
	"github.com/dmitrijs2005/skillshare/internal/server/pgstore"
	"github.com/dmitrijs2005/skillshare/internal/server/posts"
	"github.com/dmitrijs2005/skillshare/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

type repositories struct {
	users       users.Repository
	posts       posts.Repository
	comments    comments.Repository
	courses     courses.Repository
	enrollments enrollments.Repository
}

func memoryRepositories() repositories {
	return repositories{
		users:       users.NewMemoryRepository(),
		posts:       posts.NewMemoryRepository(),
		comments:    comments.NewMemoryRepository(),
		courses:     courses.NewMemoryRepository(),
		enrollments: enrollments.NewMemoryRepository(),
	}
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		users:       users.NewPostgresRepository(db),
		posts:       posts.NewPostgresRepository(db),
		comments:    comments.NewPostgresRepository(db),
		courses:     courses.NewPostgresRepository(db),
		enrollments: enrollments.NewPostgresRepository(db),
	}
}

// NewApp wires the backend. With a DatabaseDSN the data lives in PostgreSQL
// (migrated on start), otherwise in memory. With an S3Bucket uploaded images
// go to object storage, otherwise they stay inline.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	repos := memoryRepositories()
	if c.DatabaseDSN != "" {
		db, err := pgstore.Open(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := pgstore.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		app.db = db
		repos = postgresRepositories(db)
		logger.Info(ctx, "using postgres storage")
	}

	var store images.Store = images.Inline{}
	if c.S3Bucket != "" {
		s3, err := images.NewS3(ctx, images.S3Config{
			Endpoint:  c.S3BaseEndpoint,
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3RootUser,
			SecretKey: c.S3RootPassword,
		})
		if err != nil {
			app.close()
			return nil, fmt.Errorf("image store: %w", err)
		}
		store = s3
		logger.Info(ctx, "storing images in s3", "bucket", c.S3Bucket)
	}

	us := users.NewService(repos.users, c, logger).WithImages(store)
	ps := posts.NewService(repos.posts, logger).WithImages(store)
	cs := courses.NewService(repos.courses, logger)

	svc := httpapi.Services{
		Users:       us,
		Posts:       ps,
		Comments:    comments.NewService(repos.comments, ps, us, logger),
		Courses:     cs,
		Enrollments: enrollments.NewService(repos.enrollments, cs, logger),
	}
	app.server = httpapi.NewServer(c.Addr, logger, svc, c.ShutdownTimeout)
	return app, nil
}

// Run serves until ctx is done or the process gets SIGINT or SIGTERM.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer app.close()

	app.logger.Info(ctx, "Starting app...")
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}
	app.logger.Info(ctx, "app stopped")
	return nil
}

func (app *App) close() {
	if app.db != nil {
		_ = app.db.Close()
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/skillshare/internal/buildinfo"
	"github.com/dmitrijs2005/skillshare/internal/client/cli"
	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/config"
	"github.com/dmitrijs2005/skillshare/internal/client/search"
	"github.com/dmitrijs2005/skillshare/internal/client/services"
	"github.com/dmitrijs2005/skillshare/internal/client/session"
	"github.com/dmitrijs2005/skillshare/internal/filex"
	"github.com/dmitrijs2005/skillshare/internal/logging"
)

// navigatorProxy lets the HTTP client and the auth service point at the App
// before the App itself exists.
type navigatorProxy struct {
	target client.Navigator
}

func (n *navigatorProxy) RedirectToLogin(ctx context.Context) {
	if n.target != nil {
		n.target.RedirectToLogin(ctx)
	}
}

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := filex.EnsureParentDir(cfg.LogFile); err != nil {
		log.Fatalf("log file: %v", err)
	}
	logger, logCloser := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	defer logCloser.Close()

	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		log.Fatalf("database: %v", err)
	}
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	store := session.NewStore(db, logger)
	nav := &navigatorProxy{}

	api, err := client.New(client.Options{
		BaseURL:        cfg.ServerURL,
		Timeout:        cfg.RequestTimeout,
		RetryAttempts:  cfg.RetryAttempts,
		RetryBaseDelay: cfg.RetryBaseDelay,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		Session:        store,
		Navigator:      nav,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	auth := services.NewAuthService(api, store, nav, api.Origin()+"/oauth2/authorization/google")

	deps := cli.Deps{
		Auth:        auth,
		Users:       services.NewUserService(api, store, auth),
		Posts:       services.NewPostService(api, store),
		Comments:    services.NewCommentService(api),
		Courses:     services.NewCourseService(api, store),
		Enrollments: services.NewEnrollmentService(api),
		Logger:      logger,
	}
	if cfg.CohereAPIKey != "" {
		deps.Ranker = search.NewRanker(search.NewCohereEmbedder(cfg.CohereAPIKey, cfg.CohereURL, cfg.RequestTimeout))
	}

	app := cli.NewApp(deps)
	nav.target = app

	logger.Info(ctx, "client started", "server", api.BaseURL())
	app.Run(ctx)
}

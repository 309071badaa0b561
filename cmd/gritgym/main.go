package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuelReschke/GritGym/app/repository"
	"github.com/ManuelReschke/GritGym/internal/pkg/archive"
	"github.com/ManuelReschke/GritGym/internal/pkg/cache"
	"github.com/ManuelReschke/GritGym/internal/pkg/database"
	"github.com/ManuelReschke/GritGym/internal/pkg/dynamostore"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
	"github.com/ManuelReschke/GritGym/internal/pkg/jobqueue"
	"github.com/ManuelReschke/GritGym/internal/pkg/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApplication()
	addr := net.JoinHostPort(env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		jobqueue.GetManager().Stop()
		log.Fatalf("listen on %s: %v", addr, err)
	}

	if err := serve(ctx, app, ln, jobqueue.GetManager().Stop); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

// serve runs app on ln until it fails or ctx is done, then calls cleanup.
func serve(ctx context.Context, app *fiber.App, ln net.Listener, cleanup func()) error {
	defer cleanup()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listener(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	fiberlog.Info("Shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	var opts []repository.Option
	if env.GetEnv("STORE_DRIVER", "mysql") == "dynamodb" {
		cfg, err := dynamostore.LoadConfig()
		if err != nil {
			log.Fatalf("Invalid DynamoDB configuration: %v", err)
		}
		store, err := dynamostore.NewFromConfig(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Could not set up DynamoDB store: %v", err)
		}
		opts = append(opts, repository.WithPaymentStore(store))
	}
	repos := repository.InitializeFactory(database.GetDB(), opts...)

	// decision archive is optional
	manager := jobqueue.GetManager()
	if cfg, err := archive.LoadConfig(); err != nil {
		fiberlog.Warnf("[Archive] Disabled: %v", err)
	} else if cfg.IsEnabled() {
		client, err := archive.NewClient(cfg)
		if err != nil {
			fiberlog.Warnf("[Archive] Disabled: %v", err)
		} else {
			manager.SetArchiver(client)
		}
	}
	manager.Start()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/gritgym to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		Views:       html.New(basePath+"views", ".html"),
		BodyLimit:   1 * 1024 * 1024,
		ProxyHeader: env.GetEnv("PROXY_HEADER", ""),
	})

	// ignore and cache favicon
	app.Use(favicon.New(favicon.Config{
		File:         basePath + "public/assets/icons/favicon.ico",
		URL:          "/favicon.ico",
		CacheControl: "public, max-age=604800",
	}))

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber monitor and prometheus metrics
	metricsAuth := basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "change-me"),
		},
	})
	app.Get("/monitor", metricsAuth, monitor.New())
	app.Get("/metrics", metricsAuth, adaptor.HTTPHandler(promhttp.Handler()))

	// static files
	app.Static("/", basePath+"public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	notifier := jobqueue.NewApplicationNotifier(manager.GetQueue())
	router.InstallRouter(app, router.NewServices(repos.Payment, repos.User, notifier))

	return app
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fooddelivery/api"
	"fooddelivery/cmd"
	httpapi "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres/migrations"
	"fooddelivery/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	app := &cli.App{
		Name:  "orders",
		Usage: "food delivery order service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "optional dotenv file read before the environment",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and background jobs",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back the database schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateUp},
					{Name: "down", Usage: "roll back all migrations", Action: migrateDown},
					{Name: "version", Usage: "print the current schema version", Action: migrateVersion},
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	configs, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, configs.LogLevel)
	if err != nil {
		return err
	}

	gormDB, err := openDatabase(configs, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(gormDB, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	e, err := httpapi.NewRouter(app.CreateHTTPServer(), api.OpenAPI, app.HealthCheck, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server listening", "port", configs.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func migrateUp(c *cli.Context) error {
	return withMigrator(c, func(m *migrations.Migrator) error {
		return m.Up()
	})
}

func migrateDown(c *cli.Context) error {
	return withMigrator(c, func(m *migrations.Migrator) error {
		return m.Down()
	})
}

func migrateVersion(c *cli.Context) error {
	return withMigrator(c, func(m *migrations.Migrator) error {
		version, dirty, ok, err := m.Version()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.App.Writer, "no migrations applied")
			return nil
		}
		fmt.Fprintf(c.App.Writer, "version %d (dirty: %t)\n", version, dirty)
		return nil
	})
}

func withMigrator(c *cli.Context, run func(m *migrations.Migrator) error) error {
	configs, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}

	m, err := migrations.New(configs.DSN())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			log.Errorf("close migrator: %v", closeErr)
		}
	}()

	return run(m)
}

func openDatabase(configs cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.NewSlogLogger(logger.With("component", "gorm"), gormlogger.Config{
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(configs.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(configs.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(configs.DBConnMaxLifetime)

	return gormDB, nil
}

func closeDatabase(gormDB *gorm.DB, logger *slog.Logger) {
	sqlDB, err := gormDB.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		logger.Error("Failed to close database connection", "error", err)
	}
}

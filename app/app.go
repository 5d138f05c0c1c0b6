package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"

	"github.com/skyrden-airlines/portal/app/eventbus"
	"github.com/skyrden-airlines/portal/app/modules/auth"
	"github.com/skyrden-airlines/portal/app/modules/form"
	"github.com/skyrden-airlines/portal/app/modules/notification"
	notificationdomain "github.com/skyrden-airlines/portal/app/modules/notification/domain"
	notificationdiscord "github.com/skyrden-airlines/portal/app/modules/notification/infrastructure/discord"
	"github.com/skyrden-airlines/portal/app/modules/submission"
	submissionservice "github.com/skyrden-airlines/portal/app/modules/submission/application"
	submissiondb "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/modules/user"
	"github.com/skyrden-airlines/portal/app/shared/observability"
	"github.com/skyrden-airlines/portal/config"
	"github.com/skyrden-airlines/portal/db/bundb"
)

// App holds the wired modules and their shared resources.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bun.DB
	EventBus eventbus.EventBus
	Registry *prometheus.Registry

	UserModule         *user.Module
	AuthModule         *auth.Module
	FormModule         *form.Module
	SubmissionModule   *submission.Module
	NotificationModule *notification.Module
}

// Options overrides collaborators, mostly for tests.
type Options struct {
	// DB is used instead of opening cfg.Database.
	DB *bun.DB

	// DiscordFactory replaces the discordgo sender.
	DiscordFactory notificationdiscord.Factory
}

// New opens the database, runs migrations when configured and wires every
// module in dependency order.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	db := opts.DB
	if db == nil {
		var err error
		db, err = bundb.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
	}
	app.DB = db

	if cfg.Database.AutoMigrate {
		if err := bundb.MigrateAll(ctx, db, logger, MigrationSets()...); err != nil {
			app.Close()
			return nil, err
		}
	}

	if err := app.initModules(ctx, opts); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) initModules(ctx context.Context, opts Options) error {
	cfg, logger := app.Config, app.Logger

	var metrics observability.Metrics = observability.NoopMetrics{}
	if cfg.Observability.MetricsEnabled {
		app.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = observability.NewPrometheusMetrics(app.Registry)
	}
	tel := observability.Telemetry{
		Tracer:  observability.Tracer("github.com/skyrden-airlines/portal"),
		Metrics: metrics,
	}

	app.EventBus = eventbus.New(logger)

	userModule, err := user.NewModule(ctx, cfg, app.DB, logger, tel)
	if err != nil {
		return fmt.Errorf("failed to initialize user module: %w", err)
	}
	app.UserModule = userModule

	app.AuthModule = auth.NewModule(ctx, cfg, userModule.Service, userModule.Repository, logger, tel)

	responses := submissiondb.NewRepository(app.DB)
	app.FormModule = form.NewModule(ctx, app.DB, nil, responses, logger, tel)

	notificationModule, err := notification.NewModule(ctx, responses, notificationdomain.BotConfig{
		Enabled:        cfg.Notifications.Enabled,
		BotToken:       cfg.Notifications.BotToken,
		DefaultMessage: cfg.Notifications.DefaultMessage,
		StaffChannelID: cfg.Notifications.StaffChannelID,
	}, opts.DiscordFactory, app.EventBus, logger, tel)
	if err != nil {
		return fmt.Errorf("failed to initialize notification module: %w", err)
	}
	app.NotificationModule = notificationModule

	app.SubmissionModule = submission.NewModule(ctx, submissionservice.Deps{
		Repo:     responses,
		Forms:    app.FormModule.Repository,
		Users:    userModule.Repository,
		Notifier: notificationModule.Service,
		Bus:      app.EventBus,
		DB:       app.DB,
	}, logger, tel)

	logger.InfoContext(ctx, "All modules initialized")
	return nil
}

// Close releases the event bus and the database.
func (app *App) Close() {
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			app.Logger.Error("Failed to close event bus", slog.String("error", err.Error()))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database", slog.String("error", err.Error()))
		}
	}
}

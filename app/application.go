package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/David-Van-Dyne/pickup-scheduler/api"
	"github.com/David-Van-Dyne/pickup-scheduler/config"
	"github.com/David-Van-Dyne/pickup-scheduler/repository"
	"github.com/David-Van-Dyne/pickup-scheduler/scheduler"
	"github.com/David-Van-Dyne/pickup-scheduler/service"
	"github.com/David-Van-Dyne/pickup-scheduler/session"
)

// Application represents the main application with all its dependencies
type Application struct {
	config          *config.Config
	appointmentRepo *repository.AppointmentRepository
	accountRepo     *repository.AccountRepository
	configRepo      *repository.ConfigRepository
	sessions        *session.Registry
	server          *api.Server
	scheduler       *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeStorage(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	if cfg.Admin.IsDefaultPassword() {
		slog.Warn("ADMIN_PASSWORD is not set, running with the default password")
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeStorage() error {
	slog.Info("Initializing storage", "dataDir", app.config.Storage.DataDir)

	app.appointmentRepo = repository.NewAppointmentRepository(app.config.Storage.DataDir)
	app.accountRepo = repository.NewAccountRepository(app.config.Storage.DataDir)
	app.configRepo = repository.NewConfigRepository(app.config.Storage.DataDir)

	// Materializes config.json with defaults on first run.
	cfg, err := app.configRepo.Load()
	if err != nil {
		slog.Error("Failed to load business configuration", "error", err)
		return fmt.Errorf("load business configuration: %w", err)
	}

	slog.Info("Storage initialized successfully", "business", cfg.BusinessName)
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	app.sessions = session.NewRegistry(
		app.config.Admin.Password,
		time.Duration(app.config.Session.TTLHours)*time.Hour,
	)

	configService := service.NewConfigService(app.configRepo)
	appointmentService := service.NewAppointmentService(app.appointmentRepo, app.configRepo)
	accountService := service.NewAccountService(app.accountRepo, app.appointmentRepo)
	notificationService := service.NewNotificationService(app.accountRepo)

	server, err := api.NewServer(api.ServerOptions{
		Config:              app.config,
		Sessions:            app.sessions,
		ConfigService:       configService,
		AppointmentService:  appointmentService,
		AccountService:      accountService,
		NotificationService: notificationService,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	app.server = server
	app.scheduler = scheduler.NewScheduler(app.config, app.sessions)

	slog.Info("Services initialized successfully")
	return nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.sessions != nil {
		removed := app.sessions.Sweep()
		if removed > 0 {
			slog.Info("Dropped expired admin sessions", "removed", removed)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/audit"
	auditpg "github.com/brandingpioneers/hr-management/internal/audit/postgres"
	"github.com/brandingpioneers/hr-management/internal/auth"
	authpg "github.com/brandingpioneers/hr-management/internal/auth/postgres"
	"github.com/brandingpioneers/hr-management/internal/core/events"
	"github.com/brandingpioneers/hr-management/internal/dashboard"
	dashboardpg "github.com/brandingpioneers/hr-management/internal/dashboard/postgres"
	"github.com/brandingpioneers/hr-management/internal/employee"
	employeepg "github.com/brandingpioneers/hr-management/internal/employee/postgres"
	"github.com/brandingpioneers/hr-management/internal/insights"
	"github.com/brandingpioneers/hr-management/internal/notification"
	"github.com/brandingpioneers/hr-management/internal/report"
	"github.com/brandingpioneers/hr-management/internal/task"
	taskpg "github.com/brandingpioneers/hr-management/internal/task/postgres"
	"github.com/brandingpioneers/hr-management/internal/transport/rest"
	"github.com/brandingpioneers/hr-management/internal/user"
	userpg "github.com/brandingpioneers/hr-management/internal/user/postgres"
	"github.com/brandingpioneers/hr-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	GormDB   *gorm.DB
	SqlxDB   *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.SqlxDB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.SqlxDB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	gormDB, sqlxDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	handlers := buildHandlers(config, gormDB, sqlxDB, lg)

	return &Dependencies{
		Config:   config,
		GormDB:   gormDB,
		SqlxDB:   sqlxDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Logger:   lg,
	}, nil
}

// buildHandlers wires every repository, service and handler. The event bus
// subscriber is registered here so notification sends piggyback on the same
// process.
func buildHandlers(config *internal.Config, gormDB *gorm.DB, sqlxDB *sqlx.DB, lg *slog.Logger) rest.Handlers {
	bus := events.NewEventBus(lg)

	auditRecorder := audit.NewRecorder(auditpg.NewAuditRepository(gormDB), lg)

	tokens := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(
		authpg.NewAuthRepository(gormDB),
		tokens,
		bus,
		auditRecorder,
		auth.ServiceConfig{
			BCryptCost:           config.Security.BCryptCost,
			InvitationTTL:        config.Security.InvitationTTL,
			PasswordResetTTL:     config.Security.PasswordResetTTL,
			EmailVerificationTTL: config.Security.EmailVerificationTTL,
		},
		lg,
	)

	userService := user.NewService(userpg.NewUserRepository(gormDB), bus, auditRecorder, lg)

	taskService := task.NewService(taskpg.NewTaskRepository(gormDB), auditRecorder, lg)

	employeeService := employee.NewService(
		employeepg.NewEmployeeRepository(gormDB),
		taskService,
		bus,
		auditRecorder,
		lg,
	)
	importer := employee.NewImporter(employeeService, lg)

	dashboardService := dashboard.NewService(dashboardpg.NewDashboardRepository(sqlxDB), lg)

	reportService := report.NewService(employeeService, taskService, lg)

	var generator insights.Generator
	if config.AI.Enabled {
		generator = insights.NewGeminiClient(config.AI, lg)
	}
	insightsService := insights.NewService(employeeService, taskService, generator, lg)

	mailer := notification.NewMailer(&config.Mail, config.Server.BaseURL, lg)
	notification.NewSubscriber(mailer, lg).Register(bus)

	return rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Employee:     employee.NewHandler(employeeService, importer),
		Task:         task.NewHandler(taskService),
		Audit:        audit.NewHandler(auditRecorder),
		Dashboard:    dashboard.NewHandler(dashboardService),
		Report:       report.NewHandler(reportService),
		Insights:     insights.NewHandler(insightsService),
		Notification: notification.NewHandler(bus, employeeService),
	}
}

// initDB opens one pgx connection pool and hands it to both GORM (feature
// repositories) and sqlx (dashboard aggregates).
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: dbConn.DB}), &gorm.Config{})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm over pgx pool: %w", err)
	}

	return gormDB, dbConn, nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/brandingpioneers/hr-management/internal/audit"
	auditpg "github.com/brandingpioneers/hr-management/internal/audit/postgres"
	"github.com/brandingpioneers/hr-management/internal/task"
	taskpg "github.com/brandingpioneers/hr-management/internal/task/postgres"
	"github.com/brandingpioneers/hr-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start scheduled background jobs such as the overdue task sweeper.`,
	Run: func(cmd *cobra.Command, args []string) {
		startTaskWorker()
	},
}

var sweepSchedule string

func init() {
	workerCmd.Flags().StringVar(&sweepSchedule, "schedule", "0 * * * *", "cron schedule for the overdue task sweep")
}

// startTaskWorker runs the overdue sweep on a cron schedule until the process
// receives a termination signal.
func startTaskWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	gormDB, sqlxDB, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init db: %v\n", err)
		os.Exit(1)
	}
	defer sqlxDB.Close()

	auditRecorder := audit.NewRecorder(auditpg.NewAuditRepository(gormDB), lg)
	taskService := task.NewService(taskpg.NewTaskRepository(gormDB), auditRecorder, lg)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(sweepSchedule, func() {
		if _, err := taskService.SweepOverdue(context.Background()); err != nil {
			lg.Error("overdue sweep failed", "error", err)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid cron schedule %q: %v\n", sweepSchedule, err)
		os.Exit(1)
	}

	lg.Info("task worker started", "schedule", sweepSchedule)
	scheduler.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	lg.Info("task worker shutting down", "signal", sig)
	ctx := scheduler.Stop()
	<-ctx.Done()
}

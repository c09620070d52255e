package jobs

import (
	"database/sql"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/config"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
)

// JobRunner coordinates the reconciliation jobs. Jobs work directly on the
// database so a sweep stays a single statement where possible.
type JobRunner struct {
	db     *sql.DB
	config *config.Config
}

func NewJobRunner(db *sql.DB, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		config: cfg,
	}
}

// Config exposes the configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every reconciliation job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ExpirePendingBookings()
	jr.FlagStalePayments()
}

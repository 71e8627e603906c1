package cmdlog

import (
	"time"

	"go.uber.org/zap"

	"altlens/internal/logging"
	"altlens/internal/metrics"
)

// Run executes a CLI command body, counting it and logging the outcome.
func Run(cmd string, f func() error) error {
	metrics.IncCommandRun(cmd)
	start := time.Now()
	err := f()
	if err != nil {
		metrics.IncCommandError(cmd)
		logging.Error(cmd+"_error", zap.Error(err), zap.Duration("took", time.Since(start)))
	} else {
		logging.Debug(cmd+"_ok", zap.Duration("took", time.Since(start)))
	}
	return err
}

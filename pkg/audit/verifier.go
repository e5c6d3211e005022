package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Verifier re-runs chain verification on a cron schedule so silent
// storage tampering is noticed without waiting for an operator to run
// the verify command by hand.
type Verifier struct {
	chain    *Chain
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron

	// OnReport, when set, receives every verification outcome. The
	// server uses it to feed metrics.
	OnReport func(*IntegrityReport)
}

// NewVerifier creates a scheduled verifier. schedule is a standard cron
// expression; an empty schedule disables the verifier and Start becomes
// a no-op.
func NewVerifier(chain *Chain, schedule string) *Verifier {
	return &Verifier{
		chain:    chain,
		schedule: schedule,
		logger:   slog.Default().With("component", "audit.verifier"),
	}
}

// Start begins scheduled verification in the background.
func (v *Verifier) Start() error {
	if v.schedule == "" {
		v.logger.Info("scheduled audit verification disabled")
		return nil
	}

	v.cron = cron.New()
	if _, err := v.cron.AddFunc(v.schedule, v.runOnce); err != nil {
		return fmt.Errorf("invalid verification schedule %q: %w", v.schedule, err)
	}
	v.cron.Start()

	v.logger.Info("scheduled audit verification started", "schedule", v.schedule)
	return nil
}

// Stop halts scheduling and waits for a running verification to finish.
func (v *Verifier) Stop() {
	if v.cron == nil {
		return
	}
	<-v.cron.Stop().Done()
	v.logger.Info("scheduled audit verification stopped")
}

func (v *Verifier) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report, err := v.chain.VerifyIntegrity(ctx)
	if err != nil {
		v.logger.Error("scheduled audit verification failed", "error", err)
		return
	}

	if report.Valid {
		v.logger.Info("audit chain verified", "records", report.Records)
	}
	if v.OnReport != nil {
		v.OnReport(report)
	}
}

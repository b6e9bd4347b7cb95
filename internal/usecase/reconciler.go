package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type StaleInterviewExpirer interface {
	ExpireStalePending(ctx context.Context) (int, error)
}

// Reconciler periodically fails interviews stuck before confirmation so their
// slots are released.
type Reconciler struct {
	expirer StaleInterviewExpirer
	cron    *cron.Cron
	timeout time.Duration
	logger  *slog.Logger
}

func NewReconciler(expirer StaleInterviewExpirer, schedule string, timeout time.Duration, logger *slog.Logger) (*Reconciler, error) {
	if schedule == "" {
		return nil, errors.New("reconcile schedule must not be empty")
	}

	r := &Reconciler{
		expirer: expirer,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		timeout: timeout,
		logger:  logger,
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reconciler) Start() {
	r.cron.Start()
	r.logger.Info("interview reconciler started")
}

// Stop prevents new runs and waits for a running one to finish or ctx to end.
func (r *Reconciler) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce performs a single reconciliation pass.
func (r *Reconciler) RunOnce(ctx context.Context) (int, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	expired, err := r.expirer.ExpireStalePending(ctx)
	if err != nil {
		r.logger.Error("failed to expire stale interviews", "expired", expired, "error", err)
		return expired, err
	}
	if expired > 0 {
		r.logger.Info("expired stale interviews", "expired", expired)
	}
	return expired, nil
}

func (r *Reconciler) run() {
	_, _ = r.RunOnce(context.Background())
}

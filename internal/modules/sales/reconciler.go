package sales

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mbewe/duka-backend/internal/modules/inventory"
)

// Reconciler sweeps the stock-sync outbox and retries decrements that failed
// after their sale was committed. It repairs stock only; a committed sale is
// final and is never touched.
type Reconciler struct {
	repo      Repository
	stock     inventory.Repository
	log       *zap.Logger
	batchSize int
	cron      *cron.Cron
}

// NewReconciler creates a reconciler retrying at most batchSize failures per
// sweep.
func NewReconciler(repo Repository, stock inventory.Repository, log *zap.Logger, batchSize int) *Reconciler {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Reconciler{repo: repo, stock: stock, log: log, batchSize: batchSize}
}

// Start schedules the sweep on the given cron expression and runs until Stop.
func (r *Reconciler) Start(schedule string) error {
	r.cron = cron.New()
	_, err := r.cron.AddFunc(schedule, func() {
		r.Sweep(context.Background())
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the scheduled sweeps, waiting for a running sweep to finish.
func (r *Reconciler) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

// Sweep retries one batch of pending failures. Outcomes per row:
//   - decrement succeeds: resolved;
//   - product no longer exists: resolved, the shortfall can never be applied;
//   - still insufficient stock: left pending for a later sweep, since an
//     intake may land in the meantime.
func (r *Reconciler) Sweep(ctx context.Context) {
	pending, err := r.repo.PendingSyncFailures(ctx, r.batchSize)
	if err != nil {
		r.log.Error("reconciler could not load pending failures", zap.Error(err))
		return
	}
	if len(pending) == 0 {
		return
	}
	r.log.Info("reconciling stock sync failures", zap.Int("pending", len(pending)))

	for _, f := range pending {
		err := r.stock.Decrement(ctx, f.ProductID, f.Quantity)
		switch {
		case err == nil:
			if err := r.repo.ResolveSyncFailure(ctx, f.ID); err != nil {
				r.log.Error("could not mark sync failure resolved",
					zap.String("failure_id", f.ID.String()), zap.Error(err))
			}
		case errors.Is(err, inventory.ErrProductNotFound):
			r.log.Warn("product gone, abandoning stock sync",
				zap.String("sale_id", f.SaleID.String()),
				zap.String("product_id", f.ProductID.String()))
			if err := r.repo.ResolveSyncFailure(ctx, f.ID); err != nil {
				r.log.Error("could not mark sync failure resolved",
					zap.String("failure_id", f.ID.String()), zap.Error(err))
			}
		default:
			r.log.Warn("stock sync retry failed, will retry next sweep",
				zap.String("sale_id", f.SaleID.String()),
				zap.String("product_id", f.ProductID.String()),
				zap.Error(err))
		}
	}
}

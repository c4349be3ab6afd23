package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joebaillie21/daycipe.io/internal/middleware"
	"github.com/joebaillie21/daycipe.io/internal/model"
	"github.com/joebaillie21/daycipe.io/internal/policy"
)

// ReconcileWorker periodically re-derives is_shown from score for every
// item. Vote mutations keep the pair consistent transactionally; this
// worker repairs drift after the threshold table is retuned between
// deploys.
type ReconcileWorker struct {
	pool     *pgxpool.Pool
	policy   *policy.Policy
	cache    *CacheService
	interval time.Duration
}

func NewReconcileWorker(pool *pgxpool.Pool, pol *policy.Policy, cache *CacheService, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{pool: pool, policy: pol, cache: cache, interval: interval}
}

// reconcileTables mirrors the repository's kind-to-table map; the worker
// writes raw SQL against the same fixed set.
var reconcileTables = map[model.Kind]string{
	model.KindFact:   "facts",
	model.KindJoke:   "jokes",
	model.KindRecipe: "recipes",
}

// Start runs one reconcile pass immediately, then on every tick until
// the context is cancelled.
func (w *ReconcileWorker) Start(ctx context.Context) {
	middleware.Logger.Info().
		Dur("interval", w.interval).
		Msg("reconcile worker starting")

	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			middleware.Logger.Info().Msg("reconcile worker stopping")
			return
		}
	}
}

// run reconciles every kind, logging and continuing past per-kind errors.
func (w *ReconcileWorker) run(ctx context.Context) {
	var repaired int64
	for _, kind := range model.Kinds {
		n, err := w.reconcileKind(ctx, kind)
		if err != nil {
			middleware.Logger.Error().
				Str("kind", string(kind)).
				Err(err).
				Msg("reconcile pass failed")
			continue
		}
		if n > 0 && w.cache != nil {
			if err := w.cache.InvalidateKind(ctx, kind); err != nil {
				middleware.Logger.Warn().
					Str("kind", string(kind)).
					Err(err).
					Msg("reconcile cache invalidation failed")
			}
		}
		repaired += n
	}
	if repaired > 0 {
		middleware.Logger.Info().
			Int64("repaired", repaired).
			Msg("reconcile pass complete")
	}
}

// reconcileKind rewrites is_shown for rows where it no longer matches
// the policy, returning the number of repaired rows.
func (w *ReconcileWorker) reconcileKind(ctx context.Context, kind model.Kind) (int64, error) {
	threshold, err := w.policy.Threshold(kind)
	if err != nil {
		return 0, err
	}

	tag, err := w.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET is_shown = (score >= $1)
		WHERE is_shown <> (score >= $1)`, reconcileTables[kind]),
		threshold)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

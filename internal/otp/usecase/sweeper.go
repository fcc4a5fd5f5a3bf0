package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// pg "undefined_table": raised before the migration has run, not fatal.
const pgUndefinedTable = "42P01"

// Sweep removes expired codes and used codes older than the retention window.
// It is best effort: validation never depends on it because expiry is checked
// on read.
func (s *Usecase) Sweep(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "Sweep")
	defer span.End()

	removed, err := s.repoDB.SweepExpired(ctx, s.clock.Now(), s.usedRetention())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
			slog.WarnContext(ctx, "verification table missing, skipping sweep")
			return 0, nil
		}
		return 0, err
	}

	if removed > 0 {
		slog.InfoContext(ctx, "verification sweep completed", "removed", removed)
	}

	return removed, nil
}

// RunSweeper sweeps on a fixed interval until the context is canceled. A
// failed pass is logged and the loop keeps going.
func (s *Usecase) RunSweeper(ctx context.Context) error {
	interval := s.sweepInterval()
	slog.InfoContext(ctx, "verification sweeper started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "verification sweeper stopped")
			return nil
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				slog.ErrorContext(ctx, "verification sweep failed", "error", err)
			}
		}
	}
}

func (s *Usecase) sweepInterval() time.Duration {
	if d := s.cfg.GetMinute("modules.otp.sweep_interval_minutes"); d > 0 {
		return d
	}
	return 5 * time.Minute
}

func (s *Usecase) usedRetention() time.Duration {
	if d := s.cfg.GetDay("modules.otp.used_retention_days"); d > 0 {
		return d
	}
	return 7 * 24 * time.Hour
}

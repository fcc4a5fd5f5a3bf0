package db

import (
	"context"
	"time"
)

const querySweepExpired = `
DELETE FROM verifications
WHERE (NOT used AND expires_at <= $1)
   OR (used AND created_at < $2)`

func (s *DB) SweepExpired(ctx context.Context, now time.Time, usedRetention time.Duration) (removed int64, err error) {
	ctx, span := s.startSpan(ctx, "SweepExpired")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, querySweepExpired, now, now.Add(-usedRetention))
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}
	return tag.RowsAffected(), nil
}

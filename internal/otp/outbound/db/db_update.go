package db

import (
	"context"
	"time"
)

const queryRecordAttempt = `
UPDATE verifications
SET attempts = attempts + 1,
	used = used OR $2,
	used_at = CASE WHEN $2 AND used_at IS NULL THEN $3 ELSE used_at END
WHERE id = $1`

func (s *DB) RecordAttempt(ctx context.Context, id int64, markUsed bool, usedAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "RecordAttempt")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryRecordAttempt, id, markUsed, usedAt)
	err = s.mapError(err)
	return err
}

const queryMarkUsed = `
UPDATE verifications
SET used = TRUE, used_at = $2
WHERE id = $1`

func (s *DB) MarkUsed(ctx context.Context, id int64, usedAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "MarkUsed")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryMarkUsed, id, usedAt)
	err = s.mapError(err)
	return err
}

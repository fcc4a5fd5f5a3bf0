package db

import (
	"context"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
)

const queryGetActive = `
SELECT id, email, code, purpose, attempts, max_attempts, used, used_at, expires_at, created_at
FROM verifications
WHERE email = $1 AND purpose = $2 AND NOT used AND expires_at > $3
ORDER BY created_at DESC
LIMIT 1`

func (s *DB) GetActive(ctx context.Context, email string, purpose entity.Purpose, now time.Time) (v *entity.Verification, err error) {
	ctx, span := s.startSpan(ctx, "GetActive")
	defer func() { s.endSpan(span, err) }()

	v, err = s.scanVerification(s.conn.QueryRow(ctx, queryGetActive, email, purpose, now))
	if err != nil {
		return nil, s.mapError(err)
	}
	return v, nil
}

const queryGetLatest = `
SELECT id, email, code, purpose, attempts, max_attempts, used, used_at, expires_at, created_at
FROM verifications
WHERE email = $1 AND purpose = $2
ORDER BY created_at DESC
LIMIT 1`

func (s *DB) GetLatest(ctx context.Context, email string, purpose entity.Purpose) (v *entity.Verification, err error) {
	ctx, span := s.startSpan(ctx, "GetLatest")
	defer func() { s.endSpan(span, err) }()

	v, err = s.scanVerification(s.conn.QueryRow(ctx, queryGetLatest, email, purpose))
	if err != nil {
		return nil, s.mapError(err)
	}
	return v, nil
}

const queryStats = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE NOT used AND expires_at > $1),
	COUNT(*) FILTER (WHERE used),
	COUNT(*) FILTER (WHERE NOT used AND expires_at <= $1),
	COUNT(*) FILTER (WHERE created_at >= date_trunc('day', $1::timestamptz))
FROM verifications`

func (s *DB) Stats(ctx context.Context, now time.Time) (stats *entity.IssueStats, err error) {
	ctx, span := s.startSpan(ctx, "Stats")
	defer func() { s.endSpan(span, err) }()

	var out entity.IssueStats
	err = s.conn.QueryRow(ctx, queryStats, now).Scan(
		&out.TotalIssued,
		&out.TotalActive,
		&out.TotalUsed,
		&out.TotalExpired,
		&out.IssuedToday,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &out, nil
}

package db

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
)

const queryInvalidatePrevious = `
UPDATE verifications
SET used = TRUE, used_at = $3
WHERE email = $1 AND purpose = $2 AND NOT used AND expires_at > $3`

const queryCreateVerification = `
INSERT INTO verifications (id, email, code, purpose, attempts, max_attempts, used, expires_at, created_at)
VALUES ($1, $2, $3, $4, 0, $5, FALSE, $6, $7)`

// CreateInvalidatingPrevious retires every still-valid code for the pair and
// stores the new one in a single transaction, keeping the one-valid-code rule
// intact under concurrent issue requests. Rows already past expiry are left
// untouched so they keep reading as expired, not consumed.
func (s *DB) CreateInvalidatingPrevious(ctx context.Context, v entity.Verification) (err error) {
	ctx, span := s.startSpan(ctx, "CreateInvalidatingPrevious")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return s.mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, queryInvalidatePrevious, v.Email, v.Purpose, v.CreatedAt); err != nil {
		return s.mapError(err)
	}

	_, err = tx.Exec(ctx, queryCreateVerification,
		v.ID, v.Email, v.Code, v.Purpose, v.MaxAttempts, v.ExpiresAt, v.CreatedAt)
	if err != nil {
		return s.mapError(err)
	}

	err = s.mapError(tx.Commit(ctx))
	return err
}

package db

import (
	"context"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
)

const queryActivateUser = `
UPDATE users
SET status = $2, updated_at = now()
WHERE id = $1`

func (s *DB) ActivateUser(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "ActivateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryActivateUser, id, entity.StatusActive)
	err = s.mapError(err)
	return err
}

const queryUpdatePassword = `
UPDATE users
SET password = $2, updated_at = now()
WHERE id = $1`

func (s *DB) UpdatePassword(ctx context.Context, id int64, password string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePassword")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryUpdatePassword, id, password)
	err = s.mapError(err)
	return err
}

const queryUpdateProfile = `
UPDATE users
SET full_name = $2, updated_at = now()
WHERE id = $1`

func (s *DB) UpdateProfile(ctx context.Context, id int64, fullName string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryUpdateProfile, id, fullName)
	err = s.mapError(err)
	return err
}

const queryRecordFailedLogin = `
UPDATE users
SET failed_attempts = failed_attempts + 1, locked_until = COALESCE($2, locked_until), updated_at = now()
WHERE id = $1`

func (s *DB) RecordFailedLogin(ctx context.Context, id int64, lockUntil *time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "RecordFailedLogin")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryRecordFailedLogin, id, lockUntil)
	err = s.mapError(err)
	return err
}

const queryResetLoginFailures = `
UPDATE users
SET failed_attempts = 0, locked_until = NULL, updated_at = now()
WHERE id = $1`

func (s *DB) ResetLoginFailures(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "ResetLoginFailures")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryResetLoginFailures, id)
	err = s.mapError(err)
	return err
}

const queryDeactivateUser = `
UPDATE users
SET status = $2, updated_at = now()
WHERE id = $1`

func (s *DB) DeactivateUser(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeactivateUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, queryDeactivateUser, id, entity.StatusDeactivated)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}
	return nil
}

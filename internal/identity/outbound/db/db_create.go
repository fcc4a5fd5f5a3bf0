package db

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
)

const queryCreateUser = `
INSERT INTO users (id, email, full_name, password, voter_id, role, status, failed_attempts, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)`

func (s *DB) CreateUser(ctx context.Context, u entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateUser,
		u.ID, u.Email, u.FullName, u.Password, u.VoterID, u.Role, u.Status, u.CreatedAt, u.UpdatedAt)
	err = s.mapError(err)
	return err
}

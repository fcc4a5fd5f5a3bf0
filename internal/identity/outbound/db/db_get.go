package db

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
)

const queryGetUserByEmail = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (u *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	u, err = s.scanUser(s.conn.QueryRow(ctx, queryGetUserByEmail, email))
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

const queryGetUserByID = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

func (s *DB) GetUserByID(ctx context.Context, id int64) (u *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	u, err = s.scanUser(s.conn.QueryRow(ctx, queryGetUserByID, id))
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

const queryListUsers = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

const queryCountUsers = `SELECT COUNT(*) FROM users`

func (s *DB) ListUsers(ctx context.Context, limit, offset int32) (users []entity.User, total int64, err error) {
	ctx, span := s.startSpan(ctx, "ListUsers")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListUsers, limit, offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		u, scanErr := s.scanUser(rows)
		if scanErr != nil {
			err = s.mapError(scanErr)
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	if err = s.conn.QueryRow(ctx, queryCountUsers).Scan(&total); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	return users, total, nil
}

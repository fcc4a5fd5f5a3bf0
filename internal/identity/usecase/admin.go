package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
)

type UserListInput struct {
	Limit  int32
	Offset int32
}

type UserListItem struct {
	UserID         int64
	Email          string
	FullName       string
	VoterID        string
	Role           string
	Status         string
	FailedAttempts int32
	LockedUntil    *time.Time
	CreatedAt      time.Time
}

type UserListOutput struct {
	Users []UserListItem
	Total int64
}

// UserList pages through accounts for the admin console.
func (s *Usecase) UserList(ctx context.Context, in UserListInput) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := max(in.Offset, 0)

	users, total, err := s.repoDB.ListUsers(ctx, limit, offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, UserListItem{
			UserID:         u.ID,
			Email:          u.Email,
			FullName:       u.FullName,
			VoterID:        u.VoterID,
			Role:           u.Role.String(),
			Status:         u.Status.String(),
			FailedAttempts: u.FailedAttempts,
			LockedUntil:    u.LockedUntil,
			CreatedAt:      u.CreatedAt,
		})
	}

	return &UserListOutput{Users: items, Total: total}, nil
}

type UserUnlockInput struct {
	UserID int64 `validate:"required"`
}

// UserUnlock clears a lockout ahead of its expiry.
func (s *Usecase) UserUnlock(ctx context.Context, in UserUnlockInput) error {
	ctx, span := s.startSpan(ctx, "UserUnlock")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetUserByID(ctx, in.UserID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("account not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.ResetLoginFailures(ctx, in.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo reset login failures", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "account unlocked by admin", "user_id", in.UserID)
	return nil
}

type UserDeactivateInput struct {
	UserID int64 `validate:"required"`
}

// UserDeactivate disables an account. Deactivated accounts cannot log in or
// cast ballots.
func (s *Usecase) UserDeactivate(ctx context.Context, in UserDeactivateInput) error {
	ctx, span := s.startSpan(ctx, "UserDeactivate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.DeactivateUser(ctx, in.UserID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("account not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo deactivate user", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "account deactivated by admin", "user_id", in.UserID)
	return nil
}

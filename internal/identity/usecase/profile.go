package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
)

type ProfileOutput struct {
	UserID    int64
	Email     string
	FullName  string
	VoterID   string
	Role      string
	Status    string
	CreatedAt time.Time
}

// Profile returns the authenticated user's account details.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		VoterID:   user.VoterID,
		Role:      user.Role.String(),
		Status:    user.Status.String(),
		CreatedAt: user.CreatedAt,
	}, nil
}

type ProfileUpdateInput struct {
	FullName string `validate:"required,min=3,max=100"`
}

// ProfileUpdate changes the display name of the authenticated user.
func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) error {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.UpdateProfile(ctx, claims.UserID, strings.TrimSpace(in.FullName)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update profile", "user_id", claims.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

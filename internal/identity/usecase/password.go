package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

// PasswordForgot sends a password reset code. It succeeds silently for
// unknown emails so the endpoint cannot be used to probe registrations.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password forgot for unknown account", "email", email)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}
	if user.Status != entity.StatusActive {
		return nil
	}

	if _, err := s.codeEngine.Issue(ctx, otpusecase.IssueInput{
		Email:   email,
		Purpose: otpentity.PurposePasswordReset,
	}); err != nil {
		return err
	}

	return nil
}

type PasswordResetInput struct {
	Email       string `validate:"required,email"`
	Code        string `validate:"required,otpcode"`
	NewPassword string `validate:"required,password"`
}

// PasswordReset validates the reset code and replaces the password. It also
// clears any lockout so the owner regains access immediately.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("invalid verification code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	out, err := s.codeEngine.Validate(ctx, otpusecase.ValidateInput{
		Email:   email,
		Code:    in.Code,
		Purpose: otpentity.PurposePasswordReset,
	})
	if err != nil {
		return err
	}
	if !out.Outcome.OK() {
		slog.WarnContext(ctx, "password reset code rejected", "user_id", user.ID, "outcome", out.Outcome.String())
		return goerror.NewBusiness("verification code rejected: "+out.Outcome.String(), goerror.CodeUnauthorized)
	}

	passwordHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.ResetLoginFailures(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo reset login failures", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

type PasswordChangeInput struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,password"`
}

// PasswordChange replaces the password of the authenticated user.
func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) error {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", claims.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.OldPassword) {
		slog.WarnContext(ctx, "password change with wrong old password", "user_id", user.ID)
		return goerror.NewBusiness("old password does not match", goerror.CodeUnauthorized)
	}

	passwordHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

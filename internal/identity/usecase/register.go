package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=3,max=100"`
}

type RegisterOutput struct {
	CodeExpiresAt time.Time
}

// Register creates a pending account and sends a registration code. The
// account stays unusable until the code is verified.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	passwordHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	err = s.repoDB.CreateUser(ctx, entity.User{
		ID:        s.uid.Generate(),
		Email:     email,
		FullName:  strings.TrimSpace(in.FullName),
		Password:  string(passwordHash),
		VoterID:   s.uuid.Generate(),
		Role:      entity.RoleVoter,
		Status:    entity.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "registration with existing email", "email", email)
		return nil, goerror.NewBusiness("email already registered", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.codeEngine.Issue(ctx, otpusecase.IssueInput{
		Email:   email,
		Purpose: otpentity.PurposeRegistration,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue registration code", "email", email, "error", err)
		return nil, err
	}

	return &RegisterOutput{CodeExpiresAt: code.ExpiresAt}, nil
}

type RegisterVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,otpcode"`
}

// RegisterVerify validates the registration code and activates the account.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) error {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verify for unknown account", "email", email)
		return goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}
	if user.Status == entity.StatusActive {
		return goerror.NewBusiness("account already verified", goerror.CodeConflict)
	}
	if user.Status == entity.StatusDeactivated {
		return goerror.NewBusiness("account is deactivated", goerror.CodeForbidden)
	}

	out, err := s.codeEngine.Validate(ctx, otpusecase.ValidateInput{
		Email:   email,
		Code:    in.Code,
		Purpose: otpentity.PurposeRegistration,
	})
	if err != nil {
		return err
	}
	if !out.Outcome.OK() {
		slog.WarnContext(ctx, "registration code rejected", "email", email, "outcome", out.Outcome.String())
		return goerror.NewBusiness("verification code rejected: "+out.Outcome.String(), goerror.CodeUnauthorized)
	}

	if err := s.repoDB.ActivateUser(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo activate user", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "account activated", "user_id", user.ID)
	return nil
}

type RegisterResendInput struct {
	Email string `validate:"required,email"`
}

// RegisterResend sends a fresh registration code for a pending account. The
// engine's cooldown and caps apply.
func (s *Usecase) RegisterResend(ctx context.Context, in RegisterResendInput) error {
	ctx, span := s.startSpan(ctx, "RegisterResend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		// Do not reveal whether the email is registered.
		slog.WarnContext(ctx, "resend for unknown account", "email", email)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}
	if user.Status != entity.StatusPending {
		return goerror.NewBusiness("account already verified", goerror.CodeConflict)
	}

	if _, err := s.codeEngine.Issue(ctx, otpusecase.IssueInput{
		Email:   email,
		Purpose: otpentity.PurposeRegistration,
	}); err != nil {
		return err
	}

	return nil
}

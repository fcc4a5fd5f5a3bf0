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

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	CodeExpiresAt     time.Time
	ResendAvailableAt time.Time
}

// Login checks credentials and, when they hold, sends a login code. The
// session is only established once LoginVerify accepts that code.
//
// Five consecutive wrong passwords lock the account for thirty minutes; the
// lockout expires on its own.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureLoginAllowed(ctx, user); err != nil {
		return nil, err
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		return nil, s.recordLoginFailure(ctx, user)
	}

	if user.FailedAttempts > 0 || user.LockedUntil != nil {
		if err := s.repoDB.ResetLoginFailures(ctx, user.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo reset login failures", "user_id", user.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	code, err := s.codeEngine.Issue(ctx, otpusecase.IssueInput{
		Email:   email,
		Purpose: otpentity.PurposeLogin,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue login code", "user_id", user.ID, "error", err)
		return nil, err
	}

	return &LoginOutput{
		CodeExpiresAt:     code.ExpiresAt,
		ResendAvailableAt: code.ResendAvailableAt,
	}, nil
}

func (s *Usecase) ensureLoginAllowed(ctx context.Context, user *entity.User) error {
	if user.Status == entity.StatusPending {
		return goerror.NewBusiness("account not verified yet", goerror.CodeForbidden)
	}
	if user.Status == entity.StatusDeactivated {
		return goerror.NewBusiness("account is deactivated", goerror.CodeForbidden)
	}
	if user.Locked(s.clock.Now()) {
		slog.WarnContext(ctx, "login while locked out", "user_id", user.ID)
		return goerror.NewBusiness("account temporarily locked, try again later", goerror.CodeLocked)
	}
	return nil
}

// recordLoginFailure counts the wrong password and starts a lockout when the
// budget is spent. It always returns the error the caller should surface.
func (s *Usecase) recordLoginFailure(ctx context.Context, user *entity.User) error {
	attempts := user.FailedAttempts
	if user.LockedUntil != nil && !user.Locked(s.clock.Now()) {
		// An elapsed lockout starts a fresh budget.
		attempts = 0
	}
	attempts++

	var lockUntil *time.Time
	if attempts >= s.maxFailedLogins() {
		t := s.clock.Now().Add(s.lockoutDuration())
		lockUntil = &t
	}

	if err := s.repoDB.RecordFailedLogin(ctx, user.ID, lockUntil); err != nil {
		slog.ErrorContext(ctx, "failed to repo record login failure", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if lockUntil != nil {
		slog.WarnContext(ctx, "account locked after repeated failures", "user_id", user.ID, "attempts", attempts)
		return goerror.NewBusiness("account temporarily locked, try again later", goerror.CodeLocked)
	}

	slog.WarnContext(ctx, "password user account not match", "user_id", user.ID, "attempts", attempts)
	return goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
}

type LoginVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,otpcode"`
}

type LoginVerifyOutput struct {
	AccessToken string
	Role        string
}

// LoginVerify validates the login code and issues the access token.
func (s *Usecase) LoginVerify(ctx context.Context, in LoginVerifyInput) (*LoginVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("invalid verification code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureLoginAllowed(ctx, user); err != nil {
		return nil, err
	}

	out, err := s.codeEngine.Validate(ctx, otpusecase.ValidateInput{
		Email:   email,
		Code:    in.Code,
		Purpose: otpentity.PurposeLogin,
	})
	if err != nil {
		return nil, err
	}
	if !out.Outcome.OK() {
		slog.WarnContext(ctx, "login code rejected", "user_id", user.ID, "outcome", out.Outcome.String())
		return nil, goerror.NewBusiness("verification code rejected: "+out.Outcome.String(), goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(user.ID, user.Email, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "login completed", "user_id", user.ID)

	return &LoginVerifyOutput{
		AccessToken: token,
		Role:        user.Role.String(),
	}, nil
}

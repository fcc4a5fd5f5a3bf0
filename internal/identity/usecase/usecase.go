// Package usecase implements account workflows: registration, two-step login
// with lockout, password management and profile access.
package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/hash"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	CreateUser(ctx context.Context, user entity.User) error
	ActivateUser(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, password string) error
	UpdateProfile(ctx context.Context, id int64, fullName string) error
	// RecordFailedLogin increments the failure counter and, when lockUntil is
	// non-nil, starts a lockout.
	RecordFailedLogin(ctx context.Context, id int64, lockUntil *time.Time) error
	// ResetLoginFailures clears the counter and any lockout.
	ResetLoginFailures(ctx context.Context, id int64) error
	DeactivateUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, limit, offset int32) ([]entity.User, int64, error)
}

// codeEngine is the in-process port to the verification code engine.
type codeEngine interface {
	Issue(ctx context.Context, in otpusecase.IssueInput) (*otpusecase.IssueOutput, error)
	Validate(ctx context.Context, in otpusecase.ValidateInput) (*otpusecase.ValidateOutput, error)
}

// Usecase implements account workflows.
type Usecase struct {
	repoDB     repoDB
	codeEngine codeEngine
	validator  validator.Validator
	cfg        config.Config
	bcrypt     hash.Hash
	uid        uid.NumberID
	uuid       uid.StringID
	clock      clock.Clocker
	jwt        jwt.JWT
	ins        instrument.Instrumentation
	goroutine  *goroutine.Manager
}

// Dependency carries everything Usecase needs.
type Dependency struct {
	RepoDB     repoDB
	CodeEngine codeEngine
	Validator  validator.Validator
	Config     config.Config
	Bcrypt     hash.Hash
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:     dep.RepoDB,
		codeEngine: dep.CodeEngine,
		validator:  dep.Validator,
		cfg:        dep.Config,
		bcrypt:     dep.Bcrypt,
		uid:        dep.UID,
		uuid:       dep.UUID,
		clock:      dep.Clock,
		jwt:        dep.JWT,
		ins:        dep.Instrument,
		goroutine:  dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) maxFailedLogins() int32 {
	if n := s.cfg.GetInt("modules.identity.max_failed_logins"); n > 0 {
		return int32(n)
	}
	return 5
}

func (s *Usecase) lockoutDuration() time.Duration {
	if d := s.cfg.GetMinute("modules.identity.lockout_minutes"); d > 0 {
		return d
	}
	return 30 * time.Minute
}

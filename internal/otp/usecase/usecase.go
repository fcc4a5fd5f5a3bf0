// Package usecase implements the one-time code engine: issuing, validating,
// rate limiting and sweeping of verification codes.
package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/otpcode"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

// CodeIssuedEvent is published after a verification code is stored, so the
// notification module can deliver it by email.
type CodeIssuedEvent struct {
	Email     string
	Code      string
	Purpose   entity.Purpose
	ExpiresAt time.Time
}

type repoDB interface {
	// GetActive returns the single usable verification for the pair:
	// not used and not expired at the given instant.
	GetActive(ctx context.Context, email string, purpose entity.Purpose, now time.Time) (*entity.Verification, error)
	// GetLatest returns the most recently created verification for the pair
	// regardless of state.
	GetLatest(ctx context.Context, email string, purpose entity.Purpose) (*entity.Verification, error)
	// CreateInvalidatingPrevious stores a new verification and marks every
	// previous active one for the pair as used, atomically.
	CreateInvalidatingPrevious(ctx context.Context, v entity.Verification) error
	// RecordAttempt increments the attempt counter and, when markUsed is
	// set, retires the verification stamping usedAt.
	RecordAttempt(ctx context.Context, id int64, markUsed bool, usedAt time.Time) error
	// MarkUsed retires the verification, stamping when it was consumed.
	MarkUsed(ctx context.Context, id int64, usedAt time.Time) error
	// Stats aggregates verification volume.
	Stats(ctx context.Context, now time.Time) (*entity.IssueStats, error)
	// SweepExpired deletes expired codes and used codes older than the
	// retention window. It returns the number of rows removed.
	SweepExpired(ctx context.Context, now time.Time, usedRetention time.Duration) (int64, error)
}

type repoCache interface {
	// CountIssued increments and returns the issue counter for the email in
	// the given window.
	CountIssued(ctx context.Context, email, window string, ttl time.Duration) (int64, error)
	// PeekIssued returns the counter without incrementing.
	PeekIssued(ctx context.Context, email, window string) (int64, error)
}

type repoMessaging interface {
	PublishCodeIssued(ctx context.Context, event CodeIssuedEvent) error
}

// Usecase is the verification code engine.
type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	codegen       otpcode.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

// Dependency carries everything Usecase needs.
type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Codegen       otpcode.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		codegen:       dep.Codegen,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.usecase").Start(ctx, name)
}

func (s *Usecase) ttl() time.Duration {
	if d := s.cfg.GetMinute("modules.otp.ttl_minutes"); d > 0 {
		return d
	}
	return 10 * time.Minute
}

func (s *Usecase) maxAttempts() int32 {
	if n := s.cfg.GetInt("modules.otp.max_attempts"); n > 0 {
		return int32(n)
	}
	return 3
}

func (s *Usecase) resendCooldown() time.Duration {
	if d := s.cfg.GetMinute("modules.otp.resend_cooldown_minutes"); d > 0 {
		return d
	}
	return 2 * time.Minute
}

func (s *Usecase) maxPerHour() int64 {
	if n := s.cfg.GetInt64("modules.otp.max_per_hour"); n > 0 {
		return n
	}
	return 3
}

func (s *Usecase) maxPerDay() int64 {
	if n := s.cfg.GetInt64("modules.otp.max_per_day"); n > 0 {
		return n
	}
	return 10
}

// Package usecase implements the vote casting guard and the surrounding
// election workflows: eligibility, anonymised history, results and the admin
// catalog.
package usecase

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel/trace"

	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/hash"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/idempotency"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/storage"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

// VoteReceiptEvent is published after a ballot commits so the notification
// module can send the receipt email.
type VoteReceiptEvent struct {
	Email            string
	TransactionRef   string
	ConstituencyName string
	CastAt           time.Time
}

type repoDB interface {
	GetVoter(ctx context.Context, id int64) (*entity.Voter, error)
	HasVoted(ctx context.Context, voterID int64) (bool, error)
	GetConstituency(ctx context.Context, id int64) (*entity.Constituency, error)
	GetCandidate(ctx context.Context, id int64) (*entity.Candidate, error)
	GetParty(ctx context.Context, id int64) (*entity.Party, error)
	// CreateBallot persists the ballot. The voter reference is UNIQUE in
	// storage; a duplicate insert returns goerror.ErrConflict.
	CreateBallot(ctx context.Context, b entity.Ballot) error
	ListHistory(ctx context.Context, voterID int64) ([]entity.HistoryItem, error)

	TalliesByConstituency(ctx context.Context, constituencyID int64) ([]entity.PartyTally, error)
	ListConstituencySummaries(ctx context.Context) ([]entity.ConstituencySummary, error)
	HourlyDistribution(ctx context.Context, since time.Time) ([]entity.HourlyBucket, error)
	Turnout(ctx context.Context) (*entity.TurnoutStats, error)
	SuspiciousIPs(ctx context.Context, threshold int64) ([]entity.SuspiciousPattern, error)
	FlagBallot(ctx context.Context, id int64) error

	CreateConstituency(ctx context.Context, c entity.Constituency) error
	SetConstituencyActive(ctx context.Context, id int64, active bool) error
	ListConstituencies(ctx context.Context, includeInactive bool) ([]entity.Constituency, error)
	CreateParty(ctx context.Context, p entity.Party) error
	SetPartyActive(ctx context.Context, id int64, active bool) error
	SetPartySymbol(ctx context.Context, id int64, key string) error
	ListParties(ctx context.Context, includeInactive bool) ([]entity.Party, error)
	CreateCandidate(ctx context.Context, c entity.Candidate) error
	SetCandidateActive(ctx context.Context, id int64, active bool) error
	SetCandidatePhoto(ctx context.Context, id int64, key string) error
	ListCandidates(ctx context.Context, constituencyID int64) ([]entity.Candidate, error)
}

type repoMessaging interface {
	PublishVoteReceipt(ctx context.Context, event VoteReceiptEvent) error
}

// codeEngine is the in-process port to the verification code engine, used as
// the voting-purpose gate.
type codeEngine interface {
	Validate(ctx context.Context, in otpusecase.ValidateInput) (*otpusecase.ValidateOutput, error)
}

type objectStore interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error)
}

// Usecase implements the vote casting guard and election workflows.
type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	codeEngine    codeEngine
	idem          idempotency.Idempotency
	storage       objectStore
	signer        hash.Hash
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

// Dependency carries everything Usecase needs.
type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	CodeEngine    codeEngine
	Idempotency   idempotency.Idempotency
	Storage       objectStore
	Signer        hash.Hash
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		codeEngine:    dep.CodeEngine,
		idem:          dep.Idempotency,
		storage:       dep.Storage,
		signer:        dep.Signer,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("voting.usecase").Start(ctx, name)
}

func (s *Usecase) suspiciousThreshold() int64 {
	if n := s.cfg.GetInt64("modules.voting.suspicious_ip_threshold"); n > 0 {
		return n
	}
	return 5
}

func (s *Usecase) mediaBucket() string {
	if b := s.cfg.GetString("modules.voting.media_bucket"); b != "" {
		return b
	}
	return "onlinevoting-media"
}

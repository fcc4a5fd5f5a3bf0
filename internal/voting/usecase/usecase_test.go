package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/hash"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/idempotency"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/storage"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

var testNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

var testSigner = hash.NewHMACSHA256("test-signing-secret")

type fakeRepoDB struct {
	voters         map[int64]*entity.Voter
	voted          map[int64]bool
	constituencies map[int64]*entity.Constituency
	candidates     map[int64]*entity.Candidate
	parties        map[int64]*entity.Party

	ballots     []entity.Ballot
	createErr   error
	history     []entity.HistoryItem
	tallies     []entity.PartyTally
	summaries   []entity.ConstituencySummary
	buckets     []entity.HourlyBucket
	turnout     *entity.TurnoutStats
	suspicious  []entity.SuspiciousPattern
	flagged     []int64
	flagErr     error
	hourlySince time.Time
	threshold   int64
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		voters:         map[int64]*entity.Voter{},
		voted:          map[int64]bool{},
		constituencies: map[int64]*entity.Constituency{},
		candidates:     map[int64]*entity.Candidate{},
		parties:        map[int64]*entity.Party{},
	}
}

func (f *fakeRepoDB) GetVoter(_ context.Context, id int64) (*entity.Voter, error) {
	if v, ok := f.voters[id]; ok {
		return v, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) HasVoted(_ context.Context, voterID int64) (bool, error) {
	return f.voted[voterID], nil
}

func (f *fakeRepoDB) GetConstituency(_ context.Context, id int64) (*entity.Constituency, error) {
	if c, ok := f.constituencies[id]; ok {
		return c, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetCandidate(_ context.Context, id int64) (*entity.Candidate, error) {
	if c, ok := f.candidates[id]; ok {
		return c, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetParty(_ context.Context, id int64) (*entity.Party, error) {
	if p, ok := f.parties[id]; ok {
		return p, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) CreateBallot(_ context.Context, b entity.Ballot) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.voted[b.VoterID] {
		return goerror.ErrConflict
	}
	f.ballots = append(f.ballots, b)
	f.voted[b.VoterID] = true
	return nil
}

func (f *fakeRepoDB) ListHistory(_ context.Context, _ int64) ([]entity.HistoryItem, error) {
	return f.history, nil
}

func (f *fakeRepoDB) TalliesByConstituency(_ context.Context, _ int64) ([]entity.PartyTally, error) {
	return f.tallies, nil
}

func (f *fakeRepoDB) ListConstituencySummaries(_ context.Context) ([]entity.ConstituencySummary, error) {
	return f.summaries, nil
}

func (f *fakeRepoDB) HourlyDistribution(_ context.Context, since time.Time) ([]entity.HourlyBucket, error) {
	f.hourlySince = since
	return f.buckets, nil
}

func (f *fakeRepoDB) Turnout(_ context.Context) (*entity.TurnoutStats, error) {
	if f.turnout == nil {
		return nil, goerror.ErrNotFound
	}
	out := *f.turnout
	return &out, nil
}

func (f *fakeRepoDB) SuspiciousIPs(_ context.Context, threshold int64) ([]entity.SuspiciousPattern, error) {
	f.threshold = threshold
	return f.suspicious, nil
}

func (f *fakeRepoDB) FlagBallot(_ context.Context, id int64) error {
	if f.flagErr != nil {
		return f.flagErr
	}
	f.flagged = append(f.flagged, id)
	return nil
}

func (f *fakeRepoDB) CreateConstituency(_ context.Context, c entity.Constituency) error {
	for _, existing := range f.constituencies {
		if existing.Code == c.Code {
			return goerror.ErrConflict
		}
	}
	f.constituencies[c.ID] = &c
	return nil
}

func (f *fakeRepoDB) SetConstituencyActive(_ context.Context, id int64, active bool) error {
	c, ok := f.constituencies[id]
	if !ok {
		return goerror.ErrNotFound
	}
	c.Active = active
	return nil
}

func (f *fakeRepoDB) ListConstituencies(_ context.Context, includeInactive bool) ([]entity.Constituency, error) {
	var out []entity.Constituency
	for _, c := range f.constituencies {
		if c.Active || includeInactive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepoDB) CreateParty(_ context.Context, p entity.Party) error {
	for _, existing := range f.parties {
		if existing.Name == p.Name {
			return goerror.ErrConflict
		}
	}
	f.parties[p.ID] = &p
	return nil
}

func (f *fakeRepoDB) SetPartyActive(_ context.Context, id int64, active bool) error {
	p, ok := f.parties[id]
	if !ok {
		return goerror.ErrNotFound
	}
	p.Active = active
	return nil
}

func (f *fakeRepoDB) SetPartySymbol(_ context.Context, id int64, key string) error {
	p, ok := f.parties[id]
	if !ok {
		return goerror.ErrNotFound
	}
	p.SymbolKey = key
	return nil
}

func (f *fakeRepoDB) ListParties(_ context.Context, includeInactive bool) ([]entity.Party, error) {
	var out []entity.Party
	for _, p := range f.parties {
		if p.Active || includeInactive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepoDB) CreateCandidate(_ context.Context, c entity.Candidate) error {
	for _, existing := range f.candidates {
		if existing.ConstituencyID == c.ConstituencyID && existing.PartyID == c.PartyID {
			return goerror.ErrConflict
		}
	}
	f.candidates[c.ID] = &c
	return nil
}

func (f *fakeRepoDB) SetCandidateActive(_ context.Context, id int64, active bool) error {
	c, ok := f.candidates[id]
	if !ok {
		return goerror.ErrNotFound
	}
	c.Active = active
	return nil
}

func (f *fakeRepoDB) SetCandidatePhoto(_ context.Context, id int64, key string) error {
	c, ok := f.candidates[id]
	if !ok {
		return goerror.ErrNotFound
	}
	c.PhotoKey = key
	return nil
}

func (f *fakeRepoDB) ListCandidates(_ context.Context, constituencyID int64) ([]entity.Candidate, error) {
	var out []entity.Candidate
	for _, c := range f.candidates {
		if c.ConstituencyID == constituencyID && c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeMessaging struct {
	published []VoteReceiptEvent
	done      chan struct{}
}

func newFakeMessaging() *fakeMessaging {
	return &fakeMessaging{done: make(chan struct{}, 8)}
}

func (f *fakeMessaging) PublishVoteReceipt(_ context.Context, event VoteReceiptEvent) error {
	f.published = append(f.published, event)
	f.done <- struct{}{}
	return nil
}

func (f *fakeMessaging) waitPublished(t *testing.T) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for receipt publish")
	}
}

type fakeCodeEngine struct {
	validated   []otpusecase.ValidateInput
	validateErr error
	outcome     otpentity.Outcome
}

func newFakeCodeEngine() *fakeCodeEngine {
	return &fakeCodeEngine{outcome: otpentity.OutcomeValid}
}

func (f *fakeCodeEngine) Validate(_ context.Context, in otpusecase.ValidateInput) (*otpusecase.ValidateOutput, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	f.validated = append(f.validated, in)
	return &otpusecase.ValidateOutput{Outcome: f.outcome}, nil
}

// fakeIdem runs fn directly and records the keys it saw.
type fakeIdem struct {
	keys    []string
	execErr error
}

func (f *fakeIdem) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdem) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.execErr != nil {
		return f.execErr
	}
	f.keys = append(f.keys, key)
	return fn(ctx)
}

type fakeStore struct {
	puts   map[string]string // key -> content type
	putErr error
}

func newFakeStore() *fakeStore { return &fakeStore{puts: map[string]string{}} }

func (f *fakeStore) PutObject(_ context.Context, _, key string, _ io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	if f.putErr != nil {
		return storage.ObjectInfo{}, f.putErr
	}
	f.puts[key] = opts.ContentType
	return storage.ObjectInfo{Key: key}, nil
}

type seqUID struct{ next int64 }

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

type seqStringID struct{ next int64 }

func (s *seqStringID) Generate() string {
	s.next++
	return fmt.Sprintf("c4b1a1a2-0000-7000-8000-%012d", s.next)
}

type testEnv struct {
	uc        *Usecase
	db        *fakeRepoDB
	messaging *fakeMessaging
	engine    *fakeCodeEngine
	idem      *fakeIdem
	store     *fakeStore
}

func newTestEnv(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	if configYAML == "" {
		configYAML = "modules:\n  voting: {}\n"
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(configYAML))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	env := &testEnv{
		db:        newFakeRepoDB(),
		messaging: newFakeMessaging(),
		engine:    newFakeCodeEngine(),
		idem:      &fakeIdem{},
		store:     newFakeStore(),
	}
	env.uc = New(Dependency{
		RepoDB:        env.db,
		RepoMessaging: env.messaging,
		CodeEngine:    env.engine,
		Idempotency:   env.idem,
		Storage:       env.store,
		Signer:        testSigner,
		Validator:     v10,
		Config:        cfg,
		UID:           &seqUID{},
		UUID:          &seqStringID{},
		Clock:         clock.Static{T: testNow},
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(4),
	})
	return env
}

// seedCatalog stores an active constituency (1), party (2) and candidate (3).
func (e *testEnv) seedCatalog() {
	e.db.constituencies[1] = &entity.Constituency{ID: 1, Name: "Central District", Code: "CD", Active: true}
	e.db.parties[2] = &entity.Party{ID: 2, Name: "Unity Party", Abbreviation: "UP", Active: true}
	e.db.candidates[3] = &entity.Candidate{ID: 3, ConstituencyID: 1, PartyID: 2, FullName: "Jordan Reyes", Active: true}
}

func (e *testEnv) activeVoter() *entity.Voter {
	v := &entity.Voter{ID: 10, Email: "voter@example.com", FullName: "Test Voter", Active: true, Verified: true}
	e.db.voters[v.ID] = v
	return v
}

func authCtx(voterID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: voterID, Role: "voter"})
}

func requireCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())
}

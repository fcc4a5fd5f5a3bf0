package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

var testNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

type fakeRepoDB struct {
	active *entity.Verification
	latest *entity.Verification

	created       []entity.Verification
	attempts      map[int64]int32
	usedIDs       map[int64]bool
	usedAt        map[int64]time.Time
	statsOut      *entity.IssueStats
	sweepRemoved  int64
	sweepErr      error
	getActiveErr  error
	getLatestErr  error
	createErr     error
	recordErr     error
	markUsedErr   error
	sweepRequests []time.Duration
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		attempts: map[int64]int32{},
		usedIDs:  map[int64]bool{},
		usedAt:   map[int64]time.Time{},
	}
}

func (f *fakeRepoDB) GetActive(_ context.Context, _ string, _ entity.Purpose, _ time.Time) (*entity.Verification, error) {
	if f.getActiveErr != nil {
		return nil, f.getActiveErr
	}
	if f.active == nil {
		return nil, goerror.ErrNotFound
	}
	return f.active, nil
}

func (f *fakeRepoDB) GetLatest(_ context.Context, _ string, _ entity.Purpose) (*entity.Verification, error) {
	if f.getLatestErr != nil {
		return nil, f.getLatestErr
	}
	if f.latest == nil {
		return nil, goerror.ErrNotFound
	}
	return f.latest, nil
}

func (f *fakeRepoDB) CreateInvalidatingPrevious(_ context.Context, v entity.Verification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, v)
	return nil
}

func (f *fakeRepoDB) RecordAttempt(_ context.Context, id int64, markUsed bool, usedAt time.Time) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.attempts[id]++
	if markUsed {
		f.usedIDs[id] = true
		f.usedAt[id] = usedAt
	}
	return nil
}

func (f *fakeRepoDB) MarkUsed(_ context.Context, id int64, usedAt time.Time) error {
	if f.markUsedErr != nil {
		return f.markUsedErr
	}
	f.usedIDs[id] = true
	f.usedAt[id] = usedAt
	return nil
}

func (f *fakeRepoDB) Stats(_ context.Context, _ time.Time) (*entity.IssueStats, error) {
	return f.statsOut, nil
}

func (f *fakeRepoDB) SweepExpired(_ context.Context, _ time.Time, retention time.Duration) (int64, error) {
	f.sweepRequests = append(f.sweepRequests, retention)
	return f.sweepRemoved, f.sweepErr
}

type fakeRepoCache struct {
	counts   map[string]int64
	countErr error
	peekErr  error
}

func newFakeRepoCache() *fakeRepoCache {
	return &fakeRepoCache{counts: map[string]int64{}}
}

func (f *fakeRepoCache) CountIssued(_ context.Context, email, window string, _ time.Duration) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.counts[window+":"+email]++
	return f.counts[window+":"+email], nil
}

func (f *fakeRepoCache) PeekIssued(_ context.Context, email, window string) (int64, error) {
	if f.peekErr != nil {
		return 0, f.peekErr
	}
	return f.counts[window+":"+email], nil
}

type fakeRepoMessaging struct {
	published []CodeIssuedEvent
	done      chan struct{}
}

func newFakeRepoMessaging() *fakeRepoMessaging {
	return &fakeRepoMessaging{done: make(chan struct{}, 8)}
}

func (f *fakeRepoMessaging) PublishCodeIssued(_ context.Context, event CodeIssuedEvent) error {
	f.published = append(f.published, event)
	f.done <- struct{}{}
	return nil
}

type fixedCodegen struct{ code string }

func (f fixedCodegen) Generate() string { return f.code }

type seqUID struct{ next int64 }

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

type testEnv struct {
	uc *Usecase
	db *fakeRepoDB
	ch *fakeRepoCache
	mq *fakeRepoMessaging
	gm *goroutine.Manager
}

func newTestEnv(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	if configYAML == "" {
		configYAML = "modules:\n  otp:\n    echo_code: false\n"
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(configYAML))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	env := &testEnv{
		db: newFakeRepoDB(),
		ch: newFakeRepoCache(),
		mq: newFakeRepoMessaging(),
		gm: goroutine.NewManager(4),
	}
	env.uc = New(Dependency{
		RepoDB:        env.db,
		RepoCache:     env.ch,
		RepoMessaging: env.mq,
		Validator:     v10,
		Config:        cfg,
		Codegen:       fixedCodegen{code: "042917"},
		UID:           &seqUID{},
		Clock:         clock.Static{T: testNow},
		Instrument:    instrument.NewNoop(),
		Goroutine:     env.gm,
	})
	return env
}

func (e *testEnv) waitPublished(t *testing.T) {
	t.Helper()
	select {
	case <-e.mq.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for publish")
	}
}

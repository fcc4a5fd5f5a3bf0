package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/hash"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

var testNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

type fakeRepoDB struct {
	users map[int64]*entity.User

	failures   map[int64]int32
	locks      map[int64]*time.Time
	resets     map[int64]int
	activated  map[int64]bool
	passwords  map[int64]string
	fullNames  map[int64]string
	createErr  error
	getErr     error
	listOut    []entity.User
	listTotal  int64
	lastCreate *entity.User
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		users:     map[int64]*entity.User{},
		failures:  map[int64]int32{},
		locks:     map[int64]*time.Time{},
		resets:    map[int64]int{},
		activated: map[int64]bool{},
		passwords: map[int64]string{},
		fullNames: map[int64]string{},
	}
}

func (f *fakeRepoDB) put(u *entity.User) { f.users[u.ID] = u }

func (f *fakeRepoDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) CreateUser(_ context.Context, u entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return goerror.ErrConflict
		}
	}
	f.lastCreate = &u
	f.put(&u)
	return nil
}

func (f *fakeRepoDB) ActivateUser(_ context.Context, id int64) error {
	f.activated[id] = true
	if u, ok := f.users[id]; ok {
		u.Status = entity.StatusActive
	}
	return nil
}

func (f *fakeRepoDB) UpdatePassword(_ context.Context, id int64, password string) error {
	f.passwords[id] = password
	return nil
}

func (f *fakeRepoDB) UpdateProfile(_ context.Context, id int64, fullName string) error {
	f.fullNames[id] = fullName
	return nil
}

func (f *fakeRepoDB) RecordFailedLogin(_ context.Context, id int64, lockUntil *time.Time) error {
	f.failures[id]++
	if lockUntil != nil {
		f.locks[id] = lockUntil
	}
	if u, ok := f.users[id]; ok {
		u.FailedAttempts++
		if lockUntil != nil {
			u.LockedUntil = lockUntil
		}
	}
	return nil
}

func (f *fakeRepoDB) ResetLoginFailures(_ context.Context, id int64) error {
	f.resets[id]++
	if u, ok := f.users[id]; ok {
		u.FailedAttempts = 0
		u.LockedUntil = nil
	}
	return nil
}

func (f *fakeRepoDB) DeactivateUser(_ context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return goerror.ErrNotFound
	}
	u.Status = entity.StatusDeactivated
	return nil
}

func (f *fakeRepoDB) ListUsers(_ context.Context, _, _ int32) ([]entity.User, int64, error) {
	return f.listOut, f.listTotal, nil
}

type fakeCodeEngine struct {
	issued      []otpusecase.IssueInput
	validated   []otpusecase.ValidateInput
	issueErr    error
	validateErr error
	outcome     otpentity.Outcome
}

func newFakeCodeEngine() *fakeCodeEngine {
	return &fakeCodeEngine{outcome: otpentity.OutcomeValid}
}

func (f *fakeCodeEngine) Issue(_ context.Context, in otpusecase.IssueInput) (*otpusecase.IssueOutput, error) {
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.issued = append(f.issued, in)
	return &otpusecase.IssueOutput{
		ExpiresAt:         testNow.Add(5 * time.Minute),
		ResendAvailableAt: testNow.Add(2 * time.Minute),
	}, nil
}

func (f *fakeCodeEngine) Validate(_ context.Context, in otpusecase.ValidateInput) (*otpusecase.ValidateOutput, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	f.validated = append(f.validated, in)
	return &otpusecase.ValidateOutput{Outcome: f.outcome}, nil
}

type seqUID struct{ next int64 }

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

type fixedStringID struct{ id string }

func (f fixedStringID) Generate() string { return f.id }

type testEnv struct {
	uc     *Usecase
	db     *fakeRepoDB
	engine *fakeCodeEngine
	bcrypt hash.Hash
	clock  clock.Static
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  identity: {}\n"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	tokenizer, err := jwt.NewHS512(jwt.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer: "onlinevoting-test",
		TTL:    15 * time.Minute,
		Clock:  clock.Static{T: testNow},
		UUID:   fixedStringID{id: "c4b1a1a2-0000-7000-8000-000000000002"},
	})
	require.NoError(t, err)

	env := &testEnv{
		db:     newFakeRepoDB(),
		engine: newFakeCodeEngine(),
		bcrypt: hash.NewBcrypt(4, ""),
		clock:  clock.Static{T: testNow},
	}
	env.uc = New(Dependency{
		RepoDB:     env.db,
		CodeEngine: env.engine,
		Validator:  v10,
		Config:     cfg,
		Bcrypt:     env.bcrypt,
		UID:        &seqUID{},
		UUID:       fixedStringID{id: "c4b1a1a2-0000-7000-8000-000000000001"},
		Clock:      env.clock,
		JWT:        tokenizer,
		Instrument: instrument.NewNoop(),
		Goroutine:  goroutine.NewManager(4),
	})
	return env
}

func (e *testEnv) activeUser(t *testing.T, password string) *entity.User {
	t.Helper()

	hashed, err := e.bcrypt.Hash(password)
	require.NoError(t, err)

	u := &entity.User{
		ID:        10,
		Email:     "voter@example.com",
		FullName:  "Test Voter",
		Password:  string(hashed),
		VoterID:   "c4b1a1a2-0000-7000-8000-000000000001",
		Role:      entity.RoleVoter,
		Status:    entity.StatusActive,
		CreatedAt: testNow.Add(-24 * time.Hour),
		UpdatedAt: testNow.Add(-24 * time.Hour),
	}
	e.db.put(u)
	return u
}

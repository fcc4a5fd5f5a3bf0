package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/mail"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

var testNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

type fakeMailer struct {
	sent     []mail.Message
	failures int
	err      error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.failures > 0 {
		f.failures--
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type testEnv struct {
	uc     *Usecase
	mailer *fakeMailer
}

func newTestEnv(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	if configYAML == "" {
		configYAML = "modules:\n  notification:\n    support_email: support@onlinevoting.example\n"
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(configYAML))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	env := &testEnv{mailer: &fakeMailer{err: errors.New("smtp unreachable")}}
	env.uc = New(Dependency{
		RepoMail:   env.mailer,
		Config:     cfg,
		Clock:      clock.Static{T: testNow},
		Validator:  v10,
		Instrument: instrument.NewNoop(),
	})
	return env
}

func TestConsumeCodeIssued_SendsEmail(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.ConsumeCodeIssued(context.Background(), ConsumeCodeIssuedInput{
		Email:     "voter@example.com",
		Code:      "042917",
		Purpose:   "Login",
		ExpiresAt: testNow.Add(10 * time.Minute),
	})
	require.NoError(t, err)

	require.Len(t, env.mailer.sent, 1)
	msg := env.mailer.sent[0]
	require.Equal(t, []string{"voter@example.com"}, msg.To)
	require.Equal(t, "Your login code", msg.Subject)
	require.Contains(t, msg.TextBody, "042917")
	require.Contains(t, msg.TextBody, "10 minutes")
	require.Contains(t, msg.HTMLBody, "042917")
	require.Contains(t, msg.HTMLBody, "support@onlinevoting.example")
}

func TestConsumeCodeIssued_SubjectPerPurpose(t *testing.T) {
	subjects := map[string]string{
		"Registration":  "Confirm your registration",
		"PasswordReset": "Reset your password",
		"VoteCasting":   "Your voting code",
	}

	for purpose, subject := range subjects {
		t.Run(purpose, func(t *testing.T) {
			env := newTestEnv(t, "")

			err := env.uc.ConsumeCodeIssued(context.Background(), ConsumeCodeIssuedInput{
				Email:     "voter@example.com",
				Code:      "042917",
				Purpose:   purpose,
				ExpiresAt: testNow.Add(10 * time.Minute),
			})
			require.NoError(t, err)
			require.Len(t, env.mailer.sent, 1)
			require.Equal(t, subject, env.mailer.sent[0].Subject)
		})
	}
}

func TestConsumeCodeIssued_DropsMalformedPayload(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.ConsumeCodeIssued(context.Background(), ConsumeCodeIssuedInput{
		Email:     "not-an-email",
		Code:      "042917",
		Purpose:   "Login",
		ExpiresAt: testNow.Add(10 * time.Minute),
	})
	require.NoError(t, err, "malformed events must be dropped, not requeued")
	require.Empty(t, env.mailer.sent)
}

func TestConsumeCodeIssued_SkipsExpiredCode(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.ConsumeCodeIssued(context.Background(), ConsumeCodeIssuedInput{
		Email:     "voter@example.com",
		Code:      "042917",
		Purpose:   "Login",
		ExpiresAt: testNow.Add(-time.Minute),
	})
	require.NoError(t, err)
	require.Empty(t, env.mailer.sent)
}

func TestConsumeCodeIssued_RetriesTransientSendFailure(t *testing.T) {
	env := newTestEnv(t, "")
	env.mailer.failures = 1

	err := env.uc.ConsumeCodeIssued(context.Background(), ConsumeCodeIssuedInput{
		Email:     "voter@example.com",
		Code:      "042917",
		Purpose:   "Login",
		ExpiresAt: testNow.Add(10 * time.Minute),
	})
	require.NoError(t, err)
	require.Len(t, env.mailer.sent, 1)
}

func TestConsumeCodeIssued_GivesUpAfterRetryBudget(t *testing.T) {
	env := newTestEnv(t, "modules:\n  notification:\n    send_max_retries: 1\n")
	env.mailer.failures = 5

	err := env.uc.ConsumeCodeIssued(context.Background(), ConsumeCodeIssuedInput{
		Email:     "voter@example.com",
		Code:      "042917",
		Purpose:   "Login",
		ExpiresAt: testNow.Add(10 * time.Minute),
	})
	require.Error(t, err)
	require.Empty(t, env.mailer.sent)
}

func TestConsumeVoteReceipt_SendsEmail(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.ConsumeVoteReceipt(context.Background(), ConsumeVoteReceiptInput{
		Email:            "voter@example.com",
		TransactionRef:   "VTX-C4B1A1A20000",
		ConstituencyName: "Central District",
		CastAt:           testNow,
	})
	require.NoError(t, err)

	require.Len(t, env.mailer.sent, 1)
	msg := env.mailer.sent[0]
	require.Equal(t, "Your vote receipt", msg.Subject)
	require.Contains(t, msg.TextBody, "VTX-C4B1A1A20000")
	require.Contains(t, msg.HTMLBody, "Central District")
	require.NotContains(t, msg.HTMLBody, "candidate", "receipt must not hint at the choice")
}

func TestConsumeVoteReceipt_DropsMalformedPayload(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.ConsumeVoteReceipt(context.Background(), ConsumeVoteReceiptInput{
		Email:          "voter@example.com",
		TransactionRef: "",
		CastAt:         testNow,
	})
	require.NoError(t, err)
	require.Empty(t, env.mailer.sent)
}

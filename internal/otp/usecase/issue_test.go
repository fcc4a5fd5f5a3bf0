package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
)

func TestIssue_StoresAndPublishes(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "Voter@Example.com",
		Purpose: entity.PurposeRegistration,
	})

	require.NoError(t, err)
	assert.Equal(t, testNow.Add(10*time.Minute), out.ExpiresAt)
	assert.Equal(t, testNow.Add(2*time.Minute), out.ResendAvailableAt)
	assert.Empty(t, out.Code, "code must not be echoed unless enabled")

	require.Len(t, env.db.created, 1)
	created := env.db.created[0]
	assert.Equal(t, "voter@example.com", created.Email, "email must be normalized")
	assert.Equal(t, "042917", created.Code)
	assert.Equal(t, int32(3), created.MaxAttempts)

	env.waitPublished(t)
	require.Len(t, env.mq.published, 1)
	assert.Equal(t, "voter@example.com", env.mq.published[0].Email)
	assert.Equal(t, "042917", env.mq.published[0].Code)
}

func TestIssue_EchoCodeEnabled(t *testing.T) {
	env := newTestEnv(t, "modules:\n  otp:\n    echo_code: true\n")

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, "042917", out.Code)
	env.waitPublished(t)
}

func TestIssue_CooldownBlocksResend(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.active = &entity.Verification{
		ID:        1,
		Email:     "voter@example.com",
		Purpose:   entity.PurposeLogin,
		CreatedAt: testNow.Add(-time.Minute),
		ExpiresAt: testNow.Add(4 * time.Minute),
	}

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Empty(t, env.db.created)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeTooManyRequest, gerr.Code())
}

func TestIssue_AfterCooldownInvalidatesPrevious(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.active = &entity.Verification{
		ID:        1,
		Email:     "voter@example.com",
		Purpose:   entity.PurposeLogin,
		CreatedAt: testNow.Add(-3 * time.Minute),
		ExpiresAt: testNow.Add(2 * time.Minute),
	}

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.NotNil(t, out)
	require.Len(t, env.db.created, 1)
	env.waitPublished(t)
}

func TestIssue_ConsumedCodeAllowsImmediateReissue(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.latest = &entity.Verification{
		ID:        1,
		Email:     "voter@example.com",
		Purpose:   entity.PurposeLogin,
		Used:      true,
		CreatedAt: testNow.Add(-30 * time.Second),
		ExpiresAt: testNow.Add(9 * time.Minute),
	}

	// The cooldown guards the still-valid code only. Once that code is
	// consumed there is nothing left to resend, so a fresh issue goes through.
	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.NotNil(t, out)
	require.Len(t, env.db.created, 1)
	env.waitPublished(t)
}

func TestIssue_HourlyCapBlocks(t *testing.T) {
	env := newTestEnv(t, "")
	env.ch.counts["hour:voter@example.com"] = 3

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Empty(t, env.db.created)
}

func TestIssue_DailyCapBlocks(t *testing.T) {
	env := newTestEnv(t, "")
	env.ch.counts["day:voter@example.com"] = 10

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Empty(t, env.db.created)
}

func TestIssue_CounterOutageDoesNotBlock(t *testing.T) {
	env := newTestEnv(t, "")
	env.ch.countErr = errors.New("connection refused")

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err, "counter outage must not block issuance")
	assert.NotNil(t, out)
	require.Len(t, env.db.created, 1)
	env.waitPublished(t)
}

func TestIssue_RejectsInvalidEmail(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email:   "not-an-email",
		Purpose: entity.PurposeLogin,
	})

	require.Error(t, err)
	assert.Nil(t, out)
}

func TestIssue_RejectsUnknownPurpose(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.uc.Issue(t.Context(), IssueInput{
		Email: "voter@example.com",
	})

	require.Error(t, err)
	assert.Nil(t, out)
}

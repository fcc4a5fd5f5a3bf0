package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
)

func TestCanRequest_Allowed(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.uc.CanRequest(t.Context(), CanRequestInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.True(t, out.Allowed)
	assert.Empty(t, out.Reason)
}

func TestCanRequest_CooldownActive(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.active = &entity.Verification{
		CreatedAt: testNow.Add(-30 * time.Second),
		ExpiresAt: testNow.Add(4 * time.Minute),
	}

	out, err := env.uc.CanRequest(t.Context(), CanRequestInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.False(t, out.Allowed)
	assert.Equal(t, "resend cooldown active", out.Reason)
	assert.Equal(t, 90*time.Second, out.RetryAfter)
}

func TestCanRequest_ConsumedCodeDoesNotCooldown(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.latest = &entity.Verification{
		Used:      true,
		CreatedAt: testNow.Add(-30 * time.Second),
		ExpiresAt: testNow.Add(4 * time.Minute),
	}

	out, err := env.uc.CanRequest(t.Context(), CanRequestInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.True(t, out.Allowed, "a consumed code leaves nothing to resend")
	assert.Zero(t, out.RetryAfter)
}

func TestCanRequest_HourlyLimit(t *testing.T) {
	env := newTestEnv(t, "")
	env.ch.counts["hour:voter@example.com"] = 3

	out, err := env.uc.CanRequest(t.Context(), CanRequestInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.False(t, out.Allowed)
	assert.Equal(t, "hourly limit reached", out.Reason)
}

func TestCanRequest_DailyLimit(t *testing.T) {
	env := newTestEnv(t, "")
	env.ch.counts["day:voter@example.com"] = 10

	out, err := env.uc.CanRequest(t.Context(), CanRequestInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.False(t, out.Allowed)
	assert.Equal(t, "daily limit reached", out.Reason)
	assert.Zero(t, out.RetryAfter)
}

func TestRemainingTime_Active(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.active = &entity.Verification{
		ExpiresAt: testNow.Add(3 * time.Minute),
	}

	out, err := env.uc.RemainingTime(t.Context(), RemainingTimeInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.Equal(t, 3*time.Minute, out.Remaining)
}

func TestRemainingTime_NoActiveCode(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.uc.RemainingTime(t.Context(), RemainingTimeInput{
		Email:   "voter@example.com",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.False(t, out.Active)
	assert.Zero(t, out.Remaining)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.statsOut = &entity.IssueStats{
		TotalIssued: 120,
		TotalActive: 4,
		TotalUsed:   100,
		IssuedToday: 12,
	}

	out, err := env.uc.Stats(t.Context())

	require.NoError(t, err)
	assert.Equal(t, int64(120), out.TotalIssued)
	assert.Equal(t, int64(12), out.IssuedToday)
}

func TestSweep_ReportsRemoved(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.sweepRemoved = 42

	removed, err := env.uc.Sweep(t.Context())

	require.NoError(t, err)
	assert.Equal(t, int64(42), removed)
	require.Len(t, env.db.sweepRequests, 1)
	assert.Equal(t, 7*24*time.Hour, env.db.sweepRequests[0], "default retention for used codes is seven days")
}

func TestSweep_PropagatesFailure(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.sweepErr = errors.New("connection reset")

	_, err := env.uc.Sweep(t.Context())

	require.Error(t, err)
}

func TestSweep_CustomRetention(t *testing.T) {
	env := newTestEnv(t, "modules:\n  otp:\n    used_retention_days: 2\n")

	_, err := env.uc.Sweep(t.Context())

	require.NoError(t, err)
	require.Len(t, env.db.sweepRequests, 1)
	assert.Equal(t, 48*time.Hour, env.db.sweepRequests[0])
}

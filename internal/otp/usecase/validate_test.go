package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
)

func activeVerification() *entity.Verification {
	return &entity.Verification{
		ID:          77,
		Email:       "voter@example.com",
		Code:        "042917",
		Purpose:     entity.PurposeLogin,
		Attempts:    0,
		MaxAttempts: 3,
		ExpiresAt:   testNow.Add(5 * time.Minute),
		CreatedAt:   testNow.Add(-time.Minute),
	}
}

func TestValidate_CorrectCodeConsumes(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.active = activeVerification()

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "042917",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeValid, out.Outcome)
	assert.True(t, out.Outcome.OK())
	assert.True(t, env.db.usedIDs[77], "successful validation must retire the code")
	assert.Equal(t, testNow, env.db.usedAt[77], "consumption time must be recorded")
}

func TestValidate_WrongCodeDecrementsBudget(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.active = activeVerification()

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "000000",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeInvalidCode, out.Outcome)
	assert.Equal(t, int32(2), out.AttemptsLeft)
	assert.Equal(t, int32(1), env.db.attempts[77])
	assert.False(t, env.db.usedIDs[77])
}

func TestValidate_WrongCodeOnLastAttemptRetires(t *testing.T) {
	env := newTestEnv(t, "")
	v := activeVerification()
	v.Attempts = 2
	env.db.active = v

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "000000",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeMaxAttemptsExceeded, out.Outcome)
	assert.True(t, env.db.usedIDs[77], "spending the budget must retire the code")
	assert.Equal(t, testNow, env.db.usedAt[77])
}

func TestValidate_ExhaustedBeforeAttempt(t *testing.T) {
	env := newTestEnv(t, "")
	v := activeVerification()
	v.Attempts = 3
	env.db.active = v

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "042917",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeMaxAttemptsExceeded, out.Outcome, "right code after the budget is spent must not validate")
	assert.True(t, env.db.usedIDs[77])
}

func TestValidate_NoCodeEverIssued(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "042917",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeNotFound, out.Outcome)
}

func TestValidate_LatestAlreadyUsed(t *testing.T) {
	env := newTestEnv(t, "")
	v := activeVerification()
	v.Used = true
	env.db.latest = v

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "042917",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeAlreadyUsed, out.Outcome)
}

func TestValidate_WrongCodeAgainstUsedLatest(t *testing.T) {
	env := newTestEnv(t, "")
	v := activeVerification()
	v.Used = true
	env.db.latest = v

	// Only the code that was actually issued can explain its own consumption.
	// A different guess reveals nothing about the retired record.
	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "111111",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeNotFound, out.Outcome)
}

func TestValidate_ExpiredThenRetiredReportsExpired(t *testing.T) {
	env := newTestEnv(t, "")
	v := activeVerification()
	v.Used = true
	v.ExpiresAt = testNow.Add(-time.Second)
	env.db.latest = v

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "042917",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeExpired, out.Outcome, "expiry explains the failure before consumption does")
}

func TestValidate_LatestExpired(t *testing.T) {
	env := newTestEnv(t, "")
	v := activeVerification()
	v.ExpiresAt = testNow.Add(-time.Second)
	env.db.latest = v

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "042917",
		Purpose: entity.PurposeLogin,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeExpired, out.Outcome)
}

func TestValidate_PurposeMismatchFindsNothing(t *testing.T) {
	env := newTestEnv(t, "")

	// The repository is queried per purpose, so a login code never surfaces
	// for a vote-casting validation.
	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "042917",
		Purpose: entity.PurposeVoteCasting,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeNotFound, out.Outcome)
}

func TestValidate_RejectsMalformedInput(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name string
		in   ValidateInput
	}{
		{"missing email", ValidateInput{Code: "042917", Purpose: entity.PurposeLogin}},
		{"short code", ValidateInput{Email: "voter@example.com", Code: "123", Purpose: entity.PurposeLogin}},
		{"alphabetic code", ValidateInput{Email: "voter@example.com", Code: "abcdef", Purpose: entity.PurposeLogin}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := env.uc.Validate(t.Context(), tc.in)
			require.Error(t, err)
			assert.Nil(t, out)
		})
	}
}

func TestValidate_UnknownPurpose(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.uc.Validate(t.Context(), ValidateInput{
		Email:   "voter@example.com",
		Code:    "042917",
		Purpose: entity.PurposeUnknown,
	})

	require.Error(t, err)
	assert.Nil(t, out)
}

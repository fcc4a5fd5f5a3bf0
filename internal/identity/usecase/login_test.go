package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
)

func requireCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code())
}

func TestLogin_SendsLoginCode(t *testing.T) {
	env := newTestEnv(t)
	env.activeUser(t, "Secret123!")

	out, err := env.uc.Login(t.Context(), LoginInput{
		Email:    "voter@example.com",
		Password: "Secret123!",
	})

	require.NoError(t, err)
	assert.Equal(t, testNow.Add(5*time.Minute), out.CodeExpiresAt)
	require.Len(t, env.engine.issued, 1)
	assert.Equal(t, otpentity.PurposeLogin, env.engine.issued[0].Purpose)
}

func TestLogin_WrongPasswordCounts(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")

	_, err := env.uc.Login(t.Context(), LoginInput{
		Email:    "voter@example.com",
		Password: "wrong",
	})

	requireCode(t, err, goerror.CodeUnauthorized)
	assert.Equal(t, int32(1), env.db.failures[user.ID])
	assert.Empty(t, env.engine.issued)
}

func TestLogin_FifthFailureLocks(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")

	var err error
	for range 5 {
		_, err = env.uc.Login(t.Context(), LoginInput{
			Email:    "voter@example.com",
			Password: "wrong",
		})
	}

	requireCode(t, err, goerror.CodeLocked)
	require.NotNil(t, env.db.locks[user.ID])
	assert.Equal(t, testNow.Add(30*time.Minute), *env.db.locks[user.ID])
}

func TestLogin_LockedOutEvenWithRightPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	lockedUntil := testNow.Add(10 * time.Minute)
	user.FailedAttempts = 5
	user.LockedUntil = &lockedUntil

	_, err := env.uc.Login(t.Context(), LoginInput{
		Email:    "voter@example.com",
		Password: "Secret123!",
	})

	requireCode(t, err, goerror.CodeLocked)
	assert.Empty(t, env.engine.issued)
}

func TestLogin_ExpiredLockoutAdmits(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	lockedUntil := testNow.Add(-time.Minute)
	user.FailedAttempts = 5
	user.LockedUntil = &lockedUntil

	out, err := env.uc.Login(t.Context(), LoginInput{
		Email:    "voter@example.com",
		Password: "Secret123!",
	})

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, 1, env.db.resets[user.ID], "a successful login must clear the counters")
}

func TestLogin_ExpiredLockoutRestartsBudget(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	lockedUntil := testNow.Add(-time.Minute)
	user.FailedAttempts = 5
	user.LockedUntil = &lockedUntil

	_, err := env.uc.Login(t.Context(), LoginInput{
		Email:    "voter@example.com",
		Password: "wrong",
	})

	// One failure after an elapsed lockout must not relock immediately.
	requireCode(t, err, goerror.CodeUnauthorized)
	assert.Nil(t, env.db.locks[user.ID])
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Login(t.Context(), LoginInput{
		Email:    "nobody@example.com",
		Password: "Secret123!",
	})

	requireCode(t, err, goerror.CodeUnauthorized)
}

func TestLogin_PendingAccountRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	user.Status = entity.StatusPending

	_, err := env.uc.Login(t.Context(), LoginInput{
		Email:    "voter@example.com",
		Password: "Secret123!",
	})

	requireCode(t, err, goerror.CodeForbidden)
}

func TestLoginVerify_IssuesToken(t *testing.T) {
	env := newTestEnv(t)
	env.activeUser(t, "Secret123!")

	out, err := env.uc.LoginVerify(t.Context(), LoginVerifyInput{
		Email: "voter@example.com",
		Code:  "042917",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "voter", out.Role)
	require.Len(t, env.engine.validated, 1)
	assert.Equal(t, otpentity.PurposeLogin, env.engine.validated[0].Purpose)
}

func TestLoginVerify_RejectedCode(t *testing.T) {
	env := newTestEnv(t)
	env.activeUser(t, "Secret123!")
	env.engine.outcome = otpentity.OutcomeInvalidCode

	_, err := env.uc.LoginVerify(t.Context(), LoginVerifyInput{
		Email: "voter@example.com",
		Code:  "000000",
	})

	requireCode(t, err, goerror.CodeUnauthorized)
}

func TestLoginVerify_ExpiredCode(t *testing.T) {
	env := newTestEnv(t)
	env.activeUser(t, "Secret123!")
	env.engine.outcome = otpentity.OutcomeExpired

	_, err := env.uc.LoginVerify(t.Context(), LoginVerifyInput{
		Email: "voter@example.com",
		Code:  "042917",
	})

	requireCode(t, err, goerror.CodeUnauthorized)
}

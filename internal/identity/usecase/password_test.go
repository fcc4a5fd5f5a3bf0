package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
)

func TestPasswordForgot_SendsResetCode(t *testing.T) {
	env := newTestEnv(t)
	env.activeUser(t, "Secret123!")

	err := env.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "voter@example.com"})

	require.NoError(t, err)
	require.Len(t, env.engine.issued, 1)
	assert.Equal(t, otpentity.PurposePasswordReset, env.engine.issued[0].Purpose)
}

func TestPasswordForgot_UnknownEmailIsSilent(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "nobody@example.com"})

	require.NoError(t, err)
	assert.Empty(t, env.engine.issued)
}

func TestPasswordReset_ReplacesPasswordAndClearsLockout(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	lockedUntil := testNow.Add(10 * time.Minute)
	user.FailedAttempts = 5
	user.LockedUntil = &lockedUntil

	err := env.uc.PasswordReset(t.Context(), PasswordResetInput{
		Email:       "voter@example.com",
		Code:        "042917",
		NewPassword: "Fresh456!",
	})

	require.NoError(t, err)
	assert.True(t, env.bcrypt.Verify(env.db.passwords[user.ID], "Fresh456!"))
	assert.Equal(t, 1, env.db.resets[user.ID], "reset must clear the lockout")
}

func TestPasswordReset_RejectedCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	env.engine.outcome = otpentity.OutcomeNotFound

	err := env.uc.PasswordReset(t.Context(), PasswordResetInput{
		Email:       "voter@example.com",
		Code:        "042917",
		NewPassword: "Fresh456!",
	})

	requireCode(t, err, goerror.CodeUnauthorized)
	assert.Empty(t, env.db.passwords[user.ID])
}

func TestPasswordChange_VerifiesOldPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	ctx := jwt.SetAuth(t.Context(), jwt.Claims{UserID: user.ID})

	err := env.uc.PasswordChange(ctx, PasswordChangeInput{
		OldPassword: "Secret123!",
		NewPassword: "Fresh456!",
	})

	require.NoError(t, err)
	assert.True(t, env.bcrypt.Verify(env.db.passwords[user.ID], "Fresh456!"))
}

func TestPasswordChange_WrongOldPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	ctx := jwt.SetAuth(t.Context(), jwt.Claims{UserID: user.ID})

	err := env.uc.PasswordChange(ctx, PasswordChangeInput{
		OldPassword: "wrong",
		NewPassword: "Fresh456!",
	})

	requireCode(t, err, goerror.CodeUnauthorized)
	assert.Empty(t, env.db.passwords[user.ID])
}

func TestPasswordChange_NoAuth(t *testing.T) {
	env := newTestEnv(t)
	env.activeUser(t, "Secret123!")

	err := env.uc.PasswordChange(t.Context(), PasswordChangeInput{
		OldPassword: "Secret123!",
		NewPassword: "Fresh456!",
	})

	requireCode(t, err, goerror.CodeUnauthorized)
}

package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/entity"
	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
)

func TestRegister_CreatesPendingAccount(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.uc.Register(t.Context(), RegisterInput{
		Email:    "New.Voter@Example.com",
		Password: "Secret123!",
		FullName: "New Voter",
	})

	require.NoError(t, err)
	assert.NotNil(t, out)

	created := env.db.lastCreate
	require.NotNil(t, created)
	assert.Equal(t, "new.voter@example.com", created.Email)
	assert.Equal(t, entity.StatusPending, created.Status)
	assert.Equal(t, entity.RoleVoter, created.Role)
	assert.NotEqual(t, "Secret123!", created.Password, "password must be stored hashed")
	assert.True(t, env.bcrypt.Verify(created.Password, "Secret123!"))

	require.Len(t, env.engine.issued, 1)
	assert.Equal(t, otpentity.PurposeRegistration, env.engine.issued[0].Purpose)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.activeUser(t, "Secret123!")

	_, err := env.uc.Register(t.Context(), RegisterInput{
		Email:    "voter@example.com",
		Password: "Secret123!",
		FullName: "Someone Else",
	})

	requireCode(t, err, goerror.CodeConflict)
	assert.Empty(t, env.engine.issued)
}

func TestRegister_WeakPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Register(t.Context(), RegisterInput{
		Email:    "new@example.com",
		Password: "short",
		FullName: "New Voter",
	})

	require.Error(t, err)
	assert.Nil(t, env.db.lastCreate)
}

func TestRegisterVerify_Activates(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	user.Status = entity.StatusPending

	err := env.uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		Email: "voter@example.com",
		Code:  "042917",
	})

	require.NoError(t, err)
	assert.True(t, env.db.activated[user.ID])
	require.Len(t, env.engine.validated, 1)
	assert.Equal(t, otpentity.PurposeRegistration, env.engine.validated[0].Purpose)
}

func TestRegisterVerify_RejectedCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	user.Status = entity.StatusPending
	env.engine.outcome = otpentity.OutcomeAlreadyUsed

	err := env.uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		Email: "voter@example.com",
		Code:  "042917",
	})

	requireCode(t, err, goerror.CodeUnauthorized)
	assert.False(t, env.db.activated[user.ID])
}

func TestRegisterVerify_AlreadyActive(t *testing.T) {
	env := newTestEnv(t)
	env.activeUser(t, "Secret123!")

	err := env.uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		Email: "voter@example.com",
		Code:  "042917",
	})

	requireCode(t, err, goerror.CodeConflict)
}

func TestRegisterResend_UnknownEmailIsSilent(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.RegisterResend(t.Context(), RegisterResendInput{Email: "nobody@example.com"})

	require.NoError(t, err)
	assert.Empty(t, env.engine.issued)
}

func TestRegisterResend_PendingAccount(t *testing.T) {
	env := newTestEnv(t)
	user := env.activeUser(t, "Secret123!")
	user.Status = entity.StatusPending

	err := env.uc.RegisterResend(t.Context(), RegisterResendInput{Email: "voter@example.com"})

	require.NoError(t, err)
	require.Len(t, env.engine.issued, 1)
}

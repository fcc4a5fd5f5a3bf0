package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/idempotency"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

func castInput() CastVoteInput {
	return CastVoteInput{
		ConstituencyID:  1,
		CandidateID:     3,
		Code:            "042917",
		OriginIP:        "203.0.113.9",
		ClientSignature: "sig-abc",
	}
}

func TestCastVote_CommitsBallotAndPublishesReceipt(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	voter := env.activeVoter()

	out, err := env.uc.CastVote(authCtx(voter.ID), castInput())
	require.NoError(t, err)
	require.Equal(t, "VTX-C4B1A1A20000", out.TransactionRef)
	require.Equal(t, testNow, out.CastAt)

	require.Len(t, env.db.ballots, 1)
	ballot := env.db.ballots[0]
	require.Equal(t, voter.ID, ballot.VoterID)
	require.Equal(t, int64(1), ballot.ConstituencyID)
	require.Equal(t, int64(3), ballot.CandidateID)
	require.Equal(t, int64(2), ballot.PartyID)
	require.Equal(t, "203.0.113.9", ballot.OriginIP)

	// The raw device signature must never land in storage, only its digest.
	expected, err := testSigner.Hash("sig-abc")
	require.NoError(t, err)
	require.Equal(t, string(expected), ballot.ClientSignature)
	require.NotEqual(t, "sig-abc", ballot.ClientSignature)
	require.Equal(t, entity.BallotStatusCast, ballot.Status)
	require.NotEmpty(t, ballot.SessionToken)

	require.Equal(t, []string{"vote:cast:10"}, env.idem.keys)

	require.Len(t, env.engine.validated, 1)
	require.Equal(t, voter.Email, env.engine.validated[0].Email)
	require.Equal(t, otpentity.PurposeVoteCasting, env.engine.validated[0].Purpose)

	env.messaging.waitPublished(t)
	require.Len(t, env.messaging.published, 1)
	receipt := env.messaging.published[0]
	require.Equal(t, voter.Email, receipt.Email)
	require.Equal(t, out.TransactionRef, receipt.TransactionRef)
	require.Equal(t, "Central District", receipt.ConstituencyName)
}

func TestCastVote_RequiresAuthentication(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()

	_, err := env.uc.CastVote(context.Background(), castInput())
	requireCode(t, err, goerror.CodeUnauthorized)
}

func TestCastVote_UnknownVoter(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()

	_, err := env.uc.CastVote(authCtx(99), castInput())
	requireCode(t, err, goerror.CodeNotFound)
}

func TestCastVote_InactiveVoter(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	voter := env.activeVoter()
	voter.Active = false

	_, err := env.uc.CastVote(authCtx(voter.ID), castInput())
	requireCode(t, err, goerror.CodeForbidden)
}

func TestCastVote_UnverifiedVoter(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	voter := env.activeVoter()
	voter.Verified = false

	_, err := env.uc.CastVote(authCtx(voter.ID), castInput())
	requireCode(t, err, goerror.CodeForbidden)
}

func TestCastVote_LockedVoter(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	voter := env.activeVoter()
	until := testNow.Add(10 * time.Minute)
	voter.LockedUntil = &until

	_, err := env.uc.CastVote(authCtx(voter.ID), castInput())
	requireCode(t, err, goerror.CodeLocked)
}

func TestCastVote_ExpiredLockAdmits(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	voter := env.activeVoter()
	until := testNow.Add(-time.Minute)
	voter.LockedUntil = &until

	_, err := env.uc.CastVote(authCtx(voter.ID), castInput())
	require.NoError(t, err)
}

func TestCastVote_AlreadyVoted(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	voter := env.activeVoter()
	env.db.voted[voter.ID] = true

	_, err := env.uc.CastVote(authCtx(voter.ID), castInput())
	requireCode(t, err, goerror.CodeConflict)
	// rejected before the catalog checks or the code gate run
	require.Empty(t, env.engine.validated)
}

func TestCastVote_UnknownConstituency(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()

	in := castInput()
	in.ConstituencyID = 77

	_, err := env.uc.CastVote(authCtx(10), in)
	requireCode(t, err, goerror.CodeNotFound)
}

func TestCastVote_ClosedConstituency(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()
	env.db.constituencies[1].Active = false

	_, err := env.uc.CastVote(authCtx(10), castInput())
	requireCode(t, err, goerror.CodeInvalidInput)
}

func TestCastVote_UnknownCandidate(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()

	in := castInput()
	in.CandidateID = 88

	_, err := env.uc.CastVote(authCtx(10), in)
	requireCode(t, err, goerror.CodeNotFound)
}

func TestCastVote_WithdrawnCandidate(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()
	env.db.candidates[3].Active = false

	_, err := env.uc.CastVote(authCtx(10), castInput())
	requireCode(t, err, goerror.CodeInvalidInput)
}

func TestCastVote_CandidateInOtherConstituency(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()
	env.db.constituencies[5] = &entity.Constituency{ID: 5, Name: "North District", Code: "ND", Active: true}
	env.db.candidates[3].ConstituencyID = 5

	_, err := env.uc.CastVote(authCtx(10), castInput())
	requireCode(t, err, goerror.CodeInvalidInput)
}

func TestCastVote_InactiveParty(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()
	env.db.parties[2].Active = false

	_, err := env.uc.CastVote(authCtx(10), castInput())
	requireCode(t, err, goerror.CodeInvalidInput)
}

func TestCastVote_RejectedCode(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()
	env.engine.outcome = otpentity.OutcomeInvalidCode

	_, err := env.uc.CastVote(authCtx(10), castInput())
	requireCode(t, err, goerror.CodeUnauthorized)
	require.Empty(t, env.db.ballots)
}

func TestCastVote_StorageConflictSurfacesAsAlreadyVoted(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()
	env.db.createErr = goerror.ErrConflict

	_, err := env.uc.CastVote(authCtx(10), castInput())
	requireCode(t, err, goerror.CodeConflict)
}

func TestCastVote_RetryAbsorbedByGateSurfacesAsAlreadyVoted(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"cast still running", idempotency.ErrAlreadyInProgress},
		{"cast already landed", idempotency.ErrAlreadyCompleted},
		{"cast key burned", idempotency.ErrAlreadyFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			env.seedCatalog()
			env.activeVoter()
			env.idem.execErr = tc.err

			_, err := env.uc.CastVote(authCtx(10), castInput())
			requireCode(t, err, goerror.CodeConflict)
			require.Empty(t, env.db.ballots)
		})
	}
}

func TestCastVote_MalformedCode(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.activeVoter()

	in := castInput()
	in.Code = "42"

	_, err := env.uc.CastVote(authCtx(10), in)
	requireCode(t, err, goerror.CodeInvalidInput)
}

func TestCheckEligibility_Eligible(t *testing.T) {
	env := newTestEnv(t, "")
	voter := env.activeVoter()

	out, err := env.uc.CheckEligibility(authCtx(voter.ID))
	require.NoError(t, err)
	require.True(t, out.Eligible)
	require.Empty(t, out.Reason)
}

func TestCheckEligibility_Reasons(t *testing.T) {
	until := testNow.Add(5 * time.Minute)

	tests := []struct {
		name   string
		setup  func(env *testEnv)
		reason string
	}{
		{
			name:   "unknown voter",
			setup:  func(env *testEnv) {},
			reason: "voter not found",
		},
		{
			name: "inactive",
			setup: func(env *testEnv) {
				env.activeVoter().Active = false
			},
			reason: "voter account is not active",
		},
		{
			name: "unverified",
			setup: func(env *testEnv) {
				env.activeVoter().Verified = false
			},
			reason: "voter account is not verified",
		},
		{
			name: "locked",
			setup: func(env *testEnv) {
				env.activeVoter().LockedUntil = &until
			},
			reason: "voter account is locked",
		},
		{
			name: "already voted",
			setup: func(env *testEnv) {
				env.activeVoter()
				env.db.voted[10] = true
			},
			reason: "already voted",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			tc.setup(env)

			out, err := env.uc.CheckEligibility(authCtx(10))
			require.NoError(t, err)
			require.False(t, out.Eligible)
			require.Equal(t, tc.reason, out.Reason)
		})
	}
}

func TestCheckEligibility_RequiresAuthentication(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.uc.CheckEligibility(context.Background())
	requireCode(t, err, goerror.CodeUnauthorized)
}

package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

func TestResults_ComputesPercentages(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.db.tallies = []entity.PartyTally{
		{PartyID: 2, PartyName: "Unity Party", Votes: 60},
		{PartyID: 4, PartyName: "Reform Party", Votes: 40},
	}

	out, err := env.uc.Results(authCtx(10), ResultsInput{ConstituencyID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(100), out.TotalVotes)
	require.InEpsilon(t, 60.0, out.Tallies[0].Percentage, 0.0001)
	require.InEpsilon(t, 40.0, out.Tallies[1].Percentage, 0.0001)
}

func TestResults_NoBallotsYet(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()

	out, err := env.uc.Results(authCtx(10), ResultsInput{ConstituencyID: 1})
	require.NoError(t, err)
	require.Zero(t, out.TotalVotes)
	require.Empty(t, out.Tallies)
}

func TestResults_UnknownConstituency(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.uc.Results(authCtx(10), ResultsInput{ConstituencyID: 42})
	requireCode(t, err, goerror.CodeNotFound)
}

func TestSummaries_ComputesPerConstituencyPercentages(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.summaries = []entity.ConstituencySummary{
		{
			ConstituencyID:   1,
			ConstituencyName: "Central District",
			TotalVotes:       200,
			Tallies: []entity.PartyTally{
				{PartyID: 2, PartyName: "Unity Party", Votes: 150},
				{PartyID: 4, PartyName: "Reform Party", Votes: 50},
			},
		},
	}

	out, err := env.uc.Summaries(authCtx(10))
	require.NoError(t, err)
	require.Len(t, out.Constituencies, 1)
	require.InEpsilon(t, 75.0, out.Constituencies[0].Tallies[0].Percentage, 0.0001)
	require.InEpsilon(t, 25.0, out.Constituencies[0].Tallies[1].Percentage, 0.0001)
}

func TestHourlyDistribution_DefaultsTo24Hours(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.uc.HourlyDistribution(authCtx(10), HourlyDistributionInput{})
	require.NoError(t, err)
	require.Equal(t, testNow.Add(-24*time.Hour), env.db.hourlySince)
}

func TestHourlyDistribution_ClampsOversizedWindow(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.uc.HourlyDistribution(authCtx(10), HourlyDistributionInput{SinceHours: 24 * 30})
	require.NoError(t, err)
	require.Equal(t, testNow.Add(-24*time.Hour), env.db.hourlySince)
}

func TestTurnout_ComputesPercent(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.turnout = &entity.TurnoutStats{EligibleVoters: 400, BallotsCast: 100, FlaggedBallots: 3}

	out, err := env.uc.Turnout(authCtx(10))
	require.NoError(t, err)
	require.InEpsilon(t, 25.0, out.TurnoutPercent, 0.0001)
	require.Equal(t, int64(3), out.FlaggedBallots)
}

func TestSuspiciousPatterns_UsesConfiguredThreshold(t *testing.T) {
	env := newTestEnv(t, "modules:\n  voting:\n    suspicious_ip_threshold: 12\n")
	env.db.suspicious = []entity.SuspiciousPattern{
		{OriginIP: "198.51.100.7", BallotCount: 14, FirstCastAt: testNow.Add(-time.Hour), LastCastAt: testNow},
	}

	out, err := env.uc.SuspiciousPatterns(authCtx(10))
	require.NoError(t, err)
	require.Equal(t, int64(12), env.db.threshold)
	require.Len(t, out.Patterns, 1)
}

func TestSuspiciousPatterns_DefaultThreshold(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.uc.SuspiciousPatterns(authCtx(10))
	require.NoError(t, err)
	require.Equal(t, int64(5), env.db.threshold)
}

func TestFlagBallot(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.FlagBallot(authCtx(10), FlagBallotInput{BallotID: 7})
	require.NoError(t, err)
	require.Equal(t, []int64{7}, env.db.flagged)
}

func TestFlagBallot_Unknown(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.flagErr = goerror.ErrNotFound

	err := env.uc.FlagBallot(authCtx(10), FlagBallotInput{BallotID: 7})
	requireCode(t, err, goerror.CodeNotFound)
}

func TestHistory_MapsAnonymisedItems(t *testing.T) {
	env := newTestEnv(t, "")
	env.db.history = []entity.HistoryItem{
		{ConstituencyName: "Central District", TransactionRef: "VTX-AAA", Status: entity.BallotStatusCast, CastAt: testNow},
	}

	out, err := env.uc.History(authCtx(10))
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	require.Equal(t, "Central District", out.Items[0].ConstituencyName)
	require.Equal(t, entity.BallotStatusCast.String(), out.Items[0].Status)
}

package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

func TestConstituencyCreate_NormalizesCode(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.ConstituencyCreate(authCtx(1), ConstituencyCreateInput{Name: " South District ", Code: "sd"})
	require.NoError(t, err)

	require.Len(t, env.db.constituencies, 1)
	for _, c := range env.db.constituencies {
		require.Equal(t, "South District", c.Name)
		require.Equal(t, "SD", c.Code)
		require.True(t, c.Active)
	}
}

func TestConstituencyCreate_DuplicateCode(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()

	err := env.uc.ConstituencyCreate(authCtx(1), ConstituencyCreateInput{Name: "Other", Code: "CD"})
	requireCode(t, err, goerror.CodeConflict)
}

func TestConstituencySetActive_Unknown(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.ConstituencySetActive(authCtx(1), ConstituencySetActiveInput{ConstituencyID: 9, Active: false})
	requireCode(t, err, goerror.CodeNotFound)
}

func TestConstituencyList_FiltersInactive(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.db.constituencies[5] = &entity.Constituency{ID: 5, Name: "Closed District", Code: "XD", Active: false}

	out, err := env.uc.ConstituencyList(authCtx(1), ConstituencyListInput{})
	require.NoError(t, err)
	require.Len(t, out.Constituencies, 1)

	out, err = env.uc.ConstituencyList(authCtx(1), ConstituencyListInput{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, out.Constituencies, 2)
}

func TestPartyCreate_UppercasesAbbreviation(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.PartyCreate(authCtx(1), PartyCreateInput{Name: "Green Alliance", Abbreviation: "ga"})
	require.NoError(t, err)

	for _, p := range env.db.parties {
		require.Equal(t, "GA", p.Abbreviation)
	}
}

func TestPartyUploadSymbol_StoresObjectAndRecordsKey(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()

	err := env.uc.PartyUploadSymbol(authCtx(1), PartyUploadSymbolInput{
		PartyID:  2,
		FileName: "symbol.PNG",
		Body:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	require.Equal(t, "image/png", env.store.puts["parties/2/symbol.png"])
	require.Equal(t, "parties/2/symbol.png", env.db.parties[2].SymbolKey)
}

func TestPartyUploadSymbol_UnknownParty(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.uc.PartyUploadSymbol(authCtx(1), PartyUploadSymbolInput{
		PartyID:  9,
		FileName: "symbol.png",
		Body:     strings.NewReader("png-bytes"),
	})
	requireCode(t, err, goerror.CodeNotFound)
}

func TestPartyUploadSymbol_StorageOutage(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.store.putErr = errors.New("bucket unreachable")

	err := env.uc.PartyUploadSymbol(authCtx(1), PartyUploadSymbolInput{
		PartyID:  2,
		FileName: "symbol.png",
		Body:     strings.NewReader("png-bytes"),
	})
	requireCode(t, err, goerror.CodeUnavailable)
	require.Empty(t, env.db.parties[2].SymbolKey)
}

func TestCandidateCreate_RequiresExistingCatalog(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()

	err := env.uc.CandidateCreate(authCtx(1), CandidateCreateInput{ConstituencyID: 9, PartyID: 2, FullName: "Alex Chen"})
	requireCode(t, err, goerror.CodeNotFound)

	err = env.uc.CandidateCreate(authCtx(1), CandidateCreateInput{ConstituencyID: 1, PartyID: 9, FullName: "Alex Chen"})
	requireCode(t, err, goerror.CodeNotFound)
}

func TestCandidateCreate_OnePerPartyPerConstituency(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()

	err := env.uc.CandidateCreate(authCtx(1), CandidateCreateInput{ConstituencyID: 1, PartyID: 2, FullName: "Alex Chen"})
	requireCode(t, err, goerror.CodeConflict)
}

func TestCandidateUploadPhoto_StoresObjectAndRecordsKey(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()

	err := env.uc.CandidateUploadPhoto(authCtx(1), CandidateUploadPhotoInput{
		CandidateID: 3,
		FileName:    "portrait.jpg",
		Body:        strings.NewReader("jpg-bytes"),
	})
	require.NoError(t, err)

	require.Equal(t, "image/jpeg", env.store.puts["candidates/3/photo.jpg"])
	require.Equal(t, "candidates/3/photo.jpg", env.db.candidates[3].PhotoKey)
}

func TestCandidateList_OnlyActiveInConstituency(t *testing.T) {
	env := newTestEnv(t, "")
	env.seedCatalog()
	env.db.candidates[4] = &entity.Candidate{ID: 4, ConstituencyID: 1, PartyID: 5, FullName: "Withdrawn", Active: false}

	out, err := env.uc.CandidateList(authCtx(1), CandidateListInput{ConstituencyID: 1})
	require.NoError(t, err)
	require.Len(t, out.Candidates, 1)
	require.Equal(t, int64(3), out.Candidates[0].ID)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/storage"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

type ConstituencyCreateInput struct {
	Name string `validate:"required,min=2,max=100"`
	Code string `validate:"required,min=2,max=20"`
}

func (s *Usecase) ConstituencyCreate(ctx context.Context, in ConstituencyCreateInput) error {
	ctx, span := s.startSpan(ctx, "ConstituencyCreate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.CreateConstituency(ctx, entity.Constituency{
		ID:        s.uid.Generate(),
		Name:      strings.TrimSpace(in.Name),
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		Active:    true,
		CreatedAt: s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewBusiness("constituency code already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create constituency", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type ConstituencySetActiveInput struct {
	ConstituencyID int64 `validate:"required"`
	Active         bool
}

func (s *Usecase) ConstituencySetActive(ctx context.Context, in ConstituencySetActiveInput) error {
	ctx, span := s.startSpan(ctx, "ConstituencySetActive")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.SetConstituencyActive(ctx, in.ConstituencyID, in.Active); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("constituency not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo update constituency", "constituency_id", in.ConstituencyID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type ConstituencyListInput struct {
	IncludeInactive bool
}

type ConstituencyListOutput struct {
	Constituencies []entity.Constituency
}

func (s *Usecase) ConstituencyList(ctx context.Context, in ConstituencyListInput) (*ConstituencyListOutput, error) {
	ctx, span := s.startSpan(ctx, "ConstituencyList")
	defer span.End()

	list, err := s.repoDB.ListConstituencies(ctx, in.IncludeInactive)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list constituencies", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ConstituencyListOutput{Constituencies: list}, nil
}

type PartyCreateInput struct {
	Name         string `validate:"required,min=2,max=100"`
	Abbreviation string `validate:"required,min=1,max=10"`
}

func (s *Usecase) PartyCreate(ctx context.Context, in PartyCreateInput) error {
	ctx, span := s.startSpan(ctx, "PartyCreate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.CreateParty(ctx, entity.Party{
		ID:           s.uid.Generate(),
		Name:         strings.TrimSpace(in.Name),
		Abbreviation: strings.ToUpper(strings.TrimSpace(in.Abbreviation)),
		Active:       true,
		CreatedAt:    s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewBusiness("party already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create party", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type PartySetActiveInput struct {
	PartyID int64 `validate:"required"`
	Active  bool
}

func (s *Usecase) PartySetActive(ctx context.Context, in PartySetActiveInput) error {
	ctx, span := s.startSpan(ctx, "PartySetActive")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.SetPartyActive(ctx, in.PartyID, in.Active); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("party not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo update party", "party_id", in.PartyID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type PartyUploadSymbolInput struct {
	PartyID  int64 `validate:"required"`
	FileName string
	Body     io.Reader
}

// PartyUploadSymbol stores the party symbol in object storage and records
// the key.
func (s *Usecase) PartyUploadSymbol(ctx context.Context, in PartyUploadSymbolInput) error {
	ctx, span := s.startSpan(ctx, "PartyUploadSymbol")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}
	if in.Body == nil {
		return goerror.NewInvalidFormat("symbol file is required")
	}

	if _, err := s.repoDB.GetParty(ctx, in.PartyID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("party not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get party", "party_id", in.PartyID, "error", err)
		return goerror.NewServer(err)
	}

	key := fmt.Sprintf("parties/%d/symbol%s", in.PartyID, fileExt(in.FileName))
	if _, err := s.storage.PutObject(ctx, s.mediaBucket(), key, in.Body, storage.PutOptions{
		ContentType: contentTypeByExt(in.FileName),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store party symbol", "party_id", in.PartyID, "error", err)
		return goerror.NewUnavailable(err)
	}

	if err := s.repoDB.SetPartySymbol(ctx, in.PartyID, key); err != nil {
		slog.ErrorContext(ctx, "failed to repo record party symbol", "party_id", in.PartyID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type CandidateCreateInput struct {
	ConstituencyID int64  `validate:"required"`
	PartyID        int64  `validate:"required"`
	FullName       string `validate:"required,min=3,max=100"`
}

func (s *Usecase) CandidateCreate(ctx context.Context, in CandidateCreateInput) error {
	ctx, span := s.startSpan(ctx, "CandidateCreate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetConstituency(ctx, in.ConstituencyID); err != nil {
		return goerror.NewBusiness("constituency not found", goerror.CodeNotFound)
	}
	if _, err := s.repoDB.GetParty(ctx, in.PartyID); err != nil {
		return goerror.NewBusiness("party not found", goerror.CodeNotFound)
	}

	err := s.repoDB.CreateCandidate(ctx, entity.Candidate{
		ID:             s.uid.Generate(),
		ConstituencyID: in.ConstituencyID,
		PartyID:        in.PartyID,
		FullName:       strings.TrimSpace(in.FullName),
		Active:         true,
		CreatedAt:      s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewBusiness("party already has a candidate in this constituency", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create candidate", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type CandidateSetActiveInput struct {
	CandidateID int64 `validate:"required"`
	Active      bool
}

func (s *Usecase) CandidateSetActive(ctx context.Context, in CandidateSetActiveInput) error {
	ctx, span := s.startSpan(ctx, "CandidateSetActive")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.SetCandidateActive(ctx, in.CandidateID, in.Active); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("candidate not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo update candidate", "candidate_id", in.CandidateID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type CandidateUploadPhotoInput struct {
	CandidateID int64 `validate:"required"`
	FileName    string
	Body        io.Reader
}

// CandidateUploadPhoto stores the candidate photo in object storage and
// records the key.
func (s *Usecase) CandidateUploadPhoto(ctx context.Context, in CandidateUploadPhotoInput) error {
	ctx, span := s.startSpan(ctx, "CandidateUploadPhoto")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}
	if in.Body == nil {
		return goerror.NewInvalidFormat("photo file is required")
	}

	if _, err := s.repoDB.GetCandidate(ctx, in.CandidateID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("candidate not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get candidate", "candidate_id", in.CandidateID, "error", err)
		return goerror.NewServer(err)
	}

	key := fmt.Sprintf("candidates/%d/photo%s", in.CandidateID, fileExt(in.FileName))
	if _, err := s.storage.PutObject(ctx, s.mediaBucket(), key, in.Body, storage.PutOptions{
		ContentType: contentTypeByExt(in.FileName),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store candidate photo", "candidate_id", in.CandidateID, "error", err)
		return goerror.NewUnavailable(err)
	}

	if err := s.repoDB.SetCandidatePhoto(ctx, in.CandidateID, key); err != nil {
		slog.ErrorContext(ctx, "failed to repo record candidate photo", "candidate_id", in.CandidateID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type CandidateListInput struct {
	ConstituencyID int64 `validate:"required"`
}

type CandidateListOutput struct {
	Candidates []entity.Candidate
}

func (s *Usecase) CandidateList(ctx context.Context, in CandidateListInput) (*CandidateListOutput, error) {
	ctx, span := s.startSpan(ctx, "CandidateList")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	list, err := s.repoDB.ListCandidates(ctx, in.ConstituencyID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list candidates", "constituency_id", in.ConstituencyID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CandidateListOutput{Candidates: list}, nil
}

type PartyListInput struct {
	IncludeInactive bool
}

type PartyListOutput struct {
	Parties []entity.Party
}

func (s *Usecase) PartyList(ctx context.Context, in PartyListInput) (*PartyListOutput, error) {
	ctx, span := s.startSpan(ctx, "PartyList")
	defer span.End()

	list, err := s.repoDB.ListParties(ctx, in.IncludeInactive)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list parties", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PartyListOutput{Parties: list}, nil
}

func fileExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return strings.ToLower(name[i:])
	}
	return ""
}

func contentTypeByExt(name string) string {
	switch fileExt(name) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

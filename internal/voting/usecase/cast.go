package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/idempotency"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

type CastVoteInput struct {
	ConstituencyID int64  `validate:"required"`
	CandidateID    int64  `validate:"required"`
	Code           string `validate:"required,otpcode"`

	// OriginIP and ClientSignature come from the transport layer, not the
	// voter.
	OriginIP        string
	ClientSignature string
}

type CastVoteOutput struct {
	TransactionRef string
	CastAt         time.Time
}

// CastVote commits a ballot for the authenticated voter. The preconditions
// run in a fixed order and each failure is distinct, but they are advisory:
// the UNIQUE constraint on the ballot's voter reference is what actually
// guarantees one ballot per voter under concurrency.
func (s *Usecase) CastVote(ctx context.Context, in CastVoteInput) (*CastVoteOutput, error) {
	ctx, span := s.startSpan(ctx, "CastVote")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	voter, err := s.checkVoter(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	voted, err := s.repoDB.HasVoted(ctx, voter.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check prior ballot", "voter_id", voter.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if voted {
		return nil, goerror.NewBusiness("already voted", goerror.CodeConflict)
	}

	candidate, err := s.checkCatalog(ctx, in.ConstituencyID, in.CandidateID)
	if err != nil {
		return nil, err
	}

	gate, err := s.codeEngine.Validate(ctx, otpusecase.ValidateInput{
		Email:   voter.Email,
		Code:    in.Code,
		Purpose: otpentity.PurposeVoteCasting,
	})
	if err != nil {
		return nil, err
	}
	if !gate.Outcome.OK() {
		slog.WarnContext(ctx, "voting code rejected", "voter_id", voter.ID, "outcome", gate.Outcome.String())
		return nil, goerror.NewBusiness("verification code rejected: "+gate.Outcome.String(), goerror.CodeUnauthorized)
	}

	now := s.clock.Now()
	ballot := entity.Ballot{
		ID:              s.uid.Generate(),
		VoterID:         voter.ID,
		ConstituencyID:  in.ConstituencyID,
		CandidateID:     candidate.ID,
		PartyID:         candidate.PartyID,
		SessionToken:    s.uuid.Generate(),
		TransactionRef:  s.transactionRef(),
		OriginIP:        in.OriginIP,
		ClientSignature: s.fingerprint(in.ClientSignature),
		Status:          entity.BallotStatusCast,
		CastAt:          now,
	}

	// The idempotency gate absorbs client retries of the same cast; the
	// storage constraint stays authoritative for everything else.
	err = s.idem.Exec(ctx, fmt.Sprintf("vote:cast:%d", voter.ID), func(ctx context.Context) error {
		return s.repoDB.CreateBallot(ctx, ballot)
	})
	switch {
	case errors.Is(err, goerror.ErrConflict):
		slog.WarnContext(ctx, "duplicate ballot rejected by storage", "voter_id", voter.ID)
		return nil, goerror.NewBusiness("already voted", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		// A retry of a cast that is running, landed, or burned its key means
		// the voter's one ballot was already submitted.
		slog.WarnContext(ctx, "duplicate cast absorbed by idempotency gate", "voter_id", voter.ID, "error", err)
		return nil, goerror.NewBusiness("already voted", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create ballot", "voter_id", voter.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	constituency, err := s.repoDB.GetConstituency(ctx, in.ConstituencyID)
	if err != nil {
		// The ballot is committed; the receipt can live without the name.
		slog.WarnContext(ctx, "failed to repo get constituency for receipt", "voter_id", voter.ID, "error", err)
		constituency = &entity.Constituency{ID: in.ConstituencyID}
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishVoteReceipt(ctx, VoteReceiptEvent{
			Email:            voter.Email,
			TransactionRef:   ballot.TransactionRef,
			ConstituencyName: constituency.Name,
			CastAt:           now,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish vote receipt event", "voter_id", voter.ID, "error", err)
			return err
		}
		return nil
	})

	slog.InfoContext(ctx, "ballot committed", "voter_id", voter.ID, "transaction_ref", ballot.TransactionRef)

	return &CastVoteOutput{
		TransactionRef: ballot.TransactionRef,
		CastAt:         now,
	}, nil
}

// checkVoter runs precondition 1: the voter exists, is active, verified and
// not locked.
func (s *Usecase) checkVoter(ctx context.Context, id int64) (*entity.Voter, error) {
	voter, err := s.repoDB.GetVoter(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("voter not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get voter", "voter_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !voter.Active {
		return nil, goerror.NewBusiness("voter account is not active", goerror.CodeForbidden)
	}
	if !voter.Verified {
		return nil, goerror.NewBusiness("voter account is not verified", goerror.CodeForbidden)
	}
	if voter.Locked(s.clock.Now()) {
		return nil, goerror.NewBusiness("voter account is locked", goerror.CodeLocked)
	}
	return voter, nil
}

// checkCatalog runs preconditions 3-5: constituency active, candidate active
// and in that constituency, party active.
func (s *Usecase) checkCatalog(ctx context.Context, constituencyID, candidateID int64) (*entity.Candidate, error) {
	constituency, err := s.repoDB.GetConstituency(ctx, constituencyID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("constituency not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get constituency", "constituency_id", constituencyID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !constituency.Active {
		return nil, goerror.NewBusiness("constituency is not open for voting", goerror.CodeInvalidInput)
	}

	candidate, err := s.repoDB.GetCandidate(ctx, candidateID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("candidate not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get candidate", "candidate_id", candidateID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !candidate.Active {
		return nil, goerror.NewBusiness("candidate is not standing", goerror.CodeInvalidInput)
	}
	if candidate.ConstituencyID != constituencyID {
		return nil, goerror.NewBusiness("candidate does not stand in this constituency", goerror.CodeInvalidInput)
	}

	party, err := s.repoDB.GetParty(ctx, candidate.PartyID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("party not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get party", "party_id", candidate.PartyID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !party.Active {
		return nil, goerror.NewBusiness("party is not active", goerror.CodeInvalidInput)
	}

	return candidate, nil
}

// fingerprint replaces the raw client signature with a keyed digest so the
// device identifier itself never reaches storage. Identical clients still
// produce identical fingerprints for pattern analysis.
func (s *Usecase) fingerprint(signature string) string {
	if signature == "" {
		return ""
	}
	digest, err := s.signer.Hash(signature)
	if err != nil {
		return ""
	}
	return string(digest)
}

// transactionRef builds the receipt reference printed on confirmations, e.g.
// "VTX-018F2A7C9B3D".
func (s *Usecase) transactionRef() string {
	token := strings.ToUpper(strings.ReplaceAll(s.uuid.Generate(), "-", ""))
	if len(token) > 12 {
		token = token[:12]
	}
	return "VTX-" + token
}

type EligibilityOutput struct {
	Eligible bool
	Reason   string
}

// CheckEligibility restates preconditions 1-2 for pre-flight UI feedback. It
// is advisory only; CastVote re-checks everything and the storage constraint
// decides.
func (s *Usecase) CheckEligibility(ctx context.Context) (*EligibilityOutput, error) {
	ctx, span := s.startSpan(ctx, "CheckEligibility")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	voter, err := s.repoDB.GetVoter(ctx, claims.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return &EligibilityOutput{Reason: "voter not found"}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get voter", "voter_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	switch {
	case !voter.Active:
		return &EligibilityOutput{Reason: "voter account is not active"}, nil
	case !voter.Verified:
		return &EligibilityOutput{Reason: "voter account is not verified"}, nil
	case voter.Locked(s.clock.Now()):
		return &EligibilityOutput{Reason: "voter account is locked"}, nil
	}

	voted, err := s.repoDB.HasVoted(ctx, voter.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check prior ballot", "voter_id", voter.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if voted {
		return &EligibilityOutput{Reason: "already voted"}, nil
	}

	return &EligibilityOutput{Eligible: true}, nil
}

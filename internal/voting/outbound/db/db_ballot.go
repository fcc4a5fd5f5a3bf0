package db

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

const queryGetVoter = `
SELECT id, email, full_name, status, locked_until
FROM users
WHERE id = $1`

func (s *DB) GetVoter(ctx context.Context, id int64) (v *entity.Voter, err error) {
	ctx, span := s.startSpan(ctx, "GetVoter")
	defer func() { s.endSpan(span, err) }()

	var voter entity.Voter
	var status int16
	err = s.conn.QueryRow(ctx, queryGetVoter, id).Scan(
		&voter.ID,
		&voter.Email,
		&voter.FullName,
		&status,
		&voter.LockedUntil,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	// users.status: 1 pending, 2 active, 3 deactivated
	voter.Verified = status == 2
	voter.Active = status != 3
	return &voter, nil
}

const queryHasVoted = `SELECT EXISTS (SELECT 1 FROM ballots WHERE voter_id = $1)`

func (s *DB) HasVoted(ctx context.Context, voterID int64) (voted bool, err error) {
	ctx, span := s.startSpan(ctx, "HasVoted")
	defer func() { s.endSpan(span, err) }()

	if err = s.conn.QueryRow(ctx, queryHasVoted, voterID).Scan(&voted); err != nil {
		err = s.mapError(err)
		return false, err
	}
	return voted, nil
}

const queryCreateBallot = `
INSERT INTO ballots (id, voter_id, constituency_id, candidate_id, party_id, session_token, transaction_ref, origin_ip, client_signature, status, cast_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// CreateBallot inserts the ballot. The UNIQUE index on ballots.voter_id makes
// the insert the authoritative one-ballot-per-voter guard; a duplicate
// surfaces as goerror.ErrConflict.
func (s *DB) CreateBallot(ctx context.Context, b entity.Ballot) (err error) {
	ctx, span := s.startSpan(ctx, "CreateBallot")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateBallot,
		b.ID, b.VoterID, b.ConstituencyID, b.CandidateID, b.PartyID,
		b.SessionToken, b.TransactionRef, b.OriginIP, b.ClientSignature, b.Status, b.CastAt)
	err = s.mapError(err)
	return err
}

const queryListHistory = `
SELECT c.name, b.transaction_ref, b.status, b.cast_at
FROM ballots b
JOIN constituencies c ON c.id = b.constituency_id
WHERE b.voter_id = $1
ORDER BY b.cast_at DESC`

// ListHistory returns the anonymised history rows: no candidate or party
// columns are selected, on purpose.
func (s *DB) ListHistory(ctx context.Context, voterID int64) (items []entity.HistoryItem, err error) {
	ctx, span := s.startSpan(ctx, "ListHistory")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListHistory, voterID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.HistoryItem
		if err = rows.Scan(&it.ConstituencyName, &it.TransactionRef, &it.Status, &it.CastAt); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return items, nil
}

const queryFlagBallot = `
UPDATE ballots
SET status = $2
WHERE id = $1`

func (s *DB) FlagBallot(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "FlagBallot")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, queryFlagBallot, id, entity.BallotStatusFlagged)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}
	return nil
}

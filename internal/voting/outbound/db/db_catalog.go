package db

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

const queryGetConstituency = `
SELECT id, name, code, active, created_at
FROM constituencies
WHERE id = $1`

func (s *DB) GetConstituency(ctx context.Context, id int64) (c *entity.Constituency, err error) {
	ctx, span := s.startSpan(ctx, "GetConstituency")
	defer func() { s.endSpan(span, err) }()

	var out entity.Constituency
	err = s.conn.QueryRow(ctx, queryGetConstituency, id).Scan(
		&out.ID, &out.Name, &out.Code, &out.Active, &out.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &out, nil
}

const queryGetCandidate = `
SELECT id, constituency_id, party_id, full_name, COALESCE(photo_key, ''), active, created_at
FROM candidates
WHERE id = $1`

func (s *DB) GetCandidate(ctx context.Context, id int64) (c *entity.Candidate, err error) {
	ctx, span := s.startSpan(ctx, "GetCandidate")
	defer func() { s.endSpan(span, err) }()

	var out entity.Candidate
	err = s.conn.QueryRow(ctx, queryGetCandidate, id).Scan(
		&out.ID, &out.ConstituencyID, &out.PartyID, &out.FullName, &out.PhotoKey, &out.Active, &out.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &out, nil
}

const queryGetParty = `
SELECT id, name, abbreviation, COALESCE(symbol_key, ''), active, created_at
FROM parties
WHERE id = $1`

func (s *DB) GetParty(ctx context.Context, id int64) (p *entity.Party, err error) {
	ctx, span := s.startSpan(ctx, "GetParty")
	defer func() { s.endSpan(span, err) }()

	var out entity.Party
	err = s.conn.QueryRow(ctx, queryGetParty, id).Scan(
		&out.ID, &out.Name, &out.Abbreviation, &out.SymbolKey, &out.Active, &out.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &out, nil
}

const queryCreateConstituency = `
INSERT INTO constituencies (id, name, code, active, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (s *DB) CreateConstituency(ctx context.Context, c entity.Constituency) (err error) {
	ctx, span := s.startSpan(ctx, "CreateConstituency")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateConstituency, c.ID, c.Name, c.Code, c.Active, c.CreatedAt)
	err = s.mapError(err)
	return err
}

const querySetConstituencyActive = `
UPDATE constituencies
SET active = $2
WHERE id = $1`

func (s *DB) SetConstituencyActive(ctx context.Context, id int64, active bool) (err error) {
	ctx, span := s.startSpan(ctx, "SetConstituencyActive")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, querySetConstituencyActive, id, active)
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

const queryListConstituencies = `
SELECT id, name, code, active, created_at
FROM constituencies
WHERE active OR $1
ORDER BY name`

func (s *DB) ListConstituencies(ctx context.Context, includeInactive bool) (out []entity.Constituency, err error) {
	ctx, span := s.startSpan(ctx, "ListConstituencies")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListConstituencies, includeInactive)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var c entity.Constituency
		if err = rows.Scan(&c.ID, &c.Name, &c.Code, &c.Active, &c.CreatedAt); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		out = append(out, c)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return out, nil
}

const queryCreateParty = `
INSERT INTO parties (id, name, abbreviation, active, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (s *DB) CreateParty(ctx context.Context, p entity.Party) (err error) {
	ctx, span := s.startSpan(ctx, "CreateParty")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateParty, p.ID, p.Name, p.Abbreviation, p.Active, p.CreatedAt)
	err = s.mapError(err)
	return err
}

const querySetPartyActive = `
UPDATE parties
SET active = $2
WHERE id = $1`

func (s *DB) SetPartyActive(ctx context.Context, id int64, active bool) (err error) {
	ctx, span := s.startSpan(ctx, "SetPartyActive")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, querySetPartyActive, id, active)
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

const querySetPartySymbol = `
UPDATE parties
SET symbol_key = $2
WHERE id = $1`

func (s *DB) SetPartySymbol(ctx context.Context, id int64, key string) (err error) {
	ctx, span := s.startSpan(ctx, "SetPartySymbol")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, querySetPartySymbol, id, key)
	err = s.mapError(err)
	return err
}

const queryListParties = `
SELECT id, name, abbreviation, COALESCE(symbol_key, ''), active, created_at
FROM parties
WHERE active OR $1
ORDER BY name`

func (s *DB) ListParties(ctx context.Context, includeInactive bool) (out []entity.Party, err error) {
	ctx, span := s.startSpan(ctx, "ListParties")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListParties, includeInactive)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Party
		if err = rows.Scan(&p.ID, &p.Name, &p.Abbreviation, &p.SymbolKey, &p.Active, &p.CreatedAt); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		out = append(out, p)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return out, nil
}

const queryCreateCandidate = `
INSERT INTO candidates (id, constituency_id, party_id, full_name, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (s *DB) CreateCandidate(ctx context.Context, c entity.Candidate) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCandidate")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateCandidate,
		c.ID, c.ConstituencyID, c.PartyID, c.FullName, c.Active, c.CreatedAt)
	err = s.mapError(err)
	return err
}

const querySetCandidateActive = `
UPDATE candidates
SET active = $2
WHERE id = $1`

func (s *DB) SetCandidateActive(ctx context.Context, id int64, active bool) (err error) {
	ctx, span := s.startSpan(ctx, "SetCandidateActive")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, querySetCandidateActive, id, active)
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

const querySetCandidatePhoto = `
UPDATE candidates
SET photo_key = $2
WHERE id = $1`

func (s *DB) SetCandidatePhoto(ctx context.Context, id int64, key string) (err error) {
	ctx, span := s.startSpan(ctx, "SetCandidatePhoto")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, querySetCandidatePhoto, id, key)
	err = s.mapError(err)
	return err
}

const queryListCandidates = `
SELECT id, constituency_id, party_id, full_name, COALESCE(photo_key, ''), active, created_at
FROM candidates
WHERE constituency_id = $1 AND active
ORDER BY full_name`

func (s *DB) ListCandidates(ctx context.Context, constituencyID int64) (out []entity.Candidate, err error) {
	ctx, span := s.startSpan(ctx, "ListCandidates")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListCandidates, constituencyID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var c entity.Candidate
		if err = rows.Scan(&c.ID, &c.ConstituencyID, &c.PartyID, &c.FullName, &c.PhotoKey, &c.Active, &c.CreatedAt); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		out = append(out, c)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return out, nil
}

package db

import (
	"context"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

const queryTalliesByConstituency = `
SELECT p.id, p.name, COUNT(b.id)
FROM parties p
JOIN ballots b ON b.party_id = p.id
WHERE b.constituency_id = $1 AND b.status <> $2
GROUP BY p.id, p.name
ORDER BY COUNT(b.id) DESC`

func (s *DB) TalliesByConstituency(ctx context.Context, constituencyID int64) (out []entity.PartyTally, err error) {
	ctx, span := s.startSpan(ctx, "TalliesByConstituency")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryTalliesByConstituency, constituencyID, entity.BallotStatusCancelled)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.PartyTally
		if err = rows.Scan(&t.PartyID, &t.PartyName, &t.Votes); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		out = append(out, t)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return out, nil
}

const queryConstituencySummaries = `
SELECT c.id, c.name, p.id, p.name, COUNT(b.id)
FROM constituencies c
JOIN ballots b ON b.constituency_id = c.id AND b.status <> $1
JOIN parties p ON p.id = b.party_id
GROUP BY c.id, c.name, p.id, p.name
ORDER BY c.name, COUNT(b.id) DESC`

func (s *DB) ListConstituencySummaries(ctx context.Context) (out []entity.ConstituencySummary, err error) {
	ctx, span := s.startSpan(ctx, "ListConstituencySummaries")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryConstituencySummaries, entity.BallotStatusCancelled)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	index := map[int64]int{}
	for rows.Next() {
		var (
			cID, pID     int64
			cName, pName string
			votes        int64
		)
		if err = rows.Scan(&cID, &cName, &pID, &pName, &votes); err != nil {
			err = s.mapError(err)
			return nil, err
		}

		i, ok := index[cID]
		if !ok {
			out = append(out, entity.ConstituencySummary{ConstituencyID: cID, ConstituencyName: cName})
			i = len(out) - 1
			index[cID] = i
		}
		out[i].Tallies = append(out[i].Tallies, entity.PartyTally{PartyID: pID, PartyName: pName, Votes: votes})
		out[i].TotalVotes += votes
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return out, nil
}

const queryHourlyDistribution = `
SELECT date_trunc('hour', cast_at), COUNT(*)
FROM ballots
WHERE cast_at >= $1
GROUP BY 1
ORDER BY 1`

func (s *DB) HourlyDistribution(ctx context.Context, since time.Time) (out []entity.HourlyBucket, err error) {
	ctx, span := s.startSpan(ctx, "HourlyDistribution")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryHourlyDistribution, since)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var b entity.HourlyBucket
		if err = rows.Scan(&b.Hour, &b.Votes); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		out = append(out, b)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return out, nil
}

const queryTurnout = `
SELECT
	(SELECT COUNT(*) FROM users WHERE status = 2),
	(SELECT COUNT(*) FROM ballots WHERE status <> $1),
	(SELECT COUNT(*) FROM ballots WHERE status = $2)`

func (s *DB) Turnout(ctx context.Context) (stats *entity.TurnoutStats, err error) {
	ctx, span := s.startSpan(ctx, "Turnout")
	defer func() { s.endSpan(span, err) }()

	var out entity.TurnoutStats
	err = s.conn.QueryRow(ctx, queryTurnout, entity.BallotStatusCancelled, entity.BallotStatusFlagged).Scan(
		&out.EligibleVoters, &out.BallotsCast, &out.FlaggedBallots)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &out, nil
}

const querySuspiciousIPs = `
SELECT origin_ip, COUNT(*), MIN(cast_at), MAX(cast_at)
FROM ballots
WHERE origin_ip <> ''
GROUP BY origin_ip
HAVING COUNT(*) >= $1
ORDER BY COUNT(*) DESC`

func (s *DB) SuspiciousIPs(ctx context.Context, threshold int64) (out []entity.SuspiciousPattern, err error) {
	ctx, span := s.startSpan(ctx, "SuspiciousIPs")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, querySuspiciousIPs, threshold)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.SuspiciousPattern
		if err = rows.Scan(&p.OriginIP, &p.BallotCount, &p.FirstCastAt, &p.LastCastAt); err != nil {
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

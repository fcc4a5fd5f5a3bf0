// Package pgxcasbin persists Casbin policy rules in PostgreSQL through a
// pgx connection pool, so admin role grants survive restarts and can be
// changed at runtime without shipping a policy file.
package pgxcasbin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/persist"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

// ErrRuleTooWide is returned when a policy rule carries more values than the
// table can hold.
var ErrRuleTooWide = errors.New("pgxcasbin: rule has more than 6 values")

const defaultTable = "casbin_rules"

const maxRuleValues = 6

// Conn is the subset of pgxpool.Pool the adapter needs.
type Conn interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Adapter is a pgx-backed Casbin persist.Adapter.
type Adapter struct {
	conn  Conn
	table string
}

var (
	_ persist.Adapter      = (*Adapter)(nil)
	_ persist.BatchAdapter = (*Adapter)(nil)
)

// Option configures the adapter.
type Option func(*Adapter)

// WithTableName overrides the default rule table name.
func WithTableName(name string) Option {
	return func(a *Adapter) { a.table = name }
}

// NewAdapter connects to the rule table and creates it when missing. The
// initial probe retries with a capped fibonacci backoff so a briefly
// unreachable database during startup does not kill the process.
func NewAdapter(ctx context.Context, conn Conn, opts ...Option) (*Adapter, error) {
	a := &Adapter{conn: conn, table: defaultTable}
	for _, opt := range opts {
		opt(a)
	}

	b := retry.WithCappedDuration(2*time.Second, retry.NewFibonacci(100*time.Millisecond))
	b = retry.WithMaxRetries(5, b)
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := conn.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	ptype TEXT NOT NULL,
	v0 TEXT NOT NULL DEFAULT '',
	v1 TEXT NOT NULL DEFAULT '',
	v2 TEXT NOT NULL DEFAULT '',
	v3 TEXT NOT NULL DEFAULT '',
	v4 TEXT NOT NULL DEFAULT '',
	v5 TEXT NOT NULL DEFAULT ''
)`, a.table)
	if _, err := conn.Exec(ctx, createSQL); err != nil {
		return nil, err
	}

	return a, nil
}

// LoadPolicy reads every stored rule into the model.
func (a *Adapter) LoadPolicy(m model.Model) error {
	ctx := context.Background()

	query := fmt.Sprintf("SELECT ptype, v0, v1, v2, v3, v4, v5 FROM %s ORDER BY id", a.table)
	rows, err := a.conn.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		values := make([]string, maxRuleValues+1)
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return err
		}

		line := values[:1]
		for _, v := range values[1:] {
			if v == "" {
				break
			}
			line = append(line, v)
		}
		if err := persist.LoadPolicyArray(line, m); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SavePolicy replaces all stored rules with the model's current rules.
func (a *Adapter) SavePolicy(m model.Model) error {
	ctx := context.Background()

	if _, err := a.conn.Exec(ctx, fmt.Sprintf("DELETE FROM %s", a.table)); err != nil {
		return err
	}

	for _, section := range []string{"p", "g"} {
		for ptype, ast := range m[section] {
			for _, rule := range ast.Policy {
				if err := a.insert(ctx, ptype, rule); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// AddPolicy stores one rule.
func (a *Adapter) AddPolicy(_ string, ptype string, rule []string) error {
	return a.insert(context.Background(), ptype, rule)
}

// RemovePolicy deletes one rule.
func (a *Adapter) RemovePolicy(_ string, ptype string, rule []string) error {
	return a.delete(context.Background(), ptype, 0, rule)
}

// AddPolicies stores multiple rules.
func (a *Adapter) AddPolicies(_ string, ptype string, rules [][]string) error {
	ctx := context.Background()
	for _, rule := range rules {
		if err := a.insert(ctx, ptype, rule); err != nil {
			return err
		}
	}
	return nil
}

// RemovePolicies deletes multiple rules.
func (a *Adapter) RemovePolicies(_ string, ptype string, rules [][]string) error {
	ctx := context.Background()
	for _, rule := range rules {
		if err := a.delete(ctx, ptype, 0, rule); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFilteredPolicy deletes rules whose values starting at fieldIndex match
// the given values; empty strings match anything.
func (a *Adapter) RemoveFilteredPolicy(_ string, ptype string, fieldIndex int, fieldValues ...string) error {
	return a.delete(context.Background(), ptype, fieldIndex, fieldValues)
}

func (a *Adapter) insert(ctx context.Context, ptype string, rule []string) error {
	if len(rule) > maxRuleValues {
		return ErrRuleTooWide
	}

	values := make([]string, maxRuleValues)
	copy(values, rule)

	query := fmt.Sprintf(
		"INSERT INTO %s (ptype, v0, v1, v2, v3, v4, v5) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		a.table,
	)
	args := make([]any, 0, maxRuleValues+1)
	args = append(args, ptype)
	for _, v := range values {
		args = append(args, v)
	}

	_, err := a.conn.Exec(ctx, query, args...)
	return err
}

func (a *Adapter) delete(ctx context.Context, ptype string, fieldIndex int, fieldValues []string) error {
	if fieldIndex+len(fieldValues) > maxRuleValues {
		return ErrRuleTooWide
	}

	conds := []string{"ptype = $1"}
	args := []any{ptype}
	for i, v := range fieldValues {
		if v == "" {
			continue
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("v%d = $%d", fieldIndex+i, len(args)))
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s", a.table, strings.Join(conds, " AND "))
	_, err := a.conn.Exec(ctx, query, args...)
	return err
}

// Package oracle is an independent membership evaluator backed by an
// in-memory SQLite database.
//
// It stores intervals exactly as written, without canonicalization, and
// answers "is p in A op B" with plain SQL predicates. The conformance
// harness compares those answers with the timeset engine at every interval
// boundary, which is enough to pin down a piecewise-constant membership
// function completely.
//
// Instants are stored as instant.Value.Unix pairs and compared as SQLite
// row values, so wall-clock values keep their order across the whole range
// of time.Time.
package oracle

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/timeset/internal/instant"
)

//go:embed schema.sql
var schemaSQL string

// Op is a binary set operation the oracle can evaluate pointwise.
type Op string

const (
	OpUnion        Op = "union"
	OpIntersection Op = "intersection"
	OpDifference   Op = "difference"
)

// Oracle evaluates membership against raw intervals held in SQLite.
type Oracle struct {
	db *sql.DB
}

// Open creates a private in-memory database. Nothing is written to disk.
func Open() (*Oracle, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open oracle database: %w", err)
	}

	// Every connection to :memory: is a separate database, so pin the pool
	// to a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to oracle database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply oracle schema: %w", err)
	}
	return &Oracle{db: db}, nil
}

// Close releases the database.
func (o *Oracle) Close() error {
	if o.db == nil {
		return nil
	}
	return o.db.Close()
}

// Load records raw intervals under name. Loading the same name twice
// appends.
func (o *Oracle) Load(ctx context.Context, name string, raw []instant.ValueInterval) error {
	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("load %q: begin: %w", name, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO intervals (set_name, lo_s, lo_ns, hi_s, hi_ns) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("load %q: prepare: %w", name, err)
	}
	defer stmt.Close()

	for i, iv := range raw {
		loS, loNs := iv.Start().Unix()
		hiS, hiNs := iv.End().Unix()
		if _, err := stmt.ExecContext(ctx, name, loS, loNs, hiS, hiNs); err != nil {
			return fmt.Errorf("load %q: interval %d: %w", name, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("load %q: commit: %w", name, err)
	}
	return nil
}

const memberSQL = `EXISTS (SELECT 1 FROM intervals WHERE set_name = ? AND (lo_s, lo_ns) <= (?, ?) AND (?, ?) < (hi_s, hi_ns))`

// memberArgs binds memberSQL for p in the named set.
func memberArgs(name string, p instant.Value) []any {
	s, ns := p.Unix()
	return []any{name, s, ns, s, ns}
}

// Member reports whether p lies in any raw interval loaded under name.
func (o *Oracle) Member(ctx context.Context, name string, p instant.Value) (bool, error) {
	var in bool
	if err := o.db.QueryRowContext(ctx, `SELECT `+memberSQL, memberArgs(name, p)...).Scan(&in); err != nil {
		return false, fmt.Errorf("member %q: %w", name, err)
	}
	return in, nil
}

// Eval reports whether p lies in (a op b).
func (o *Oracle) Eval(ctx context.Context, op Op, a, b string, p instant.Value) (bool, error) {
	var combine string
	switch op {
	case OpUnion:
		combine = memberSQL + ` OR ` + memberSQL
	case OpIntersection:
		combine = memberSQL + ` AND ` + memberSQL
	case OpDifference:
		combine = memberSQL + ` AND NOT ` + memberSQL
	default:
		return false, fmt.Errorf("oracle: unsupported op %q", op)
	}

	var in bool
	args := append(memberArgs(a, p), memberArgs(b, p)...)
	if err := o.db.QueryRowContext(ctx, `SELECT `+combine, args...).Scan(&in); err != nil {
		return false, fmt.Errorf("eval %s(%q, %q): %w", op, a, b, err)
	}
	return in, nil
}

// Names returns the distinct set names loaded so far, in order.
func (o *Oracle) Names(ctx context.Context) ([]string, error) {
	rows, err := o.db.QueryContext(ctx, `SELECT DISTINCT set_name FROM intervals ORDER BY set_name`)
	if err != nil {
		return nil, fmt.Errorf("names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("names: scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

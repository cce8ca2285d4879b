// Package sqlitesink stores event records in SQLite. Each run gets a row
// in runs keyed by its UUID; every event, jet, generator jet and
// calorimeter jet gets a row carrying the key kinematics as columns and
// the full record as JSON. The schema is managed by embedded
// golang-migrate migrations.
package sqlitesink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/jetforest/internal/jets/record"
	"github.com/banshee-data/jetforest/internal/sink"
)

// Run identifies the run whose events a Store receives.
type Run struct {
	ID     uuid.UUID
	Config string // resolved configuration, JSON
}

// Store is a sink.Sink backed by a SQLite database.
type Store struct {
	db      *sql.DB
	run     Run
	written int
	closed  bool
}

// OpenDB opens the database at path without touching the schema.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Open opens path, brings the schema up to date and registers run.
func Open(ctx context.Context, path string, run Run) (*Store, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := MigrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO runs (run_id, config_json) VALUES (?, ?)`, run.ID.String(), run.Config); err != nil {
		db.Close()
		return nil, fmt.Errorf("register run %s: %w", run.ID, err)
	}
	return &Store{db: db, run: run}, nil
}

// RunID returns the id of the run being written.
func (s *Store) RunID() uuid.UUID { return s.run.ID }

// DB exposes the underlying handle for queries.
func (s *Store) DB() *sql.DB { return s.db }

// Write stores ev and its records in one transaction.
func (s *Store) Write(ctx context.Context, ev *record.Event) error {
	if s.closed {
		return fmt.Errorf("sqlitesink: write after close")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO events (run_id, run, lumi, evt, pthat, beam_id1, beam_id2, nref, ngen, ncalo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.run.ID.String(), ev.Run, ev.Lumi, ev.Evt, ev.Pthat, ev.BeamID1, ev.BeamID2,
		ev.NRef(), ev.NGen(), ev.NCalo())
	if err != nil {
		return fmt.Errorf("insert event %d: %w", ev.Evt, err)
	}
	eventID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("event id: %w", err)
	}

	for i := range ev.Jets {
		j := &ev.Jets[i]
		payload, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("encode jet %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO jets (event_id, idx, rawpt, jtpt, jteta, jtphi, jtm, refpt, refeta, refphi, subid, record_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			eventID, i, j.RawPt, j.Pt, j.Eta, j.Phi, j.M, j.RefPt, j.RefEta, j.RefPhi, j.SubID, string(payload)); err != nil {
			return fmt.Errorf("insert jet %d: %w", i, err)
		}
	}

	for i := range ev.GenJets {
		g := &ev.GenJets[i]
		payload, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("encode gen jet %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO gen_jets (event_id, idx, genmatchindex, genpt, geneta, genphi, record_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			eventID, i, g.MatchIndex, g.Pt, g.Eta, g.Phi, string(payload)); err != nil {
			return fmt.Errorf("insert gen jet %d: %w", i, err)
		}
	}

	for i := range ev.Calo {
		c := &ev.Calo[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO calo_jets (event_id, idx, calopt, caloeta, calophi) VALUES (?, ?, ?, ?, ?)`,
			eventID, i, c.Pt, c.Eta, c.Phi); err != nil {
			return fmt.Errorf("insert calo jet %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event %d: %w", ev.Evt, err)
	}
	s.written++
	return nil
}

// Close marks the run finished and closes the database.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = CURRENT_TIMESTAMP, events_written = ? WHERE run_id = ?`,
		s.written, s.run.ID.String())
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("close run %s: %w", s.run.ID, err)
	}
	return nil
}

var _ sink.Sink = (*Store)(nil)

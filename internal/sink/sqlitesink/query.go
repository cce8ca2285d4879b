package sqlitesink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/banshee-data/jetforest/internal/jets/record"
)

// EventRow is one row of the events table.
type EventRow struct {
	ID               int64
	RunID            string
	Run, Lumi, Evt   int32
	Pthat            float32
	NRef, NGen, NCal int
}

// ListEvents returns the events of runID in insertion order.
func ListEvents(ctx context.Context, db *sql.DB, runID string) ([]EventRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT event_id, run_id, run, lumi, evt, pthat, nref, ngen, ncalo
		FROM events WHERE run_id = ? ORDER BY event_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []EventRow
	for rows.Next() {
		var e EventRow
		if err := rows.Scan(&e.ID, &e.RunID, &e.Run, &e.Lumi, &e.Evt, &e.Pthat, &e.NRef, &e.NGen, &e.NCal); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LoadJets decodes the jet records of one event, ordered by index.
func LoadJets(ctx context.Context, db *sql.DB, eventID int64) ([]record.JetRecord, error) {
	return loadRecords[record.JetRecord](ctx, db, `SELECT record_json FROM jets WHERE event_id = ? ORDER BY idx`, eventID)
}

// LoadGenJets decodes the generator-jet records of one event.
func LoadGenJets(ctx context.Context, db *sql.DB, eventID int64) ([]record.GenJetRecord, error) {
	return loadRecords[record.GenJetRecord](ctx, db, `SELECT record_json FROM gen_jets WHERE event_id = ? ORDER BY idx`, eventID)
}

func loadRecords[T any](ctx context.Context, db *sql.DB, query string, eventID int64) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var r T
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunSummary reports the events_written counter of a finished run.
func RunSummary(ctx context.Context, db *sql.DB, runID string) (written int, finished bool, err error) {
	var fin sql.NullString
	err = db.QueryRowContext(ctx,
		`SELECT events_written, finished_at FROM runs WHERE run_id = ?`, runID).Scan(&written, &fin)
	if err != nil {
		return 0, false, fmt.Errorf("query run %s: %w", runID, err)
	}
	return written, fin.Valid, nil
}

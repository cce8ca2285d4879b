package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/monitoring"
	"github.com/banshee-data/jetforest/internal/qa"
	"github.com/banshee-data/jetforest/internal/sink/sqlitesink"
	"github.com/banshee-data/jetforest/internal/testutil"
)

func writeEvents(t *testing.T, path string, events ...*event.Event) {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, ev := range events {
		require.NoError(t, enc.Encode(ev))
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestExecute_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, execute(context.Background(), nil, &out), errUsage)
	assert.ErrorIs(t, execute(context.Background(), []string{"bogus"}, &out), errUsage)
	assert.ErrorIs(t, execute(context.Background(), []string{"run"}, &out), errUsage)
	assert.ErrorIs(t, execute(context.Background(), []string{"migrate"}, &out), errUsage)

	require.NoError(t, execute(context.Background(), []string{"help"}, &out))
	assert.Contains(t, out.String(), "Usage: jetforest")
}

func TestExecute_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute(context.Background(), []string{"version"}, &out))
	assert.Contains(t, out.String(), "jetforest dev")
}

func TestExecute_Migrate(t *testing.T) {
	monitoring.SetLogger(nil)
	db := filepath.Join(t.TempDir(), "forest.db")

	var out bytes.Buffer
	require.NoError(t, execute(context.Background(), []string{"migrate", "-db", db, "version"}, &out))
	assert.Contains(t, out.String(), "schema version 0")

	out.Reset()
	require.NoError(t, execute(context.Background(), []string{"migrate", "-db", db, "up"}, &out))
	assert.Contains(t, out.String(), "schema version 2 dirty false")

	out.Reset()
	require.NoError(t, execute(context.Background(), []string{"migrate", "-db", db, "down"}, &out))
	assert.Contains(t, out.String(), "schema version 1")

	assert.ErrorIs(t, execute(context.Background(), []string{"migrate", "-db", db, "sideways"}, &out), errUsage)
}

func TestExecute_Run(t *testing.T) {
	monitoring.SetLogger(nil)
	dir := t.TempDir()
	input := filepath.Join(dir, "events.jsonl")
	writeEvents(t, input,
		testutil.DataEvent(testutil.Jet(50, 0.5, 1), testutil.Jet(30, -1, -2)),
		testutil.DataEvent(testutil.Jet(25, 0, 0)),
		testutil.DataEvent(),
	)

	rootPath := filepath.Join(dir, "forest.root")
	dbPath := filepath.Join(dir, "forest.db")
	qaDir := filepath.Join(dir, "qa")

	var out bytes.Buffer
	err := execute(context.Background(), []string{
		"run", "-input", input, "-root", rootPath, "-db", dbPath, "-qa-dir", qaDir, "-max-events", "2",
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "events 2 aborted 0 jets 3")

	f, err := groot.Open(rootPath)
	require.NoError(t, err)
	defer f.Close()
	obj, err := f.Get("t")
	require.NoError(t, err)
	assert.Equal(t, int64(2), obj.(rtree.Tree).Entries())
	_, err = f.Get("jtpt")
	assert.NoError(t, err, "QA histograms stored next to the tree")

	db, err := sqlitesink.OpenDB(dbPath)
	require.NoError(t, err)
	defer db.Close()
	var runs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	assert.Equal(t, 1, runs)
	var events int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&events))
	assert.Equal(t, 2, events)

	_, err = os.Stat(filepath.Join(qaDir, qa.ReportFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(qaDir, "jtpt.png"))
	assert.NoError(t, err)
}

func TestExecute_RunAbortsOnFatalEvent(t *testing.T) {
	monitoring.SetLogger(nil)
	dir := t.TempDir()
	input := filepath.Join(dir, "events.jsonl")
	bad := testutil.DataEvent(testutil.Jet(50, 0, 0))
	bad.Candidates = nil
	writeEvents(t, input, testutil.DataEvent(), bad)

	var out bytes.Buffer
	err := execute(context.Background(), []string{"run", "-input", input}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, event.ErrMissingCollection)
	assert.Contains(t, out.String(), "events 1 aborted 1")
}

func TestExecute_RunBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "analyzer.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("{}"), 0o644))
	input := filepath.Join(dir, "events.jsonl")
	writeEvents(t, input)

	err := execute(context.Background(), []string{"run", "-config", cfg, "-input", input}, &bytes.Buffer{})
	assert.Error(t, err)
}

// Package pipeline drives a run: events are pulled from a Source,
// assembled into records, written to a Sink and filled into the QA
// monitor, strictly in input order.
//
// A fatal error from any stage stops the run. The failing event produces
// no output; events written before it stay written.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/jetforest/internal/jets/assembler"
	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/monitoring"
	"github.com/banshee-data/jetforest/internal/qa"
	"github.com/banshee-data/jetforest/internal/sink"
	"github.com/banshee-data/jetforest/internal/timeutil"
)

// DefaultProgressEvery is how often, in events, progress is logged.
const DefaultProgressEvery = 1000

// Runner wires the stages of one run. Source and Sink are owned by the
// caller and are not closed by Run.
type Runner struct {
	RunID     uuid.UUID
	Source    event.Source
	Assembler *assembler.Assembler
	Sink      sink.Sink
	Monitor   *qa.Monitor // optional

	// MaxEvents stops the run after that many events; 0 means no limit.
	MaxEvents     int
	ProgressEvery int
	Clock         timeutil.Clock // defaults to the wall clock
}

// Stats counts what a run did.
type Stats struct {
	RunID     uuid.UUID
	Processed int
	Aborted   int
	Jets      int
	GenJets   int
	Truncated int
	Elapsed   time.Duration
}

// Run processes events until the source is exhausted, MaxEvents is
// reached, ctx is cancelled or a stage fails. The returned Stats are
// valid in every case.
func (r *Runner) Run(ctx context.Context) (stats Stats, err error) {
	if r.RunID == uuid.Nil {
		r.RunID = uuid.New()
	}
	stats.RunID = r.RunID
	if r.Source == nil || r.Assembler == nil || r.Sink == nil {
		return stats, fmt.Errorf("pipeline: source, assembler and sink are required")
	}
	every := r.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	clock := r.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	start := clock.Now()
	defer func() { stats.Elapsed = clock.Since(start) }()

	monitoring.Logf("run %s: started", r.RunID)
	for {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("run %s cancelled after %d events: %w", r.RunID, stats.Processed, err)
		}
		if r.MaxEvents > 0 && stats.Processed >= r.MaxEvents {
			break
		}

		ev, err := r.Source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read event %d: %w", stats.Processed, err)
		}

		rec, err := r.Assembler.Process(ev)
		if err != nil {
			stats.Aborted++
			return stats, fmt.Errorf("event aborted: %w", err)
		}
		if err := r.Sink.Write(ctx, rec); err != nil {
			return stats, fmt.Errorf("write event %d: %w", rec.Evt, err)
		}
		if r.Monitor != nil {
			r.Monitor.Fill(rec)
		}

		stats.Processed++
		stats.Jets += rec.NRef()
		stats.GenJets += rec.NGen()
		stats.Truncated += rec.Truncated()
		if stats.Processed%every == 0 {
			monitoring.Logf("run %s: %d events processed (%.1f/s)",
				r.RunID, stats.Processed, timeutil.Rate(stats.Processed, clock.Since(start)))
		}
	}

	monitoring.Logf("run %s: finished, %d events, %d jets, %d gen jets, %d truncated",
		r.RunID, stats.Processed, stats.Jets, stats.GenJets, stats.Truncated)
	return stats, nil
}

package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source delivers events in order. Next returns io.EOF after the last
// event. Fetching is blocking and is never retried.
type Source interface {
	Next(ctx context.Context) (*Event, error)
	Close() error
}

// JSONLSource decodes one JSON event object after another from a stream.
type JSONLSource struct {
	dec    *json.Decoder
	closer io.Closer
	read   int
}

// NewJSONLSource reads events from r. The caller keeps ownership of r.
func NewJSONLSource(r io.Reader) *JSONLSource {
	return &JSONLSource{dec: json.NewDecoder(bufio.NewReaderSize(r, 1<<20))}
}

// OpenJSONL opens a JSON lines event file.
func OpenJSONL(path string) (*JSONLSource, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open event file: %w", err)
	}
	src := NewJSONLSource(f)
	src.closer = f
	return src, nil
}

// Next decodes the next event.
func (s *JSONLSource) Next(ctx context.Context) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var ev Event
	if err := s.dec.Decode(&ev); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode event %d: %w", s.read, err)
	}
	s.read++
	return &ev, nil
}

// Close releases the underlying file when the source owns one.
func (s *JSONLSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// SliceSource serves events from memory.
type SliceSource struct {
	Events []*Event
	pos    int
}

// NewSliceSource returns a source over events.
func NewSliceSource(events ...*Event) *SliceSource {
	return &SliceSource{Events: events}
}

// Next returns the next stored event.
func (s *SliceSource) Next(ctx context.Context) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.Events) {
		return nil, io.EOF
	}
	ev := s.Events[s.pos]
	s.pos++
	return ev, nil
}

// Close is a no-op.
func (s *SliceSource) Close() error { return nil }

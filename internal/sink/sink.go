// Package sink defines where assembled event records go.
//
// Key types: Sink, Multi.
//
// Dependency rule: sink and its subpackages depend on record only. They
// never see input events or configuration.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/banshee-data/jetforest/internal/jets/record"
)

// Sink receives one record per processed event, in input order.
type Sink interface {
	Write(ctx context.Context, ev *record.Event) error
	Close() error
}

// Multi fans each record out to every sink in order. The first write
// error stops the fan-out.
type Multi []Sink

// Write writes ev to every sink.
func (m Multi) Write(ctx context.Context, ev *record.Event) error {
	for i, s := range m {
		if err := s.Write(ctx, ev); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every record.
type Discard struct{}

func (Discard) Write(context.Context, *record.Event) error { return nil }
func (Discard) Close() error                               { return nil }

var (
	_ Sink = Multi(nil)
	_ Sink = Discard{}
)

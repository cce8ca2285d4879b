package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/record"
)

type recorder struct {
	got      []int32
	writeErr error
	closeErr error
	closed   bool
}

func (r *recorder) Write(_ context.Context, ev *record.Event) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.got = append(r.got, ev.Evt)
	return nil
}

func (r *recorder) Close() error {
	r.closed = true
	return r.closeErr
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := Multi{a, Discard{}, b}

	for i := int32(1); i <= 3; i++ {
		require.NoError(t, m.Write(context.Background(), record.NewEvent(event.ID{Event: i}, 0)))
	}
	assert.Equal(t, []int32{1, 2, 3}, a.got)
	assert.Equal(t, []int32{1, 2, 3}, b.got)
	require.NoError(t, m.Close())
	assert.True(t, a.closed && b.closed)
}

func TestMulti_StopsOnWriteError(t *testing.T) {
	boom := errors.New("disk full")
	a, b := &recorder{writeErr: boom}, &recorder{}
	err := Multi{a, b}.Write(context.Background(), record.NewEvent(event.ID{}, 0))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, b.got)
}

func TestMulti_CloseJoinsErrors(t *testing.T) {
	e1, e2 := errors.New("one"), errors.New("two")
	a, b := &recorder{closeErr: e1}, &recorder{closeErr: e2}
	err := Multi{a, b}.Close()
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
	assert.True(t, b.closed)
}

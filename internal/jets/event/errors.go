package event

import (
	"errors"
	"fmt"
)

// ErrMissingCollection is matched by every MissingCollectionError.
var ErrMissingCollection = errors.New("missing required collection")

// ErrSideChannelMiss reports an identity-keyed lookup for an object that
// the producing side channel does not cover. It signals a producer and
// consumer mismatch and is never defaulted.
var ErrSideChannelMiss = errors.New("side-channel lookup miss")

// MissingCollectionError names an input collection that a configured
// feature requires but the event does not carry.
type MissingCollectionError struct {
	Name string
}

func (e *MissingCollectionError) Error() string {
	return fmt.Sprintf("missing required collection %q", e.Name)
}

// Is makes errors.Is(err, ErrMissingCollection) hold.
func (e *MissingCollectionError) Is(target error) bool {
	return target == ErrMissingCollection
}

// ValueMap is an identity-keyed side channel: values keyed by the index of
// the owning object in its collection. A nil map is an absent side channel.
type ValueMap[T any] map[int]T

// Lookup returns the value for the object at index i.
func (m ValueMap[T]) Lookup(name string, i int) (T, error) {
	v, ok := m[i]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s[%d]: %w", name, i, ErrSideChannelMiss)
	}
	return v, nil
}

package subjets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/jetforest/internal/jets/event"
)

func TestExtract_NoDaughtersYieldsSentinel(t *testing.T) {
	for _, daughters := range [][]event.Particle{nil, {}} {
		got := Extract(daughters)
		require.Len(t, got, 1)
		assert.Equal(t, Tuple{-999, -999, -999, -999}, got[0])
		assert.True(t, IsSentinel(got))
	}
}

func TestExtract_PreservesOrderAndLength(t *testing.T) {
	daughters := []event.Particle{
		{Kin: event.Kin{Pt: 40, Eta: 0.1, Phi: 0.2, Mass: 3}},
		{Kin: event.Kin{Pt: 12, Eta: -0.3, Phi: 0.25, Mass: 1}},
		{Kin: event.Kin{Pt: 5, Eta: 0.05, Phi: -0.1, Mass: 0}},
	}
	got := Extract(daughters)
	require.Len(t, got, len(daughters))
	assert.Equal(t, Tuple{Pt: 40, Eta: 0.1, Phi: 0.2, M: 3}, got[0])
	assert.Equal(t, float32(12), got[1].Pt)
	assert.Equal(t, float32(5), got[2].Pt)
	assert.False(t, IsSentinel(got))
}

func TestSentinelList_IsFresh(t *testing.T) {
	a := SentinelList()
	a[0].Pt = 1
	assert.Equal(t, float32(-999), SentinelList()[0].Pt)
}

func TestExtractConstituents(t *testing.T) {
	got := ExtractConstituents(nil)
	require.Len(t, got, 1)
	assert.Equal(t, SentinelConstituent, got[0])

	got = ExtractConstituents([]event.Particle{
		{Kin: event.Kin{Pt: 3, Mass: 4}, PdgID: 211},
	})
	require.Len(t, got, 1)
	assert.Equal(t, int32(211), got[0].ID)
	assert.InDelta(t, 5.0, float64(got[0].E), 1e-5)
}

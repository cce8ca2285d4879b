package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/subjets"
)

func TestNewJetRecord_Sentinels(t *testing.T) {
	r := NewJetRecord()

	assert.Equal(t, float32(-999), r.Pt)
	assert.Equal(t, float32(-999), r.RefPt)
	assert.Equal(t, float32(-999), r.WTAEta)
	assert.Equal(t, int32(-999), r.SubID)
	assert.Equal(t, int32(-999), r.RefPartonFlavorForB)
	assert.Equal(t, float32(-999), r.DiscrBvsAll)

	// Composition counts and sums start at zero, not at the sentinel.
	assert.Zero(t, r.TrackN)
	assert.Zero(t, r.ChargedSum)
	assert.Zero(t, r.PfCHF)

	assert.True(t, subjets.IsSentinel(r.SubJets))
	assert.True(t, subjets.IsSentinel(r.RefSubJets))
	require.Len(t, r.Constituents, 1)
	assert.Equal(t, subjets.SentinelConstituent, r.Constituents[0])
	assert.False(t, r.HasRef())
}

func TestNewJetRecord_ListsAreNotShared(t *testing.T) {
	a, b := NewJetRecord(), NewJetRecord()
	a.SubJets[0].Pt = 1
	assert.Equal(t, float32(-999), b.SubJets[0].Pt)
}

func TestNewGenJetRecord(t *testing.T) {
	g := NewGenJetRecord()
	assert.Equal(t, int32(-1), g.MatchIndex)
	assert.Equal(t, float32(-1), g.DR)
	assert.Equal(t, float32(-999), g.DPhi)
	assert.False(t, g.Matched())
	assert.True(t, subjets.IsSentinel(g.SubJets))
}

func TestEvent_Capacity(t *testing.T) {
	ev := NewEvent(event.ID{Run: 1, Lumi: 2, Event: 3}, 2)
	assert.Equal(t, int32(1), ev.Run)
	assert.Equal(t, int32(3), ev.Evt)
	assert.Equal(t, float32(-999), ev.Pthat)

	for i := 0; i < 2; i++ {
		idx, ok := ev.AddJet(NewJetRecord())
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
	assert.True(t, ev.Full())
	idx, ok := ev.AddJet(NewJetRecord())
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
	assert.Equal(t, 2, ev.NRef())

	// Lists are counted independently.
	_, ok = ev.AddGenJet(NewGenJetRecord())
	assert.True(t, ok)
	assert.True(t, ev.AddCalo(CaloRecord{Pt: 10}))
	assert.Equal(t, 1, ev.NGen())
	assert.Equal(t, 1, ev.NCalo())
	assert.Equal(t, 1, ev.Truncated())
}

func TestNewEvent_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewEvent(event.ID{}, 0).Capacity())
}

func TestJetRecord_JSONNames(t *testing.T) {
	data, err := json.Marshal(NewJetRecord())
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, name := range []string{"rawpt", "jtpt", "jty", "refdrjt", "refparton_flavorForB", "jtSubJet", "discr_CvsL", "WTAphi"} {
		assert.Contains(t, fields, name)
	}
}

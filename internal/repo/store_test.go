package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/ident"
)

func TestStoreTargetStateDefaultsToUnknown(t *testing.T) {
	s := newStore()
	assert.Equal(t, chemtypes.Unknown, s.targetState("never-seen"))

	_, ok := s.instance("never-seen")
	assert.False(t, ok)
}

func TestStoreApplyStateChangeMovesBetweenBuckets(t *testing.T) {
	s := newStore()
	uri := ident.TargetURI("u1")
	target := chemtypes.Target{URI: uri}
	now := time.Now()

	sc1 := chemtypes.StateChange{
		From: chemtypes.Unknown,
		To:   chemtypes.Unmonitored,
		Msg:  chemtypes.LifecycleMsg{Kind: chemtypes.MsgDiscovery, Target: target, Time: now},
	}
	s.applyStateChange(sc1)

	assert.Equal(t, chemtypes.Unmonitored, s.targetState(uri))
	buckets := s.stateMaps.Get()
	assert.Contains(t, buckets[chemtypes.Unmonitored], uri)
	assert.NotContains(t, buckets[chemtypes.Unknown], uri)

	sc2 := chemtypes.StateChange{
		From: chemtypes.Unmonitored,
		To:   chemtypes.Assigned,
		Msg:  chemtypes.LifecycleMsg{Kind: chemtypes.MsgAssignment, Target: target, FlaskID: "f1", Time: now},
	}
	s.applyStateChange(sc2)

	assert.Equal(t, chemtypes.Assigned, s.targetState(uri))
	buckets = s.stateMaps.Get()
	assert.Contains(t, buckets[chemtypes.Assigned], uri)
	assert.NotContains(t, buckets[chemtypes.Unmonitored], uri)
}

func TestStoreDeleteTargetIsIdempotent(t *testing.T) {
	s := newStore()
	uri := ident.TargetURI("u1")
	target := chemtypes.Target{URI: uri}

	s.applyStateChange(chemtypes.StateChange{
		From: chemtypes.Unknown,
		To:   chemtypes.Unmonitored,
		Msg:  chemtypes.LifecycleMsg{Kind: chemtypes.MsgDiscovery, Target: target},
	})

	s.deleteTarget(uri)
	_, ok := s.instance(uri)
	assert.False(t, ok)
	assert.NotContains(t, s.stateMaps.Get()[chemtypes.Unmonitored], uri)

	require.NotPanics(t, func() { s.deleteTarget(uri) })
	require.NotPanics(t, func() { s.deleteTarget("never-seen") })
}

func TestStoreUpsertFlaskInitializesDistribution(t *testing.T) {
	s := newStore()
	flask := chemtypes.Flask{ID: "f1", Address: "10.0.0.1:9090"}
	s.upsertFlask(flask)

	got, ok := s.flask("f1")
	assert.True(t, ok)
	assert.Equal(t, flask, got)

	dist := s.distribution.Get()
	assert.Contains(t, dist, ident.FlaskID("f1"))
	assert.Empty(t, dist["f1"])

	flask.Address = "10.0.0.2:9090"
	s.upsertFlask(flask)
	dist = s.distribution.Get()
	assert.Len(t, dist, 1, "re-registering a known flask must not reset its distribution entry")
}

func TestStoreMergeDistributionUnions(t *testing.T) {
	s := newStore()
	t1 := chemtypes.Target{URI: "u1"}
	t2 := chemtypes.Target{URI: "u2"}

	merged := s.mergeDistribution(map[ident.FlaskID][]chemtypes.Target{
		"f1": {t1},
	})
	assert.Len(t, merged["f1"], 1)

	merged = s.mergeDistribution(map[ident.FlaskID][]chemtypes.Target{
		"f1": {t2},
	})
	assert.Len(t, merged["f1"], 2)
	assert.Contains(t, merged["f1"], ident.TargetURI("u1"))
	assert.Contains(t, merged["f1"], ident.TargetURI("u2"))
}

func TestTargetSetSliceAndClone(t *testing.T) {
	set := targetSet{"u1": chemtypes.Target{URI: "u1"}}
	clone := set.clone()
	clone["u2"] = chemtypes.Target{URI: "u2"}

	assert.Len(t, set, 1)
	assert.Len(t, clone, 2)
	assert.Len(t, set.slice(), 1)
}

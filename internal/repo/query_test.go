package repo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/ident"
	"github.com/yelp/chemist/internal/repo/repotest"
)

func TestAssignedTargetsFailsForUnknownFlask(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	_, err := f.AssignedTargets("nope")
	require.Error(t, err)
	got, ok := chemtypes.IsInstanceNotFound(err)
	require.True(t, ok)
	assert.Equal(t, ident.FlaskID("nope"), got.FlaskID)
}

func TestAssignedTargetsReturnsEmptySliceForRegisteredIdleFlask(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	f.PlatformHandler(chemtypes.NewNewFlask(chemtypes.Flask{ID: "f1"}, time.Now()))

	got, err := f.AssignedTargets("f1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnassignedAndUnmonitorableTargets(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	now := time.Now()
	target := chemtypes.Target{URI: "u1"}
	f.PlatformHandler(chemtypes.NewNewTarget(target, now))

	unassigned := f.UnassignedTargets()
	require.Len(t, unassigned, 1)
	assert.Equal(t, target.URI, unassigned[0].URI)

	assert.Empty(t, f.UnmonitorableTargets())
}

func TestMergeDistributionUnionsAcrossCalls(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	t1 := chemtypes.Target{URI: "u1"}
	t2 := chemtypes.Target{URI: "u2"}

	f.MergeDistribution(map[ident.FlaskID][]chemtypes.Target{"f1": {t1}})
	merged := f.MergeDistribution(map[ident.FlaskID][]chemtypes.Target{"f1": {t2}})

	assert.Len(t, merged["f1"], 2)

	dist := f.Distribution()
	assert.Len(t, dist["f1"], 2)
}

func TestMergeExistingDistributionBypassesLifecycleEngine(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	target := chemtypes.Target{URI: "u1"}
	f.MergeExistingDistribution(map[ident.FlaskID][]chemtypes.Target{"f1": {target}})

	assert.Equal(t, chemtypes.Monitored, f.TargetState(target.URI))

	got, ok := f.Instance(target.URI)
	require.True(t, ok)
	assert.Equal(t, target.URI, got.URI)

	dist := f.Distribution()
	assert.Len(t, dist["f1"], 1)
}

func TestStatesSnapshotIsOwnedCopy(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	f.PlatformHandler(chemtypes.NewNewTarget(chemtypes.Target{URI: "u1"}, time.Now()))

	states := f.States()
	bucket := states[chemtypes.Unmonitored]
	delete(bucket, "u1")

	states2 := f.States()
	assert.Contains(t, states2[chemtypes.Unmonitored], ident.TargetURI("u1"))
}

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

func TestColdDiscoveryAssignsAndMonitors(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	now := time.Now()
	target := chemtypes.Target{URI: "http://10.0.0.1/metrics"}

	f.PlatformHandler(chemtypes.NewNewTarget(target, now))
	assert.Equal(t, chemtypes.Unmonitored, f.TargetState(target.URI))

	f.PlatformHandler(chemtypes.NewAssigned("flask-1", target, now))
	assert.Equal(t, chemtypes.Assigned, f.TargetState(target.URI))

	f.PlatformHandler(chemtypes.NewMonitored("flask-1", target.URI, now))
	assert.Equal(t, chemtypes.Monitored, f.TargetState(target.URI))
}

func TestHappyPathMonitoringEmitsCommands(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	now := time.Now()
	target := chemtypes.Target{URI: "u1"}

	f.PlatformHandler(chemtypes.NewNewTarget(target, now))

	require.Eventually(t, func() bool {
		for _, cmd := range f.Drained() {
			if cmd.Kind == chemtypes.CommandMonitor && cmd.Target.URI == target.URI {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond, "expected a CommandMonitor once the target becomes Unmonitored")
}

func TestDoubleAssignmentSettlesOnFirstConfirmation(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	now := time.Now()
	target := chemtypes.Target{URI: "u1"}

	f.PlatformHandler(chemtypes.NewNewTarget(target, now))
	f.PlatformHandler(chemtypes.NewAssigned("flask-1", target, now))
	f.PlatformHandler(chemtypes.NewAssigned("flask-2", target, now))
	assert.Equal(t, chemtypes.DoubleAssigned, f.TargetState(target.URI))

	f.PlatformHandler(chemtypes.NewMonitored("flask-1", target.URI, now))
	assert.Equal(t, chemtypes.Monitored, f.TargetState(target.URI))
}

func TestFlaskDeathEnqueuesReassignWork(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	now := time.Now()
	flask := chemtypes.Flask{ID: "flask-1", Address: "10.0.0.1:9090"}

	f.PlatformHandler(chemtypes.NewNewFlask(flask, now))
	f.PlatformHandler(chemtypes.NewTerminatedFlask(flask.ID, now))

	require.Eventually(t, func() bool {
		for _, cmd := range f.Drained() {
			if cmd.Kind == chemtypes.CommandReassignWork && cmd.FlaskID == flask.ID {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond)

	_, ok := f.Flask(flask.ID)
	assert.True(t, ok, "TerminatedFlask must not remove the flask from the registry")
}

func TestGhostTelemetryForUnknownTargetIsRecordedNotCrashed(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	now := time.Now()
	uri := ident.TargetURI("ghost")

	f.PlatformHandler(chemtypes.NewMonitored("flask-1", uri, now))

	assert.Equal(t, chemtypes.Unknown, f.TargetState(uri))
	errs := f.Errors()
	require.Len(t, errs, 1)

	var unk *chemtypes.UnknownTargetError
	require.ErrorAs(t, errs[0], &unk)
	assert.Equal(t, uri, unk.URI)
}

func TestHistoryOverflowIsBoundedToCapacity(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	now := time.Now()
	for i := 0; i < 64; i++ {
		f.PlatformHandler(chemtypes.NewNoOp(now))
	}

	events := f.HistoricalPlatformEvents()
	assert.Len(t, events, 16, "history ring buffer should be bounded to its configured capacity")
}

func TestUnrecognizedPlatformEventKindIsLogged(t *testing.T) {
	f := repotest.New()
	defer f.Close()

	// Dispatch of a kind value outside the known set falls through to
	// the kind switch's default case, which logs a warning rather than
	// panicking.
	f.PlatformHandler(chemtypes.PlatformEvent{Kind: chemtypes.PlatformEventKind(999)})

	entries := f.Hook.AllEntries()
	found := false
	for _, e := range entries {
		if e.Message == "platformHandler: unrecognized PlatformEvent kind" {
			found = true
		}
	}
	assert.True(t, found)
}

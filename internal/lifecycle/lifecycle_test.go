package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/lifecycle"
)

func TestStepTransitionTable(t *testing.T) {
	cfg := lifecycle.DefaultConfig()
	target := chemtypes.Target{URI: "u"}
	flask := chemtypes.Flask{ID: "f"}
	now := time.Now()

	tests := []struct {
		name    string
		current chemtypes.TargetState
		in      chemtypes.LifecycleInput
		wantTo  chemtypes.TargetState
		wantOK  bool
	}{
		{
			name:    "Unknown discovery yields Unmonitored",
			current: chemtypes.Unknown,
			in:      chemtypes.Discovery(target, now),
			wantTo:  chemtypes.Unmonitored,
			wantOK:  true,
		},
		{
			name:    "Unmonitored assignment yields Assigned",
			current: chemtypes.Unmonitored,
			in:      chemtypes.Assignment(target, flask.ID, now),
			wantTo:  chemtypes.Assigned,
			wantOK:  true,
		},
		{
			name:    "Assigned confirmation yields Monitored",
			current: chemtypes.Assigned,
			in:      chemtypes.Confirmation(target, flask.ID, now),
			wantTo:  chemtypes.Monitored,
			wantOK:  true,
		},
		{
			name:    "Assigned repeat assignment yields DoubleAssigned",
			current: chemtypes.Assigned,
			in:      chemtypes.Assignment(target, flask.ID, now),
			wantTo:  chemtypes.DoubleAssigned,
			wantOK:  true,
		},
		{
			name:    "Monitored repeat confirmation yields DoubleMonitored",
			current: chemtypes.Monitored,
			in:      chemtypes.Confirmation(target, flask.ID, now),
			wantTo:  chemtypes.DoubleMonitored,
			wantOK:  true,
		},
		{
			name:    "Monitored unmonitoring yields Unmonitored",
			current: chemtypes.Monitored,
			in:      chemtypes.Unmonitoring(target, flask.ID, now),
			wantTo:  chemtypes.Unmonitored,
			wantOK:  true,
		},
		{
			name:    "DoubleAssigned confirmation settles Monitored",
			current: chemtypes.DoubleAssigned,
			in:      chemtypes.Confirmation(target, flask.ID, now),
			wantTo:  chemtypes.Monitored,
			wantOK:  true,
		},
		{
			name:    "Investigating confirmation recovers to Monitored",
			current: chemtypes.Investigating,
			in:      chemtypes.Confirmation(target, flask.ID, now),
			wantTo:  chemtypes.Monitored,
			wantOK:  true,
		},
		{
			name:    "Investigate from Monitored enters Investigating",
			current: chemtypes.Monitored,
			in:      chemtypes.Investigate(target, now, 1),
			wantTo:  chemtypes.Investigating,
			wantOK:  true,
		},
		{
			name:    "Investigate below threshold stays Investigating, no state change",
			current: chemtypes.Investigating,
			in:      chemtypes.Investigate(target, now, 1),
			wantOK:  false,
		},
		{
			name:    "Investigate at threshold retires to Fin",
			current: chemtypes.Investigating,
			in:      chemtypes.Investigate(target, now, 3),
			wantTo:  chemtypes.Fin,
			wantOK:  true,
		},
		{
			name:    "Investigate while already Fin is unrecognized",
			current: chemtypes.Fin,
			in:      chemtypes.Investigate(target, now, 10),
			wantOK:  false,
		},
		{
			name:    "Unknown assignment is unrecognized",
			current: chemtypes.Unknown,
			in:      chemtypes.Assignment(target, flask.ID, now),
			wantOK:  false,
		},
		{
			name:    "Unmonitorable discovery is unrecognized",
			current: chemtypes.Unmonitorable,
			in:      chemtypes.Discovery(target, now),
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, ok := cfg.Step(tt.current, tt.in)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, chemtypes.RepoEventStateChange, re.Kind)
			assert.Equal(t, tt.current, re.StateChange.From)
			assert.Equal(t, tt.wantTo, re.StateChange.To)
			assert.Equal(t, target.URI, re.StateChange.URI())
		})
	}
}

func TestStepPreservesInvestigateAttempt(t *testing.T) {
	cfg := lifecycle.DefaultConfig()
	re, ok := cfg.Step(chemtypes.Monitored, chemtypes.Investigate(chemtypes.Target{URI: "u"}, time.Now(), 2))
	require.True(t, ok)
	assert.Equal(t, 2, re.StateChange.Msg.Attempt)
	assert.Equal(t, chemtypes.MsgInvestigate, re.StateChange.Msg.Kind)
}

func TestInvestigateAttemptThresholdIsConfigurable(t *testing.T) {
	cfg := lifecycle.Config{InvestigateAttemptThreshold: 1}
	re, ok := cfg.Step(chemtypes.Investigating, chemtypes.Investigate(chemtypes.Target{URI: "u"}, time.Now(), 1))
	require.True(t, ok)
	assert.Equal(t, chemtypes.Fin, re.StateChange.To)
}

// Copyright 2024 The Chemist Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package lifecycle implements the target lifecycle state machine as a
// pure function. It knows nothing about the Repository's indices,
// channels, or concurrency: given a current TargetState and a
// LifecycleInput, it returns the RepoEvent (if any) that should be
// applied.
package lifecycle

import "github.com/yelp/chemist/internal/chemtypes"

// Config carries the policy constants the state machine needs,
// exposed rather than hard-coded.
type Config struct {
	// InvestigateAttemptThreshold (N) is the attempt count at or above
	// which an Investigate input drives a target from Investigating
	// into Fin. Below it, an Investigate input on an Investigating
	// target produces no state change.
	InvestigateAttemptThreshold int
}

// DefaultConfig returns the policy defaults used when nothing else is
// configured.
func DefaultConfig() Config {
	return Config{InvestigateAttemptThreshold: 3}
}

// Step is the pure lifecycle transition function. It returns the
// RepoEvent produced by applying in to current, and ok=false if the
// combination is not recognized: callers should still record the
// input to history even when ok is false, but apply no state change.
func (c Config) Step(current chemtypes.TargetState, in chemtypes.LifecycleInput) (chemtypes.RepoEvent, bool) {
	to, ok := c.next(current, in)
	if !ok {
		return chemtypes.RepoEvent{}, false
	}
	msg := chemtypes.LifecycleMsg{
		Kind:    inputToMsgKind(in.Kind),
		Target:  in.Target,
		FlaskID: in.FlaskID,
		Time:    in.Time,
		Attempt: in.Attempt,
	}
	sc := chemtypes.StateChange{From: current, To: to, Msg: msg}
	return chemtypes.NewStateChangeEvent(sc), true
}

// next implements the per-state lifecycle transition table.
func (c Config) next(current chemtypes.TargetState, in chemtypes.LifecycleInput) (chemtypes.TargetState, bool) {
	// "any non-Fin" + Investigate is checked before the per-state
	// switch below, since it applies across almost every state.
	if in.Kind == chemtypes.InputInvestigate && current != chemtypes.Fin {
		if current == chemtypes.Investigating {
			if in.Attempt >= c.InvestigateAttemptThreshold {
				return chemtypes.Fin, true
			}
			// An Investigate input while already Investigating, below
			// threshold, does not re-enter Investigating: it is simply
			// another attempt at the same investigation and is not a
			// state change. Treated as unrecognized so it is recorded
			// to history but does not spuriously re-fire commands.
			return chemtypes.Unknown, false
		}
		return chemtypes.Investigating, true
	}

	switch current {
	case chemtypes.Unknown:
		if in.Kind == chemtypes.InputDiscovery {
			return chemtypes.Unmonitored, true
		}
	case chemtypes.Unmonitored:
		if in.Kind == chemtypes.InputAssignment {
			return chemtypes.Assigned, true
		}
	case chemtypes.Assigned:
		switch in.Kind {
		case chemtypes.InputConfirmation:
			return chemtypes.Monitored, true
		case chemtypes.InputAssignment:
			return chemtypes.DoubleAssigned, true
		}
	case chemtypes.Monitored:
		switch in.Kind {
		case chemtypes.InputConfirmation:
			return chemtypes.DoubleMonitored, true
		case chemtypes.InputUnmonitoring:
			return chemtypes.Unmonitored, true
		}
	case chemtypes.Investigating:
		if in.Kind == chemtypes.InputConfirmation {
			return chemtypes.Monitored, true
		}
	case chemtypes.DoubleAssigned:
		// Tie-break: whichever flask's Confirmation arrives first wins
		// and the target settles into Monitored.
		if in.Kind == chemtypes.InputConfirmation {
			return chemtypes.Monitored, true
		}
	}
	return chemtypes.Unknown, false
}

func inputToMsgKind(k chemtypes.LifecycleInputKind) chemtypes.LifecycleMsgKind {
	switch k {
	case chemtypes.InputDiscovery:
		return chemtypes.MsgDiscovery
	case chemtypes.InputAssignment:
		return chemtypes.MsgAssignment
	case chemtypes.InputConfirmation:
		return chemtypes.MsgConfirmation
	case chemtypes.InputUnmonitoring:
		return chemtypes.MsgUnmonitoring
	case chemtypes.InputInvestigate:
		return chemtypes.MsgInvestigate
	default:
		return chemtypes.MsgDiscovery
	}
}

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

package chemtypes

import (
	"time"

	"github.com/yelp/chemist/internal/ident"
)

// LifecycleMsgKind tags the reason a StateChange occurred: Discovery,
// Assignment, Confirmation, Unmonitoring, or Investigate.
type LifecycleMsgKind int

// All recognized LifecycleMsgKind values.
const (
	MsgDiscovery LifecycleMsgKind = iota
	MsgAssignment
	MsgConfirmation
	MsgUnmonitoring
	MsgInvestigate
)

func (k LifecycleMsgKind) String() string {
	switch k {
	case MsgDiscovery:
		return "Discovery"
	case MsgAssignment:
		return "Assignment"
	case MsgConfirmation:
		return "Confirmation"
	case MsgUnmonitoring:
		return "Unmonitoring"
	case MsgInvestigate:
		return "Investigate"
	default:
		return "LifecycleMsgKind(invalid)"
	}
}

// LifecycleMsg carries the payload of a lifecycle transition: the
// target it concerns, the flask involved (if any), the wall-clock time
// it was observed, and — for Investigate — the retry attempt number.
type LifecycleMsg struct {
	Kind    LifecycleMsgKind
	Target  Target
	FlaskID ident.FlaskID // zero value if not applicable
	Time    time.Time
	Attempt int // only meaningful for MsgInvestigate
}

// StateChange records a single lifecycle transition for a target. Its
// identity is the pair (Target.URI, Seq); Seq is assigned from a
// single counter by the Repository when it applies the change,
// making StateChanges totally orderable even though wall-clock times
// may collide or arrive out of order.
type StateChange struct {
	From TargetState
	To   TargetState
	Msg  LifecycleMsg
	Seq  uint64
}

// URI is a convenience accessor for the target this StateChange
// concerns.
func (c StateChange) URI() ident.TargetURI { return c.Msg.Target.URI }

// Time is a convenience accessor for when the underlying lifecycle
// message was observed.
func (c StateChange) Time() time.Time { return c.Msg.Time }

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

import "github.com/yelp/chemist/internal/ident"

// RepoEventKind tags the variant produced by the lifecycle engine and
// consumed by the repo-event processor.
type RepoEventKind int

// All recognized RepoEventKind values.
const (
	RepoEventStateChange RepoEventKind = iota
	RepoEventNewFlask
)

func (k RepoEventKind) String() string {
	switch k {
	case RepoEventStateChange:
		return "StateChange"
	case RepoEventNewFlask:
		return "NewFlask"
	default:
		return "RepoEventKind(invalid)"
	}
}

// RepoEvent is the tagged-variant output of the lifecycle engine: a
// StateChange to apply to the state store, or a Flask to register.
type RepoEvent struct {
	Kind        RepoEventKind
	StateChange StateChange // RepoEventStateChange
	Flask       Flask       // RepoEventNewFlask
}

// NewStateChangeEvent builds a RepoEventStateChange RepoEvent.
func NewStateChangeEvent(sc StateChange) RepoEvent {
	return RepoEvent{Kind: RepoEventStateChange, StateChange: sc}
}

// NewFlaskEvent builds a RepoEventNewFlask RepoEvent.
func NewFlaskEvent(f Flask) RepoEvent {
	return RepoEvent{Kind: RepoEventNewFlask, Flask: f}
}

// RepoCommandKind tags the outbound directive variant.
type RepoCommandKind int

// All recognized RepoCommandKind values.
const (
	CommandMonitor RepoCommandKind = iota
	CommandTelemetry
	CommandReassignWork
)

func (k RepoCommandKind) String() string {
	switch k {
	case CommandMonitor:
		return "Monitor"
	case CommandTelemetry:
		return "Telemetry"
	case CommandReassignWork:
		return "ReassignWork"
	default:
		return "RepoCommandKind(invalid)"
	}
}

// RepoCommand is the tagged-variant output that drives sharding.
type RepoCommand struct {
	Kind    RepoCommandKind
	Target  Target        // CommandMonitor
	Flask   Flask         // CommandTelemetry
	FlaskID ident.FlaskID // CommandReassignWork
}

// NewMonitorCommand builds a CommandMonitor RepoCommand.
func NewMonitorCommand(t Target) RepoCommand {
	return RepoCommand{Kind: CommandMonitor, Target: t}
}

// NewTelemetryCommand builds a CommandTelemetry RepoCommand.
func NewTelemetryCommand(f Flask) RepoCommand {
	return RepoCommand{Kind: CommandTelemetry, Flask: f}
}

// NewReassignWorkCommand builds a CommandReassignWork RepoCommand.
func NewReassignWorkCommand(id ident.FlaskID) RepoCommand {
	return RepoCommand{Kind: CommandReassignWork, FlaskID: id}
}

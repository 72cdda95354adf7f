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

// PlatformEventKind tags the variant carried by a PlatformEvent.
type PlatformEventKind int

// All recognized PlatformEventKind values.
const (
	EventNewTarget PlatformEventKind = iota
	EventNewFlask
	EventTerminatedFlask
	EventTerminatedTarget
	EventMonitored
	EventUnmonitored
	EventProblem
	EventAssigned
	EventNoOp
)

func (k PlatformEventKind) String() string {
	switch k {
	case EventNewTarget:
		return "NewTarget"
	case EventNewFlask:
		return "NewFlask"
	case EventTerminatedFlask:
		return "TerminatedFlask"
	case EventTerminatedTarget:
		return "TerminatedTarget"
	case EventMonitored:
		return "Monitored"
	case EventUnmonitored:
		return "Unmonitored"
	case EventProblem:
		return "Problem"
	case EventAssigned:
		return "Assigned"
	case EventNoOp:
		return "NoOp"
	default:
		return "PlatformEventKind(invalid)"
	}
}

// PlatformEvent is the tagged-variant input fed to
// repo.Repository.PlatformHandler. Only the fields relevant to Kind
// are populated; construct instances through the New* functions below
// rather than by hand, so that a caller can't assemble an
// inconsistent combination.
type PlatformEvent struct {
	Kind PlatformEventKind

	Target  Target        // NewTarget, TerminatedTarget(URI only), Monitored, Unmonitored, Problem, Assigned
	FlaskID ident.FlaskID  // NewFlask(as Flask.ID), TerminatedFlask, Monitored, Unmonitored, Problem, Assigned
	Flask   Flask          // NewFlask
	Problem string         // Problem
	Time    time.Time
}

// NewNewTarget builds a NewTarget PlatformEvent.
func NewNewTarget(t Target, at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventNewTarget, Target: t, Time: at}
}

// NewNewFlask builds a NewFlask PlatformEvent.
func NewNewFlask(f Flask, at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventNewFlask, Flask: f, FlaskID: f.ID, Time: at}
}

// NewTerminatedFlask builds a TerminatedFlask PlatformEvent.
func NewTerminatedFlask(id ident.FlaskID, at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventTerminatedFlask, FlaskID: id, Time: at}
}

// NewTerminatedTarget builds a TerminatedTarget PlatformEvent.
func NewTerminatedTarget(uri ident.TargetURI, at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventTerminatedTarget, Target: Target{URI: uri}, Time: at}
}

// NewMonitored builds a Monitored PlatformEvent (flask confirms it is
// scraping uri).
func NewMonitored(flask ident.FlaskID, uri ident.TargetURI, at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventMonitored, FlaskID: flask, Target: Target{URI: uri}, Time: at}
}

// NewUnmonitored builds an Unmonitored PlatformEvent (flask reports it
// has stopped scraping uri).
func NewUnmonitored(flask ident.FlaskID, uri ident.TargetURI, at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventUnmonitored, FlaskID: flask, Target: Target{URI: uri}, Time: at}
}

// NewProblem builds a Problem PlatformEvent.
func NewProblem(flask ident.FlaskID, uri ident.TargetURI, msg string, at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventProblem, FlaskID: flask, Target: Target{URI: uri}, Problem: msg, Time: at}
}

// NewAssigned builds an Assigned PlatformEvent (sharding selected flask
// for target).
func NewAssigned(flask ident.FlaskID, t Target, at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventAssigned, FlaskID: flask, Target: t, Time: at}
}

// NewNoOp builds a NoOp PlatformEvent.
func NewNoOp(at time.Time) PlatformEvent {
	return PlatformEvent{Kind: EventNoOp, Time: at}
}

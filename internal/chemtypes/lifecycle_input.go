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

// LifecycleInputKind tags the variant consumed by lifecycle.Step.
type LifecycleInputKind int

// All recognized LifecycleInputKind values.
const (
	InputDiscovery LifecycleInputKind = iota
	InputAssignment
	InputConfirmation
	InputUnmonitoring
	InputInvestigate
)

func (k LifecycleInputKind) String() string {
	switch k {
	case InputDiscovery:
		return "Discovery"
	case InputAssignment:
		return "Assignment"
	case InputConfirmation:
		return "Confirmation"
	case InputUnmonitoring:
		return "Unmonitoring"
	case InputInvestigate:
		return "Investigate"
	default:
		return "LifecycleInputKind(invalid)"
	}
}

// LifecycleInput is the tagged-variant input to the pure lifecycle
// step function.
type LifecycleInput struct {
	Kind    LifecycleInputKind
	Target  Target
	FlaskID ident.FlaskID
	Time    time.Time
	Attempt int // Investigate only
}

// Discovery builds a Discovery LifecycleInput.
func Discovery(t Target, at time.Time) LifecycleInput {
	return LifecycleInput{Kind: InputDiscovery, Target: t, Time: at}
}

// Assignment builds an Assignment LifecycleInput.
func Assignment(t Target, flask ident.FlaskID, at time.Time) LifecycleInput {
	return LifecycleInput{Kind: InputAssignment, Target: t, FlaskID: flask, Time: at}
}

// Confirmation builds a Confirmation LifecycleInput.
func Confirmation(t Target, flask ident.FlaskID, at time.Time) LifecycleInput {
	return LifecycleInput{Kind: InputConfirmation, Target: t, FlaskID: flask, Time: at}
}

// Unmonitoring builds an Unmonitoring LifecycleInput.
func Unmonitoring(t Target, flask ident.FlaskID, at time.Time) LifecycleInput {
	return LifecycleInput{Kind: InputUnmonitoring, Target: t, FlaskID: flask, Time: at}
}

// Investigate builds an Investigate LifecycleInput.
func Investigate(t Target, at time.Time, attempt int) LifecycleInput {
	return LifecycleInput{Kind: InputInvestigate, Target: t, Time: at, Attempt: attempt}
}

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

	"github.com/pkg/errors"
	"github.com/yelp/chemist/internal/ident"
)

// Error is the audit-log entity: an out-of-band failure attributed to
// a source flask, with an underlying cause.
// Instances accumulate in the Repository's bounded errorStack.
type Error struct {
	Source ident.FlaskID
	Cause  error
	Time   time.Time
}

func (e Error) Error() string {
	if e.Source.Empty() {
		return e.Cause.Error()
	}
	return e.Source.String() + ": " + e.Cause.Error()
}

// Unwrap allows errors.Is/errors.As to reach the underlying cause.
func (e Error) Unwrap() error { return e.Cause }

// NewError builds an Error. It hands back a value, not a pointer: the
// struct is small and copyable.
func NewError(source ident.FlaskID, cause error, at time.Time) Error {
	return Error{Source: source, Cause: cause, Time: at}
}

// InstanceNotFoundError is returned by query operations (such as
// assignedTargets) when asked about a flask the Repository has never
// registered.
type InstanceNotFoundError struct {
	FlaskID ident.FlaskID
}

func (e *InstanceNotFoundError) Error() string {
	return "instance not found: " + e.FlaskID.String()
}

// IsInstanceNotFound reports whether err is, or wraps, an
// InstanceNotFoundError.
func IsInstanceNotFound(err error) (*InstanceNotFoundError, bool) {
	var target *InstanceNotFoundError
	ok := errors.As(err, &target)
	return target, ok
}

// UnknownTargetError is logged (not returned) when flask telemetry
// references a URI the Repository has never seen.
type UnknownTargetError struct {
	URI ident.TargetURI
}

func (e *UnknownTargetError) Error() string {
	return "unknown target: " + e.URI.String()
}

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

// Package ident wraps the raw string identifiers used throughout
// chemist in named types, so that a URI can't be passed where a
// FlaskID is expected and vice versa.
package ident

// TargetURI identifies a scrape target. It is the sole identity of a
// Target (see chemtypes.Target).
type TargetURI string

// String implements fmt.Stringer.
func (u TargetURI) String() string { return string(u) }

// Empty reports whether the URI is the zero value.
func (u TargetURI) Empty() bool { return u == "" }

// FlaskID identifies a collector worker. It is the sole identity of a
// Flask (see chemtypes.Flask).
type FlaskID string

// String implements fmt.Stringer.
func (f FlaskID) String() string { return string(f) }

// Empty reports whether the id is the zero value.
func (f FlaskID) Empty() bool { return f == "" }

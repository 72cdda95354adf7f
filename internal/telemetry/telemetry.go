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

// Package telemetry marks the contract the wire-level transport that
// opens a CommandTelemetry channel to a flask would implement. This
// repository does not speak to flasks directly: PlatformHandler learns
// about flask health purely from the PlatformEvents it is handed, and
// Repository.Commands() is the only signal a transport needs to decide
// when to open one.
package telemetry

import "github.com/yelp/chemist/internal/chemtypes"

// Receiver opens a telemetry channel to the flask named by a
// CommandTelemetry RepoCommand. No implementation lives in this
// repository; it exists so callers wiring a real transport have a
// stable type to satisfy.
type Receiver interface {
	Open(flask chemtypes.Flask) error
}

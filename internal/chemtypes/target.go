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

// Target is a monitored process, addressed by URI. Metric Keys are
// opaque to the Repository; it only ever stores and returns them.
type Target struct {
	URI      ident.TargetURI
	Keys     map[string]struct{}
	Metadata map[string]string // discovery metadata, opaque
}

// WithKeys returns a copy of the Target with Keys replaced. The
// receiver is left unmodified, matching the Repository's policy of
// never handing out references into its own indices.
func (t Target) WithKeys(keys map[string]struct{}) Target {
	t.Keys = keys
	return t
}

// Flask is a collector worker that scrapes targets it has been
// assigned. FlaskID is its sole identity; Address is where telemetry
// transport (out of scope here) would dial or listen.
type Flask struct {
	ID      ident.FlaskID
	Address string
}

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

// Package platform defines the contract for platform discovery, the
// cloud/API scanner producing chemtypes.PlatformEvents that drive
// repo.Repository.PlatformHandler. Discovery itself is out of scope
// for this repository: input only.
package platform

import "github.com/yelp/chemist/internal/chemtypes"

// Source produces PlatformEvents for a Repository to consume. The
// channel is closed when discovery has nothing further to report.
type Source interface {
	Events() <-chan chemtypes.PlatformEvent
}

// Static is a Source that replays a fixed slice of events, then closes
// its channel. It is useful for tests and for feeding a Repository a
// known bootstrap sequence; it implements no actual cloud discovery.
type Static struct {
	Items []chemtypes.PlatformEvent
}

var _ Source = (*Static)(nil)

// Events implements Source.
func (s *Static) Events() <-chan chemtypes.PlatformEvent {
	ch := make(chan chemtypes.PlatformEvent, len(s.Items))
	for _, e := range s.Items {
		ch <- e
	}
	close(ch)
	return ch
}

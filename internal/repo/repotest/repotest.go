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

// Package repotest provides a ready-to-use repo.Repository for tests,
// along with a drain helper for its outbound command stream.
package repotest

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/config"
	"github.com/yelp/chemist/internal/metrics"
	"github.com/yelp/chemist/internal/repo"
	"github.com/yelp/chemist/internal/worker"
)

// Fixture bundles a Repository with the collaborators tests usually
// need direct access to: a logrus test hook for asserting on log
// output, a dedicated prometheus registry, and a goroutine draining
// Commands() into an in-memory slice.
type Fixture struct {
	*repo.Repository

	Log      *logrus.Logger
	Hook     *test.Hook
	Registry *prometheus.Registry

	mu       sync.Mutex
	drained  []chemtypes.RepoCommand
	draining chan struct{}
}

// New constructs a Fixture with small history buffers so tests can
// force eviction without pushing thousands of events, and starts
// draining the Repository's command stream in the background.
func New() *Fixture {
	log, hook := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	sink := metrics.NewSink(reg)
	pool := worker.New(4)

	cfg := config.DefaultConfig()
	cfg.PlatformHistorySize = 16
	cfg.RepoHistorySize = 16
	cfg.ErrorHistorySize = 16

	f := &Fixture{
		Repository: repo.New(cfg, log, sink, pool),
		Log:        log,
		Hook:       hook,
		Registry:   reg,
		draining:   make(chan struct{}),
	}
	go f.drain()
	return f
}

// WithClock overrides the underlying Repository's clock and returns
// the Fixture for chaining.
func (f *Fixture) WithClock(c repo.Clock) *Fixture {
	f.Repository.WithClock(c)
	return f
}

func (f *Fixture) drain() {
	defer close(f.draining)
	for cmd := range f.Commands() {
		f.mu.Lock()
		f.drained = append(f.drained, cmd)
		f.mu.Unlock()
	}
}

// Drained returns every RepoCommand consumed from Commands() so far.
func (f *Fixture) Drained() []chemtypes.RepoCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]chemtypes.RepoCommand, len(f.drained))
	copy(out, f.drained)
	return out
}

// Close stops the Repository and waits for the drain goroutine to
// observe end-of-stream.
func (f *Fixture) Close() {
	f.Repository.Close()
	<-f.draining
}

// FixedClock returns a repo.Clock that always reports at.
func FixedClock(at time.Time) repo.Clock {
	return func() time.Time { return at }
}

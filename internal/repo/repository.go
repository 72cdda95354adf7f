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

// Package repo implements the Repository: chemist's concurrent,
// in-memory, event-driven control-plane ledger. It reconciles platform
// discovery and flask telemetry into a per-target lifecycle state
// machine, maintains the target/flask/distribution indices, and emits
// outbound RepoCommands that drive the sharding component.
package repo

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/config"
	"github.com/yelp/chemist/internal/ident"
	"github.com/yelp/chemist/internal/lifecycle"
	"github.com/yelp/chemist/internal/metrics"
	"github.com/yelp/chemist/internal/ring"
	"github.com/yelp/chemist/internal/worker"
)

// Clock abstracts wall-clock time so tests can supply deterministic
// timestamps; the zero value uses time.Now.
type Clock func() time.Time

// Repository is chemist's control-plane ledger. All mutating entry
// points (PlatformHandler, ErrorSink) are safe for concurrent use by
// multiple callers: PlatformHandler dispatch is bounded by pool, and
// whichever task the pool is actually running takes the writer lock
// first, which makes the per-target invariants hold without any
// cross-cell transaction.
type Repository struct {
	log     logrus.FieldLogger
	metrics *metrics.Sink
	clock   Clock
	pool    *worker.Pool
	cfg     lifecycle.Config

	store *store

	historyStack     *ring.Ring[chemtypes.PlatformEvent]
	repoHistoryStack *ring.Ring[chemtypes.RepoEvent]
	errorStack       *ring.Ring[chemtypes.Error]

	commands *commandQueue

	seq atomic.Uint64

	// writer serializes every mutating operation so the per-target
	// invariants hold without needing cross-cell transactions.
	writer sync.Mutex
}

// New constructs a Repository. log and sink must not be nil; pass
// logrus.New() and metrics.NewSink(prometheus.NewRegistry()) in tests
// that don't care about output.
func New(cfg config.Config, log logrus.FieldLogger, sink *metrics.Sink, pool *worker.Pool) *Repository {
	r := &Repository{
		log:     log,
		metrics: sink,
		clock:   time.Now,
		pool:    pool,
		cfg:     lifecycle.Config{InvestigateAttemptThreshold: cfg.InvestigateAttemptThreshold},
		store:   newStore(),

		historyStack:     ring.New[chemtypes.PlatformEvent](cfg.PlatformHistorySize),
		repoHistoryStack: ring.New[chemtypes.RepoEvent](cfg.RepoHistorySize),
		errorStack:       ring.New[chemtypes.Error](cfg.ErrorHistorySize),

		commands: newCommandQueue(cfg.ReassignWorkDedup),
	}
	for _, s := range chemtypes.AllStates {
		sink.TargetStateCount.WithLabelValues(s.String()).Set(0)
	}
	return r
}

// WithClock overrides the Repository's time source; intended for
// tests.
func (r *Repository) WithClock(c Clock) *Repository {
	r.clock = c
	return r
}

func (r *Repository) now() time.Time {
	if r.clock == nil {
		return time.Now()
	}
	return r.clock()
}

// Commands returns the outbound RepoCommand stream.
func (r *Repository) Commands() <-chan chemtypes.RepoCommand {
	return r.commands.Out()
}

// Close stops accepting new outbound commands; once the commands
// already buffered have drained, Commands() is closed so a ranging
// consumer observes end-of-stream.
func (r *Repository) Close() {
	r.commands.Close()
}

// ErrorSink records an out-of-band error.
func (r *Repository) ErrorSink(e chemtypes.Error) {
	if e.Time.IsZero() {
		e.Time = r.now()
	}
	r.errorStack.Push(e)
}

// KeySink accepts the set of metric keys discovered on a target. It is
// a deliberate no-op today, kept as an explicit method rather than
// omitted so callers have a stable integration point once key tracking
// is implemented.
func (r *Repository) KeySink(uri ident.TargetURI, keys map[string]struct{}) {
	_ = uri
	_ = keys
}

func (r *Repository) nextSeq() uint64 {
	return r.seq.Add(1)
}

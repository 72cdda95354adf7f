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

package repo

import (
	"context"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/ident"
)

// PlatformHandler is the sole entry point for platform discovery and
// flask telemetry. Dispatch runs on r.pool, the bounded executor
// standing in for the source's Chemist.serverPool: a caller blocks in
// PlatformHandler until its event has actually been processed, but if
// WorkerPoolSize dispatches are already in flight, a new call waits on
// the pool's semaphore before its own task is even started, bounding
// how many PlatformEvents are mid-flight at once regardless of how
// many goroutines are calling in concurrently. Once a task starts
// running, the writer lock serializes its mutation of the shared state
// cells so the per-target invariants hold without cross-cell
// transactions.
//
// PlatformHandler never propagates a failure to its caller: any panic
// during dispatch is recovered, logged, recorded to errorStack, and
// counted against PlatformEventFailures, because platform events
// originate from a potentially unreliable upstream and losing one
// event must not crash the ledger.
func (r *Repository) PlatformHandler(e chemtypes.PlatformEvent) {
	done := make(chan struct{})
	if err := r.pool.Go(context.Background(), func() {
		defer close(done)
		r.dispatch(e)
	}); err != nil {
		// context.Background() never cancels, so this only triggers if
		// the pool itself refuses the task; process inline rather than
		// silently drop an event.
		r.dispatch(e)
		return
	}
	<-done
}

func (r *Repository) dispatch(e chemtypes.PlatformEvent) {
	r.writer.Lock()
	defer r.writer.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			r.metrics.PlatformEventFailures.Inc()
			err := chemtypes.NewError("", asError(rec), r.now())
			r.errorStack.Push(err)
			r.log.WithField("panic", rec).WithField("kind", e.Kind).
				Error("platformHandler: recovered from panic")
		}
	}()

	before := r.historyStack.Dropped()
	r.historyStack.Push(e)
	if after := r.historyStack.Dropped(); after > before {
		r.metrics.HistoryDropped.WithLabelValues("platform").Add(float64(after - before))
	}

	switch e.Kind {
	case chemtypes.EventNewTarget:
		r.handleNewTarget(e)
	case chemtypes.EventNewFlask:
		r.handleNewFlask(e)
	case chemtypes.EventTerminatedFlask:
		r.handleTerminatedFlask(e)
	case chemtypes.EventTerminatedTarget:
		r.handleTerminatedTarget(e)
	case chemtypes.EventMonitored:
		r.handleMonitored(e)
	case chemtypes.EventUnmonitored:
		r.handleUnmonitored(e)
	case chemtypes.EventProblem:
		r.handleProblem(e)
	case chemtypes.EventAssigned:
		r.handleAssigned(e)
	case chemtypes.EventNoOp:
		// No-op by definition.
	default:
		r.log.WithField("kind", e.Kind).Warn("platformHandler: unrecognized PlatformEvent kind")
	}
}

func (r *Repository) handleNewTarget(e chemtypes.PlatformEvent) {
	current := r.store.targetState(e.Target.URI)
	in := chemtypes.Discovery(e.Target, e.Time)
	re, ok := r.cfg.Step(current, in)
	if !ok {
		r.log.WithField("uri", e.Target.URI).Debug("platformHandler: NewTarget produced no transition")
		return
	}
	r.processRepoEvent(re)
}

func (r *Repository) handleNewFlask(e chemtypes.PlatformEvent) {
	r.processRepoEvent(chemtypes.NewFlaskEvent(e.Flask))
	r.enqueue(chemtypes.NewTelemetryCommand(e.Flask))
}

func (r *Repository) handleTerminatedFlask(e chemtypes.PlatformEvent) {
	// Deliberately does not remove the flask from flasks/distribution
	// here; that cleanup, if it happens at all, is the sharding
	// component's responsibility once it consumes ReassignWork.
	r.enqueue(chemtypes.NewReassignWorkCommand(e.FlaskID))
}

func (r *Repository) handleTerminatedTarget(e chemtypes.PlatformEvent) {
	r.store.deleteTarget(e.Target.URI)
}

func (r *Repository) handleMonitored(e chemtypes.PlatformEvent) {
	target, known := r.store.instance(e.Target.URI)
	if !known {
		r.logUnknownTarget(e.Target.URI)
		return
	}
	current := r.store.targetState(e.Target.URI)
	in := chemtypes.Confirmation(target, e.FlaskID, e.Time)
	re, ok := r.cfg.Step(current, in)
	if !ok {
		return
	}
	r.processRepoEvent(re)
}

func (r *Repository) handleUnmonitored(e chemtypes.PlatformEvent) {
	target, known := r.store.instance(e.Target.URI)
	if !known {
		r.logUnknownTarget(e.Target.URI)
		return
	}
	current := r.store.targetState(e.Target.URI)
	in := chemtypes.Unmonitoring(target, e.FlaskID, e.Time)
	re, ok := r.cfg.Step(current, in)
	if !ok {
		return
	}
	r.processRepoEvent(re)
}

func (r *Repository) handleProblem(e chemtypes.PlatformEvent) {
	target, known := r.store.instance(e.Target.URI)
	if !known {
		r.logUnknownTarget(e.Target.URI)
		return
	}
	current := r.store.targetState(e.Target.URI)
	in := chemtypes.Investigate(target, e.Time, 0)
	re, ok := r.cfg.Step(current, in)
	if !ok {
		return
	}
	r.processRepoEvent(re)
}

func (r *Repository) handleAssigned(e chemtypes.PlatformEvent) {
	current := r.store.targetState(e.Target.URI)
	in := chemtypes.Assignment(e.Target, e.FlaskID, e.Time)
	re, ok := r.cfg.Step(current, in)
	if !ok {
		return
	}
	r.processRepoEvent(re)
}

// logUnknownTarget handles telemetry for a URI the store has never
// seen: logged at error, swallowed, and recorded to errorStack so it
// is observable via Errors(). The state cells are left untouched.
func (r *Repository) logUnknownTarget(uri ident.TargetURI) {
	err := chemtypes.NewError("", &chemtypes.UnknownTargetError{URI: uri}, r.now())
	r.errorStack.Push(err)
	r.log.WithField("uri", uri).Error("platformHandler: telemetry for unknown target")
}

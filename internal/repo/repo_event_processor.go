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

import "github.com/yelp/chemist/internal/chemtypes"

// processRepoEvent applies a RepoEvent produced by the lifecycle
// engine to the state store, refreshes observability counters, and,
// for specific transitions, enqueues outbound RepoCommands. Callers
// must hold r.writer (PlatformHandler already does).
func (r *Repository) processRepoEvent(re chemtypes.RepoEvent) {
	re.StateChange.Seq = r.nextSeq()

	before := r.repoHistoryStack.Dropped()
	r.repoHistoryStack.Push(re)
	if after := r.repoHistoryStack.Dropped(); after > before {
		r.metrics.HistoryDropped.WithLabelValues("repo").Add(float64(after - before))
	}

	switch re.Kind {
	case chemtypes.RepoEventStateChange:
		r.applyStateChange(re.StateChange)
	case chemtypes.RepoEventNewFlask:
		r.store.upsertFlask(re.Flask)
	}
}

func (r *Repository) applyStateChange(sc chemtypes.StateChange) {
	r.store.applyStateChange(sc)
	r.refreshGauges()

	switch sc.To {
	case chemtypes.Unmonitored:
		r.enqueue(chemtypes.NewMonitorCommand(sc.Msg.Target))
	case chemtypes.DoubleAssigned, chemtypes.DoubleMonitored:
		// No outbound command yet. Deliberate extension point: a
		// conflict-resolution policy belongs here once one exists,
		// not an oversight.
	default:
		// No outbound command for any other destination state.
	}
}

// refreshGauges recomputes the per-state target-count gauge so it
// always equals len(stateMaps[state]) after every processRepoEvent.
func (r *Repository) refreshGauges() {
	buckets := r.store.stateMaps.Get()
	for _, s := range chemtypes.AllStates {
		r.metrics.TargetStateCount.WithLabelValues(s.String()).Set(float64(len(buckets[s])))
	}
}

// enqueue pushes cmd onto the outbound stream and counts it.
func (r *Repository) enqueue(cmd chemtypes.RepoCommand) {
	r.commands.Enqueue(cmd)
	r.metrics.RepoCommandsEnqueued.WithLabelValues(cmd.Kind.String()).Inc()
}

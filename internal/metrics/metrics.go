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

// Package metrics declares the prometheus instruments the Repository
// reports on, replacing the source's process-wide metric singletons
// (AssignedHosts, PlatformEventFailures, ...) with instances lifted to
// constructor parameters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StateLabel is the label name used on every per-state instrument.
const StateLabel = "state"

// KindLabel is the label name used on command/event-kind instruments.
const KindLabel = "kind"

// BufferLabel is the label name used on ring-buffer instruments.
const BufferLabel = "buffer"

// Sink bundles every prometheus instrument the Repository touches.
// Construct one with NewSink and register it with a
// prometheus.Registerer of the caller's choosing.
type Sink struct {
	TargetStateCount     *prometheus.GaugeVec
	PlatformEventFailures prometheus.Counter
	RepoCommandsEnqueued  *prometheus.CounterVec
	HistoryDropped        *prometheus.CounterVec
}

// NewSink constructs a Sink with all instruments registered against
// reg. reg may be a *prometheus.Registry dedicated to tests, or
// prometheus.DefaultRegisterer in production.
func NewSink(reg prometheus.Registerer) *Sink {
	factory := promauto.With(reg)

	s := &Sink{
		TargetStateCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chemist_target_state_count",
			Help: "number of targets currently in each lifecycle state",
		}, []string{StateLabel}),
		PlatformEventFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "chemist_platform_event_failures_total",
			Help: "number of platformHandler dispatches that panicked and were recovered",
		}),
		RepoCommandsEnqueued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chemist_repo_commands_enqueued_total",
			Help: "number of RepoCommands enqueued onto the outbound stream, by kind",
		}, []string{KindLabel}),
		HistoryDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chemist_history_dropped_total",
			Help: "number of entries evicted from a bounded history ring buffer",
		}, []string{BufferLabel}),
	}
	return s
}

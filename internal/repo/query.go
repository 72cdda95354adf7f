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
	"sort"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/ident"
)

// States returns a snapshot of every state bucket.
// The returned maps are owned copies; mutating them does not affect
// the Repository.
func (r *Repository) States() map[chemtypes.TargetState]map[ident.TargetURI]chemtypes.StateChange {
	buckets := r.store.stateMaps.Get()
	out := make(map[chemtypes.TargetState]map[ident.TargetURI]chemtypes.StateChange, len(buckets))
	for state, bucket := range buckets {
		inner := make(map[ident.TargetURI]chemtypes.StateChange, len(bucket))
		for k, v := range bucket {
			inner[k] = v
		}
		out[state] = inner
	}
	return out
}

// HistoricalPlatformEvents returns every retained PlatformEvent,
// sorted by Time ascending: wall-clock ordering is observable even
// when push ordering is not.
func (r *Repository) HistoricalPlatformEvents() []chemtypes.PlatformEvent {
	events := r.historyStack.Snapshot()
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	return events
}

// HistoricalRepoEvents returns every retained RepoEvent in insertion
// order.
func (r *Repository) HistoricalRepoEvents() []chemtypes.RepoEvent {
	return r.repoHistoryStack.Snapshot()
}

// Errors returns every retained Error, in insertion order.
func (r *Repository) Errors() []chemtypes.Error {
	return r.errorStack.Snapshot()
}

// Instance returns the Target recorded for uri, if any.
func (r *Repository) Instance(uri ident.TargetURI) (chemtypes.Target, bool) {
	return r.store.instance(uri)
}

// Flask returns the Flask registered under id, if any.
func (r *Repository) Flask(id ident.FlaskID) (chemtypes.Flask, bool) {
	return r.store.flask(id)
}

// TargetState returns the state of uri, defaulting to Unknown.
func (r *Repository) TargetState(uri ident.TargetURI) chemtypes.TargetState {
	return r.store.targetState(uri)
}

// Distribution returns a snapshot of flask -> assigned target set.
func (r *Repository) Distribution() map[ident.FlaskID][]chemtypes.Target {
	d := r.store.distribution.Get()
	out := make(map[ident.FlaskID][]chemtypes.Target, len(d))
	for flask, set := range d {
		out[flask] = set.slice()
	}
	return out
}

// AssignedTargets returns the targets assigned to flaskID, failing
// with an *chemtypes.InstanceNotFoundError if the flask is
// unregistered.
func (r *Repository) AssignedTargets(flaskID ident.FlaskID) ([]chemtypes.Target, error) {
	if _, ok := r.store.flask(flaskID); !ok {
		return nil, &chemtypes.InstanceNotFoundError{FlaskID: flaskID}
	}
	d := r.store.distribution.Get()
	set, ok := d[flaskID]
	if !ok {
		return nil, &chemtypes.InstanceNotFoundError{FlaskID: flaskID}
	}
	return set.slice(), nil
}

// UnassignedTargets returns the contents of the Unmonitored bucket.
func (r *Repository) UnassignedTargets() []chemtypes.Target {
	bucket := r.store.stateMaps.Get()[chemtypes.Unmonitored]
	out := make([]chemtypes.Target, 0, len(bucket))
	for _, sc := range bucket {
		out = append(out, sc.Msg.Target)
	}
	return out
}

// UnmonitorableTargets returns the URIs of the Unmonitorable bucket.
func (r *Repository) UnmonitorableTargets() []ident.TargetURI {
	bucket := r.store.stateMaps.Get()[chemtypes.Unmonitorable]
	out := make([]ident.TargetURI, 0, len(bucket))
	for uri := range bucket {
		out = append(out, uri)
	}
	return out
}

// MergeDistribution unions d into the distribution cell using
// set-union per flask, returning the resulting full distribution.
func (r *Repository) MergeDistribution(d map[ident.FlaskID][]chemtypes.Target) map[ident.FlaskID][]chemtypes.Target {
	r.writer.Lock()
	defer r.writer.Unlock()

	merged := r.store.mergeDistribution(d)
	out := make(map[ident.FlaskID][]chemtypes.Target, len(merged))
	for flask, set := range merged {
		out[flask] = set.slice()
	}
	return out
}

// MergeExistingDistribution is the bootstrap path used on startup when
// a pre-existing assignment is learned: for each
// (flask, targets) pair it writes a synthetic
// StateChange(Unknown->Monitored, Confirmation) for each target
// directly into the indices, bypassing the lifecycle engine entirely,
// then merges the same data into the distribution cell.
func (r *Repository) MergeExistingDistribution(d map[ident.FlaskID][]chemtypes.Target) map[ident.FlaskID][]chemtypes.Target {
	r.writer.Lock()
	defer r.writer.Unlock()

	for flask, targets := range d {
		for _, t := range targets {
			sc := chemtypes.StateChange{
				From: chemtypes.Unknown,
				To:   chemtypes.Monitored,
				Msg: chemtypes.LifecycleMsg{
					Kind:    chemtypes.MsgConfirmation,
					Target:  t,
					FlaskID: flask,
					Time:    r.now(),
				},
				Seq: r.nextSeq(),
			}
			r.store.applyStateChange(sc)
			r.refreshGauges()
		}
	}

	merged := r.store.mergeDistribution(d)
	out := make(map[ident.FlaskID][]chemtypes.Target, len(merged))
	for flask, set := range merged {
		out[flask] = set.slice()
	}
	return out
}

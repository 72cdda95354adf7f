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
	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/ident"
	"github.com/yelp/chemist/internal/notify"
)

// targetSet is a Set<Target>, keyed by URI so membership and
// uniqueness checks stay O(1).
type targetSet map[ident.TargetURI]chemtypes.Target

func (s targetSet) clone() targetSet {
	out := make(targetSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func (s targetSet) slice() []chemtypes.Target {
	out := make([]chemtypes.Target, 0, len(s))
	for _, t := range s {
		out = append(out, t)
	}
	return out
}

// stateBucket is a single entry of stateMaps: every target currently
// in that lifecycle state.
type stateBucket map[ident.TargetURI]chemtypes.StateChange

func (b stateBucket) clone() stateBucket {
	out := make(stateBucket, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// store holds the Repository's four logically independent mutable
// cells: targets, stateMaps, distribution, and flasks. Each cell is a
// notify.Var over an immutable
// (copy-on-write) map, so Get is a cheap snapshot and Update composes
// a pure transformation of the prior value.
type store struct {
	targets      *notify.Var[map[ident.TargetURI]chemtypes.StateChange]
	stateMaps    *notify.Var[map[chemtypes.TargetState]stateBucket]
	distribution *notify.Var[map[ident.FlaskID]targetSet]
	flasks       *notify.Var[map[ident.FlaskID]chemtypes.Flask]
}

func newStore() *store {
	stateMaps := make(map[chemtypes.TargetState]stateBucket, len(chemtypes.AllStates))
	for _, s := range chemtypes.AllStates {
		stateMaps[s] = stateBucket{}
	}
	return &store{
		targets:      notify.New(map[ident.TargetURI]chemtypes.StateChange{}),
		stateMaps:    notify.New(stateMaps),
		distribution: notify.New(map[ident.FlaskID]targetSet{}),
		flasks:       notify.New(map[ident.FlaskID]chemtypes.Flask{}),
	}
}

// targetState returns the state of uri, defaulting to Unknown for any
// URI the store has never seen.
func (s *store) targetState(uri ident.TargetURI) chemtypes.TargetState {
	sc, ok := s.targets.Get()[uri]
	if !ok {
		return chemtypes.Unknown
	}
	return sc.To
}

// instance returns the Target recorded for uri, if any.
func (s *store) instance(uri ident.TargetURI) (chemtypes.Target, bool) {
	sc, ok := s.targets.Get()[uri]
	if !ok {
		return chemtypes.Target{}, false
	}
	return sc.Msg.Target, true
}

// applyStateChange mutates targets and stateMaps cell by cell. This is
// safe without an additional transaction because every caller already
// holds the Repository's writer lock (see repository.go), so there is
// never a concurrent second writer to race against between the two
// Update calls.
func (s *store) applyStateChange(sc chemtypes.StateChange) {
	uri := sc.URI()

	s.targets.Update(func(m map[ident.TargetURI]chemtypes.StateChange) map[ident.TargetURI]chemtypes.StateChange {
		next := make(map[ident.TargetURI]chemtypes.StateChange, len(m)+1)
		for k, v := range m {
			next[k] = v
		}
		next[uri] = sc
		return next
	})

	s.stateMaps.Update(func(m map[chemtypes.TargetState]stateBucket) map[chemtypes.TargetState]stateBucket {
		next := make(map[chemtypes.TargetState]stateBucket, len(m))
		for state, bucket := range m {
			if state == sc.From || state == sc.To {
				next[state] = bucket.clone()
			} else {
				next[state] = bucket
			}
		}
		delete(next[sc.From], uri)
		if next[sc.To] == nil {
			next[sc.To] = stateBucket{}
		}
		next[sc.To][uri] = sc
		return next
	})
}

// deleteTarget removes uri from targets and from whichever bucket it
// currently occupies. It is a no-op if uri is already absent.
func (s *store) deleteTarget(uri ident.TargetURI) {
	prior, existed := s.targets.Get()[uri]
	if !existed {
		return
	}

	s.targets.Update(func(m map[ident.TargetURI]chemtypes.StateChange) map[ident.TargetURI]chemtypes.StateChange {
		if _, ok := m[uri]; !ok {
			return m
		}
		next := make(map[ident.TargetURI]chemtypes.StateChange, len(m))
		for k, v := range m {
			if k != uri {
				next[k] = v
			}
		}
		return next
	})

	s.stateMaps.Update(func(m map[chemtypes.TargetState]stateBucket) map[chemtypes.TargetState]stateBucket {
		bucket, ok := m[prior.To]
		if !ok {
			return m
		}
		if _, ok := bucket[uri]; !ok {
			return m
		}
		next := make(map[chemtypes.TargetState]stateBucket, len(m))
		for state, b := range m {
			next[state] = b
		}
		nb := bucket.clone()
		delete(nb, uri)
		next[prior.To] = nb
		return next
	})
}

// upsertFlask registers f, initializing an empty distribution entry if
// one does not already exist.
func (s *store) upsertFlask(f chemtypes.Flask) {
	s.flasks.Update(func(m map[ident.FlaskID]chemtypes.Flask) map[ident.FlaskID]chemtypes.Flask {
		next := make(map[ident.FlaskID]chemtypes.Flask, len(m)+1)
		for k, v := range m {
			next[k] = v
		}
		next[f.ID] = f
		return next
	})
	s.distribution.Update(func(m map[ident.FlaskID]targetSet) map[ident.FlaskID]targetSet {
		if _, ok := m[f.ID]; ok {
			return m
		}
		next := make(map[ident.FlaskID]targetSet, len(m)+1)
		for k, v := range m {
			next[k] = v
		}
		next[f.ID] = targetSet{}
		return next
	})
}

// flask returns the Flask registered under id, if any.
func (s *store) flask(id ident.FlaskID) (chemtypes.Flask, bool) {
	f, ok := s.flasks.Get()[id]
	return f, ok
}

// mergeDistribution unions d into the distribution cell, one flask at
// a time, returning the resulting full distribution.
func (s *store) mergeDistribution(d map[ident.FlaskID][]chemtypes.Target) map[ident.FlaskID]targetSet {
	return s.distribution.Update(func(m map[ident.FlaskID]targetSet) map[ident.FlaskID]targetSet {
		next := make(map[ident.FlaskID]targetSet, len(m))
		for k, v := range m {
			next[k] = v.clone()
		}
		for flask, targets := range d {
			set, ok := next[flask]
			if !ok {
				set = targetSet{}
			} else {
				set = set.clone()
			}
			for _, t := range targets {
				set[t.URI] = t
			}
			next[flask] = set
		}
		return next
	})
}

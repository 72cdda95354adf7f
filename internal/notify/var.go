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

// Package notify provides Var, a single mutable cell supporting
// linearizable reads and pure-function updates. It is the building
// block for the Repository's state cells, reconstructed from the
// call-site contract of cdc-sink's
// internal/util/notify.Var[T] (used as resolver.marked,
// resolver.retirements in internal/source/cdc/resolver.go) since that
// package itself was not part of the retrieved sources.
package notify

import "sync"

// Var holds a single value of type T, guarded by an RWMutex so reads
// never block each other and never block behind a writer holding the
// lock for longer than a single Update call.
type Var[T any] struct {
	mu  sync.RWMutex
	val T
}

// New constructs a Var holding the given initial value.
func New[T any](initial T) *Var[T] {
	return &Var[T]{val: initial}
}

// Get returns a snapshot of the current value.
func (v *Var[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

// Update applies f to the current value and stores the result,
// returning it. f must be a pure function of its argument: it must
// not retain or mutate shared state reachable from other goroutines,
// since it runs while the Var's write lock is held.
func (v *Var[T]) Update(f func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.val = f(v.val)
	return v.val
}

// Set replaces the current value outright.
func (v *Var[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.val = val
}

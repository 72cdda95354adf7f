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

// Package worker provides a small bounded executor standing in for
// the source's process-wide Chemist.serverPool, lifted to a
// constructor parameter instead of a package-level global.
package worker

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of concurrently executing tasks submitted via
// Go. Unlike an unbounded "go func()" per event, this keeps a
// misbehaving upstream (platform discovery and flask telemetry are
// untrusted external collaborators) from spawning unbounded
// goroutines.
type Pool struct {
	sem *semaphore.Weighted
}

// New constructs a Pool that runs at most size tasks concurrently.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Go runs fn on the pool, blocking the caller until a slot is free or
// ctx is done. If ctx is done before a slot frees up, fn is not run
// and ctx.Err() is returned.
func (p *Pool) Go(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	go func() {
		defer p.sem.Release(1)
		fn()
	}()
	return nil
}

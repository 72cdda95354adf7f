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
	"sync"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/ident"
)

// commandQueue is an unbounded, multi-producer/single-consumer stream
// of RepoCommands: the only suspension inside the critical path is
// enqueuing onto this queue, which never blocks. It is backed by a
// mutex-guarded slice rather than a buffered channel so that Enqueue truly never
// blocks regardless of how far behind the consumer has fallen; a
// forwarding goroutine drains the slice into a channel for callers
// that want the idiomatic range-over-channel API.
type commandQueue struct {
	mu     sync.Mutex
	buf    []chemtypes.RepoCommand
	notify chan struct{}

	out    chan chemtypes.RepoCommand
	closed bool

	// outstandingReassign tracks flasks with a ReassignWork command
	// still waiting in buf, supporting the optional dedup mode. A flask
	// leaves it as soon as pump takes its command out of buf, before
	// the command is handed to (or read from) the out channel.
	dedup               bool
	outstandingReassign map[ident.FlaskID]bool
}

func newCommandQueue(dedup bool) *commandQueue {
	q := &commandQueue{
		notify:              make(chan struct{}, 1),
		out:                 make(chan chemtypes.RepoCommand, 64),
		dedup:               dedup,
		outstandingReassign: make(map[ident.FlaskID]bool),
	}
	go q.pump()
	return q
}

// Enqueue appends cmd to the queue. It never blocks.
func (q *commandQueue) Enqueue(cmd chemtypes.RepoCommand) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	if q.dedup && cmd.Kind == chemtypes.CommandReassignWork {
		if q.outstandingReassign[cmd.FlaskID] {
			q.mu.Unlock()
			return
		}
		q.outstandingReassign[cmd.FlaskID] = true
	}
	q.buf = append(q.buf, cmd)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// pump forwards buffered commands onto the bounded out channel,
// blocking only the pump goroutine itself (never a producer) when the
// consumer is slow.
func (q *commandQueue) pump() {
	for {
		q.mu.Lock()
		if len(q.buf) == 0 {
			if q.closed {
				q.mu.Unlock()
				close(q.out)
				return
			}
			q.mu.Unlock()
			<-q.notify
			continue
		}
		next := q.buf[0]
		q.buf = q.buf[1:]
		if q.dedup && next.Kind == chemtypes.CommandReassignWork {
			delete(q.outstandingReassign, next.FlaskID)
		}
		q.mu.Unlock()

		q.out <- next
	}
}

// Out returns the channel consumers range over.
func (q *commandQueue) Out() <-chan chemtypes.RepoCommand {
	return q.out
}

// Close stops accepting new commands and, once the buffer drains,
// closes Out() so a ranging consumer observes end-of-stream.
func (q *commandQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

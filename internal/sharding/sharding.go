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

// Package sharding defines the contract for the sharding component
// that consumes chemist's outbound RepoCommand stream. Assignment
// policy itself is out of scope for this repository: this package
// holds only the consumer interface and a logging reference
// implementation suitable for tests and default wiring.
package sharding

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yelp/chemist/internal/chemtypes"
)

// Consumer drains a RepoCommand stream, deciding which flask gets a
// new target, opening telemetry channels, and redistributing work on
// flask termination. Run should return when ctx is done or cmds is
// closed.
type Consumer interface {
	Run(ctx context.Context, cmds <-chan chemtypes.RepoCommand) error
}

// Logger is a Consumer that only logs each command it receives. It
// implements no assignment policy; it exists so cmd/chemist has
// something to wire the Repository's command stream into without
// inventing sharding behavior this repository does not own.
type Logger struct {
	Log logrus.FieldLogger
}

var _ Consumer = (*Logger)(nil)

// Run implements Consumer.
func (l *Logger) Run(ctx context.Context, cmds <-chan chemtypes.RepoCommand) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}
			l.log(cmd)
		}
	}
}

func (l *Logger) log(cmd chemtypes.RepoCommand) {
	entry := l.Log.WithField("kind", cmd.Kind.String())
	switch cmd.Kind {
	case chemtypes.CommandMonitor:
		entry.WithField("target", cmd.Target.URI).Info("repo command: monitor target")
	case chemtypes.CommandTelemetry:
		entry.WithField("flask", cmd.Flask.ID).Info("repo command: open telemetry")
	case chemtypes.CommandReassignWork:
		entry.WithField("flask", cmd.FlaskID).Info("repo command: reassign work")
	}
}

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

// Package config holds chemist's user-visible configuration: a plain
// struct with a Bind(*pflag.FlagSet) method registering flags and a
// Preflight() error method validating the result.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Config is the Repository's tunable policy: history buffer sizes,
// lifecycle policy constants, and pool sizing, all treated as
// configuration rather than hard-coded constants.
type Config struct {
	// PlatformHistorySize bounds historyStack.
	PlatformHistorySize int
	// RepoHistorySize bounds repoHistoryStack.
	RepoHistorySize int
	// ErrorHistorySize bounds errorStack.
	ErrorHistorySize int

	// InvestigateAttemptThreshold is N in the lifecycle transition
	// table: the attempt count at which an Investigating target is
	// retired to Fin.
	InvestigateAttemptThreshold int

	// WorkerPoolSize bounds the concurrency of the executor standing
	// in for the source's Chemist.serverPool.
	WorkerPoolSize int

	// ReassignWorkDedup drops a ReassignWork command for a flask while
	// an earlier one for the same flask is still waiting in the
	// outbound queue's internal buffer, i.e. not yet forwarded to
	// Commands(). Optional; off by default.
	ReassignWorkDedup bool
}

// DefaultConfig returns chemist's default tuning.
func DefaultConfig() Config {
	return Config{
		PlatformHistorySize:         2000,
		RepoHistorySize:             2000,
		ErrorHistorySize:            500,
		InvestigateAttemptThreshold: 3,
		WorkerPoolSize:              8,
		ReassignWorkDedup:           false,
	}
}

// Bind registers flags for every field, using DefaultConfig's values
// as defaults.
func (c *Config) Bind(flags *pflag.FlagSet) {
	d := DefaultConfig()
	flags.IntVar(&c.PlatformHistorySize, "platformHistorySize", d.PlatformHistorySize,
		"number of PlatformEvents retained in the audit history ring buffer")
	flags.IntVar(&c.RepoHistorySize, "repoHistorySize", d.RepoHistorySize,
		"number of RepoEvents retained in the repo-event history ring buffer")
	flags.IntVar(&c.ErrorHistorySize, "errorHistorySize", d.ErrorHistorySize,
		"number of Errors retained in the error history ring buffer")
	flags.IntVar(&c.InvestigateAttemptThreshold, "investigateAttemptThreshold", d.InvestigateAttemptThreshold,
		"number of Investigate attempts before a target is retired to Fin")
	flags.IntVar(&c.WorkerPoolSize, "workerPoolSize", d.WorkerPoolSize,
		"maximum number of concurrently running platform-handler tasks")
	flags.BoolVar(&c.ReassignWorkDedup, "reassignWorkDedup", d.ReassignWorkDedup,
		"drop duplicate ReassignWork commands for a flask with one still waiting in the outbound queue")
}

// Preflight validates the configuration.
func (c *Config) Preflight() error {
	if c.PlatformHistorySize <= 0 {
		return errors.New("platformHistorySize must be positive")
	}
	if c.RepoHistorySize <= 0 {
		return errors.New("repoHistorySize must be positive")
	}
	if c.ErrorHistorySize <= 0 {
		return errors.New("errorHistorySize must be positive")
	}
	if c.InvestigateAttemptThreshold <= 0 {
		return errors.New("investigateAttemptThreshold must be positive")
	}
	if c.WorkerPoolSize <= 0 {
		return errors.New("workerPoolSize must be positive")
	}
	return nil
}

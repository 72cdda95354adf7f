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

// Command chemist runs the control-plane ledger as a standalone
// process: it parses flags into a config.Config, wires up the
// Repository and its collaborators, and drains the outbound
// RepoCommand stream into a sharding.Consumer until signaled to stop.
//
// Platform discovery and flask telemetry are out of scope for this
// repository; operators embedding chemist for real use are expected to
// feed Repository.PlatformHandler from their own platform.Source and
// telemetry.Receiver implementations, e.g. by replacing main with a
// thin wrapper that calls InitializeApp and then drives
// App.Repo.PlatformHandler directly.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/yelp/chemist/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("chemist", pflag.ContinueOnError)

	cfg := config.DefaultConfig()
	cfg.Bind(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := cfg.Preflight(); err != nil {
		return errors.WithStack(err)
	}

	app, err := InitializeApp(&cfg)
	if err != nil {
		return errors.WithStack(err)
	}
	app.Log.WithField("workerPoolSize", cfg.WorkerPoolSize).Info("chemist starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		app.Log.WithError(err).Error("chemist exited with error")
		return err
	}
	app.Log.Info("chemist stopped")
	return nil
}

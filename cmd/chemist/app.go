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

package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/yelp/chemist/internal/repo"
	"github.com/yelp/chemist/internal/sharding"
)

// App bundles every wired component cmd/chemist needs to run, a single
// struct assembled by Wire.
type App struct {
	Log      logrus.FieldLogger
	Registry *prometheus.Registry
	Repo     *repo.Repository
	Sharding sharding.Consumer
}

// Run drains the Repository's outbound command stream into the
// sharding consumer until ctx is canceled, then closes the Repository
// so Run's caller can observe end-of-stream on a second drain (if any)
// and exit cleanly.
func (a *App) Run(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- a.Sharding.Run(ctx, a.Repo.Commands())
	}()

	<-ctx.Done()
	a.Repo.Close()

	if err := <-done; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

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
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/yelp/chemist/internal/config"
	"github.com/yelp/chemist/internal/metrics"
	"github.com/yelp/chemist/internal/repo"
	"github.com/yelp/chemist/internal/sharding"
	"github.com/yelp/chemist/internal/worker"
)

// Set is used by Wire.
// InitializeApp is built by hand in wire_gen.go to match what `go run
// github.com/google/wire/cmd/wire` would emit from this set; the
// //go:generate directive is kept below as documentation of how it
// would be regenerated.
//
//go:generate go run github.com/google/wire/cmd/wire
var Set = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideMetricsSink,
	ProvideWorkerPool,
	ProvideRepository,
	ProvideShardingConsumer,
	wire.Struct(new(App), "*"),
)

// ProvideLogger constructs the structured logger every other
// component receives instead of reaching for a package-level global.
func ProvideLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}

// ProvideRegistry constructs a dedicated prometheus registry, rather
// than reaching for prometheus.DefaultRegisterer, so tests can swap it
// freely.
func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideMetricsSink constructs the Repository's metrics.Sink,
// replacing the source's metric singletons (AssignedHosts,
// PlatformEventFailures).
func ProvideMetricsSink(reg *prometheus.Registry) *metrics.Sink {
	return metrics.NewSink(reg)
}

// ProvideWorkerPool constructs the bounded executor standing in for
// Chemist.serverPool.
func ProvideWorkerPool(cfg *config.Config) *worker.Pool {
	return worker.New(cfg.WorkerPoolSize)
}

// ProvideRepository constructs the Repository.
func ProvideRepository(
	cfg *config.Config, log logrus.FieldLogger, sink *metrics.Sink, pool *worker.Pool,
) *repo.Repository {
	return repo.New(*cfg, log, sink, pool)
}

// ProvideShardingConsumer constructs the default (logging-only)
// sharding consumer. Real assignment policy lives outside this
// repository; see internal/sharding's package doc.
func ProvideShardingConsumer(log logrus.FieldLogger) sharding.Consumer {
	return &sharding.Logger{Log: log}
}

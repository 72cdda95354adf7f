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

//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yelp/chemist/internal/config"
)

// InitializeApp wires together an *App from cfg. This file is never
// compiled into the binary (see the wireinject build tag); it exists
// so `wire` can regenerate wire_gen.go. wire_gen.go is the hand-written
// equivalent kept in sync with this injector by hand, matching the
// teacher's own checked-in wire_gen.go files.
func InitializeApp(cfg *config.Config) (*App, error) {
	panic(wire.Build(Set))
}

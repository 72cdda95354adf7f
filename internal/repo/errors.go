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

import "github.com/pkg/errors"

// asError normalizes a recover() value into an error, wrapping it with
// a stack trace via pkg/errors the way the rest of this repository
// does for everything else.
func asError(rec any) error {
	if err, ok := rec.(error); ok {
		return errors.WithStack(err)
	}
	return errors.Errorf("%v", rec)
}

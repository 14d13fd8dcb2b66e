// Copyright (C) 2025 modcore contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package slogext

import (
	"bytes"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// NewCapturedLogger returns a Logger that writes to an in-memory
// buffer instead of stdout, for tests that assert on log output.
func NewCapturedLogger() (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := charmlog.NewWithOptions(buf, charmlog.Options{
		ReportTimestamp: false,
	})
	return &logger{slog.New(handler), handler}, buf
}

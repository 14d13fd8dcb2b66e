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

package pluginstrategy_test

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"

	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/internal/pluginstrategy"
	"go.rgst.io/modcore/internal/strategy"
	"go.rgst.io/modcore/pkg/slogext"
)

func TestLoadUsesBuiltinWhenForced(t *testing.T) {
	got, closer := pluginstrategy.Load(context.Background(), pluginstrategy.Options{
		UseBuiltin: true,
		Log:        diag.NewLog(slogext.New()),
		Logger:     slogext.New(),
	})
	defer closer()

	_, ok := got.(strategy.Zero)
	assert.Assert(t, ok)
}

func TestLoadFallsBackToBuiltinWhenPathMissing(t *testing.T) {
	got, closer := pluginstrategy.Load(context.Background(), pluginstrategy.Options{
		StrategyPath: "/nonexistent/strategy-binary",
		Log:          diag.NewLog(slogext.New()),
		Logger:       slogext.New(),
	})
	defer closer()

	_, ok := got.(strategy.Zero)
	assert.Assert(t, ok)
}

func TestLoadUsesBuiltinWhenNoPathConfigured(t *testing.T) {
	got, closer := pluginstrategy.Load(context.Background(), pluginstrategy.Options{
		Log:    diag.NewLog(slogext.New()),
		Logger: slogext.New(),
	})
	defer closer()

	_, ok := got.(strategy.Zero)
	assert.Assert(t, ok)
}

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

// Package pluginstrategy loads an out-of-process resolver strategy
// over the apiv1 go-plugin protocol, with the discovery order spec.md
// section 6.3 describes: an environment override selects the built-in
// "zero" strategy; otherwise the configured strategy path is loaded,
// falling back to "zero" (and a diagnostic) on failure.
package pluginstrategy

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/internal/pluginstrategy/apiv1"
	"go.rgst.io/modcore/internal/strategy"
	"go.rgst.io/modcore/pkg/names"
	"go.rgst.io/modcore/pkg/slogext"
)

// Options configures Load.
type Options struct {
	// UseBuiltin forces the built-in "zero" strategy regardless of
	// StrategyPath, mirroring the "use the built-in resolver strategy
	// unconditionally" CLI switch.
	UseBuiltin bool

	// StrategyPath is the path of the out-of-process strategy plugin
	// executable Load launches, if any.
	StrategyPath string

	Log    *diag.Log
	Logger slogext.Logger
}

// strategyEnvVar is the environment override: set to "zero", it
// selects the built-in strategy before any plugin is considered.
const strategyEnvVar = "MODCORE_RESOLVER_STRATEGY"

// Load resolves a strategy.Strategy per the discovery order above. It
// never errors: failures degrade to strategy.Zero with a reported
// diagnostic. The returned closer must be called when the strategy is
// no longer needed (a no-op for the built-in strategy).
func Load(ctx context.Context, opts Options) (strategy.Strategy, func() error) {
	if os.Getenv(strategyEnvVar) == "zero" || opts.UseBuiltin || opts.StrategyPath == "" {
		return strategy.Zero{}, func() error { return nil }
	}

	impl, closer, err := apiv1.NewStrategyClient(ctx, opts.StrategyPath, opts.Logger)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			opts.Log.Report(diag.ModuleLibraryNotFound, "path", opts.StrategyPath)
		} else {
			opts.Log.Report(diag.CannotOpenModuleLibrary, "path", opts.StrategyPath, "error", err.Error())
		}
		return strategy.Zero{}, func() error { return nil }
	}

	return &adapter{impl: impl}, closer
}

// adapter implements strategy.Strategy over the wire-safe apiv1
// Implementation, translating names.ModuleId in both directions.
type adapter struct {
	impl apiv1.Implementation
}

func toWire(ids []names.ModuleId) []apiv1.ModuleIdWire {
	out := make([]apiv1.ModuleIdWire, len(ids))
	for i, id := range ids {
		out[i] = apiv1.ModuleIdWire{Name: id.Name.String(), Version: id.Version.String()}
	}
	return out
}

func fromWire(ids []apiv1.ModuleIdWire, grammar names.VersionGrammar) []names.ModuleId {
	out := make([]names.ModuleId, len(ids))
	for i, id := range ids {
		v, _ := grammar.Parse(id.Version)
		out[i] = names.ModuleId{Name: names.Intern(id.Name), Version: v}
	}
	return out
}

func (a *adapter) Resolve(roots, allNamed []names.ModuleId) ([]names.ModuleId, bool) {
	resp, err := a.impl.Resolve(&apiv1.ResolveRequest{
		Roots:    toWire(roots),
		AllNamed: toWire(allNamed),
	})
	if err != nil || resp.Declined {
		return nil, false
	}
	return fromWire(resp.Modules, names.StrictGrammar{}), true
}

func (a *adapter) IsPackageVisible(module names.ModuleId, pkg names.Name) bool {
	visible, err := a.impl.IsPackageVisible(&apiv1.VisibilityRequest{
		Module:  apiv1.ModuleIdWire{Name: module.Name.String(), Version: module.Version.String()},
		Package: pkg.String(),
	})
	return err == nil && visible
}

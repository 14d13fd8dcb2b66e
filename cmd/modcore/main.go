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

// Package main implements the modcore CLI, a thin driver over the
// module resolver core: it wires internal/config, internal/driver,
// internal/catalog, internal/filemanager, internal/location, and
// internal/pluginstrategy together. The full resolution semantics
// live in those packages; this package only parses flags, builds a
// driver, and reports its state. It runs no resolve, so the
// --module-path directories are stored in the configuration but not
// searched, and they are not passed to the strategy.
package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.rgst.io/modcore/internal/catalog"
	"go.rgst.io/modcore/internal/config"
	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/internal/driver"
	"go.rgst.io/modcore/internal/filemanager"
	"go.rgst.io/modcore/internal/location"
	"go.rgst.io/modcore/internal/pluginstrategy"
	"go.rgst.io/modcore/pkg/names"
	"go.rgst.io/modcore/pkg/slogext"
)

// Version is set at build time via ldflags.
var Version = "dev"

// stdoutClassReader is the cmd/modcore ClassReader: it just reports
// the resolved path location, since this CLI has no class reader of
// its own to drive.
type stdoutClassReader struct {
	log slogext.Logger
}

func (c *stdoutClassReader) SetPathLocation(loc location.Location) {
	c.log.Infof("resolved module path location: %s", loc.Name())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := slogext.New()

	app := cli.App{
		Version:     Version,
		Name:        "modcore",
		Description: "a standalone module resolver for a Java-style module system",
		Action: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.SetLevel(slogext.DebugLevel)
			}

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return errors.Wrap(err, "load config")
			}
			if c.Bool("disable-modules") {
				cfg.DisableModules = true
			}
			if c.Bool("use-zero-resolver") {
				cfg.UseBuiltinStrategy = true
			}
			if mp := c.StringSlice("module-path"); len(mp) > 0 {
				cfg.ModulePath = mp
			}

			diagLog := diag.NewLog(log, config.DebugCategories()...)

			strat, closer := pluginstrategy.Load(ctx, pluginstrategy.Options{
				UseBuiltin:   cfg.UseBuiltinStrategy,
				StrategyPath: cfg.StrategyPath,
				Log:          diagLog,
				Logger:       log,
			})
			defer closer()

			fm := filemanager.NewOSFileManager(".", filemanager.Multiple)

			d := driver.New(driver.Options{
				Catalog:         catalog.New(diagLog),
				Log:             diagLog,
				FileManager:     fm,
				Merger:          location.NewMerger(),
				Strategy:        strat,
				Grammar:         names.StrictGrammar{},
				ClassReader:     &stdoutClassReader{log: log},
				ModulesDisabled: cfg.DisableModules,
			})

			log.Infof("modcore %s: driver ready in state %d", c.App.Version, d.State())
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a modcore.yaml configuration manifest",
			},
			&cli.StringSliceFlag{
				Name:  "module-path",
				Usage: "Module directories, in order (stored in the configuration; this command does not search them)",
			},
			&cli.BoolFlag{
				Name:  "disable-modules",
				Usage: "Globally disable module processing",
			},
			&cli.BoolFlag{
				Name:  "use-zero-resolver",
				Usage: "Force the built-in zero resolver strategy",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Error("failed to run")
		os.Exit(1)
	}
}

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

package apiv1

import (
	"github.com/hashicorp/go-plugin"

	"go.rgst.io/modcore/pkg/slogext"
)

// Serve starts impl as a strategy plugin server, blocking until the
// host process disconnects. Meant to be called from a strategy
// executable's main, never from modcore itself.
func Serve(impl Implementation, log slogext.Logger) {
	plugin.Serve(&plugin.ServeConfig{
		Logger: slogext.NewHCLogAdapter(log),
		HandshakeConfig: plugin.HandshakeConfig{
			ProtocolVersion:  Version,
			MagicCookieKey:   CookieKey,
			MagicCookieValue: CookieValue,
		},
		Plugins: map[string]plugin.Plugin{
			Name: &StrategyPlugin{Impl: impl},
		},
	})
}

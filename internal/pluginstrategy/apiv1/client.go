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
	"context"
	"fmt"
	"os/exec"
	"reflect"

	"github.com/hashicorp/go-plugin"

	"go.rgst.io/modcore/pkg/slogext"
)

// NewStrategyClient launches the strategy executable at path and
// returns an Implementation bound to it plus a closer to tear it down.
func NewStrategyClient(ctx context.Context, path string, log slogext.Logger) (Implementation, func() error, error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		Logger: slogext.NewHCLogAdapter(log),
		HandshakeConfig: plugin.HandshakeConfig{
			ProtocolVersion:  Version,
			MagicCookieKey:   CookieKey,
			MagicCookieValue: CookieValue,
		},
		Plugins: map[string]plugin.Plugin{
			Name: &StrategyPlugin{},
		},
		Cmd: exec.CommandContext(ctx, path),
	})

	rpcClient, err := client.Client()
	if err != nil {
		return nil, func() error { return nil }, fmt.Errorf("failed to connect to strategy plugin: %w", err)
	}

	raw, err := rpcClient.Dispense(Name)
	if err != nil {
		return nil, func() error { return nil }, fmt.Errorf("failed to dispense strategy plugin: %w", err)
	}

	impl, ok := raw.(Implementation)
	if !ok {
		return nil, func() error { return nil }, fmt.Errorf("strategy plugin returned unexpected type %s", reflect.TypeOf(raw))
	}

	return impl, rpcClient.Close, nil
}

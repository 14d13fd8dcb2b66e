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
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// StrategyPlugin is the high-level go-plugin Plugin; it stores both
// the server-side and client-side implementation.
type StrategyPlugin struct {
	Impl Implementation
}

// Server serves Impl over net/rpc.
func (p *StrategyPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &rpcServer{impl: p.Impl}, nil
}

// Client returns an rpc-backed Implementation.
func (p *StrategyPlugin) Client(_ *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &rpcClient{client: c}, nil
}

// rpcClient implements Implementation over net/rpc, on the modcore
// side of the plugin boundary.
type rpcClient struct {
	client *rpc.Client
}

func (c *rpcClient) Resolve(req *ResolveRequest) (*ResolveResponse, error) {
	var resp ResolveResponse
	err := c.client.Call("Plugin.Resolve", req, &resp)
	return &resp, err
}

func (c *rpcClient) IsPackageVisible(req *VisibilityRequest) (bool, error) {
	var resp bool
	err := c.client.Call("Plugin.IsPackageVisible", req, &resp)
	return resp, err
}

// rpcServer implements the net/rpc-visible methods go-plugin dispatches
// into, on the strategy-implementation side of the boundary.
type rpcServer struct {
	impl Implementation
}

func (s *rpcServer) Resolve(req *ResolveRequest, resp *ResolveResponse) error {
	r, err := s.impl.Resolve(req)
	if r != nil {
		*resp = *r
	}
	return err
}

func (s *rpcServer) IsPackageVisible(req *VisibilityRequest, resp *bool) error {
	v, err := s.impl.IsPackageVisible(req)
	*resp = v
	return err
}

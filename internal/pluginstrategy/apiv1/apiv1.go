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

// Package apiv1 implements the out-of-process resolver-strategy
// protocol: the wire types and the go-plugin/net-rpc transport that
// carries a Strategy implementation across a subprocess boundary.
package apiv1

const (
	// Version is the handshake protocol version.
	Version = 1

	// CookieKey/CookieValue are the magic cookie go-plugin uses to
	// confirm a child process intends to speak this protocol.
	CookieKey   = "MODCORE_STRATEGY_PLUGIN"
	CookieValue = "dfe11f9b-strategy"

	// Name is the plugin map key used on both ends of the connection.
	Name = "strategy"
)

// ModuleIdWire is the wire form of names.ModuleId, since the RPC
// transport can't carry interned pointers across a process boundary.
type ModuleIdWire struct {
	Name    string
	Version string
}

// ResolveRequest is the RPC argument for Implementation.Resolve.
type ResolveRequest struct {
	Roots    []ModuleIdWire
	AllNamed []ModuleIdWire
}

// ResolveResponse is the RPC result for Implementation.Resolve.
type ResolveResponse struct {
	Modules  []ModuleIdWire
	Declined bool
}

// VisibilityRequest is the RPC argument for
// Implementation.IsPackageVisible.
type VisibilityRequest struct {
	Module  ModuleIdWire
	Package string
}

// Implementation is the strategy capability exposed across the plugin
// boundary, mirroring strategy.Strategy but in wire-safe terms.
type Implementation interface {
	Resolve(req *ResolveRequest) (*ResolveResponse, error)
	IsPackageVisible(req *VisibilityRequest) (bool, error)
}

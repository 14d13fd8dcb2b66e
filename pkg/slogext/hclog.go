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
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// writerFunc adapts a function into an io.Writer, the same shim shape
// used to route a go-plugin subprocess's log lines back through a
// Logger.
type writerFunc func(args ...any)

func (f writerFunc) Write(p []byte) (int, error) {
	f(string(p))
	return len(p), nil
}

// NewHCLogAdapter bridges a Logger into an hclog.Logger, for use with
// github.com/hashicorp/go-plugin, which requires hclog for both its
// client and server configuration.
func NewHCLogAdapter(l Logger) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Level:       hclog.Trace,
		Output:      writerFunc(func(args ...any) { l.Debug(fmt.Sprint(args...)) }),
		DisableTime: true,
	})
}

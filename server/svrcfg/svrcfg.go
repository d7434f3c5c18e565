// Copyright 2025 Zintix Labs
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

package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/server/logger"
)

const (
	DefaultTimeout  = 5 * time.Second
	MaxTimeout      = 60 * time.Second
	DefaultInflight = 64
)

// SvrCfg is everything the server needs injected.
type SvrCfg struct {
	Log     *slog.Logger
	Lab     *tosslab.Lab
	Addr    string        // listen address, empty for the default
	Timeout time.Duration // per-request budget for report handlers

	// MaxInflight caps concurrent report builds; waiting counts against Timeout.
	MaxInflight int64
}

// Valid normalises the config in place and reports missing dependencies.
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("async log handler is not ready")
		}
	} else {
		sc.Log = logger.NewDefaultLogger(logger.ModeSilence)
	}
	if sc.Timeout <= 0 {
		sc.Timeout = DefaultTimeout
	}
	sc.Timeout = min(sc.Timeout, MaxTimeout)
	if sc.MaxInflight <= 0 {
		sc.MaxInflight = DefaultInflight
	}
	if sc.Lab == nil {
		return errs.NewFatal("lab is required")
	}
	return nil
}

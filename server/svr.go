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

// Package server wires a tosslab.Lab behind the HTTP API and runs it until
// a signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/server/api"
	"github.com/zintix-labs/tosslab/server/app"
	"github.com/zintix-labs/tosslab/server/netsvr"
	"github.com/zintix-labs/tosslab/server/svrcfg"
)

// Run validates sCfg, builds the default chi server on sCfg.Addr and blocks
// until shutdown.
func Run(sCfg *svrcfg.SvrCfg) error {
	if sCfg == nil {
		return errs.NewFatal("server config is required")
	}
	if err := sCfg.Valid(); err != nil {
		// the logger itself may be what is broken
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return RunWithSvr(sCfg, netsvr.NewChiServer(sCfg.Addr))
}

// RunWithSvr is Run on a caller-provided server, for mounting the API next to
// other routes or behind a different net/http framework.
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if sCfg == nil {
		return errs.NewFatal("server config is required")
	}
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		err := errs.NewFatal("svr is required")
		sCfg.Log.Error(err.Error())
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		err := errs.NewFatal("default server is not ready")
		sCfg.Log.Error(err.Error())
		return err
	}
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register routes failed", slog.Any("err", err))
		return err
	}

	a := app.NewWith(sCfg.Log, svr, labComponent{sCfg.Lab})
	if s, ok := svr.(*netsvr.ChiAdapter); ok {
		sCfg.Log.Info("[tosslab] listening on http://localhost" + s.Address())
	}
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}

// labComponent ties the lab's lifetime to the app: shutdown closes it so
// in-flight handlers fail fast instead of racing the listener.
type labComponent struct {
	lab *tosslab.Lab
}

func (c labComponent) Run() error {
	<-c.lab.Done()
	return nil
}

func (c labComponent) Shutdown(ctx context.Context) error {
	c.lab.Close()
	return nil
}

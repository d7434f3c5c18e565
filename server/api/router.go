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

package api

import (
	"log/slog"

	v1 "github.com/zintix-labs/tosslab/server/api/v1"
	"github.com/zintix-labs/tosslab/server/netsvr"
	"github.com/zintix-labs/tosslab/server/netsvr/middleware"
	"github.com/zintix-labs/tosslab/server/svrcfg"
)

// RegisterRoutes installs middleware, then the health probe, then /v1.
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)
	return registerV1API(svr, sCfg)
}

// order matters: the access log needs the request id, and panics must be
// recovered before the access log records the status
func registerMiddleware(svr netsvr.NetRouter, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.Compression)
}

func registerV1API(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) error {
	h, err := v1.NewReportHandler(sCfg)
	if err != nil {
		return err
	}
	svr.Get("/healthz", h.Health)
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/report", h.Report)
		vOne.Get("/report.md", h.Markdown)
		vOne.Get("/report.html", h.HTML)
		vOne.Get("/report.xlsx", h.XLSX)
		vOne.Get("/toss", h.Toss)
		vOne.Get("/chisquare", h.ChiSquare)
		vOne.Get("/formats", h.Formats)
		vOne.Get("/decisions", h.Decisions)
		vOne.Get("/yearly", h.Yearly)
		vOne.Get("/teams", h.Teams)
		vOne.Get("/venues", h.Venues)
		vOne.Get("/meta", h.Meta)

		vOne.Post("/analyze", h.Analyze)
	})
	return nil
}

package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/dto"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/export"
	"github.com/zintix-labs/tosslab/server/httperr"
	"github.com/zintix-labs/tosslab/server/svrcfg"
	"github.com/zintix-labs/tosslab/stats"
	"golang.org/x/sync/semaphore"
)

// ============================================================
// ** ReportHandler **
// ============================================================

type ReportHandler struct {
	lab     *tosslab.Lab
	log     *slog.Logger
	timeout time.Duration
	sem     *semaphore.Weighted // bounds concurrent report builds
}

func NewReportHandler(sCfg *svrcfg.SvrCfg) (*ReportHandler, error) {
	if sCfg == nil || sCfg.Lab == nil {
		return nil, errs.NewFatal("build report handler error: lab is required")
	}
	inflight := sCfg.MaxInflight
	if inflight <= 0 {
		inflight = svrcfg.DefaultInflight
	}
	return &ReportHandler{
		lab:     sCfg.Lab,
		log:     sCfg.Log,
		timeout: sCfg.Timeout,
		sem:     semaphore.NewWeighted(inflight),
	}, nil
}

// Report serves the full report for the query filter.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	f, rep, ok := h.build(w, r)
	if !ok {
		return
	}
	h.write(w, dto.NewSection(f, rep, rep))
}

func (h *ReportHandler) Toss(w http.ResponseWriter, r *http.Request) {
	serveSection(h, w, r, func(rep *tosslab.Report) stats.TossStats { return rep.Summary })
}

func (h *ReportHandler) ChiSquare(w http.ResponseWriter, r *http.Request) {
	serveSection(h, w, r, func(rep *tosslab.Report) stats.ChiSquareResult { return rep.ChiSquare })
}

func (h *ReportHandler) Formats(w http.ResponseWriter, r *http.Request) {
	serveSection(h, w, r, func(rep *tosslab.Report) []stats.FormatRow { return rep.Formats })
}

func (h *ReportHandler) Decisions(w http.ResponseWriter, r *http.Request) {
	serveSection(h, w, r, func(rep *tosslab.Report) []stats.DecisionRow { return rep.Decisions })
}

func (h *ReportHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	serveSection(h, w, r, func(rep *tosslab.Report) []stats.YearRow { return rep.Yearly })
}

func (h *ReportHandler) Teams(w http.ResponseWriter, r *http.Request) {
	serveSection(h, w, r, func(rep *tosslab.Report) []stats.TeamRow { return rep.Teams })
}

func (h *ReportHandler) Venues(w http.ResponseWriter, r *http.Request) {
	serveSection(h, w, r, func(rep *tosslab.Report) []stats.VenueRow { return rep.Venues })
}

// Analyze builds a report on the records in the request body instead of the
// loaded dataset.
func (h *ReportHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeAnalyzeRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	f, err := req.Parse()
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	if err := h.acquire(ctx); err != nil {
		httperr.Log(h.log, "analyze queue", err)
		httperr.Errs(w, err)
		return
	}
	defer h.sem.Release(1)

	rep, err := h.lab.Analyze(ctx, req.Matches, f)
	if err != nil {
		httperr.Log(h.log, "analyze failed", err)
		httperr.Errs(w, err)
		return
	}
	h.write(w, dto.NewSection(f, rep, rep))
}

// Markdown serves the full report as a markdown document.
func (h *ReportHandler) Markdown(w http.ResponseWriter, r *http.Request) {
	f, rep, ok := h.build(w, r)
	if !ok {
		return
	}
	writeBytes(w, "text/markdown; charset=utf-8", export.Markdown(f, rep))
}

func (h *ReportHandler) HTML(w http.ResponseWriter, r *http.Request) {
	f, rep, ok := h.build(w, r)
	if !ok {
		return
	}
	writeBytes(w, export.HTMLContentType, export.HTML(f, rep))
}

// XLSX serves the full report as a workbook download.
func (h *ReportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	f, rep, ok := h.build(w, r)
	if !ok {
		return
	}
	var b bytes.Buffer
	if err := export.WriteXLSX(&b, f, rep); err != nil {
		httperr.Log(h.log, "xlsx export failed", err)
		httperr.Errs(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="toss-report.xlsx"`)
	writeBytes(w, export.XLSXContentType, b.Bytes())
}

func (h *ReportHandler) Meta(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.lab.Meta())
}

func (h *ReportHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.lab.Closed() {
		httperr.Errs(w, errs.NewFatal("lab closed: "+h.lab.ClosedReason()))
		return
	}
	h.write(w, dto.Health{Status: "ok", Records: h.lab.Meta().Records})
}

// ============================================================
// ** helpers **
// ============================================================

func serveSection[T any](h *ReportHandler, w http.ResponseWriter, r *http.Request, pick func(*tosslab.Report) T) {
	f, rep, ok := h.build(w, r)
	if !ok {
		return
	}
	h.write(w, dto.NewSection(f, rep, pick(rep)))
}

func (h *ReportHandler) build(w http.ResponseWriter, r *http.Request) (tosslab.Filter, *tosslab.Report, bool) {
	f, err := dto.DecodeFilter(r)
	if err != nil {
		httperr.Errs(w, err)
		return f, nil, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	if err := h.acquire(ctx); err != nil {
		httperr.Log(h.log, "report queue", err)
		httperr.Errs(w, err)
		return f, nil, false
	}
	defer h.sem.Release(1)

	rep, err := h.lab.Report(ctx, f)
	if err != nil {
		httperr.Log(h.log, "report failed", err)
		httperr.Errs(w, err)
		return f, nil, false
	}
	return f, rep, true
}

func (h *ReportHandler) acquire(ctx context.Context) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return errs.Wrap(err, "too many reports in flight")
	}
	return nil
}

// write encodes into memory first so an encode error never leaves a
// half-written 200 behind.
func (h *ReportHandler) write(w http.ResponseWriter, v any) {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		httperr.Log(h.log, "encode failed", err)
		httperr.Errs(w, errs.Wrap(err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}

func writeBytes(w http.ResponseWriter, contentType string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

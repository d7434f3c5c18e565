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

// Package dto decodes HTTP input into engine types and shapes responses.
package dto

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/match"
)

// MaxBody caps POST bodies.
const MaxBody = 1 << 20

// all is accepted wherever a filter field may be left open.
const all = "all"

// FilterQuery is the wire form of tosslab.Filter.
type FilterQuery struct {
	Format string `json:"format,omitempty"` // Test|ODI|T20|all
	Year   string `json:"year,omitempty"`   // a year or all
	Team   string `json:"team,omitempty"`   // a team name or all
}

// Parse turns the wire form into a Filter. Empty fields and "all" keep
// everything.
func (q FilterQuery) Parse() (tosslab.Filter, error) {
	var f tosslab.Filter
	if s := strings.TrimSpace(q.Format); s != "" && !strings.EqualFold(s, all) {
		v, err := match.ParseFormat(s)
		if err != nil {
			return tosslab.Filter{}, err
		}
		f.Format = &v
	}
	if s := strings.TrimSpace(q.Year); s != "" && !strings.EqualFold(s, all) {
		y, err := strconv.Atoi(s)
		if err != nil || y <= 0 {
			return tosslab.Filter{}, errs.Warnf("invalid year %q", s)
		}
		f.Year = y
	}
	if s := strings.TrimSpace(q.Team); s != "" && !strings.EqualFold(s, all) {
		f.Team = s
	}
	return f, nil
}

// DecodeFilter reads format/year/team from the query string.
func DecodeFilter(r *http.Request) (tosslab.Filter, error) {
	if r == nil {
		return tosslab.Filter{}, errs.NewWarn("nil request")
	}
	q := r.URL.Query()
	return FilterQuery{
		Format: q.Get("format"),
		Year:   q.Get("year"),
		Team:   q.Get("team"),
	}.Parse()
}

// AnalyzeRequest carries caller-supplied records plus an optional filter.
type AnalyzeRequest struct {
	Matches []match.Record `json:"matches"`
	FilterQuery
}

// DecodeAnalyzeRequest decodes a POST body.
//
// The body is capped at MaxBody and unknown fields are rejected so typos do
// not silently widen the analysis. Enum and date fields are checked while
// decoding; the team invariants are left to the caller.
func DecodeAnalyzeRequest(r *http.Request) (*AnalyzeRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	if r.Method != http.MethodPost {
		return nil, errs.Warnf("method %s not allowed", r.Method)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	req := new(AnalyzeRequest)
	if err := dec.Decode(req); err != nil {
		return nil, errs.WrapWarn(err, "invalid json")
	}
	if req.Matches == nil {
		return nil, errs.NewWarn("matches is required")
	}
	return req, nil
}

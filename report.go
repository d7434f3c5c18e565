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

// Package tosslab assembles the toss-advantage report from a set of match
// records.
//
// The numbers themselves live in package stats; this package only decides
// which records go in (Filter) and which sections come out (Report). A Lab
// pairs a frozen dataset with a logger so the CLI and the HTTP server share
// one entry point.
package tosslab

import (
	"strconv"
	"strings"

	"github.com/zintix-labs/tosslab/match"
	"github.com/zintix-labs/tosslab/stats"
)

// Confidence is the level used for the toss-win interval in every report.
const Confidence = 0.95

// Report is the full analysis of one record set.
type Report struct {
	Summary   stats.TossStats       `json:"summary" yaml:"summary"`
	ChiSquare stats.ChiSquareResult `json:"chiSquare" yaml:"chiSquare"`
	Formats   []stats.FormatRow     `json:"formats" yaml:"formats"`
	Decisions []stats.DecisionRow   `json:"decisions" yaml:"decisions"`
	Yearly    []stats.YearRow       `json:"yearly" yaml:"yearly"`
	Trend     stats.Spread          `json:"trend" yaml:"trend"`
	Teams     []stats.TeamRow       `json:"teams" yaml:"teams"`
	Venues    []stats.VenueRow      `json:"venues" yaml:"venues"`
	TossWinCI stats.PointStat       `json:"tossWinCI" yaml:"tossWinCI"`
}

// Build runs every section over the same records.
//
// Build never fails: an empty slice yields zero tallies, three empty format
// rows and a non-significant test.
func Build(records []match.Record) *Report {
	summary := stats.ComputeTossStats(records)
	yearly := stats.YearlyTrend(records)
	return &Report{
		Summary:   summary,
		ChiSquare: stats.ChiSquareTest(records),
		Formats:   stats.FormatComparison(records),
		Decisions: stats.DecisionComparison(records),
		Yearly:    yearly,
		Trend:     stats.TrendSpread(yearly),
		Teams:     stats.TeamStats(records),
		Venues:    stats.VenueStats(records),
		TossWinCI: stats.TossWinCI(summary, Confidence),
	}
}

// Filter narrows a record set. The zero value keeps everything.
type Filter struct {
	Format *match.Format `json:"format,omitempty" yaml:"format,omitempty"`
	Year   int           `json:"year,omitempty" yaml:"year,omitempty"`
	Team   string        `json:"team,omitempty" yaml:"team,omitempty"`
}

// IsZero reports whether f keeps every record.
func (f Filter) IsZero() bool {
	return f.Format == nil && f.Year == 0 && strings.TrimSpace(f.Team) == ""
}

// Keep reports whether r passes every set criterion.
func (f Filter) Keep(r match.Record) bool {
	if f.Format != nil && r.Format != *f.Format {
		return false
	}
	if f.Year != 0 && r.Year != f.Year {
		return false
	}
	if team := strings.TrimSpace(f.Team); team != "" && !r.Involves(team) {
		return false
	}
	return true
}

// Apply returns the matching records in their original order.
//
// The result is always a fresh slice, so callers may keep it after the
// source changes.
func (f Filter) Apply(records []match.Record) []match.Record {
	out := make([]match.Record, 0, len(records))
	for _, r := range records {
		if f.Keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// String is used in logs.
func (f Filter) String() string {
	parts := make([]string, 0, 3)
	if f.Format != nil {
		parts = append(parts, "format="+f.Format.String())
	}
	if f.Year != 0 {
		parts = append(parts, "year="+strconv.Itoa(f.Year))
	}
	if t := strings.TrimSpace(f.Team); t != "" {
		parts = append(parts, "team="+t)
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, ",")
}

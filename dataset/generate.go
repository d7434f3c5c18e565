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

// Package dataset supplies match records to the engine: a seeded synthetic
// generator and YAML/JSON loaders.
package dataset

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/match"
	"github.com/zintix-labs/tosslab/sdk/core"
	"gopkg.in/yaml.v3"
)

// DefaultSeed reproduces the stock demo dataset.
const DefaultSeed int64 = 42

// PerYear is how many matches of each format are played every year.
type PerYear struct {
	Test int `yaml:"test" json:"test"`
	ODI  int `yaml:"odi" json:"odi"`
	T20  int `yaml:"t20" json:"t20"`
}

func (p PerYear) of(f match.Format) int {
	switch f {
	case match.Test:
		return p.Test
	case match.ODI:
		return p.ODI
	case match.T20:
		return p.T20
	}
	return 0
}

func (p PerYear) total() int { return p.Test + p.ODI + p.T20 }

// GenConfig drives Generate.
type GenConfig struct {
	Seed     int64             `yaml:"seed" json:"seed"`
	FromYear int               `yaml:"fromYear" json:"fromYear"`
	ToYear   int               `yaml:"toYear" json:"toYear"`
	PerYear  PerYear           `yaml:"perYear" json:"perYear"`
	Teams    []string          `yaml:"teams" json:"teams"`
	Venues   map[string]string `yaml:"venues" json:"venues"`

	// TossWinnerWins is the chance the toss winner also wins the match.
	TossWinnerWins float64 `yaml:"tossWinnerWins" json:"tossWinnerWins"`
	// FieldRate is the chance the toss winner chooses to field.
	FieldRate float64 `yaml:"fieldRate" json:"fieldRate"`

	ShowProgress bool `yaml:"showProgress" json:"showProgress"`
}

// DefaultGenConfig returns the stock demo setup: ten teams over 2015-2024,
// 3 Test, 4 ODI and 5 T20 matches a year.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:           DefaultSeed,
		FromYear:       2015,
		ToYear:         2024,
		PerYear:        PerYear{Test: 3, ODI: 4, T20: 5},
		Teams:          Teams(),
		Venues:         maps.Clone(defaultVenues),
		TossWinnerWins: 0.52,
		FieldRate:      0.52,
	}
}

// Valid checks the config and reports the first problem as a Warn.
func (c GenConfig) Valid() error {
	switch {
	case c.FromYear <= 0 || c.ToYear < c.FromYear:
		return errs.Warnf("year range %d..%d is invalid", c.FromYear, c.ToYear)
	case c.PerYear.Test < 0 || c.PerYear.ODI < 0 || c.PerYear.T20 < 0:
		return errs.NewWarn("perYear counts must be >= 0")
	case len(c.Teams) < 2:
		return errs.NewWarn("at least two teams are required")
	case c.TossWinnerWins < 0 || c.TossWinnerWins > 1:
		return errs.Warnf("tossWinnerWins %v out of [0,1]", c.TossWinnerWins)
	case c.FieldRate < 0 || c.FieldRate > 1:
		return errs.Warnf("fieldRate %v out of [0,1]", c.FieldRate)
	}
	seen := make(map[string]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t == "" {
			return errs.NewWarn("team name must not be empty")
		}
		if seen[t] {
			return errs.Warnf("duplicate team %q", t)
		}
		seen[t] = true
	}
	return nil
}

// Venue returns the home ground of team, or NeutralVenue when it has none.
func (c GenConfig) Venue(team string) string {
	if v, ok := c.Venues[team]; ok && v != "" {
		return v
	}
	return NeutralVenue
}

// Size is the number of records Generate will produce.
func (c GenConfig) Size() int {
	if c.ToYear < c.FromYear {
		return 0
	}
	return (c.ToYear - c.FromYear + 1) * c.PerYear.total()
}

// DecodeGenConfig overlays a YAML document onto the defaults.
//
// Unknown keys are rejected. An empty document yields the defaults.
func DecodeGenConfig(raw []byte) (GenConfig, error) {
	cfg := DefaultGenConfig()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return GenConfig{}, errs.WrapWarn(err, "dataset: gen config decode failed")
	}
	if err := cfg.Valid(); err != nil {
		return GenConfig{}, err
	}
	return cfg, nil
}

// Generate builds a synthetic season list.
//
// The same config always yields the same records. Matches run year by year,
// and within a year Test, then ODI, then T20. IDs start at 1.
func Generate(cfg GenConfig) ([]match.Record, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	c := core.New(core.Default().New(cfg.Seed))

	total := cfg.Size()
	bar := pb.New(total)
	if !cfg.ShowProgress {
		bar.SetWriter(io.Discard)
	}
	bar.Start()
	defer bar.Finish()

	out := make([]match.Record, 0, total)
	id := 1
	for year := cfg.FromYear; year <= cfg.ToYear; year++ {
		for _, f := range match.Formats() {
			for range cfg.PerYear.of(f) {
				r, err := draw(c, &cfg, id, year, f)
				if err != nil {
					return nil, err
				}
				out = append(out, r)
				id++
				bar.Increment()
			}
		}
	}
	return out, nil
}

func draw(c *core.Core, cfg *GenConfig, id, year int, f match.Format) (match.Record, error) {
	i, j := c.PickPair(len(cfg.Teams))
	r := match.Record{
		ID:     id,
		Year:   year,
		Format: f,
		Team1:  cfg.Teams[i],
		Team2:  cfg.Teams[j],
	}

	r.TossWinner = r.Team2
	if c.Chance(0.5) {
		r.TossWinner = r.Team1
	}
	r.TossDecision = match.Bat
	if c.Chance(cfg.FieldRate) {
		r.TossDecision = match.Field
	}
	r.MatchWinner = r.TossWinner
	if !c.Chance(cfg.TossWinnerWins) {
		r.MatchWinner = r.Opponent(r.TossWinner)
	}
	home := r.Team2
	if c.Chance(0.5) {
		home = r.Team1
	}
	r.Venue = cfg.Venue(home)
	month := time.Month(c.Between(1, 12))
	day := c.Between(1, 28)
	r.Date = match.NewDay(year, month, day)

	return match.New(r)
}

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

// Package match defines the completed-match record the toss analysis runs on.
package match

import (
	"strings"
	"time"

	"github.com/zintix-labs/tosslab/errs"
)

const dayLayout = "2006-01-02"

// Day is a calendar date without a clock, encoded as YYYY-MM-DD.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, errs.WrapWarn(err, "invalid date, want YYYY-MM-DD")
	}
	return Day{t: t}, nil
}

func (d Day) Time() time.Time { return d.t }

func (d Day) Year() int { return d.t.Year() }

func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dayLayout)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	v, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Record is one completed match with a single winner.
//
// Records are plain values. Build them with New so the invariants hold:
//   - Team1 != Team2, both non-empty
//   - TossWinner and MatchWinner are Team1 or Team2
//   - Format and TossDecision are valid enum members
type Record struct {
	ID           int      `json:"id" yaml:"id"`
	Date         Day      `json:"date" yaml:"date"`
	Year         int      `json:"year" yaml:"year"`
	Format       Format   `json:"format" yaml:"format"`
	Venue        string   `json:"venue" yaml:"venue"`
	Team1        string   `json:"team1" yaml:"team1"`
	Team2        string   `json:"team2" yaml:"team2"`
	TossWinner   string   `json:"tossWinner" yaml:"tossWinner"`
	TossDecision Decision `json:"tossDecision" yaml:"tossDecision"`
	MatchWinner  string   `json:"matchWinner" yaml:"matchWinner"`
}

// New returns a validated copy of r.
//
// Team names are trimmed. A zero Year is filled from Date.
func New(r Record) (Record, error) {
	r.Venue = strings.TrimSpace(r.Venue)
	r.Team1 = strings.TrimSpace(r.Team1)
	r.Team2 = strings.TrimSpace(r.Team2)
	r.TossWinner = strings.TrimSpace(r.TossWinner)
	r.MatchWinner = strings.TrimSpace(r.MatchWinner)
	if r.Year == 0 && !r.Date.IsZero() {
		r.Year = r.Date.Year()
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate re-checks the record invariants without modifying r.
func (r Record) Validate() error {
	switch {
	case r.Team1 == "" || r.Team2 == "":
		return errs.NewWarn("both teams are required")
	case r.Team1 == r.Team2:
		return errs.Warnf("team1 and team2 must differ: %q", r.Team1)
	case !r.Involves(r.TossWinner):
		return errs.Warnf("toss winner %q is neither %q nor %q", r.TossWinner, r.Team1, r.Team2)
	case !r.Involves(r.MatchWinner):
		return errs.Warnf("match winner %q is neither %q nor %q", r.MatchWinner, r.Team1, r.Team2)
	case !r.Format.Valid():
		return errs.NewWarn("format must be one of Test|ODI|T20")
	case !r.TossDecision.Valid():
		return errs.NewWarn("toss decision must be bat or field")
	case r.Year <= 0:
		return errs.NewWarn("year is required")
	case !r.Date.IsZero() && r.Date.Year() != r.Year:
		return errs.Warnf("year %d does not match date %s", r.Year, r.Date)
	}
	return nil
}

// TossAndMatchWin reports whether the toss winner also won the match.
func (r Record) TossAndMatchWin() bool {
	return r.TossWinner == r.MatchWinner
}

// Involves reports whether team played in this match.
func (r Record) Involves(team string) bool {
	return team != "" && (team == r.Team1 || team == r.Team2)
}

// Opponent returns the other side, or "" when team did not play.
func (r Record) Opponent(team string) string {
	switch team {
	case r.Team1:
		return r.Team2
	case r.Team2:
		return r.Team1
	default:
		return ""
	}
}

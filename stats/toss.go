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

// Package stats is the toss analysis engine: tallies, comparison tables, the
// chi-square test and the numeric primitives behind its p-value.
//
// Every function takes the records it works on and returns fresh values.
// Nothing is cached and no input is modified, so all of it is safe to call
// concurrently on a shared slice.
package stats

import (
	"math"

	"github.com/zintix-labs/tosslab/match"
)

// TossStats 擲幣統計
//
// Counts are exact. Percentages are count/denominator*100 and left unrounded;
// rounding belongs to whoever displays them.
type TossStats struct {
	TotalMatches      int     `json:"totalMatches" yaml:"totalMatches"`
	TossWinMatchWin   int     `json:"tossWinMatchWin" yaml:"tossWinMatchWin"`
	TossWinMatchLoss  int     `json:"tossWinMatchLoss" yaml:"tossWinMatchLoss"`
	TossWinPercentage float64 `json:"tossWinPercentage" yaml:"tossWinPercentage"`
	BatFirstWins      int     `json:"batFirstWins" yaml:"batFirstWins"`
	BatFirstTotal     int     `json:"batFirstTotal" yaml:"batFirstTotal"`
	FieldFirstWins    int     `json:"fieldFirstWins" yaml:"fieldFirstWins"`
	FieldFirstTotal   int     `json:"fieldFirstTotal" yaml:"fieldFirstTotal"`
	BatFirstWinPct    float64 `json:"batFirstWinPct" yaml:"batFirstWinPct"`
	FieldFirstWinPct  float64 `json:"fieldFirstWinPct" yaml:"fieldFirstWinPct"`
}

// ComputeTossStats tallies toss outcomes over records in a single pass.
func ComputeTossStats(records []match.Record) TossStats {
	st := TossStats{TotalMatches: len(records)}
	for _, r := range records {
		won := r.TossAndMatchWin()
		if won {
			st.TossWinMatchWin++
		}
		switch r.TossDecision {
		case match.Bat:
			st.BatFirstTotal++
			if won {
				st.BatFirstWins++
			}
		case match.Field:
			st.FieldFirstTotal++
			if won {
				st.FieldFirstWins++
			}
		}
	}
	st.TossWinMatchLoss = st.TotalMatches - st.TossWinMatchWin
	st.TossWinPercentage = percent(st.TossWinMatchWin, st.TotalMatches)
	st.BatFirstWinPct = percent(st.BatFirstWins, st.BatFirstTotal)
	st.FieldFirstWinPct = percent(st.FieldFirstWins, st.FieldFirstTotal)
	return st
}

// Round rounds v to places decimals, halves away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// percent returns n/d*100, or 0 when d is 0.
func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

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

package stats

import "github.com/zintix-labs/tosslab/match"

const (
	// Alpha is the significance threshold: p < Alpha is significant.
	Alpha = 0.05
	// NullWinRate is the toss winner's match-win probability under "no advantage".
	NullWinRate = 0.5
)

const (
	InterpretSignificant    = "The toss result has a statistically significant relationship with match outcome (p < 0.05)."
	InterpretNotSignificant = "No statistically significant relationship found between toss and match outcome (p ≥ 0.05)."
)

// ChiSquareResult is the outcome of the toss/match test.
// ChiSquare carries 3 decimals and PValue 4.
type ChiSquareResult struct {
	ChiSquare        float64 `json:"chiSquare" yaml:"chiSquare"`
	PValue           float64 `json:"pValue" yaml:"pValue"`
	DegreesOfFreedom int     `json:"degreesOfFreedom" yaml:"degreesOfFreedom"`
	Significant      bool    `json:"significant" yaml:"significant"`
	Interpretation   string  `json:"interpretation" yaml:"interpretation"`
}

// ChiSquareTest treats every record as one trial of "the toss winner also
// won the match" and compares the observed split with a 50/50 baseline.
//
// Only the toss winner's own outcome is tabulated, not a full two-factor
// table; published figures depend on this exact setup.
func ChiSquareTest(records []match.Record) ChiSquareResult {
	a := 0
	for _, r := range records {
		if r.TossAndMatchWin() {
			a++
		}
	}
	return ChiSquareFromCounts(a, len(records))
}

// ChiSquareFromCounts runs the test on raw counts: a toss-and-match wins out
// of total matches. total <= 0 yields χ²=0, p=1.
func ChiSquareFromCounts(a, total int) ChiSquareResult {
	if total <= 0 {
		return newChiSquareResult(0, 1)
	}
	b := total - a
	expWin := float64(total) * NullWinRate
	expLoss := float64(total) * (1 - NullWinRate)

	dWin := float64(a) - expWin
	dLoss := float64(b) - expLoss
	chiSq := dWin*dWin/expWin + dLoss*dLoss/expLoss

	return newChiSquareResult(chiSq, ChiSquarePValue(chiSq, 1))
}

func newChiSquareResult(chiSq, p float64) ChiSquareResult {
	sig := p < Alpha
	res := ChiSquareResult{
		ChiSquare:        Round(chiSq, 3),
		PValue:           Round(p, 4),
		DegreesOfFreedom: 1,
		Significant:      sig,
		Interpretation:   InterpretNotSignificant,
	}
	if sig {
		res.Interpretation = InterpretSignificant
	}
	return res
}

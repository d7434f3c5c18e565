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

import "math"

// SeriesConfig bounds the power series of the lower incomplete gamma function.
//
// Neither knob is an analytic bound: MaxTerms caps the work and Tolerance
// stops early once a term no longer moves the sum. Whatever has been summed
// when the cap is hit is returned as is.
type SeriesConfig struct {
	MaxTerms  int     // total terms, including the leading 1/a term
	Tolerance float64 // stop once |term| drops below this
}

// DefaultSeries is the configuration every public helper uses.
var DefaultSeries = SeriesConfig{MaxTerms: 200, Tolerance: 1e-12}

// Gamma evaluates Γ(n) for positive half-integers: Γ(0.5)=√π, Γ(1)=1 and
// Γ(n)=(n-1)·Γ(n-1). Any other argument yields NaN.
func Gamma(n float64) float64 {
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) || math.Mod(2*n, 1) != 0 {
		return math.NaN()
	}
	// 由上往下乘，直到落在 0.5 或 1
	acc := 1.0
	for n > 1 {
		n--
		acc *= n
	}
	if n == 0.5 {
		return acc * math.Sqrt(math.Pi)
	}
	return acc
}

// RegularizedLowerGamma returns P(k/2, x/2) using DefaultSeries.
func RegularizedLowerGamma(x, k float64) float64 {
	return DefaultSeries.RegularizedLowerGamma(x, k)
}

// ChiSquarePValue returns the upper-tail probability of a chi-square
// statistic x with k degrees of freedom, using DefaultSeries. It saturates
// to 1 for very large x; see SeriesConfig.ChiSquarePValue.
func ChiSquarePValue(x, k float64) float64 {
	return DefaultSeries.ChiSquarePValue(x, k)
}

// RegularizedLowerGamma returns P(k/2, x/2), the chi-square CDF at x.
//
// x <= 0 returns 0 without touching the series.
func (sc SeriesConfig) RegularizedLowerGamma(x, k float64) float64 {
	if x <= 0 {
		return 0
	}
	halfK := k / 2
	halfX := x / 2

	term := 1 / halfK
	sum := term
	for n := 1; n < sc.MaxTerms; n++ {
		term *= halfX / (halfK + float64(n))
		sum += term
		if math.Abs(term) < sc.Tolerance {
			break
		}
	}
	lower := math.Pow(halfX, halfK) * math.Exp(-halfX) * sum
	return lower / Gamma(halfK)
}

// ChiSquarePValue is 1 - P(k/2, x/2), clamped to [0,1].
//
// x <= 0 means no evidence against independence and returns exactly 1.
// k must be a positive integer; anything else also resolves to 1.
//
// The series saturates for large statistics. With DefaultSeries and df=1 the
// result is accurate up to about x=300; beyond that the 200-term cap stops
// the sum short and p climbs back toward 1 (p(500,1) is about 0.9995).
// Further out (from about x=1418) the float64 terms underflow or overflow,
// a NaN is mapped to 1, and the result is exactly 1: "not significant".
func (sc SeriesConfig) ChiSquarePValue(x, k float64) float64 {
	if x <= 0 {
		return 1
	}
	p := 1 - sc.RegularizedLowerGamma(x, k)
	if math.IsNaN(p) {
		return 1
	}
	return max(0, min(1, p))
}

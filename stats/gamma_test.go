package stats_test

import (
	"math"
	"testing"

	"github.com/zintix-labs/tosslab/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestGammaHalfIntegers(t *testing.T) {
	sqrtPi := math.Sqrt(math.Pi)
	cases := []struct {
		n, want float64
	}{
		{0.5, sqrtPi},
		{1, 1},
		{1.5, sqrtPi / 2},
		{2, 1},
		{2.5, 3 * sqrtPi / 4},
		{3, 2},
		{5, 24},
	}
	for _, c := range cases {
		if got := stats.Gamma(c.n); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("Gamma(%v) got %.12f want %.12f", c.n, got, c.want)
		}
	}
	for _, bad := range []float64{0, -0.5, 0.3, math.Inf(1)} {
		if !math.IsNaN(stats.Gamma(bad)) {
			t.Fatalf("Gamma(%v) should be NaN", bad)
		}
	}
}

func TestPValueZeroAndNegative(t *testing.T) {
	for _, k := range []float64{1, 2, 3, 7} {
		if p := stats.ChiSquarePValue(0, k); p != 1 {
			t.Fatalf("p(0,%v) = %v, want exactly 1", k, p)
		}
		if p := stats.ChiSquarePValue(-3, k); p != 1 {
			t.Fatalf("p(-3,%v) = %v, want exactly 1", k, p)
		}
		if g := stats.RegularizedLowerGamma(0, k); g != 0 {
			t.Fatalf("P(0,%v) = %v, want 0", k, g)
		}
	}
}

func TestPValueMatchesGonum(t *testing.T) {
	for _, k := range []float64{1, 3} {
		ref := distuv.ChiSquared{K: k}
		for x := 0.05; x <= 10; x += 0.05 {
			got := stats.ChiSquarePValue(x, k)
			want := ref.Survival(x)
			if math.Abs(got-want) > 1e-6 {
				t.Fatalf("k=%v x=%.2f got %.8f want %.8f", k, x, got, want)
			}
		}
	}
}

func TestPValueKnownPoints(t *testing.T) {
	if p := stats.ChiSquarePValue(1, 1); math.Abs(p-0.3173) > 1e-4 {
		t.Fatalf("p(1,1) = %.6f, want ~0.3173", p)
	}
	if p := stats.ChiSquarePValue(3.841459, 1); math.Abs(p-0.05) > 1e-5 {
		t.Fatalf("p at the 5%% critical value = %.6f", p)
	}
	if p := stats.ChiSquarePValue(100, 1); p < 0 || p > 1e-6 {
		t.Fatalf("p(100,1) = %v, want ~0 within [0,1]", p)
	}
}

func TestSeriesKnobsAreHonoured(t *testing.T) {
	full := stats.DefaultSeries.ChiSquarePValue(4, 1)

	oneTerm := stats.SeriesConfig{MaxTerms: 1, Tolerance: 1e-12}
	p1 := oneTerm.ChiSquarePValue(4, 1)
	if p1 < 0 || p1 > 1 {
		t.Fatalf("capped series escaped [0,1]: %v", p1)
	}
	if math.Abs(p1-full) < 1e-3 {
		t.Fatalf("a one-term series should not match the converged value")
	}

	loose := stats.SeriesConfig{MaxTerms: 200, Tolerance: 1}
	p2 := loose.ChiSquarePValue(4, 1)
	if p2 < 0 || p2 > 1 || math.Abs(p2-full) < 1e-6 {
		t.Fatalf("loose tolerance should stop early: got %v full %v", p2, full)
	}

	noTerms := stats.SeriesConfig{}
	if p := noTerms.ChiSquarePValue(4, 1); p < 0 || p > 1 {
		t.Fatalf("zero config escaped [0,1]: %v", p)
	}
}

func TestPValueBadDegreesOfFreedom(t *testing.T) {
	if p := stats.ChiSquarePValue(2, 0.6); p != 1 {
		t.Fatalf("non-integer df should resolve to 1, got %v", p)
	}
}

func TestPValueSaturatesForHugeStatistics(t *testing.T) {
	if p := stats.ChiSquarePValue(100, 1); p >= 0.05 {
		t.Fatalf("x=100 is still inside the accurate range, got p=%v", p)
	}
	if p := stats.ChiSquarePValue(500, 1); p < 0.99 || p > 1 {
		t.Fatalf("x=500 should be pushed toward 1 by the term cap, got p=%v", p)
	}
	for _, x := range []float64{1500, 5000} {
		if p := stats.ChiSquarePValue(x, 1); p != 1 {
			t.Fatalf("x=%v should saturate to exactly 1, got p=%v", x, p)
		}
	}

	res := stats.ChiSquareFromCounts(56000, 100000)
	if res.ChiSquare != 1440 || res.PValue != 1 || res.Significant {
		t.Fatalf("saturated result changed: %+v", res)
	}
}

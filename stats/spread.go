package stats

import (
	mstats "github.com/montanaflynn/stats"
)

// Spread summarises how much the yearly toss-win rate moves around.
// All values are percentages to 1 decimal.
type Spread struct {
	Years  int     `json:"years" yaml:"years"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stdDev" yaml:"stdDev"` // population
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Median float64 `json:"median" yaml:"median"`
}

// TrendSpread summarises the TossWinPct column of a yearly trend.
// Every year counts once regardless of how many matches it had.
// No rows yields the zero Spread.
func TrendSpread(rows []YearRow) Spread {
	if len(rows) == 0 {
		return Spread{}
	}
	data := make(mstats.Float64Data, 0, len(rows))
	for _, r := range rows {
		data = append(data, r.TossWinPct)
	}
	// 非空輸入下這些函式不會回錯
	mean, _ := mstats.Mean(data)
	sd, _ := mstats.StandardDeviationPopulation(data)
	lo, _ := mstats.Min(data)
	hi, _ := mstats.Max(data)
	med, _ := mstats.Median(data)
	return Spread{
		Years:  len(rows),
		Mean:   Round(mean, 1),
		StdDev: Round(sd, 1),
		Min:    lo,
		Max:    hi,
		Median: Round(med, 1),
	}
}

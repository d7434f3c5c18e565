package stats

import (
	"slices"
	"sort"

	"github.com/zintix-labs/tosslab/match"
)

// ============================================================
// ** 結構宣告 **
// ============================================================

// FormatRow is one line of the per-format comparison. Percentages have 1 decimal.
type FormatRow struct {
	Format           match.Format `json:"format" yaml:"format"`
	TotalMatches     int          `json:"totalMatches" yaml:"totalMatches"`
	TossWinPct       float64      `json:"tossWinPct" yaml:"tossWinPct"`
	BatFirstWinPct   float64      `json:"batFirstWinPct" yaml:"batFirstWinPct"`
	FieldFirstWinPct float64      `json:"fieldFirstWinPct" yaml:"fieldFirstWinPct"`
}

// YearRow is one point of the yearly trend.
type YearRow struct {
	Year       int     `json:"year" yaml:"year"`
	TossWinPct float64 `json:"tossWinPct" yaml:"tossWinPct"`
	Matches    int     `json:"matches" yaml:"matches"`
}

// TeamRow describes how often a team converted a toss win into a match win.
type TeamRow struct {
	Team            string  `json:"team" yaml:"team"`
	Matches         int     `json:"matches" yaml:"matches"`
	TossWins        int     `json:"tossWins" yaml:"tossWins"`
	TossWinMatchWin int     `json:"tossWinMatchWin" yaml:"tossWinMatchWin"`
	TossWinPct      float64 `json:"tossWinPct" yaml:"tossWinPct"`
}

// DecisionRow splits the toss advantage by what the toss winner chose.
type DecisionRow struct {
	Decision   match.Decision `json:"decision" yaml:"decision"`
	Matches    int            `json:"matches" yaml:"matches"`
	Wins       int            `json:"wins" yaml:"wins"`
	WinPct     float64        `json:"winPct" yaml:"winPct"`
	ShareOfAll float64        `json:"shareOfAll" yaml:"shareOfAll"` // % of matches where this was chosen
}

// VenueRow is the toss advantage at one ground.
type VenueRow struct {
	Venue      string  `json:"venue" yaml:"venue"`
	Matches    int     `json:"matches" yaml:"matches"`
	TossWinPct float64 `json:"tossWinPct" yaml:"tossWinPct"`
}

// ============================================================
// ** 對外 : 比較表 **
// ============================================================

// FormatComparison returns exactly one row per format, in Test, ODI, T20 order.
// A format with no matches still gets a row of zeros.
func FormatComparison(records []match.Record) []FormatRow {
	buckets := make(map[match.Format][]match.Record, 3)
	for _, r := range records {
		buckets[r.Format] = append(buckets[r.Format], r)
	}
	rows := make([]FormatRow, 0, 3)
	for _, f := range match.Formats() {
		st := ComputeTossStats(buckets[f])
		rows = append(rows, FormatRow{
			Format:           f,
			TotalMatches:     st.TotalMatches,
			TossWinPct:       Round(st.TossWinPercentage, 1),
			BatFirstWinPct:   Round(st.BatFirstWinPct, 1),
			FieldFirstWinPct: Round(st.FieldFirstWinPct, 1),
		})
	}
	return rows
}

// YearlyTrend returns one row per distinct year, ascending.
func YearlyTrend(records []match.Record) []YearRow {
	buckets := make(map[int][]match.Record)
	for _, r := range records {
		buckets[r.Year] = append(buckets[r.Year], r)
	}
	years := make([]int, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	slices.Sort(years)

	rows := make([]YearRow, 0, len(years))
	for _, y := range years {
		st := ComputeTossStats(buckets[y])
		rows = append(rows, YearRow{
			Year:       y,
			TossWinPct: Round(st.TossWinPercentage, 1),
			Matches:    st.TotalMatches,
		})
	}
	return rows
}

// TeamStats returns one row per team seen as team1 or team2, ordered by
// descending match count. Ties keep the order teams were first seen in.
func TeamStats(records []match.Record) []TeamRow {
	index := make(map[string]int)
	rows := make([]TeamRow, 0, 16)
	row := func(team string) *TeamRow {
		i, ok := index[team]
		if !ok {
			i = len(rows)
			index[team] = i
			rows = append(rows, TeamRow{Team: team})
		}
		return &rows[i]
	}

	for _, r := range records {
		// 先註冊兩隊，確保發現順序為 team1 -> team2
		row(r.Team1)
		row(r.Team2)
		for _, team := range [2]string{r.Team1, r.Team2} {
			tr := row(team)
			tr.Matches++
			if r.TossWinner == team {
				tr.TossWins++
				if r.MatchWinner == team {
					tr.TossWinMatchWin++
				}
			}
		}
	}
	for i := range rows {
		rows[i].TossWinPct = Round(percent(rows[i].TossWinMatchWin, rows[i].TossWins), 1)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Matches > rows[j].Matches })
	return rows
}

// DecisionComparison returns one row for Bat and one for Field.
func DecisionComparison(records []match.Record) []DecisionRow {
	st := ComputeTossStats(records)
	return []DecisionRow{
		{
			Decision:   match.Bat,
			Matches:    st.BatFirstTotal,
			Wins:       st.BatFirstWins,
			WinPct:     Round(st.BatFirstWinPct, 1),
			ShareOfAll: Round(percent(st.BatFirstTotal, st.TotalMatches), 1),
		},
		{
			Decision:   match.Field,
			Matches:    st.FieldFirstTotal,
			Wins:       st.FieldFirstWins,
			WinPct:     Round(st.FieldFirstWinPct, 1),
			ShareOfAll: Round(percent(st.FieldFirstTotal, st.TotalMatches), 1),
		},
	}
}

// VenueStats returns one row per venue, ordered like TeamStats.
func VenueStats(records []match.Record) []VenueRow {
	order := make([]string, 0, 16)
	buckets := make(map[string][]match.Record)
	for _, r := range records {
		if _, ok := buckets[r.Venue]; !ok {
			order = append(order, r.Venue)
		}
		buckets[r.Venue] = append(buckets[r.Venue], r)
	}
	rows := make([]VenueRow, 0, len(order))
	for _, v := range order {
		st := ComputeTossStats(buckets[v])
		rows = append(rows, VenueRow{
			Venue:      v,
			Matches:    st.TotalMatches,
			TossWinPct: Round(st.TossWinPercentage, 1),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Matches > rows[j].Matches })
	return rows
}

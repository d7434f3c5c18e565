package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/stats"
)

const (
	green = "\033[1;32m"
	reset = "\033[0m"
)

func printReport(w io.Writer, f tosslab.Filter, rep *tosslab.Report) {
	p := stats.Printer()
	st := rep.Summary

	p.Fprintf(w, "%s[FILTER:%s] [MATCHES:%d]%s\n", green, f, st.TotalMatches, reset)

	keys := []string{"Toss winner won", "Toss winner lost", "Toss win %", "95% CI", "Bat first win %", "Field first win %"}
	fmt.Fprint(w, stats.KVTable("Toss Impact", keys, map[string]string{
		keys[0]: p.Sprintf("%d", st.TossWinMatchWin),
		keys[1]: p.Sprintf("%d", st.TossWinMatchLoss),
		keys[2]: pct(stats.Round(st.TossWinPercentage, 1)),
		keys[3]: p.Sprintf("%.3f - %.3f", rep.TossWinCI.CI.Lo, rep.TossWinCI.CI.Hi),
		keys[4]: pct(stats.Round(st.BatFirstWinPct, 1)),
		keys[5]: pct(stats.Round(st.FieldFirstWinPct, 1)),
	}))

	cs := rep.ChiSquare
	mark := "not significant"
	if cs.Significant {
		mark = "significant"
	}
	ckeys := []string{"Chi-square", "p-value", "df", "Result"}
	fmt.Fprint(w, stats.KVTable("Chi-Square Test", ckeys, map[string]string{
		ckeys[0]: strconv.FormatFloat(cs.ChiSquare, 'f', 3, 64),
		ckeys[1]: strconv.FormatFloat(cs.PValue, 'f', 4, 64),
		ckeys[2]: strconv.Itoa(cs.DegreesOfFreedom),
		ckeys[3]: mark,
	}))
	fmt.Fprintln(w, cs.Interpretation)

	rows := make([][]string, 0, len(rep.Formats))
	for _, r := range rep.Formats {
		rows = append(rows, []string{r.Format.String(), p.Sprintf("%d", r.TotalMatches), pct(r.TossWinPct), pct(r.BatFirstWinPct), pct(r.FieldFirstWinPct)})
	}
	fmt.Fprint(w, stats.GridTable("By Format", []string{"Format", "Matches", "Toss Win", "Bat First", "Field First"}, rows))

	rows = rows[:0]
	for _, r := range rep.Decisions {
		rows = append(rows, []string{r.Decision.String(), p.Sprintf("%d", r.Matches), p.Sprintf("%d", r.Wins), pct(r.WinPct), pct(r.ShareOfAll)})
	}
	fmt.Fprint(w, stats.GridTable("By Decision", []string{"Decision", "Matches", "Wins", "Win", "Chosen"}, rows))

	rows = rows[:0]
	for _, r := range rep.Yearly {
		rows = append(rows, []string{strconv.Itoa(r.Year), p.Sprintf("%d", r.Matches), pct(r.TossWinPct)})
	}
	fmt.Fprint(w, stats.GridTable("By Year", []string{"Year", "Matches", "Toss Win"}, rows))
	tr := rep.Trend
	p.Fprintf(w, "%d years: mean %s, std dev %.1f, range %s - %s\n", tr.Years, pct(tr.Mean), tr.StdDev, pct(tr.Min), pct(tr.Max))

	rows = rows[:0]
	for _, r := range rep.Teams {
		rows = append(rows, []string{r.Team, p.Sprintf("%d", r.Matches), p.Sprintf("%d", r.TossWins), p.Sprintf("%d", r.TossWinMatchWin), pct(r.TossWinPct)})
	}
	fmt.Fprint(w, stats.GridTable("By Team", []string{"Team", "Matches", "Tosses Won", "Converted", "Toss Win"}, rows))

	rows = rows[:0]
	for _, r := range rep.Venues {
		rows = append(rows, []string{r.Venue, p.Sprintf("%d", r.Matches), pct(r.TossWinPct)})
	}
	fmt.Fprint(w, stats.GridTable("By Venue", []string{"Venue", "Matches", "Toss Win"}, rows))
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

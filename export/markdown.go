package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/zintix-labs/tosslab"
)

const HTMLContentType = "text/html; charset=utf-8"

// Markdown renders rep as a GitHub-style markdown document.
func Markdown(f tosslab.Filter, rep *tosslab.Report) []byte {
	var b bytes.Buffer
	st, cs := rep.Summary, rep.ChiSquare

	fmt.Fprintf(&b, "# Toss Impact Report\n\nFilter: `%s`, %d matches.\n\n", f, st.TotalMatches)

	b.WriteString("## Summary\n\n")
	mdTable(&b, []string{"Metric", "Value"}, [][]string{
		{"Toss winner won", strconv.Itoa(st.TossWinMatchWin)},
		{"Toss winner lost", strconv.Itoa(st.TossWinMatchLoss)},
		{"Toss win", pct(st.TossWinPercentage)},
		{fmt.Sprintf("%d%% CI", int(tosslab.Confidence*100)), fmt.Sprintf("%.3f to %.3f", rep.TossWinCI.CI.Lo, rep.TossWinCI.CI.Hi)},
		{"Bat first win", pct(st.BatFirstWinPct)},
		{"Field first win", pct(st.FieldFirstWinPct)},
	})

	b.WriteString("## Chi-Square Test\n\n")
	mdTable(&b, []string{"Chi-square", "p-value", "df", "Significant"}, [][]string{{
		strconv.FormatFloat(cs.ChiSquare, 'f', 3, 64),
		strconv.FormatFloat(cs.PValue, 'f', 4, 64),
		strconv.Itoa(cs.DegreesOfFreedom),
		strconv.FormatBool(cs.Significant),
	}})
	fmt.Fprintf(&b, "%s\n\n", cs.Interpretation)

	rows := make([][]string, 0, len(rep.Formats))
	for _, r := range rep.Formats {
		rows = append(rows, []string{r.Format.String(), strconv.Itoa(r.TotalMatches), pct(r.TossWinPct), pct(r.BatFirstWinPct), pct(r.FieldFirstWinPct)})
	}
	b.WriteString("## By Format\n\n")
	mdTable(&b, []string{"Format", "Matches", "Toss Win", "Bat First", "Field First"}, rows)

	rows = rows[:0]
	for _, r := range rep.Decisions {
		rows = append(rows, []string{r.Decision.String(), strconv.Itoa(r.Matches), strconv.Itoa(r.Wins), pct(r.WinPct), pct(r.ShareOfAll)})
	}
	b.WriteString("## By Decision\n\n")
	mdTable(&b, []string{"Decision", "Matches", "Wins", "Win", "Chosen"}, rows)

	rows = rows[:0]
	for _, r := range rep.Yearly {
		rows = append(rows, []string{strconv.Itoa(r.Year), strconv.Itoa(r.Matches), pct(r.TossWinPct)})
	}
	b.WriteString("## By Year\n\n")
	mdTable(&b, []string{"Year", "Matches", "Toss Win"}, rows)
	tr := rep.Trend
	fmt.Fprintf(&b, "Across %d years: mean %s, std dev %.1f, range %s to %s.\n\n", tr.Years, pct(tr.Mean), tr.StdDev, pct(tr.Min), pct(tr.Max))

	rows = rows[:0]
	for _, r := range rep.Teams {
		rows = append(rows, []string{r.Team, strconv.Itoa(r.Matches), strconv.Itoa(r.TossWins), strconv.Itoa(r.TossWinMatchWin), pct(r.TossWinPct)})
	}
	b.WriteString("## By Team\n\n")
	mdTable(&b, []string{"Team", "Matches", "Tosses Won", "Converted", "Toss Win"}, rows)

	rows = rows[:0]
	for _, r := range rep.Venues {
		rows = append(rows, []string{r.Venue, strconv.Itoa(r.Matches), pct(r.TossWinPct)})
	}
	b.WriteString("## By Venue\n\n")
	mdTable(&b, []string{"Venue", "Matches", "Toss Win"}, rows)
	return b.Bytes()
}

// HTML renders the markdown document as a standalone page. Raw HTML
// in team or venue names is dropped, never emitted.
func HTML(f tosslab.Filter, rep *tosslab.Report) []byte {
	// parser 有狀態，不可重用
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{
		Title: "Toss Impact Report",
		Flags: html.CommonFlags | html.CompletePage | html.SkipHTML,
	})
	return markdown.ToHTML(Markdown(f, rep), p, r)
}

func mdTable(b *bytes.Buffer, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

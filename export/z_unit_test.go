package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/dataset"
	"github.com/zintix-labs/tosslab/export"
	"github.com/zintix-labs/tosslab/match"
)

func demoReport(t *testing.T) *tosslab.Report {
	t.Helper()
	recs, err := dataset.Generate(dataset.DefaultGenConfig())
	require.NoError(t, err)
	return tosslab.Build(recs)
}

func TestWriteXLSX(t *testing.T) {
	rep := demoReport(t)
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, tosslab.Filter{}, rep))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{
		export.SheetSummary, export.SheetFormats, export.SheetDecisions,
		export.SheetYearly, export.SheetTeams, export.SheetVenues,
	}, wb.GetSheetList())

	v, err := wb.GetCellValue(export.SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "all", v)
	v, err = wb.GetCellValue(export.SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "120", v)

	rows, err := wb.GetRows(export.SheetFormats)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Test", "ODI", "T20"}, []string{rows[1][0], rows[2][0], rows[3][0]})

	years, err := wb.GetRows(export.SheetYearly)
	require.NoError(t, err)
	assert.Len(t, years, 1+len(rep.Yearly))
}

func TestWriteXLSXNilReport(t *testing.T) {
	assert.Error(t, export.WriteXLSX(&bytes.Buffer{}, tosslab.Filter{}, nil))
}

func TestMarkdownAndHTML(t *testing.T) {
	rep := demoReport(t)
	t20 := match.T20
	f := tosslab.Filter{Format: &t20}

	md := string(export.Markdown(f, rep))
	assert.True(t, strings.HasPrefix(md, "# Toss Impact Report"))
	assert.Contains(t, md, "Filter: `format=T20`")
	assert.Contains(t, md, "| Format | Matches | Toss Win | Bat First | Field First |")
	assert.Contains(t, md, rep.ChiSquare.Interpretation)

	page := string(export.HTML(f, rep))
	assert.Contains(t, page, "<title>Toss Impact Report</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<h2")
}

func TestMarkdownEmptyReport(t *testing.T) {
	md := string(export.Markdown(tosslab.Filter{}, tosslab.Build(nil)))
	assert.Contains(t, md, "0 matches")
	// the three format rows are always present
	assert.Equal(t, 3, strings.Count(md, "| 0 | 0.0% | 0.0% | 0.0% |"))
}

func TestHTMLDropsRawMarkup(t *testing.T) {
	recs := []match.Record{{
		ID: 1, Year: 2020, Format: match.T20, Venue: "<img src=x onerror=alert(2)>",
		Team1: "<script>alert(1)</script>", Team2: "India",
		TossWinner: "India", TossDecision: match.Field, MatchWinner: "India",
	}}
	rep := tosslab.Build(recs)

	page := string(export.HTML(tosslab.Filter{}, rep))
	assert.NotContains(t, page, "<script>")
	assert.NotContains(t, page, "<img")
	assert.Contains(t, page, "<td>India</td>")
}

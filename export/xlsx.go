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

// Package export turns a tosslab.Report into files meant for people rather
// than programs: an Excel workbook and a markdown or HTML page.
package export

import (
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/errs"
)

// Sheet names, in workbook order.
const (
	SheetSummary   = "Summary"
	SheetFormats   = "Formats"
	SheetDecisions = "Decisions"
	SheetYearly    = "Yearly"
	SheetTeams     = "Teams"
	SheetVenues    = "Venues"
)

// XLSXContentType is the media type of WriteXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheet struct {
	name   string
	header []any
	rows   [][]any
}

// WriteXLSX writes rep as a workbook with one sheet per report section.
// Numbers stay numeric cells so they can be charted.
func WriteXLSX(w io.Writer, f tosslab.Filter, rep *tosslab.Report) error {
	if rep == nil {
		return errs.NewWarn("export: nil report")
	}
	wb := excelize.NewFile()
	defer wb.Close()

	for i, sh := range sheets(f, rep) {
		if i == 0 {
			if err := wb.SetSheetName("Sheet1", sh.name); err != nil {
				return errs.Wrap(err, "export: rename sheet")
			}
		} else if _, err := wb.NewSheet(sh.name); err != nil {
			return errs.WrapWithExtra(err, "export: new sheet", "sheet="+sh.name)
		}
		if err := writeRow(wb, sh.name, 1, sh.header); err != nil {
			return err
		}
		for r, row := range sh.rows {
			if err := writeRow(wb, sh.name, r+2, row); err != nil {
				return err
			}
		}
	}
	wb.SetActiveSheet(0)
	if err := wb.Write(w); err != nil {
		return errs.Wrap(err, "export: write workbook")
	}
	return nil
}

func writeRow(wb *excelize.File, name string, row int, cells []any) error {
	for c, v := range cells {
		cell, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return errs.Wrap(err, "export: cell name")
		}
		if err := wb.SetCellValue(name, cell, v); err != nil {
			return errs.WrapWithExtra(err, "export: set cell", "cell="+name+"!"+cell)
		}
	}
	return nil
}

func sheets(f tosslab.Filter, rep *tosslab.Report) []sheet {
	st, cs := rep.Summary, rep.ChiSquare
	summary := sheet{
		name:   SheetSummary,
		header: []any{"Metric", "Value"},
		rows: [][]any{
			{"Filter", f.String()},
			{"Matches", st.TotalMatches},
			{"Toss winner won", st.TossWinMatchWin},
			{"Toss winner lost", st.TossWinMatchLoss},
			{"Toss win %", st.TossWinPercentage},
			{"Bat first win %", st.BatFirstWinPct},
			{"Field first win %", st.FieldFirstWinPct},
			{"CI low (" + strconv.Itoa(int(tosslab.Confidence*100)) + "%)", rep.TossWinCI.CI.Lo},
			{"CI high (" + strconv.Itoa(int(tosslab.Confidence*100)) + "%)", rep.TossWinCI.CI.Hi},
			{"Chi-square", cs.ChiSquare},
			{"p-value", cs.PValue},
			{"Degrees of freedom", cs.DegreesOfFreedom},
			{"Significant", cs.Significant},
			{"Interpretation", cs.Interpretation},
		},
	}

	formats := sheet{name: SheetFormats, header: []any{"Format", "Matches", "Toss Win %", "Bat First %", "Field First %"}}
	for _, r := range rep.Formats {
		formats.rows = append(formats.rows, []any{r.Format.String(), r.TotalMatches, r.TossWinPct, r.BatFirstWinPct, r.FieldFirstWinPct})
	}
	decisions := sheet{name: SheetDecisions, header: []any{"Decision", "Matches", "Wins", "Win %", "Chosen %"}}
	for _, r := range rep.Decisions {
		decisions.rows = append(decisions.rows, []any{r.Decision.String(), r.Matches, r.Wins, r.WinPct, r.ShareOfAll})
	}
	yearly := sheet{name: SheetYearly, header: []any{"Year", "Matches", "Toss Win %"}}
	for _, r := range rep.Yearly {
		yearly.rows = append(yearly.rows, []any{r.Year, r.Matches, r.TossWinPct})
	}
	teams := sheet{name: SheetTeams, header: []any{"Team", "Matches", "Tosses Won", "Converted", "Toss Win %"}}
	for _, r := range rep.Teams {
		teams.rows = append(teams.rows, []any{r.Team, r.Matches, r.TossWins, r.TossWinMatchWin, r.TossWinPct})
	}
	venues := sheet{name: SheetVenues, header: []any{"Venue", "Matches", "Toss Win %"}}
	for _, r := range rep.Venues {
		venues.rows = append(venues.rows, []any{r.Venue, r.Matches, r.TossWinPct})
	}
	return []sheet{summary, formats, decisions, yearly, teams, venues}
}

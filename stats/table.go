package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// Printer returns the number-aware printer used for console output.
func Printer() *message.Printer {
	return message.NewPrinter(lang)
}

// KVTable renders a two-column key/value box, keys in the given order.
func KVTable(title string, keys []string, msg map[string]string) string {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, msg[k]})
	}
	return GridTable(title, nil, rows)
}

// GridTable renders rows as a boxed table. header may be nil.
// Column widths are display widths, so wide runes line up.
func GridTable(title string, header []string, rows [][]string) string {
	cols := len(header)
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return ""
	}
	widths := make([]int, cols)
	measure := func(r []string) {
		for i, c := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}

	inner := 0
	for _, w := range widths {
		inner += w + 2
	}
	inner += cols - 1
	if tw := runewidth.StringWidth(title) + 2; tw > inner {
		widths[cols-1] += tw - inner
		inner = tw
	}

	var sb strings.Builder
	divider := dividerLine(widths)
	sb.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	if title != "" {
		left := (inner - runewidth.StringWidth(title)) / 2
		right := inner - runewidth.StringWidth(title) - left
		sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
		sb.WriteString(divider)
	}
	if len(header) > 0 {
		sb.WriteString(rowLine(widths, header))
		sb.WriteString(divider)
	}
	for _, r := range rows {
		sb.WriteString(rowLine(widths, r))
	}
	sb.WriteString(divider)
	return sb.String()
}

func dividerLine(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
	return sb.String()
}

func rowLine(widths []int, cells []string) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, w := range widths {
		c := ""
		if i < len(cells) {
			c = cells[i]
		}
		sb.WriteString(" " + c + blank(w-runewidth.StringWidth(c)) + " |")
	}
	sb.WriteString("\n")
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

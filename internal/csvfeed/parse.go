// Package csvfeed parses the CSV text exported by published spreadsheets.
//
// The dialect is deliberately loose: lines are split on raw newlines
// before quotes are considered, so quoted cells cannot span lines, and a
// quote character anywhere flips the in-quotes state.
package csvfeed

import "strings"

// separatorPrefix marks lines used as visual separators in the sheet.
const separatorPrefix = "---"

// Parse turns raw feed text into rows of cleaned cells. The first
// non-blank line is treated as a header and dropped, as are separator
// lines and rows whose first cell is empty.
func Parse(text string) [][]string {
	lines := strings.Split(text, "\n")

	rows := make([][]string, 0, len(lines))
	header := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		if strings.HasPrefix(line, separatorPrefix) {
			continue
		}

		row := splitLine(line)
		if row[0] == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// splitLine splits on commas outside quoted spans and cleans each cell.
func splitLine(line string) []string {
	var (
		cells    []string
		cell     strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cell.WriteRune(r)
		case r == ',' && !inQuotes:
			cells = append(cells, cleanCell(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	return append(cells, cleanCell(cell.String()))
}

// cleanCell trims whitespace, strips one layer of wrapping quotes and
// collapses doubled quotes.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `""`, `"`)
}

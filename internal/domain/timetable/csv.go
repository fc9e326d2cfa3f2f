package timetable

import "strings"

// splitGrid tokenizes raw delimited grid text into rows of fields.
//
// The published grids are CSV exports whose cells routinely contain
// embedded newlines (course line + instructor line) and doubled-quote
// escapes, and whose rows have ragged field counts. encoding/csv rejects
// ragged rows and cannot drop all-blank rows mid-stream, so the grid
// keeps its own minimal tokenizer: a quote toggles quoted mode, a doubled
// quote inside quoted mode emits a literal quote, commas and newlines
// split only outside quotes, and carriage returns are ignored. Rows whose
// every field is blank after trimming are dropped entirely.
func splitGrid(raw string) [][]string {
	var (
		rows    [][]string
		row     []string
		cell    strings.Builder
		quoted  bool
		runes   = []rune(raw)
		endRow  func()
		endCell func()
	)

	endCell = func() {
		row = append(row, cell.String())
		cell.Reset()
	}
	endRow = func() {
		endCell()
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				rows = append(rows, row)
				break
			}
		}
		row = nil
	}

	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '"':
			if quoted && i+1 < len(runes) && runes[i+1] == '"' {
				cell.WriteRune('"')
				i++
			} else {
				quoted = !quoted
			}
		case ',':
			if quoted {
				cell.WriteRune(c)
			} else {
				endCell()
			}
		case '\n':
			if quoted {
				cell.WriteRune(c)
			} else {
				endRow()
			}
		case '\r':
			// ignored; grids arrive with mixed line endings
		default:
			cell.WriteRune(c)
		}
	}

	if cell.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

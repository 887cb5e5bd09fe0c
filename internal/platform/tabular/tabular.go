// Package tabular reads and writes delimited text with quoted fields.
//
// The decoder is lenient: stray quotes toggle quoted mode, bare CR is a row
// terminator and an unterminated quote runs to end of input instead of
// failing. encoding/csv rejects all three.
package tabular

import (
	"strings"
)

// Row maps a trimmed header name to its raw cell value.
type Row map[string]string

type Result struct {
	Headers []string
	Rows    []Row
	// Truncated counts rows that had more cells than headers.
	Truncated int
}

type Decoder struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// Decode parses text with the default delimiter.
func Decode(text string) Result {
	return Decoder{}.Decode(text)
}

// Decode zips every physical row after the first against the header row.
func (d Decoder) Decode(text string) Result {
	records := d.Records(text)
	if len(records) == 0 {
		return Result{Rows: []Row{}}
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	result := Result{Headers: headers, Rows: make([]Row, 0, len(records)-1)}
	for _, cells := range records[1:] {
		if len(cells) > len(headers) {
			result.Truncated++
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

// Records splits text into physical rows of raw cells, header included.
func (d Decoder) Records(text string) [][]string {
	comma := d.comma()
	records := [][]string{}
	row := []string{}
	var cell strings.Builder
	inQuotes := false

	pushCell := func() {
		row = append(row, cell.String())
		cell.Reset()
	}
	pushRow := func() {
		pushCell()
		records = append(records, row)
		row = []string{}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if inQuotes {
			if ch == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					cell.WriteRune('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			cell.WriteRune(ch)
			continue
		}
		switch ch {
		case '"':
			inQuotes = true
		case comma:
			pushCell()
		case '\n':
			pushRow()
		case '\r':
			pushRow()
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
		default:
			cell.WriteRune(ch)
		}
	}

	pushCell()
	// A lone empty cell after the final terminator is not a row.
	if len(row) > 1 || row[0] != "" {
		records = append(records, row)
	}
	return records
}

func (d Decoder) comma() rune {
	if d.Comma == 0 {
		return ','
	}
	return d.Comma
}

// Encode writes headers followed by rows, quoting only where needed.
func Encode(headers []string, rows []Row) string {
	return Decoder{}.Encode(headers, rows)
}

func (d Decoder) Encode(headers []string, rows []Row) string {
	var sb strings.Builder
	d.writeRecord(&sb, headers)
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = row[h]
		}
		d.writeRecord(&sb, cells)
	}
	return sb.String()
}

func (d Decoder) writeRecord(sb *strings.Builder, cells []string) {
	comma := d.comma()
	for i, cell := range cells {
		if i > 0 {
			sb.WriteRune(comma)
		}
		lone := len(cells) == 1 && cell == ""
		if lone || strings.ContainsAny(cell, string(comma)+"\"\r\n") {
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			sb.WriteByte('"')
			continue
		}
		sb.WriteString(cell)
	}
	sb.WriteByte('\n')
}

package pipeline

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readTable decodes a raw export into a header row plus data rows.
// CSV is the primary format; .xlsx exports are read from their first sheet.
// A UTF-8 BOM (common on survey-tool CSV exports) is stripped before parsing.
func readTable(path string, data []byte) ([]string, [][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSXTable(path, data)
	}
	return readCSVTable(path, data)
}

func readCSVTable(path string, data []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(transform.NewReader(bytes.NewReader(data), unicode.UTF8BOM.NewDecoder()))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrapf(err, "pipeline: read csv %s", path)
	}
	if len(records) == 0 {
		return nil, nil, eris.Errorf("pipeline: %s has no header row", path)
	}
	return records[0], records[1:], nil
}

func readXLSXTable(path string, data []byte) ([]string, [][]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "pipeline: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, nil, eris.Errorf("pipeline: %s has no sheets", path)
	}

	var all [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		all = append(all, cells)
	}
	if len(all) == 0 {
		return nil, nil, eris.Errorf("pipeline: %s has no header row", path)
	}
	return all[0], all[1:], nil
}

// headerIndex maps canonical field names to column positions. Header cells
// are matched case-insensitively against the alias table; unknown columns
// are ignored and absent canonical fields are simply missing from the map.
// The first matching column wins when a spelling repeats.
func headerIndex(header []string, aliases map[string]string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		canonical, ok := aliases[strings.ToLower(strings.TrimSpace(col))]
		if !ok {
			continue
		}
		if _, dup := idx[canonical]; !dup {
			idx[canonical] = i
		}
	}
	return idx
}

// getCol safely retrieves a canonical column value from a row. Absent
// columns and short rows yield "".
func getCol(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

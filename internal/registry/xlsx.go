package registry

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// ParseXLSX reads casino registry rows from an affiliates spreadsheet.
// The first row is a header; recognized columns (case-insensitive) are
// name, resolved_domain/domain, supports_us_sweeps/sc_allowed, and
// supports_crypto/crypto_allowed. Rows without a name are skipped.
func ParseXLSX(path string) ([]model.Casino, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("registry: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, eris.New("registry: xlsx has no data rows")
	}

	cols := headerIndex(rowToStrings(sheet.Rows[0]))
	nameCol, ok := cols.any("name")
	if !ok {
		return nil, eris.New("registry: xlsx missing name column")
	}
	domainCol, _ := cols.any("resolved_domain", "domain")
	sweepsCol, hasSweeps := cols.any("supports_us_sweeps", "sc_allowed")
	cryptoCol, hasCrypto := cols.any("supports_crypto", "crypto_allowed")

	var casinos []model.Casino
	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		name := strings.TrimSpace(cellAt(cells, nameCol))
		if name == "" {
			continue
		}
		c := model.Casino{
			Name:           name,
			ResolvedDomain: strings.ToLower(strings.TrimSpace(cellAt(cells, domainCol))),
		}
		if hasSweeps {
			c.SupportsSweeps = parseBool(cellAt(cells, sweepsCol))
		}
		if hasCrypto {
			c.SupportsCrypto = parseBool(cellAt(cells, cryptoCol))
		}
		casinos = append(casinos, c)
	}
	return casinos, nil
}

type headerCols map[string]int

func headerIndex(header []string) headerCols {
	cols := make(headerCols, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func (h headerCols) any(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := h[n]; ok {
			return i, true
		}
	}
	return -1, false
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// LoadOptions selects what part of a workbook becomes the raw table.
type LoadOptions struct {
	// SheetName picks a worksheet by name (case-insensitive). Takes precedence over SheetIndex.
	SheetName string
	// SheetIndex is 1-based; values <= 0 mean the first sheet.
	SheetIndex int
	// SkipRows drops this many leading sheet rows before the header row.
	SkipRows int
}

// LoadXLSX reads one worksheet into a RawTable. Cells keep their native type:
// booleans become bool, numbers float64, empty cells nil, everything else string.
func LoadXLSX(path string, opt LoadOptions) (RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := resolveSheet(f, opt, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	skip := opt.SkipRows
	if skip < 0 {
		skip = 0
	}
	if skip >= len(rows) {
		return RawTable{}, nil
	}

	raw := make(RawTable, 0, len(rows)-skip)
	for r := skip; r < len(rows); r++ {
		out := make([]any, len(rows[r]))
		for c, s := range rows[r] {
			if s == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("cell ref (%d,%d): %w", c+1, r+1, err)
			}
			ct, err := f.GetCellType(sheet, ref)
			if err != nil {
				return nil, fmt.Errorf("cell type %s: %w", ref, err)
			}
			out[c] = typedCell(ct, s)
		}
		raw = append(raw, out)
	}
	return raw, nil
}

func resolveSheet(f *excelize.File, opt LoadOptions, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook '%s' has no sheets", ErrSheetNotFound, name)
	}
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("%w: '%s' in workbook '%s'.\nAvailable sheets: %s",
			ErrSheetNotFound, opt.SheetName, name, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("%w: index %d in workbook '%s' (%d sheets)", ErrSheetNotFound, idx, name, len(sheets))
	}
	return sheets[idx-1], nil
}

// typedCell converts a raw cell value using its native excelize type.
func typedCell(ct excelize.CellType, s string) any {
	switch ct {
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b
		}
		return s
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// numeric cells usually carry no explicit type attribute
		if x, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return x
		}
		return s
	default:
		return s
	}
}

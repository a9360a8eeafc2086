package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to sheet in a fresh workbook. nil cells are left empty.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	first := true
	for name, rows := range sheets {
		if first {
			if name != "Sheet1" {
				if err := f.SetSheetName("Sheet1", name); err != nil {
					t.Fatalf("rename sheet: %v", err)
				}
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, row := range rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := f.SetCellValue(name, cell, v); err != nil {
					t.Fatalf("set %s: %v", cell, err)
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestLoadXLSXKeepsNativeTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Sheet1": {
			{"agent_type", "multimodal_capability", "bias_detection_score", "note"},
			{"Planner", true, 0.82, "ok"},
			{"Coder", false, "N/A", nil},
			{"Coder", 1, 0.5},
		},
	})

	raw, err := LoadXLSX(path, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	if len(raw) != 4 {
		t.Fatalf("rows = %d, want 4", len(raw))
	}
	if raw[0][0] != "agent_type" {
		t.Fatalf("header cell = %#v", raw[0][0])
	}
	if raw[1][1] != true || raw[2][1] != false {
		t.Fatalf("bool cells = %#v, %#v", raw[1][1], raw[2][1])
	}
	if raw[1][2] != 0.82 {
		t.Fatalf("numeric cell = %#v", raw[1][2])
	}
	if raw[2][2] != "N/A" {
		t.Fatalf("text cell = %#v", raw[2][2])
	}
	if raw[3][1] != 1.0 {
		t.Fatalf("integer cell = %#v", raw[3][1])
	}

	tbl := Normalize(raw)
	if tbl.Len() != 3 {
		t.Fatalf("normalized rows = %d, want 3", tbl.Len())
	}
	if tbl.Value(1, "note") != nil {
		t.Fatalf("empty cell should be nil, got %#v", tbl.Value(1, "note"))
	}
}

func TestLoadXLSXSheetSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Sheet1": {{"a"}, {"from first"}},
	})
	// add a second sheet after the first one exists
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	_ = f.SetCellValue("Data", "A1", "banner")
	_ = f.SetCellValue("Data", "A2", "b")
	_ = f.SetCellValue("Data", "A3", "from data")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.Close()

	raw, err := LoadXLSX(path, LoadOptions{SheetName: "data", SkipRows: 1})
	if err != nil {
		t.Fatalf("LoadXLSX by name: %v", err)
	}
	if len(raw) != 2 || raw[0][0] != "b" || raw[1][0] != "from data" {
		t.Fatalf("unexpected rows: %#v", raw)
	}

	raw, err = LoadXLSX(path, LoadOptions{SheetIndex: 2})
	if err != nil {
		t.Fatalf("LoadXLSX by index: %v", err)
	}
	if raw[0][0] != "banner" {
		t.Fatalf("index 2 first cell = %#v", raw[0][0])
	}

	_, err = LoadXLSX(path, LoadOptions{SheetName: "missing"})
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "Available sheets: Sheet1, Data") {
		t.Fatalf("error should list sheets: %v", err)
	}
	if _, err := LoadXLSX(path, LoadOptions{SheetIndex: 5}); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound for index, got %v", err)
	}
}

func TestLoadXLSXSkipBeyondEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.xlsx")
	writeWorkbook(t, path, map[string][][]any{"Sheet1": {{"a"}}})
	raw, err := LoadXLSX(path, LoadOptions{SkipRows: 3})
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("rows = %d, want 0", len(raw))
	}
	if tbl := Normalize(raw); tbl.Len() != 0 {
		t.Fatalf("normalized rows = %d", tbl.Len())
	}
}

func TestLoadXLSXMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadXLSX(filepath.Join(dir, "nope.xlsx"), LoadOptions{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.xlsx")
	if err := os.WriteFile(bad, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadXLSX(bad, LoadOptions{}); err == nil {
		t.Fatalf("expected error for corrupt file")
	}
}

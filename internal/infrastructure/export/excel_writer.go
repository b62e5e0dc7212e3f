package export

import (
	"fmt"
	"math"

	"github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"github.com/xuri/excelize/v2"
)

const excelSheet = "Sheet1"

// WriteExcel saves the table as a single sheet workbook with a header row.
func WriteExcel(path string, table *tabular.Table) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	columns := table.Columns()
	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	if err := f.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		values := make([]any, len(row))
		for j, cell := range row {
			values[j] = excelValue(cell.Value)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(excelSheet, axis, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// excelValue maps a cell onto a type excelize stores natively. Arrays and
// objects are written as JSON text.
func excelValue(v jsonvalue.Value) any {
	switch v.Kind() {
	case jsonvalue.KindMissing, jsonvalue.KindNull:
		return nil
	case jsonvalue.KindBool:
		b, _ := v.BoolValue()
		return b
	case jsonvalue.KindNumber:
		n, _ := v.Float()
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
		return n
	default:
		return v.Text()
	}
}

package gst

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook streams the full rate table as an XLSX workbook, one sheet
// per tab.
func WriteWorkbook(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Goods"); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet("Services"); err != nil {
		return fmt.Errorf("add services sheet: %w", err)
	}

	if err := writeSheet(f, "Goods", goodsCategories); err != nil {
		return err
	}
	if err := writeSheet(f, "Services", serviceCategories); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, categories []Category) error {
	header := []interface{}{"Category", "Product/Service", "Rate (%)", "Conditions", "Parameterized"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, cat := range categories {
		for _, p := range cat.Products {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []interface{}{cat.Name, p.Name, p.BaseRate, p.Conditions, len(p.Parameters) > 0}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}
	return nil
}

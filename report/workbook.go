package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var (
	stockSheetHeader  = []any{"Date", "Type", "Quantity", "Price", "Amount", "Profit"}
	optionSheetHeader = []any{"Date", "Description", "Type", "Quantity", "Price", "Amount", "Profit"}
)

// WriteWorkbook writes one instrument's ledger rows to an XLSX workbook
// with a STOCK and an OPTION sheet. Rows arrive newest-first from the
// ledgers and are written in that order; the Profit column is blank except
// on position-closing rows.
func WriteWorkbook(path string, stock, option []LedgerRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "STOCK"); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet("OPTION"); err != nil {
		return fmt.Errorf("add OPTION sheet: %w", err)
	}

	if err := writeSheet(f, "STOCK", stockSheetHeader, stock, stockCells); err != nil {
		return err
	}
	if err := writeSheet(f, "OPTION", optionSheetHeader, option, optionCells); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows []LedgerRow, cells func(LedgerRow) []any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := cells(row)
		if err := f.SetSheetRow(sheet, axis, &vals); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func stockCells(r LedgerRow) []any {
	return []any{r.Date, r.TransCode, r.Quantity, priceCell(r.Price), amountCell(r), profitCell(r)}
}

func optionCells(r LedgerRow) []any {
	return []any{r.Date, r.Description, r.TransCode, r.Quantity, priceCell(r.Price), amountCell(r), profitCell(r)}
}

// priceCell prefers a numeric cell but falls back to the raw text when the
// export price is not a plain number.
func priceCell(price string) any {
	if v, err := strconv.ParseFloat(price, 64); err == nil {
		return v
	}
	return price
}

// Amount and profit cells carry the exact decimal text; a float64 cell
// would round values the ledgers keep exact.
func amountCell(r LedgerRow) any {
	return r.Amount.String()
}

func profitCell(r LedgerRow) any {
	if !r.Profit.Valid {
		return nil
	}
	return r.Profit.Decimal.String()
}

// Package export renders a session's planning results into a downloadable
// workbook for clients who want their numbers offline.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
)

const sheetName = "Planning Summary"

// ExcelExporter implements port.ResultsExporter with excelize.
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates an exporter.
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{logger: logger}
}

// ExportWorkbook builds the summary workbook and returns it as bytes.
func (e *ExcelExporter) ExportWorkbook(input port.ExportInput) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		e.logger.Warn("Failed to remove default sheet", zap.Error(err))
	}

	e.setCell(f, "A1", "Medicaid Planning Summary")
	e.setCell(f, "A2", "Generated")
	e.setCell(f, "B2", input.GeneratedAt.Format("2006-01-02 15:04"))
	e.setCell(f, "A3", "State")
	e.setCell(f, "B3", input.State)

	e.setCell(f, "A5", "Client")
	e.setCell(f, "A6", "Name")
	e.setCell(f, "B6", input.ClientInfo.Name)
	e.setCell(f, "A7", "Age")
	e.setCell(f, "B7", fmt.Sprintf("%d", input.ClientInfo.Age))
	e.setCell(f, "A8", "Marital status")
	e.setCell(f, "B8", input.ClientInfo.MaritalStatus)
	e.setCell(f, "A9", "Health status")
	e.setCell(f, "B9", input.ClientInfo.HealthStatus)

	e.setCell(f, "A11", "Financial Profile")
	e.setCell(f, "A12", "Countable assets")
	e.setCell(f, "B12", fmt.Sprintf("%.2f", input.Assets.Countable))
	e.setCell(f, "A13", "Non-countable assets")
	e.setCell(f, "B13", fmt.Sprintf("%.2f", input.Assets.NonCountable))
	e.setCell(f, "A14", "Monthly income")
	totalIncome := input.Income.SocialSecurity + input.Income.Pension +
		input.Income.Annuity + input.Income.Rental + input.Income.Investment
	e.setCell(f, "B14", fmt.Sprintf("%.2f", totalIncome))
	e.setCell(f, "A15", "Monthly expenses")
	e.setCell(f, "B15", fmt.Sprintf("%.2f", input.Expenses.Total))

	row := 17
	row = e.writeSection(f, row, "Eligibility Assessment", input.Eligibility)
	if input.Planning != nil {
		row++
		e.writeSection(f, row, "Recommended Plan", input.Planning)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	e.logger.Info("Results workbook exported",
		zap.String("client", input.ClientInfo.Name),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// writeSection renders a backend result map as sorted key/value rows and
// returns the next free row. Nested structures are flattened to their string
// form; the service does not interpret result content.
func (e *ExcelExporter) writeSection(f *excelize.File, row int, title string, data map[string]interface{}) int {
	e.setCell(f, fmt.Sprintf("A%d", row), title)
	row++

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		e.setCell(f, fmt.Sprintf("A%d", row), k)
		e.setCell(f, fmt.Sprintf("B%d", row), fmt.Sprintf("%v", data[k]))
		row++
	}
	return row
}

func (e *ExcelExporter) setCell(f *excelize.File, cell, value string) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

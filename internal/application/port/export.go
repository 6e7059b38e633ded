package port

import (
	"time"

	"github.com/carepath/medicaid-intake/internal/domain/entity"
)

// ExportInput is everything the results workbook renders.
type ExportInput struct {
	ClientInfo  entity.ClientInfo
	Assets      entity.Assets
	Income      entity.Income
	Expenses    entity.Expenses
	Eligibility map[string]interface{}
	Planning    map[string]interface{}
	State       string
	GeneratedAt time.Time
}

// ResultsExporter renders a session's results into a downloadable workbook.
type ResultsExporter interface {
	ExportWorkbook(input ExportInput) ([]byte, error)
}

package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

func snapshot(includeDocs bool) *ports.BackupSnapshot {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	return &ports.BackupSnapshot{
		IncludeDocuments: includeDocs,
		Projects: []*entity.Project{{
			ID: "p1", Name: "Sprinter", Status: entity.ProjectStatusPlanning, Budget: decimal.NewFromInt(15000),
			Vehicle: entity.Vehicle{Registration: "AB-123-CD", PTAC: 3500}, CreatedAt: day,
		}},
		Tasks: []*entity.Task{{ID: "t1", ProjectID: "p1", Title: "Isolation"}},
		Expenses: []*entity.Expense{
			{ID: "e1", ProjectID: "p1", Label: "Laine de mouton", AmountHT: decimal.RequireFromString("100"), VATRate: decimal.NewFromInt(20), AmountTTC: decimal.NewFromInt(120), Date: day, DocumentKey: "scans/p1/f.pdf"},
			{ID: "e2", ProjectID: "p1", Label: "Vis", Date: day},
		},
		Scenarios: []*entity.Scenario{
			{ID: "s1", ProjectID: "p1", Name: "Base", IsPrincipal: true, Items: []entity.ScenarioItem{{AccessoryID: "a1", Quantity: 2}, {AccessoryID: "a2", Quantity: 1}}},
			{ID: "s2", ProjectID: "p1", Name: "Vide"},
		},
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestBuildBackup_Sheets(t *testing.T) {
	data, err := NewWorkbookBuilder().BuildBackup(snapshot(false))
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{SheetProjects, SheetTasks, SheetExpenses, SheetAppointments, SheetScenarios}, f.GetSheetList())

	name, err := f.GetCellValue(SheetProjects, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Sprinter", name)

	ttc, err := f.GetCellValue(SheetExpenses, "H2")
	require.NoError(t, err)
	assert.Equal(t, "120", ttc)

	rows, err := f.GetRows(SheetScenarios)
	require.NoError(t, err)
	assert.Len(t, rows, 4, "cabecera + 2 ítems + escenario vacío")
}

func TestBuildBackup_Documents(t *testing.T) {
	data, err := NewWorkbookBuilder().BuildBackup(snapshot(true))
	require.NoError(t, err)
	f := open(t, data)

	rows, err := f.GetRows(SheetDocuments)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "scans/p1/f.pdf", rows[1][3])
}

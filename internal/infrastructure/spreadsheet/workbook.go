// Package spreadsheet genera las copias de seguridad en formato xlsx.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
)

// Hojas del libro de copia de seguridad.
const (
	SheetProjects     = "Projects"
	SheetTasks        = "Tasks"
	SheetExpenses     = "Expenses"
	SheetAppointments = "Appointments"
	SheetScenarios    = "Scenarios"
	SheetDocuments    = "Documents"
)

var _ ports.WorkbookBuilder = (*WorkbookBuilder)(nil)

// WorkbookBuilder implementa WorkbookBuilder con excelize.
type WorkbookBuilder struct{}

// NewWorkbookBuilder construye el generador.
func NewWorkbookBuilder() *WorkbookBuilder { return &WorkbookBuilder{} }

// BuildBackup vuelca el snapshot en un libro con una hoja por tabla.
func (w *WorkbookBuilder) BuildBackup(s *ports.BackupSnapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E7EF"}},
	})
	if err != nil {
		return nil, fmt.Errorf("backup: estilo: %w", err)
	}

	sheets := []struct {
		name string
		head []any
		rows [][]any
	}{
		{SheetProjects, []any{"ID", "Name", "Status", "Budget", "Registration", "Brand", "Type", "VIN", "PTAC", "Empty mass", "Seats", "Start", "Target", "Created"}, projectRows(s)},
		{SheetTasks, []any{"ID", "Project", "Title", "Category", "Done", "Due", "Position"}, taskRows(s)},
		{SheetExpenses, []any{"ID", "Project", "Label", "Supplier", "Category", "HT", "VAT %", "TTC", "Date", "Payment", "Invoice"}, expenseRows(s)},
		{SheetAppointments, []any{"ID", "Project", "Title", "Kind", "Starts at", "Location", "Done"}, appointmentRows(s)},
		{SheetScenarios, []any{"ID", "Project", "Name", "Principal", "Accessory", "Quantity"}, scenarioRows(s)},
	}
	if s.IncludeDocuments {
		sheets = append(sheets, struct {
			name string
			head []any
			rows [][]any
		}{SheetDocuments, []any{"Expense", "Project", "Label", "Document key"}, documentRows(s)})
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("backup: hoja %s: %w", sh.name, err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("backup: hoja %s: %w", sh.name, err)
		}
		if err := f.SetSheetRow(sh.name, "A1", &sh.head); err != nil {
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(sh.head), 1)
		if err := f.SetCellStyle(sh.name, "A1", last, header); err != nil {
			return nil, err
		}
		for r, row := range sh.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return nil, fmt.Errorf("backup: fila %d de %s: %w", r+2, sh.name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("backup: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func date(t *time.Time) any {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func projectRows(s *ports.BackupSnapshot) [][]any {
	rows := make([][]any, 0, len(s.Projects))
	for _, p := range s.Projects {
		v := p.Vehicle
		rows = append(rows, []any{
			p.ID, p.Name, p.Status, p.Budget.InexactFloat64(), v.Registration, v.Brand, v.Type, v.VIN,
			v.PTAC, v.EmptyMass, v.Seats, date(p.StartDate), date(p.TargetDate), p.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func taskRows(s *ports.BackupSnapshot) [][]any {
	rows := make([][]any, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		rows = append(rows, []any{t.ID, t.ProjectID, t.Title, t.Category, t.Done, date(t.DueDate), t.Position})
	}
	return rows
}

func expenseRows(s *ports.BackupSnapshot) [][]any {
	rows := make([][]any, 0, len(s.Expenses))
	for _, e := range s.Expenses {
		rows = append(rows, []any{
			e.ID, e.ProjectID, e.Label, e.Supplier, e.Category,
			e.AmountHT.InexactFloat64(), e.VATRate.InexactFloat64(), e.AmountTTC.InexactFloat64(),
			e.Date.Format("2006-01-02"), e.PaymentStatus, e.InvoiceNumber,
		})
	}
	return rows
}

func appointmentRows(s *ports.BackupSnapshot) [][]any {
	rows := make([][]any, 0, len(s.Appointments))
	for _, a := range s.Appointments {
		rows = append(rows, []any{a.ID, a.ProjectID, a.Title, a.Kind, a.StartsAt.Format(time.RFC3339), a.Location, a.Done})
	}
	return rows
}

// scenarioRows una fila por ítem; un escenario vacío ocupa una fila sin accesorio.
func scenarioRows(s *ports.BackupSnapshot) [][]any {
	var rows [][]any
	for _, sc := range s.Scenarios {
		if len(sc.Items) == 0 {
			rows = append(rows, []any{sc.ID, sc.ProjectID, sc.Name, sc.IsPrincipal, "", 0})
			continue
		}
		for _, it := range sc.Items {
			rows = append(rows, []any{sc.ID, sc.ProjectID, sc.Name, sc.IsPrincipal, it.AccessoryID, it.Quantity})
		}
	}
	return rows
}

func documentRows(s *ports.BackupSnapshot) [][]any {
	var rows [][]any
	for _, e := range s.Expenses {
		if strings.TrimSpace(e.DocumentKey) == "" {
			continue
		}
		rows = append(rows, []any{e.ID, e.ProjectID, e.Label, e.DocumentKey})
	}
	return rows
}

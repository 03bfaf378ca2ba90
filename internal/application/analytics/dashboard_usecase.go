// Package analytics contiene los casos de uso del tablero de seguimiento de proyectos:
// presupuesto, gastos, avance de tareas y próxima cita.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

const overviewPageSize = 100 // proyectos leídos por consulta en Overview

// DashboardUseCase genera el resumen de avance y presupuesto de los proyectos.
//
// Fuente de datos: repositorios de solo lectura; no escribe nada.
type DashboardUseCase struct {
	access        *usecase.ProjectAccess
	projectRepo   repository.ProjectRepository
	expenseRepo   repository.ExpenseRepository
	taskRepo      repository.TaskRepository
	apptRepo      repository.AppointmentRepository
	scenarioRepo  repository.ScenarioRepository
	accessoryRepo repository.AccessoryRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	access *usecase.ProjectAccess,
	projectRepo repository.ProjectRepository,
	expenseRepo repository.ExpenseRepository,
	taskRepo repository.TaskRepository,
	apptRepo repository.AppointmentRepository,
	scenarioRepo repository.ScenarioRepository,
	accessoryRepo repository.AccessoryRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		access:        access,
		projectRepo:   projectRepo,
		expenseRepo:   expenseRepo,
		taskRepo:      taskRepo,
		apptRepo:      apptRepo,
		scenarioRepo:  scenarioRepo,
		accessoryRepo: accessoryRepo,
		now:           time.Now,
	}
}

// ProjectSummary construye el ProjectSummaryDTO del proyecto indicado.
func (uc *DashboardUseCase) ProjectSummary(ctx context.Context, actor dto.Actor, projectID string) (*dto.ProjectSummaryDTO, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	return uc.summarize(ctx, p)
}

// Overview devuelve el resumen de cada proyecto del actor y los totales agregados.
func (uc *DashboardUseCase) Overview(ctx context.Context, actor dto.Actor) (*dto.OverviewDTO, error) {
	out := &dto.OverviewDTO{
		Projects:    []dto.ProjectSummaryDTO{},
		TotalBudget: decimal.Zero,
		TotalSpent:  decimal.Zero,
	}
	for offset := 0; ; offset += overviewPageSize {
		list, err := uc.projectRepo.ListByOwner(ctx, actor.UserID, overviewPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("dashboard: listar proyectos: %w", err)
		}
		for _, p := range list {
			s, err := uc.summarize(ctx, p)
			if err != nil {
				return nil, err
			}
			out.Projects = append(out.Projects, *s)
			out.TotalBudget = out.TotalBudget.Add(s.Budget)
			out.TotalSpent = out.TotalSpent.Add(s.SpentTTC)
		}
		if len(list) < overviewPageSize {
			return out, nil
		}
	}
}

// summarize lanza cuatro consultas en paralelo:
//  1. gastos del proyecto      → SpentTTC, Paid, Unpaid
//  2. tareas                   → TasksDone, TasksTotal, CompletionPct
//  3. citas                    → NextAppointment
//  4. escenario principal      → Principal (totales de precio, peso y consumo)
func (uc *DashboardUseCase) summarize(ctx context.Context, p *entity.Project) (*dto.ProjectSummaryDTO, error) {
	now := uc.now()

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type expensesResult struct {
		list []*entity.Expense
		err  error
	}
	type tasksResult struct {
		list []*entity.Task
		err  error
	}
	type apptsResult struct {
		list []*entity.Appointment
		err  error
	}
	type principalResult struct {
		totals *dto.ScenarioTotalsResponse
		err    error
	}

	expCh := make(chan expensesResult, 1)
	taskCh := make(chan tasksResult, 1)
	apptCh := make(chan apptsResult, 1)
	prinCh := make(chan principalResult, 1)

	go func() {
		list, err := uc.expenseRepo.ListByProject(ctx, p.ID)
		expCh <- expensesResult{list, err}
	}()
	go func() {
		list, err := uc.taskRepo.ListByProject(ctx, p.ID)
		taskCh <- tasksResult{list, err}
	}()
	go func() {
		list, err := uc.apptRepo.ListByProject(ctx, p.ID)
		apptCh <- apptsResult{list, err}
	}()
	go func() {
		s, err := uc.scenarioRepo.GetPrincipal(ctx, p.ID)
		if err != nil || s == nil {
			prinCh <- principalResult{nil, err}
			return
		}
		totals, err := usecase.ComputeScenarioTotals(ctx, uc.accessoryRepo, s)
		prinCh <- principalResult{totals, err}
	}()

	exps := <-expCh
	tasks := <-taskCh
	appts := <-apptCh
	prin := <-prinCh

	// ── Propagación de errores ─────────────────────────────────────────────────
	if exps.err != nil {
		return nil, fmt.Errorf("dashboard: gastos: %w", exps.err)
	}
	if tasks.err != nil {
		return nil, fmt.Errorf("dashboard: tareas: %w", tasks.err)
	}
	if appts.err != nil {
		return nil, fmt.Errorf("dashboard: citas: %w", appts.err)
	}
	if prin.err != nil {
		return nil, fmt.Errorf("dashboard: escenario principal: %w", prin.err)
	}

	// ── Ensamblado del DTO ─────────────────────────────────────────────────────
	out := &dto.ProjectSummaryDTO{
		ProjectID:   p.ID,
		Name:        p.Name,
		Status:      p.Status,
		Budget:      p.Budget,
		SpentTTC:    decimal.Zero,
		Paid:        decimal.Zero,
		Unpaid:      decimal.Zero,
		Principal:   prin.totals,
		GeneratedAt: now.UTC(),
	}
	for _, e := range exps.list {
		switch e.PaymentStatus {
		case entity.PaymentRefunded:
			continue
		case entity.PaymentPaid:
			out.Paid = out.Paid.Add(e.AmountTTC)
		default:
			out.Unpaid = out.Unpaid.Add(e.AmountTTC)
		}
		out.SpentTTC = out.SpentTTC.Add(e.AmountTTC)
	}
	out.Remaining = p.Budget.Sub(out.SpentTTC)

	out.TasksTotal = len(tasks.list)
	for _, t := range tasks.list {
		if t.Done {
			out.TasksDone++
		}
	}
	out.CompletionPct = CompletionPct(out.TasksDone, out.TasksTotal)

	for _, a := range appts.list {
		if a.Done || a.StartsAt.Before(now) {
			continue
		}
		if out.NextAppointment == nil || a.StartsAt.Before(out.NextAppointment.StartsAt) {
			out.NextAppointment = usecase.ToAppointmentResponse(a)
		}
	}
	return out, nil
}

// CompletionPct porcentaje de tareas hechas con un decimal; 0 sin tareas.
func CompletionPct(done, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(done)).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).Round(1)
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ExpenseUseCase casos de uso de gastos (charges) de un proyecto.
type ExpenseUseCase struct {
	repo     repository.ExpenseRepository
	access   *ProjectAccess
	notifier *events.Notifier
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, access *ProjectAccess, notifier *events.Notifier) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, access: access, notifier: notifier}
}

// Create registra un gasto. Sin importe TTC se calcula como HT * (1 + IVA/100).
func (uc *ExpenseUseCase) Create(ctx context.Context, actor dto.Actor, projectID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	status := in.PaymentStatus
	if status == "" {
		status = entity.PaymentPending
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	e := &entity.Expense{
		ID:            uuid.New().String(),
		ProjectID:     p.ID,
		Label:         strings.TrimSpace(in.Label),
		Supplier:      in.Supplier,
		Category:      in.Category,
		AmountHT:      in.AmountHT,
		VATRate:       in.VATRate,
		Date:          date,
		PaymentStatus: status,
		InvoiceNumber: in.InvoiceNumber,
	}
	if in.AmountTTC != nil {
		e.AmountTTC = *in.AmountTTC
	}
	if err := uc.Record(ctx, p, e); err != nil {
		return nil, err
	}
	return ToExpenseResponse(e), nil
}

// Record valida, completa y persiste un gasto ya construido (formulario o escaneo de factura).
func (uc *ExpenseUseCase) Record(ctx context.Context, p *entity.Project, e *entity.Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.AmountTTC.IsZero() {
		e.AmountTTC = entity.ComputeTTC(e.AmountHT, e.VATRate)
	}
	now := time.Now()
	e.ProjectID = p.ID
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := uc.repo.Create(ctx, e); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "expenses", entity.ChangeInsert, e.ID, p.ID, p.OwnerID)
	return nil
}

// Get devuelve un gasto.
func (uc *ExpenseUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.ExpenseResponse, error) {
	e, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToExpenseResponse(e), nil
}

// List devuelve los gastos del proyecto, más recientes primero.
func (uc *ExpenseUseCase) List(ctx context.Context, actor dto.Actor, projectID string) ([]dto.ExpenseResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *ToExpenseResponse(e))
	}
	return out, nil
}

// Update aplica una actualización parcial. Si cambian HT o IVA sin TTC explícito, el TTC se recalcula.
func (uc *ExpenseUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Label != nil {
		e.Label = strings.TrimSpace(*in.Label)
	}
	if in.Supplier != nil {
		e.Supplier = *in.Supplier
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	recompute := false
	if in.AmountHT != nil {
		e.AmountHT = *in.AmountHT
		recompute = true
	}
	if in.VATRate != nil {
		e.VATRate = *in.VATRate
		recompute = true
	}
	switch {
	case in.AmountTTC != nil:
		e.AmountTTC = *in.AmountTTC
	case recompute:
		e.AmountTTC = entity.ComputeTTC(e.AmountHT, e.VATRate)
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.PaymentStatus != nil {
		e.PaymentStatus = *in.PaymentStatus
	}
	if in.InvoiceNumber != nil {
		e.InvoiceNumber = *in.InvoiceNumber
	}
	if err := validateExpense(e); err != nil {
		return nil, err
	}
	return uc.save(ctx, e, p)
}

// MarkPaid marca el gasto como pagado.
func (uc *ExpenseUseCase) MarkPaid(ctx context.Context, actor dto.Actor, id string) (*dto.ExpenseResponse, error) {
	e, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if e.PaymentStatus == entity.PaymentPaid {
		return ToExpenseResponse(e), nil
	}
	e.PaymentStatus = entity.PaymentPaid
	return uc.save(ctx, e, p)
}

// Delete elimina el gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	e, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, e.ID); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "expenses", entity.ChangeDelete, e.ID, p.ID, p.OwnerID)
	return nil
}

func (uc *ExpenseUseCase) save(ctx context.Context, e *entity.Expense, p *entity.Project) (*dto.ExpenseResponse, error) {
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "expenses", entity.ChangeUpdate, e.ID, p.ID, p.OwnerID)
	return ToExpenseResponse(e), nil
}

func (uc *ExpenseUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Expense, *entity.Project, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if e == nil {
		return nil, nil, domain.ErrNotFound
	}
	p, err := uc.access.Authorize(ctx, actor, e.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return e, p, nil
}

func validateExpense(e *entity.Expense) error {
	if e.Label == "" || e.AmountHT.IsNegative() || e.AmountTTC.IsNegative() {
		return domain.ErrInvalidInput
	}
	if e.VATRate.IsNegative() || e.VATRate.GreaterThan(hundred) {
		return domain.ErrInvalidInput
	}
	if !entity.ValidExpensePaymentStatus(e.PaymentStatus) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ToExpenseResponse convierte el gasto a DTO.
func ToExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:            e.ID,
		ProjectID:     e.ProjectID,
		Label:         e.Label,
		Supplier:      e.Supplier,
		Category:      e.Category,
		AmountHT:      e.AmountHT,
		VATRate:       e.VATRate,
		AmountTTC:     e.AmountTTC,
		Date:          e.Date,
		PaymentStatus: e.PaymentStatus,
		InvoiceNumber: e.InvoiceNumber,
		DocumentKey:   e.DocumentKey,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// Package scan OCR de certificados de matriculación y facturas mediante el modelo de visión.
package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// MaxScanSize tamaño máximo de un documento escaneado.
const MaxScanSize = 10 << 20

const contentTypePDF = "application/pdf"

var scanContentTypes = map[string]string{
	contentTypePDF: ".pdf",
	"image/jpeg":   ".jpg",
	"image/png":    ".png",
	"image/webp":   ".webp",
}

// UseCase orquesta los escaneos: almacena el documento, llama al modelo, interpreta
// la respuesta y actualiza el proyecto o crea el gasto.
type UseCase struct {
	jobs      repository.ScanJobRepository
	access    *usecase.ProjectAccess
	projects  *usecase.ProjectUseCase
	expenses  *usecase.ExpenseUseCase
	storage   ports.ObjectStorage
	ai        ports.AIResolver
	images    ports.ImageProcessor
	aiTimeout time.Duration
	notifier  *events.Notifier
	now       func() time.Time
}

// Deps dependencias del caso de uso de escaneo.
type Deps struct {
	Jobs      repository.ScanJobRepository
	Access    *usecase.ProjectAccess
	Projects  *usecase.ProjectUseCase
	Expenses  *usecase.ExpenseUseCase
	Storage   ports.ObjectStorage
	AI        ports.AIResolver
	Images    ports.ImageProcessor
	AITimeout time.Duration
	Notifier  *events.Notifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	if d.AITimeout <= 0 {
		d.AITimeout = 30 * time.Second
	}
	return &UseCase{
		jobs:      d.Jobs,
		access:    d.Access,
		projects:  d.Projects,
		expenses:  d.Expenses,
		storage:   d.Storage,
		ai:        d.AI,
		images:    d.Images,
		aiTimeout: d.AITimeout,
		notifier:  d.Notifier,
		now:       time.Now,
	}
}

// ScanRegistration lee la carte grise y vuelca sus campos en el vehículo del proyecto.
func (uc *UseCase) ScanRegistration(ctx context.Context, actor dto.Actor, projectID string, file dto.UploadedFile) (*dto.ScanRegistrationResponse, error) {
	p, job, raw, err := uc.submit(ctx, actor, projectID, entity.ScanKindRegistration, registrationPrompt, file)
	if err != nil {
		return nil, err
	}
	vehicle, fields, err := ParseRegistration(raw)
	if err != nil {
		return nil, uc.fail(ctx, job, err)
	}
	if err := uc.projects.ApplyVehicle(ctx, p, vehicle); err != nil {
		return nil, uc.fail(ctx, job, err)
	}
	if err := uc.done(ctx, job, fields); err != nil {
		return nil, err
	}
	return &dto.ScanRegistrationResponse{Job: *ToScanJobResponse(job), Project: *usecase.ToProjectResponse(p)}, nil
}

// ScanInvoice lee una factura de proveedor y crea el gasto enlazado al documento almacenado.
func (uc *UseCase) ScanInvoice(ctx context.Context, actor dto.Actor, projectID string, file dto.UploadedFile) (*dto.ScanInvoiceResponse, error) {
	p, job, raw, err := uc.submit(ctx, actor, projectID, entity.ScanKindInvoice, invoicePrompt, file)
	if err != nil {
		return nil, err
	}
	inv, fields, err := ParseInvoice(raw)
	if err != nil {
		return nil, uc.fail(ctx, job, err)
	}
	e := expenseFromInvoice(inv, job.FileKey, uc.now())
	if err := uc.expenses.Record(ctx, p, e); err != nil {
		return nil, uc.fail(ctx, job, err)
	}
	job.ExpenseID = e.ID
	if err := uc.done(ctx, job, fields); err != nil {
		return nil, err
	}
	return &dto.ScanInvoiceResponse{Job: *ToScanJobResponse(job), Expense: *usecase.ToExpenseResponse(e)}, nil
}

func expenseFromInvoice(inv InvoiceData, fileKey string, now time.Time) *entity.Expense {
	label := "Facture"
	if inv.Supplier != "" {
		label += " " + inv.Supplier
	}
	if inv.InvoiceNumber != "" {
		label += " n° " + inv.InvoiceNumber
	}
	date := now
	if inv.Date != nil {
		date = *inv.Date
	}
	return &entity.Expense{
		Label:         label,
		Supplier:      inv.Supplier,
		AmountHT:      inv.AmountHT,
		VATRate:       inv.VATRate,
		AmountTTC:     inv.AmountTTC,
		Date:          date,
		PaymentStatus: entity.PaymentPending,
		InvoiceNumber: inv.InvoiceNumber,
		DocumentKey:   fileKey,
	}
}

// submit valida el archivo, lo almacena, registra el escaneo y llama al modelo de visión.
// Un fallo del modelo deja el escaneo en estado failed.
func (uc *UseCase) submit(
	ctx context.Context,
	actor dto.Actor,
	projectID, kind, prompt string,
	file dto.UploadedFile,
) (*entity.Project, *entity.ScanJob, string, error) {
	file.ContentType = strings.ToLower(strings.TrimSpace(file.ContentType))
	ext, err := validateFile(file)
	if err != nil {
		return nil, nil, "", err
	}
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, nil, "", err
	}
	model, err := uc.ai.Resolve(ctx, actor.UserID)
	if err != nil {
		return nil, nil, "", err
	}

	now := uc.now()
	job := &entity.ScanJob{
		ID:          uuid.New().String(),
		UserID:      actor.UserID,
		ProjectID:   p.ID,
		Kind:        kind,
		ContentType: file.ContentType,
		Status:      entity.ScanStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	job.FileKey = fmt.Sprintf("scans/%s/%s%s", p.ID, job.ID, ext)
	if err := uc.storage.Put(ctx, job.FileKey, file.ContentType, file.Data); err != nil {
		return nil, nil, "", err
	}
	if err := uc.jobs.Create(ctx, job); err != nil {
		_ = uc.storage.Delete(context.WithoutCancel(ctx), job.FileKey)
		return nil, nil, "", err
	}

	aiCtx, cancel := context.WithTimeout(ctx, uc.aiTimeout)
	defer cancel()
	raw, err := model.Vision(aiCtx, prompt, file.ContentType, file.Data)
	if err != nil {
		return nil, nil, "", uc.fail(ctx, job, fmt.Errorf("OCR %s: %w", kind, err))
	}
	return p, job, raw, nil
}

// RescanZone relee un solo campo sobre un recorte ampliado de la imagen original,
// actualiza el resultado del escaneo y la fila destino (vehículo del proyecto o gasto).
func (uc *UseCase) RescanZone(ctx context.Context, actor dto.Actor, jobID string, in dto.RescanZoneRequest) (*dto.ScanJobResponse, error) {
	job, p, err := uc.load(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	if job.ContentType == contentTypePDF {
		return nil, fmt.Errorf("%w: un PDF no se puede releer por zona", domain.ErrInvalidInput)
	}
	if !slices.Contains(Fields(job.Kind), in.Field) {
		return nil, fmt.Errorf("%w: campo %q desconocido", domain.ErrInvalidInput, in.Field)
	}
	if err := validateZone(in.Zone); err != nil {
		return nil, err
	}
	model, err := uc.ai.Resolve(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	data, err := uc.storage.Get(ctx, job.FileKey)
	if err != nil {
		return nil, err
	}
	crop, err := uc.images.CropZone(data, job.ContentType, in.Zone)
	if err != nil {
		return nil, err
	}

	aiCtx, cancel := context.WithTimeout(ctx, uc.aiTimeout)
	defer cancel()
	raw, err := model.Vision(aiCtx, fieldPrompt(in.Field), "image/png", crop)
	if err != nil {
		return nil, fmt.Errorf("relectura %s: %w", in.Field, err)
	}
	value := cleanValue(raw)

	fields := map[string]string{}
	if len(job.Result) > 0 {
		_ = json.Unmarshal(job.Result, &fields)
	}
	fields[in.Field] = value

	switch job.Kind {
	case entity.ScanKindRegistration:
		if err := uc.projects.ApplyVehicle(ctx, p, VehicleFromFields(map[string]string{in.Field: value})); err != nil {
			return nil, err
		}
	case entity.ScanKindInvoice:
		if err := uc.updateExpense(ctx, actor, job, in.Field, fields); err != nil {
			return nil, err
		}
	}
	if err := uc.done(ctx, job, fields); err != nil {
		return nil, err
	}
	return ToScanJobResponse(job), nil
}

// updateExpense reaplica el campo releído al gasto creado por el escaneo.
func (uc *UseCase) updateExpense(ctx context.Context, actor dto.Actor, job *entity.ScanJob, field string, fields map[string]string) error {
	if job.ExpenseID == "" {
		return nil
	}
	inv := InvoiceFromFields(fields)
	var upd dto.UpdateExpenseRequest
	switch field {
	case "supplier":
		upd.Supplier = &inv.Supplier
	case "invoice_number":
		upd.InvoiceNumber = &inv.InvoiceNumber
	case "date":
		upd.Date = inv.Date
	default:
		upd.AmountHT, upd.VATRate, upd.AmountTTC = &inv.AmountHT, &inv.VATRate, &inv.AmountTTC
	}
	_, err := uc.expenses.Update(ctx, actor, job.ExpenseID, upd)
	return err
}

// Get devuelve un escaneo.
func (uc *UseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.ScanJobResponse, error) {
	job, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToScanJobResponse(job), nil
}

// List devuelve los escaneos del proyecto.
func (uc *UseCase) List(ctx context.Context, actor dto.Actor, projectID string) ([]dto.ScanJobResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	list, err := uc.jobs.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScanJobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, *ToScanJobResponse(j))
	}
	return out, nil
}

func (uc *UseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.ScanJob, *entity.Project, error) {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, domain.ErrNotFound
	}
	p, err := uc.access.Authorize(ctx, actor, job.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return job, p, nil
}

func (uc *UseCase) done(ctx context.Context, job *entity.ScanJob, fields map[string]string) error {
	job.Status = entity.ScanStatusDone
	job.Result = marshalFields(fields)
	job.Error = ""
	job.UpdatedAt = uc.now()
	if err := uc.jobs.Update(ctx, job); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "scan_jobs", entity.ChangeUpdate, job.ID, job.ProjectID, job.UserID)
	return nil
}

// fail marca el escaneo como fallido y devuelve cause.
func (uc *UseCase) fail(ctx context.Context, job *entity.ScanJob, cause error) error {
	job.Status = entity.ScanStatusFailed
	job.Error = cause.Error()
	job.UpdatedAt = uc.now()
	if err := uc.jobs.Update(context.WithoutCancel(ctx), job); err != nil {
		return fmt.Errorf("%w (además no se pudo guardar el escaneo: %v)", cause, err)
	}
	uc.notifier.Changed(ctx, "scan_jobs", entity.ChangeUpdate, job.ID, job.ProjectID, job.UserID)
	return cause
}

func validateFile(f dto.UploadedFile) (string, error) {
	if len(f.Data) == 0 {
		return "", fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if len(f.Data) > MaxScanSize {
		return "", fmt.Errorf("%w: el archivo supera %d MB", domain.ErrInvalidInput, MaxScanSize>>20)
	}
	ext, ok := scanContentTypes[f.ContentType]
	if !ok {
		return "", fmt.Errorf("%w: tipo de archivo no admitido %q", domain.ErrInvalidInput, f.ContentType)
	}
	return ext, nil
}

func validateZone(z dto.Zone) error {
	if z.X < 0 || z.Y < 0 || z.W <= 0 || z.H <= 0 || z.X+z.W > 1.0001 || z.Y+z.H > 1.0001 {
		return fmt.Errorf("%w: zona fuera de la imagen", domain.ErrInvalidInput)
	}
	return nil
}

// ToScanJobResponse convierte el escaneo a DTO.
func ToScanJobResponse(j *entity.ScanJob) *dto.ScanJobResponse {
	return &dto.ScanJobResponse{
		ID:          j.ID,
		ProjectID:   j.ProjectID,
		Kind:        j.Kind,
		Status:      j.Status,
		ContentType: j.ContentType,
		Result:      j.Result,
		Error:       j.Error,
		ExpenseID:   j.ExpenseID,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

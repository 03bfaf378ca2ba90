package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
	"github.com/jhoicas/vanbuilder-api/internal/domain/rti"
	"github.com/jhoicas/vanbuilder-api/pkg/textnorm"
)

// RTIUseCase prepara el dossier de Réception à Titre Isolé de un proyecto.
type RTIUseCase struct {
	access       *ProjectAccess
	scenarios    repository.ScenarioRepository
	accessories  repository.AccessoryRepository
	expenses     repository.ExpenseRepository
	appointments repository.AppointmentRepository
	pdf          ports.DossierPDFGenerator
	checklist    []rti.Piece
}

// NewRTIUseCase construye el caso de uso; falla si el checklist embebido es inválido.
func NewRTIUseCase(
	access *ProjectAccess,
	scenarios repository.ScenarioRepository,
	accessories repository.AccessoryRepository,
	expenses repository.ExpenseRepository,
	appointments repository.AppointmentRepository,
	pdf ports.DossierPDFGenerator,
) (*RTIUseCase, error) {
	checklist, err := rti.LoadChecklist()
	if err != nil {
		return nil, err
	}
	return &RTIUseCase{
		access:       access,
		scenarios:    scenarios,
		accessories:  accessories,
		expenses:     expenses,
		appointments: appointments,
		pdf:          pdf,
		checklist:    checklist,
	}, nil
}

// Preview calcula masas y estado del checklist con las cargas declaradas.
func (uc *RTIUseCase) Preview(ctx context.Context, actor dto.Actor, projectID string, loads dto.RTILoadsRequest) (*dto.DossierResponse, error) {
	_, d, err := uc.build(ctx, actor, projectID, loads)
	return d, err
}

// GeneratePDF genera el dossier en PDF para presentarlo a la DREAL.
func (uc *RTIUseCase) GeneratePDF(ctx context.Context, actor dto.Actor, projectID string, loads dto.RTILoadsRequest) ([]byte, string, error) {
	p, d, err := uc.build(ctx, actor, projectID, loads)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateDossier(ctx, p, d)
	if err != nil {
		return nil, "", fmt.Errorf("rti: generar pdf: %w", err)
	}
	return data, dossierFilename(p), nil
}

// dossierFilename usa la matrícula normalizada (va en Content-Disposition) o el prefijo del ID.
func dossierFilename(p *entity.Project) string {
	name := textnorm.Slug(p.Vehicle.Registration)
	if name == "" {
		name = textnorm.Slug(p.ID)
		if len(name) > 8 {
			name = name[:8]
		}
	}
	return fmt.Sprintf("dossier_rti_%s.pdf", name)
}

func (uc *RTIUseCase) build(ctx context.Context, actor dto.Actor, projectID string, in dto.RTILoadsRequest) (*entity.Project, *dto.DossierResponse, error) {
	if in.Passengers < 0 || in.WaterLiters < 0 || in.ExtraKg.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, nil, err
	}
	principal, err := uc.scenarios.GetPrincipal(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	equipment, err := uc.equipment(ctx, principal)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := uc.expenses.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	appts, err := uc.appointments.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}

	mass := rti.ComputeMass(p.Vehicle, equipment, rti.Loads{
		Passengers:  in.Passengers,
		WaterLiters: in.WaterLiters,
		ExtraKg:     in.ExtraKg,
	})
	facts := rti.Facts{
		Vehicle:        p.Vehicle,
		EquipmentCount: len(equipment),
		MassCompliant:  mass.Compliant,
	}
	for _, e := range expenses {
		if e.DocumentKey != "" || e.InvoiceNumber != "" {
			facts.InvoiceCount++
		}
	}
	for _, a := range appts {
		if a.Kind == entity.AppointmentDREAL {
			facts.HasDREALAppointment = true
			break
		}
	}
	pieces := rti.Evaluate(uc.checklist, facts)
	complete := true
	for _, piece := range pieces {
		if piece.Status == rti.PieceMissing {
			complete = false
			break
		}
	}
	out := &dto.DossierResponse{
		ProjectID: p.ID,
		Vehicle:   ToVehicleDTO(p.Vehicle),
		Equipment: equipment,
		Mass:      mass,
		Checklist: pieces,
		Complete:  complete,
	}
	if principal != nil {
		out.ScenarioID = principal.ID
	}
	return p, out, nil
}

func (uc *RTIUseCase) equipment(ctx context.Context, s *entity.Scenario) ([]rti.EquipmentLine, error) {
	if s == nil || len(s.Items) == 0 {
		return []rti.EquipmentLine{}, nil
	}
	ids := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.AccessoryID)
	}
	byID, err := uc.accessories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	lines := make([]rti.EquipmentLine, 0, len(s.Items))
	for _, it := range s.Items {
		a, ok := byID[it.AccessoryID]
		if !ok {
			continue
		}
		q := decimal.NewFromInt(int64(it.Quantity))
		lines = append(lines, rti.EquipmentLine{
			AccessoryID:   a.ID,
			Name:          a.Name,
			Brand:         a.Brand,
			Quantity:      it.Quantity,
			UnitWeightKg:  a.WeightKg,
			TotalWeightKg: a.WeightKg.Mul(q),
		})
	}
	return lines, nil
}

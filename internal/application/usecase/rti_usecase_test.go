package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/rti"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

type stubDossierPDF struct {
	got *dto.DossierResponse
}

func (s *stubDossierPDF) GenerateDossier(_ context.Context, _ *entity.Project, d *dto.DossierResponse) ([]byte, error) {
	s.got = d
	return []byte("%PDF"), nil
}

func newRTI(t *testing.T, vehicle entity.Vehicle) (*RTIUseCase, *stubDossierPDF) {
	t.Helper()
	ctx := context.Background()
	projects := memrepo.NewProjects(&entity.Project{ID: "0123456789ab", OwnerID: "u1", Vehicle: vehicle})
	scenarios := memrepo.NewScenarios()
	require.NoError(t, scenarios.Create(ctx, &entity.Scenario{
		ID: "main", ProjectID: "0123456789ab", IsPrincipal: true,
		Items: []entity.ScenarioItem{{AccessoryID: "bat", Quantity: 2}, {AccessoryID: "gone", Quantity: 1}},
	}))
	accessories := memrepo.NewAccessories(&entity.Accessory{ID: "bat", Reference: "BAT", Name: "Batterie", WeightKg: decimal.RequireFromString("22.5")})
	expenses := memrepo.NewExpenses(
		&entity.Expense{ID: "e1", ProjectID: "0123456789ab", InvoiceNumber: "F-001"},
		&entity.Expense{ID: "e2", ProjectID: "0123456789ab"},
	)
	appts := memrepo.NewAppointments(projects,
		&entity.Appointment{ID: "a1", ProjectID: "0123456789ab", Kind: entity.AppointmentDREAL},
	)
	pdf := &stubDossierPDF{}
	uc, err := NewRTIUseCase(NewProjectAccess(projects), scenarios, accessories, expenses, appts, pdf)
	require.NoError(t, err)
	return uc, pdf
}

func pieceStatus(pieces []rti.Piece, id string) string {
	for _, p := range pieces {
		if p.ID == id {
			return p.Status
		}
	}
	return ""
}

func TestRTI_PreviewCompleteDossier(t *testing.T) {
	uc, _ := newRTI(t, entity.Vehicle{
		Registration: "AB-123-CD", VIN: "WDB9066351S123456", PTAC: 3500, EmptyMass: 2500, Seats: 2,
	})

	d, err := uc.Preview(context.Background(), ownerActor, "0123456789ab", dto.RTILoadsRequest{WaterLiters: 80})
	require.NoError(t, err)

	assert.Equal(t, "main", d.ScenarioID)
	require.Len(t, d.Equipment, 1, "los accesorios eliminados se ignoran")
	assert.Equal(t, "45", d.Equipment[0].TotalWeightKg.String())
	// 2500 + 45 + 2*75 + 80
	assert.Equal(t, "2775", d.Mass.Total.String())
	assert.True(t, d.Mass.Compliant)

	assert.Equal(t, rti.PieceProvided, pieceStatus(d.Checklist, "factures_equipements"))
	assert.Equal(t, rti.PieceProvided, pieceStatus(d.Checklist, "rendez_vous_dreal"))
	assert.Equal(t, rti.PieceManual, pieceStatus(d.Checklist, "attestation_gaz"))
	assert.True(t, d.Complete, "las piezas manuales no bloquean")
}

func TestRTI_PreviewMissingPieces(t *testing.T) {
	uc, _ := newRTI(t, entity.Vehicle{EmptyMass: 3400, PTAC: 3500, Seats: 3})

	d, err := uc.Preview(context.Background(), ownerActor, "0123456789ab", dto.RTILoadsRequest{})
	require.NoError(t, err)

	assert.False(t, d.Mass.Compliant)
	assert.Equal(t, rti.PieceMissing, pieceStatus(d.Checklist, "certificat_immatriculation"))
	assert.Equal(t, rti.PieceMissing, pieceStatus(d.Checklist, "pesee"))
	assert.False(t, d.Complete)
}

func TestRTI_GeneratePDFFilename(t *testing.T) {
	uc, pdf := newRTI(t, entity.Vehicle{PTAC: 3500})

	data, name, err := uc.GeneratePDF(context.Background(), ownerActor, "0123456789ab", dto.RTILoadsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, "dossier_rti_01234567.pdf", name)
	require.NotNil(t, pdf.got)
}

func TestRTI_DossierFilenameIsHeaderSafe(t *testing.T) {
	cases := []struct {
		name string
		p    entity.Project
		want string
	}{
		{"matrícula", entity.Project{ID: "0123456789ab", Vehicle: entity.Vehicle{Registration: "AB-123-CD"}}, "dossier_rti_ab-123-cd.pdf"},
		{"comillas y saltos", entity.Project{ID: "0123456789ab", Vehicle: entity.Vehicle{Registration: "AB \"12\"\r\n; x=1"}}, "dossier_rti_ab-12-x-1.pdf"},
		{"solo símbolos", entity.Project{ID: "0123456789ab", Vehicle: entity.Vehicle{Registration: "\"\";"}}, "dossier_rti_01234567.pdf"},
		{"id corto", entity.Project{ID: "p1"}, "dossier_rti_p1.pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.p
			assert.Equal(t, tc.want, dossierFilename(&p))
		})
	}
}

func TestRTI_RejectsNegativeLoads(t *testing.T) {
	uc, _ := newRTI(t, entity.Vehicle{})
	_, err := uc.Preview(context.Background(), ownerActor, "0123456789ab", dto.RTILoadsRequest{ExtraKg: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Preview(context.Background(), otherActor, "0123456789ab", dto.RTILoadsRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

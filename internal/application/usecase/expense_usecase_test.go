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
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

func newExpenseUC() *ExpenseUseCase {
	projects := memrepo.NewProjects(&entity.Project{ID: "p1", OwnerID: "u1"})
	return NewExpenseUseCase(memrepo.NewExpenses(), NewProjectAccess(projects), nil)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestExpense_CreateComputesTTC(t *testing.T) {
	uc := newExpenseUC()
	out, err := uc.Create(context.Background(), ownerActor, "p1", dto.CreateExpenseRequest{
		Label:    "Panneaux solaires",
		AmountHT: dec("412.50"),
		VATRate:  dec("20"),
	})
	require.NoError(t, err)
	assert.Equal(t, "495", out.AmountTTC.String())
	assert.Equal(t, entity.PaymentPending, out.PaymentStatus)
	assert.False(t, out.Date.IsZero())
}

func TestExpense_CreateKeepsExplicitTTC(t *testing.T) {
	uc := newExpenseUC()
	out, err := uc.Create(context.Background(), ownerActor, "p1", dto.CreateExpenseRequest{
		Label:     "Isolant",
		AmountHT:  dec("100"),
		VATRate:   dec("5.5"),
		AmountTTC: decPtr("105.49"),
	})
	require.NoError(t, err)
	assert.Equal(t, "105.49", out.AmountTTC.String())
}

func TestExpense_UpdateRecomputesOnVATChange(t *testing.T) {
	uc := newExpenseUC()
	ctx := context.Background()
	e, err := uc.Create(ctx, ownerActor, "p1", dto.CreateExpenseRequest{Label: "Bois", AmountHT: dec("200"), VATRate: dec("20")})
	require.NoError(t, err)

	out, err := uc.Update(ctx, ownerActor, e.ID, dto.UpdateExpenseRequest{VATRate: decPtr("10")})
	require.NoError(t, err)
	assert.Equal(t, "220", out.AmountTTC.String())

	label := "Bois de peuplier"
	out, err = uc.Update(ctx, ownerActor, e.ID, dto.UpdateExpenseRequest{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "220", out.AmountTTC.String(), "sin cambio de importes el TTC se conserva")
}

func TestExpense_MarkPaid(t *testing.T) {
	uc := newExpenseUC()
	ctx := context.Background()
	e, err := uc.Create(ctx, ownerActor, "p1", dto.CreateExpenseRequest{Label: "Vis", AmountHT: dec("10"), VATRate: dec("20")})
	require.NoError(t, err)

	out, err := uc.MarkPaid(ctx, ownerActor, e.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, out.PaymentStatus)
}

func TestExpense_Validation(t *testing.T) {
	uc := newExpenseUC()
	ctx := context.Background()
	cases := []dto.CreateExpenseRequest{
		{Label: "  ", AmountHT: dec("10")},
		{Label: "x", AmountHT: dec("-1")},
		{Label: "x", AmountHT: dec("1"), VATRate: dec("120")},
		{Label: "x", AmountHT: dec("1"), PaymentStatus: entity.PaymentFailed},
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, ownerActor, "p1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in.Label)
	}
}

func TestExpense_OtherUserForbidden(t *testing.T) {
	uc := newExpenseUC()
	ctx := context.Background()
	e, err := uc.Create(ctx, ownerActor, "p1", dto.CreateExpenseRequest{Label: "Vis", AmountHT: dec("10")})
	require.NoError(t, err)

	_, err = uc.Get(ctx, otherActor, e.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, otherActor, e.ID), domain.ErrForbidden)

	_, err = uc.Get(ctx, adminActor, e.ID)
	assert.NoError(t, err)
}

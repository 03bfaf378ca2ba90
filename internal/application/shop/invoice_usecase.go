package shop

import (
	"context"
	"fmt"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// InvoiceUseCase genera la factura PDF de un pedido.
// Solo se factura un pedido pagado, enviado o entregado.
type InvoiceUseCase struct {
	orders    *OrderUseCase
	userRepo  repository.UserRepository
	generator ports.InvoicePDFGenerator
	shop      ports.ShopInfo
}

// NewInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewInvoiceUseCase(orders *OrderUseCase, userRepo repository.UserRepository, generator ports.InvoicePDFGenerator, shop ports.ShopInfo) *InvoiceUseCase {
	return &InvoiceUseCase{orders: orders, userRepo: userRepo, generator: generator, shop: shop}
}

// InvoicePDF devuelve (pdfBytes, filename, nil) o:
//   - domain.ErrNotFound  si el pedido no existe.
//   - domain.ErrForbidden si no es del actor ni es admin.
//   - domain.ErrConflict  si el pedido aún no está pagado o fue cancelado.
func (uc *InvoiceUseCase) InvoicePDF(ctx context.Context, actor dto.Actor, id string) ([]byte, string, error) {
	// ── 1. Cargar pedido ──────────────────────────────────────────────────────
	o, err := uc.orders.load(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}

	// ── 2. Validar estado ─────────────────────────────────────────────────────
	if !o.Invoiceable() {
		return nil, "", fmt.Errorf("%w: el pedido está en estado %s", domain.ErrConflict, o.Status)
	}

	// ── 3. Cargar comprador ───────────────────────────────────────────────────
	buyer, err := uc.userRepo.GetByID(ctx, o.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener comprador: %w", err)
	}
	if buyer == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 4. Generar ────────────────────────────────────────────────────────────
	pdf, err := uc.generator.GenerateOrderInvoice(ctx, o, buyer, uc.shop)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar factura: %w", err)
	}
	return pdf, fmt.Sprintf("facture_%s.pdf", o.Number), nil
}

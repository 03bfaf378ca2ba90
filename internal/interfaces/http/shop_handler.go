package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/shop"
)

// ShopHandler maneja los pedidos de la tienda.
type ShopHandler struct {
	orders   *shop.OrderUseCase
	invoices *shop.InvoiceUseCase
}

// NewShopHandler construye el handler.
func NewShopHandler(orders *shop.OrderUseCase, invoices *shop.InvoiceUseCase) *ShopHandler {
	return &ShopHandler{orders: orders, invoices: invoices}
}

// Checkout godoc
// @Summary      Confirmar pedido
// @Description  Descuenta stock y guarda el pedido en una sola transacción.
// @Tags         shop
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Ítems y dirección de envío"
// @Success      201   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *ShopHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.Checkout(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis pedidos
// @Tags         shop
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *ShopHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.orders.ListMine(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener pedido
// @Tags         shop
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Router       /api/orders/{id} [get]
func (h *ShopHandler) Get(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar pedido pendiente
// @Description  Repone el stock de las líneas.
// @Tags         shop
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *ShopHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.orders.Cancel(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Invoice godoc
// @Summary      Descargar factura PDF
// @Tags         shop
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [get]
func (h *ShopHandler) Invoice(c *fiber.Ctx) error {
	data, filename, err := h.invoices.InvoicePDF(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, data, "application/pdf", filename)
}

// ListAll godoc
// @Summary      Todos los pedidos (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/admin/orders [get]
func (h *ShopHandler) ListAll(c *fiber.Ctx) error {
	var in dto.OrderFilterRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.orders.ListAll(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un pedido (admin)
// @Description  pending→paid|cancelled, paid→shipped|cancelled, shipped→delivered.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/status [put]
func (h *ShopHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.UpdateStatus(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

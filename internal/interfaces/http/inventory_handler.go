package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
)

// InventoryHandler maneja categorías, catálogo de accesorios y movimientos de stock.
type InventoryHandler struct {
	categories    *usecase.CategoryUseCase
	catalog       *inventory.CatalogUseCase
	movements     *inventory.RegisterMovementUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	categories *usecase.CategoryUseCase,
	catalog *inventory.CatalogUseCase,
	movements *inventory.RegisterMovementUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{categories: categories, catalog: catalog, movements: movements, replenishment: replenishment}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// ListCategories godoc
// @Summary      Listar categorías (público)
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *InventoryHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría (admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/categories [post]
func (h *InventoryHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.categories.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría (admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CategoryResponse
// @Router       /api/admin/categories/{id} [put]
func (h *InventoryHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.categories.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría sin hijas (admin)
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{id} [delete]
func (h *InventoryHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Accesorios ────────────────────────────────────────────────────────────────

// ListAccessories godoc
// @Summary      Listar accesorios
// @Description  Sin token o sin rol admin solo se devuelven los publicados.
// @Tags         catalog
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        q            query  string  false  "Buscar en nombre, marca o referencia"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.AccessoryResponse
// @Router       /api/accessories [get]
func (h *InventoryHandler) ListAccessories(c *fiber.Ctx) error {
	var in dto.AccessoryFilterRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.catalog.List(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetAccessory godoc
// @Summary      Obtener accesorio
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del accesorio"
// @Success      200  {object}  dto.AccessoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accessories/{id} [get]
func (h *InventoryHandler) GetAccessory(c *fiber.Ctx) error {
	out, err := h.catalog.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateAccessory godoc
// @Summary      Crear accesorio (admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccessoryRequest  true  "Accesorio"
// @Success      201   {object}  dto.AccessoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/accessories [post]
func (h *InventoryHandler) CreateAccessory(c *fiber.Ctx) error {
	var in dto.CreateAccessoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.catalog.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateAccessory godoc
// @Summary      Actualizar accesorio (admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del accesorio"
// @Param        body  body  dto.UpdateAccessoryRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AccessoryResponse
// @Router       /api/admin/accessories/{id} [put]
func (h *InventoryHandler) UpdateAccessory(c *fiber.Ctx) error {
	var in dto.UpdateAccessoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.catalog.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAccessory godoc
// @Summary      Eliminar accesorio (admin)
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID del accesorio"
// @Success      204
// @Router       /api/admin/accessories/{id} [delete]
func (h *InventoryHandler) DeleteAccessory(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock (admin)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del accesorio"
// @Param        body  body  dto.RegisterMovementRequest  true  "type IN|OUT|ADJUSTMENT, quantity, unit_cost (entradas)"
// @Success      201   {object}  dto.AccessoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/accessories/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.movements.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos (admin)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del accesorio"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/admin/accessories/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.catalog.Movements(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRestockReport godoc
// @Summary      Accesorios a reponer (admin)
// @Description  Accesorios en o bajo su umbral con la cantidad sugerida (2×umbral − stock, mínimo 1).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RestockSuggestionDTO
// @Router       /api/admin/restock [get]
func (h *InventoryHandler) GetRestockReport(c *fiber.Ctx) error {
	out, err := h.replenishment.RestockReport(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

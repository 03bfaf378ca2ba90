package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
)

// OutlineHandler maneja los contornos trazados y su exportación.
type OutlineHandler struct {
	uc *usecase.OutlineUseCase
}

// NewOutlineHandler construye el handler.
func NewOutlineHandler(uc *usecase.OutlineUseCase) *OutlineHandler {
	return &OutlineHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contorno
// @Tags         outlines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del proyecto"
// @Param        body  body  dto.SaveOutlineRequest  true  "Dimensiones y formas"
// @Success      201   {object}  dto.OutlineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/outlines [post]
func (h *OutlineHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveOutlineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Contornos del proyecto
// @Tags         outlines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.OutlineResponse
// @Router       /api/projects/{id}/outlines [get]
func (h *OutlineHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener contorno
// @Tags         outlines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contorno"
// @Success      200  {object}  dto.OutlineResponse
// @Router       /api/outlines/{id} [get]
func (h *OutlineHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar contorno
// @Tags         outlines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del contorno"
// @Param        body  body  dto.SaveOutlineRequest  true  "Dimensiones y formas"
// @Success      200   {object}  dto.OutlineResponse
// @Router       /api/outlines/{id} [put]
func (h *OutlineHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveOutlineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar contorno
// @Tags         outlines
// @Security     Bearer
// @Param        id   path  string  true  "ID del contorno"
// @Success      204
// @Router       /api/outlines/{id} [delete]
func (h *OutlineHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar contorno
// @Description  DXF (R12 ASCII), SVG (con ETag canónico) o PDF vectorial a escala 1:1.
// @Tags         outlines
// @Security     Bearer
// @Produce      application/dxf,image/svg+xml,application/pdf
// @Param        id      path   string  true  "ID del contorno"
// @Param        format  query  string  true  "dxf | svg | pdf"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/outlines/{id}/export [get]
func (h *OutlineHandler) Export(c *fiber.Ctx) error {
	file, err := h.uc.Export(c.UserContext(), actorFrom(c), c.Params("id"), c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}
	if file.ETag != "" {
		if c.Get(fiber.HeaderIfNoneMatch) == file.ETag {
			return c.SendStatus(fiber.StatusNotModified)
		}
		c.Set(fiber.HeaderETag, file.ETag)
	}
	return sendFile(c, file.Data, file.ContentType, file.Filename)
}

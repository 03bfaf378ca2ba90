package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
)

// AIHandler maneja las preferencias de proveedor de IA del usuario.
type AIHandler struct {
	uc *usecase.AISettingsUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AISettingsUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración de IA efectiva
// @Description  Devuelve proveedor, modelo y si hay clave; nunca la clave. source=server si el usuario no tiene configuración propia.
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AIConfigResponse
// @Router       /api/settings/ai [get]
func (h *AIHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar configuración de IA
// @Description  Una api_key vacía conserva la guardada mientras no cambie el proveedor.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveAIConfigRequest  true  "Proveedor, modelo y clave"
// @Success      200   {object}  dto.AIConfigResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settings/ai [put]
func (h *AIHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveAIConfigRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Volver a la configuración del servidor
// @Tags         settings
// @Security     Bearer
// @Success      204
// @Router       /api/settings/ai [delete]
func (h *AIHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

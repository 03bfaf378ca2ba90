package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
)

// BackupHandler maneja las copias de seguridad en libro de cálculo.
type BackupHandler struct {
	uc *usecase.BackupUseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *usecase.BackupUseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// GetSettings godoc
// @Summary      Preferencias de copia de seguridad
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BackupSettingsResponse
// @Router       /api/settings/backup [get]
func (h *BackupHandler) GetSettings(c *fiber.Ctx) error {
	out, err := h.uc.GetSettings(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveSettings godoc
// @Summary      Guardar preferencias de copia
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveBackupSettingsRequest  true  "Frecuencia y documentos"
// @Success      200   {object}  dto.BackupSettingsResponse
// @Router       /api/settings/backup [put]
func (h *BackupHandler) SaveSettings(c *fiber.Ctx) error {
	var in dto.SaveBackupSettingsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SaveSettings(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Run godoc
// @Summary      Hacer una copia ahora
// @Description  Genera el xlsx, lo sube al almacenamiento y devuelve una URL temporal.
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Run(c *fiber.Ctx) error {
	out, err := h.uc.RunBackup(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

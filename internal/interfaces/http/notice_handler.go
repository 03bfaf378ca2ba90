package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
)

// NoticeHandler maneja las notices (manuales indexados) y el asistente que las consulta.
type NoticeHandler struct {
	notices   *usecase.NoticeUseCase
	assistant *usecase.AssistantUseCase
}

// NewNoticeHandler construye el handler.
func NewNoticeHandler(notices *usecase.NoticeUseCase, assistant *usecase.AssistantUseCase) *NoticeHandler {
	return &NoticeHandler{notices: notices, assistant: assistant}
}

// Upload godoc
// @Summary      Subir notice (admin)
// @Tags         notices
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "PDF o imagen (máx. 20 MB)"
// @Param        title        formData  string  true   "Título"
// @Param        brand        formData  string  false  "Marca"
// @Param        language     formData  string  false  "Idioma (fr, en...)"
// @Param        accessory_id formData  string  false  "Accesorio asociado"
// @Success      201  {object}  dto.NoticeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/admin/notices [post]
func (h *NoticeHandler) Upload(c *fiber.Ctx) error {
	var in dto.UploadNoticeInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "formulario inválido")
	}
	if msg := validateStruct(&in); msg != "" {
		return badRequest(c, "VALIDATION", msg)
	}
	file, err := readUpload(c, "file", usecase.MaxNoticeSize)
	if err != nil {
		return respondError(c, err)
	}
	in.Filename, in.ContentType, in.Data = file.Filename, file.ContentType, file.Data
	out, err := h.notices.Upload(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar notices
// @Tags         notices
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.NoticeResponse
// @Router       /api/notices [get]
func (h *NoticeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.notices.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar en las notices
// @Description  Búsqueda de texto completo en francés (título, marca, contenido, palabras clave).
// @Tags         notices
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Texto a buscar"
// @Param        limit  query  int     false  "Máximo de resultados"  default(10)
// @Success      200  {array}  dto.NoticeSearchHit
// @Router       /api/notices/search [get]
func (h *NoticeHandler) Search(c *fiber.Ctx) error {
	out, err := h.notices.Search(c.UserContext(), c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener notice
// @Tags         notices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la notice"
// @Success      200  {object}  dto.NoticeResponse
// @Router       /api/notices/{id} [get]
func (h *NoticeHandler) Get(c *fiber.Ctx) error {
	out, err := h.notices.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      URL temporal de descarga
// @Tags         notices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la notice"
// @Success      200  {object}  dto.DownloadResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/notices/{id}/download [get]
func (h *NoticeHandler) Download(c *fiber.Ctx) error {
	out, err := h.notices.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos (admin)
// @Tags         notices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la notice"
// @Param        body  body  dto.UpdateNoticeRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.NoticeResponse
// @Router       /api/admin/notices/{id} [put]
func (h *NoticeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNoticeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.notices.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Index godoc
// @Summary      Indexar notice con IA (admin)
// @Description  Envía el archivo al modelo de visión para extraer el texto y las palabras clave.
// @Tags         notices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la notice"
// @Success      200  {object}  dto.NoticeResponse
// @Failure      408  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/admin/notices/{id}/index [post]
func (h *NoticeHandler) Index(c *fiber.Ctx) error {
	out, err := h.notices.Index(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar notice y su archivo (admin)
// @Tags         notices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notice"
// @Success      204
// @Router       /api/admin/notices/{id} [delete]
func (h *NoticeHandler) Delete(c *fiber.Ctx) error {
	if err := h.notices.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Asistente ─────────────────────────────────────────────────────────────────

// Ask godoc
// @Summary      Preguntar al asistente
// @Description  Responde con las notices más pertinentes como contexto y guarda el intercambio.
// @Tags         assistant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AskRequest  true  "Pregunta y proyecto opcional"
// @Success      200   {object}  dto.AskResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/assistant/ask [post]
func (h *NoticeHandler) Ask(c *fiber.Ctx) error {
	var in dto.AskRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.assistant.Ask(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de conversación
// @Tags         assistant
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de mensajes"  default(50)
// @Success      200  {array}  dto.ChatMessageResponse
// @Router       /api/assistant/history [get]
func (h *NoticeHandler) History(c *fiber.Ctx) error {
	out, err := h.assistant.History(c.UserContext(), actorFrom(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearHistory godoc
// @Summary      Borrar historial
// @Tags         assistant
// @Security     Bearer
// @Success      204
// @Router       /api/assistant/history [delete]
func (h *NoticeHandler) ClearHistory(c *fiber.Ctx) error {
	if err := h.assistant.ClearHistory(c.UserContext(), actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

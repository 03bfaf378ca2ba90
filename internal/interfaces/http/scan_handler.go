package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/scan"
)

// ScanHandler maneja la lectura OCR de certificados de matriculación y facturas.
type ScanHandler struct {
	uc *scan.UseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(uc *scan.UseCase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

// ScanRegistration godoc
// @Summary      Leer certificado de matriculación (carte grise)
// @Description  Extrae las casillas A, B, D.1-D.3, E, F.1, G.1, J.1, P.3 y S.1 y actualiza el vehículo del proyecto.
// @Tags         scan
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del proyecto"
// @Param        file  formData  file    true  "JPEG, PNG, WebP o PDF (máx. 10 MB)"
// @Success      201   {object}  dto.ScanRegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/scans/registration [post]
func (h *ScanHandler) ScanRegistration(c *fiber.Ctx) error {
	file, err := readUpload(c, "file", scan.MaxScanSize)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ScanRegistration(c.UserContext(), actorFrom(c), c.Params("id"), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ScanInvoice godoc
// @Summary      Leer factura de proveedor
// @Description  Crea un gasto con proveedor, número, fecha, importes y tipo de IVA leídos.
// @Tags         scan
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del proyecto"
// @Param        file  formData  file    true  "JPEG, PNG, WebP o PDF (máx. 10 MB)"
// @Success      201   {object}  dto.ScanInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/scans/invoice [post]
func (h *ScanHandler) ScanInvoice(c *fiber.Ctx) error {
	file, err := readUpload(c, "file", scan.MaxScanSize)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ScanInvoice(c.UserContext(), actorFrom(c), c.Params("id"), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Escaneos del proyecto
// @Tags         scan
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.ScanJobResponse
// @Router       /api/projects/{id}/scans [get]
func (h *ScanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener escaneo
// @Tags         scan
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del escaneo"
// @Success      200  {object}  dto.ScanJobResponse
// @Router       /api/scans/{id} [get]
func (h *ScanHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RescanZone godoc
// @Summary      Releer un campo sobre una zona de la imagen
// @Description  La zona es relativa (0..1). Los PDF no admiten relectura por zona.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del escaneo"
// @Param        body  body  dto.RescanZoneRequest  true  "Campo y zona"
// @Success      200   {object}  dto.ScanJobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scans/{id}/rescan [post]
func (h *ScanHandler) RescanZone(c *fiber.Ctx) error {
	var in dto.RescanZoneRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RescanZone(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

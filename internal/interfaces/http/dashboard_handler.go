package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/vanbuilder-api/internal/application/analytics"
	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
)

// DashboardHandler maneja los resúmenes de proyecto y el dossier RTI.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	rti *usecase.RTIUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, rti *usecase.RTIUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, rti: rti}
}

// Overview devuelve el resumen de todos los proyectos del usuario.
// GET /api/dashboard
//
// @Summary      Resumen de mis proyectos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverviewDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProjectSummary presupuesto, gastos, avance de tareas, próxima cita y totales del escenario principal.
// GET /api/projects/:id/summary
//
// @Summary      Resumen de un proyecto
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectSummaryDTO
// @Router       /api/projects/{id}/summary [get]
func (h *DashboardHandler) ProjectSummary(c *fiber.Ctx) error {
	out, err := h.uc.ProjectSummary(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RTIPreview godoc
// @Summary      Vista previa del dossier RTI
// @Tags         rti
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID del proyecto"
// @Param        passengers    query  int     false  "Pasajeros (0 = plazas S.1)"
// @Param        water_liters  query  int     false  "Litros de agua"
// @Param        extra_kg      query  number  false  "Carga adicional (kg)"
// @Success      200  {object}  dto.DossierResponse
// @Router       /api/projects/{id}/rti [get]
func (h *DashboardHandler) RTIPreview(c *fiber.Ctx) error {
	loads, ok, err := parseLoads(c)
	if !ok {
		return err
	}
	out, err := h.rti.Preview(c.UserContext(), actorFrom(c), c.Params("id"), loads)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RTIPDF godoc
// @Summary      Dossier RTI en PDF
// @Tags         rti
// @Security     Bearer
// @Produce      application/pdf
// @Param        id            path   string  true   "ID del proyecto"
// @Param        passengers    query  int     false  "Pasajeros (0 = plazas S.1)"
// @Param        water_liters  query  int     false  "Litros de agua"
// @Param        extra_kg      query  number  false  "Carga adicional (kg)"
// @Success      200  {file}  binary
// @Router       /api/projects/{id}/rti/pdf [get]
func (h *DashboardHandler) RTIPDF(c *fiber.Ctx) error {
	loads, ok, err := parseLoads(c)
	if !ok {
		return err
	}
	data, filename, err := h.rti.GeneratePDF(c.UserContext(), actorFrom(c), c.Params("id"), loads)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, data, "application/pdf", filename)
}

// parseLoads lee las cargas de la query; extra_kg se parsea aparte porque es decimal.
func parseLoads(c *fiber.Ctx) (dto.RTILoadsRequest, bool, error) {
	in := dto.RTILoadsRequest{
		Passengers:  c.QueryInt("passengers", 0),
		WaterLiters: c.QueryInt("water_liters", 0),
	}
	if raw := c.Query("extra_kg"); raw != "" {
		if err := in.ExtraKg.UnmarshalText([]byte(raw)); err != nil {
			return in, false, badRequest(c, "VALIDATION", "extra_kg: número inválido")
		}
	}
	if msg := validateStruct(&in); msg != "" {
		return in, false, badRequest(c, "VALIDATION", msg)
	}
	return in, true, nil
}

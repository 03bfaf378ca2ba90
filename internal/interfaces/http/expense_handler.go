package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
)

// ExpenseHandler maneja gastos (charges) y citas de un proyecto.
type ExpenseHandler struct {
	expenses     *usecase.ExpenseUseCase
	appointments *usecase.AppointmentUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(expenses *usecase.ExpenseUseCase, appointments *usecase.AppointmentUseCase) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, appointments: appointments}
}

// Create godoc
// @Summary      Registrar gasto
// @Description  Si falta amount_ttc se calcula como HT × (1 + tva/100).
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del proyecto"
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Router       /api/projects/{id}/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.expenses.Create(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar gastos del proyecto
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/projects/{id}/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	out, err := h.expenses.List(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener gasto
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.ExpenseResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	out, err := h.expenses.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del gasto"
// @Param        body  body  dto.UpdateExpenseRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ExpenseResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.expenses.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkPaid godoc
// @Summary      Marcar gasto pagado
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.ExpenseResponse
// @Router       /api/expenses/{id}/pay [post]
func (h *ExpenseHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.expenses.MarkPaid(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar gasto
// @Tags         expenses
// @Security     Bearer
// @Param        id   path  string  true  "ID del gasto"
// @Success      204
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.expenses.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Citas ─────────────────────────────────────────────────────────────────────

// CreateAppointment godoc
// @Summary      Crear cita (garage, DREAL, proveedor)
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del proyecto"
// @Param        body  body  dto.CreateAppointmentRequest  true  "Cita"
// @Success      201   {object}  dto.AppointmentResponse
// @Router       /api/projects/{id}/appointments [post]
func (h *ExpenseHandler) CreateAppointment(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.appointments.Create(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAppointments godoc
// @Summary      Listar citas del proyecto
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/projects/{id}/appointments [get]
func (h *ExpenseHandler) ListAppointments(c *fiber.Ctx) error {
	out, err := h.appointments.List(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpcomingAppointments godoc
// @Summary      Próximas citas de todos mis proyectos
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de citas"  default(10)
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/appointments/upcoming [get]
func (h *ExpenseHandler) UpcomingAppointments(c *fiber.Ctx) error {
	out, err := h.appointments.Upcoming(c.UserContext(), actorFrom(c), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateAppointment godoc
// @Summary      Actualizar cita
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la cita"
// @Param        body  body  dto.UpdateAppointmentRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AppointmentResponse
// @Router       /api/appointments/{id} [put]
func (h *ExpenseHandler) UpdateAppointment(c *fiber.Ctx) error {
	var in dto.UpdateAppointmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.appointments.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAppointment godoc
// @Summary      Eliminar cita
// @Tags         appointments
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cita"
// @Success      204
// @Router       /api/appointments/{id} [delete]
func (h *ExpenseHandler) DeleteAppointment(c *fiber.Ctx) error {
	if err := h.appointments.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

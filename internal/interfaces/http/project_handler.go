package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
)

// ProjectHandler maneja proyectos, escenarios y tareas (protegido, propietario o admin).
type ProjectHandler struct {
	projects  *usecase.ProjectUseCase
	scenarios *usecase.ScenarioUseCase
	tasks     *usecase.TaskUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(projects *usecase.ProjectUseCase, scenarios *usecase.ScenarioUseCase, tasks *usecase.TaskUseCase) *ProjectHandler {
	return &ProjectHandler{projects: projects, scenarios: scenarios, tasks: tasks}
}

// ── Proyectos ─────────────────────────────────────────────────────────────────

// Create godoc
// @Summary      Crear proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "Datos del proyecto"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.projects.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mis proyectos
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ProjectListResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.projects.List(c.UserContext(), actorFrom(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	out, err := h.projects.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProjectResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.projects.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proyecto
// @Tags         projects
// @Security     Bearer
// @Param        id   path  string  true  "ID del proyecto"
// @Success      204
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.projects.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Escenarios ────────────────────────────────────────────────────────────────

// CreateScenario godoc
// @Summary      Crear escenario de aménagement
// @Tags         scenarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del proyecto"
// @Param        body  body  dto.CreateScenarioRequest  true  "Nombre e ítems"
// @Success      201   {object}  dto.ScenarioResponse
// @Router       /api/projects/{id}/scenarios [post]
func (h *ProjectHandler) CreateScenario(c *fiber.Ctx) error {
	var in dto.CreateScenarioRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.scenarios.Create(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListScenarios godoc
// @Summary      Listar escenarios del proyecto
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.ScenarioResponse
// @Router       /api/projects/{id}/scenarios [get]
func (h *ProjectHandler) ListScenarios(c *fiber.Ctx) error {
	out, err := h.scenarios.List(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetScenario godoc
// @Summary      Obtener escenario
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del escenario"
// @Success      200  {object}  dto.ScenarioResponse
// @Router       /api/scenarios/{id} [get]
func (h *ProjectHandler) GetScenario(c *fiber.Ctx) error {
	out, err := h.scenarios.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateScenario godoc
// @Summary      Renombrar o describir un escenario
// @Tags         scenarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del escenario"
// @Param        body  body  dto.UpdateScenarioRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ScenarioResponse
// @Router       /api/scenarios/{id} [put]
func (h *ProjectHandler) UpdateScenario(c *fiber.Ctx) error {
	var in dto.UpdateScenarioRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.scenarios.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetScenarioItems godoc
// @Summary      Reemplazar los accesorios de un escenario
// @Tags         scenarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del escenario"
// @Param        body  body  dto.SetScenarioItemsRequest  true  "Ítems"
// @Success      200   {object}  dto.ScenarioResponse
// @Router       /api/scenarios/{id}/items [put]
func (h *ProjectHandler) SetScenarioItems(c *fiber.Ctx) error {
	var in dto.SetScenarioItemsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.scenarios.SetItems(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetPrincipal godoc
// @Summary      Marcar escenario principal
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del escenario"
// @Success      200  {object}  dto.ScenarioResponse
// @Router       /api/scenarios/{id}/principal [post]
func (h *ProjectHandler) SetPrincipal(c *fiber.Ctx) error {
	out, err := h.scenarios.SetPrincipal(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ScenarioTotals godoc
// @Summary      Totales de precio, peso y potencia
// @Tags         scenarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del escenario"
// @Success      200  {object}  dto.ScenarioTotalsResponse
// @Router       /api/scenarios/{id}/totals [get]
func (h *ProjectHandler) ScenarioTotals(c *fiber.Ctx) error {
	out, err := h.scenarios.Totals(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteScenario godoc
// @Summary      Eliminar escenario
// @Tags         scenarios
// @Security     Bearer
// @Param        id   path  string  true  "ID del escenario"
// @Success      204
// @Router       /api/scenarios/{id} [delete]
func (h *ProjectHandler) DeleteScenario(c *fiber.Ctx) error {
	if err := h.scenarios.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Tareas ────────────────────────────────────────────────────────────────────

// CreateTask godoc
// @Summary      Crear tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del proyecto"
// @Param        body  body  dto.CreateTaskRequest  true  "Tarea"
// @Success      201   {object}  dto.TaskResponse
// @Router       /api/projects/{id}/tasks [post]
func (h *ProjectHandler) CreateTask(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.tasks.Create(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTasks godoc
// @Summary      Listar tareas del proyecto
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.TaskResponse
// @Router       /api/projects/{id}/tasks [get]
func (h *ProjectHandler) ListTasks(c *fiber.Ctx) error {
	out, err := h.tasks.List(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateTask godoc
// @Summary      Actualizar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la tarea"
// @Param        body  body  dto.UpdateTaskRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TaskResponse
// @Router       /api/tasks/{id} [put]
func (h *ProjectHandler) UpdateTask(c *fiber.Ctx) error {
	var in dto.UpdateTaskRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.tasks.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleTask godoc
// @Summary      Marcar o desmarcar tarea hecha
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Router       /api/tasks/{id}/toggle [post]
func (h *ProjectHandler) ToggleTask(c *fiber.Ctx) error {
	out, err := h.tasks.Toggle(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteTask godoc
// @Summary      Eliminar tarea
// @Tags         tasks
// @Security     Bearer
// @Param        id   path  string  true  "ID de la tarea"
// @Success      204
// @Router       /api/tasks/{id} [delete]
func (h *ProjectHandler) DeleteTask(c *fiber.Ctx) error {
	if err := h.tasks.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

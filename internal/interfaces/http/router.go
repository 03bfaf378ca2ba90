package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/vanbuilder-api/internal/application/analytics"
	"github.com/jhoicas/vanbuilder-api/internal/application/auth"
	"github.com/jhoicas/vanbuilder-api/internal/application/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/application/scan"
	"github.com/jhoicas/vanbuilder-api/internal/application/shop"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
	"github.com/jhoicas/vanbuilder-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProjectUC     *usecase.ProjectUseCase
	ScenarioUC    *usecase.ScenarioUseCase
	TaskUC        *usecase.TaskUseCase
	CategoryUC    *usecase.CategoryUseCase
	CatalogUC     *inventory.CatalogUseCase
	Movements     *inventory.RegisterMovementUseCase
	Replenishment *inventory.ReplenishmentUseCase
	ExpenseUC     *usecase.ExpenseUseCase
	AppointmentUC *usecase.AppointmentUseCase
	NoticeUC      *usecase.NoticeUseCase
	AssistantUC   *usecase.AssistantUseCase
	OrderUC       *shop.OrderUseCase
	InvoiceUC     *shop.InvoiceUseCase
	ScanUC        *scan.UseCase
	OutlineUC     *usecase.OutlineUseCase
	RTIUC         *usecase.RTIUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	AISettingsUC  *usecase.AISettingsUseCase
	BackupUC      *usecase.BackupUseCase
	Events        ports.EventSubscriber
	StreamCtx     context.Context // al cancelarse cierra los streams SSE abiertos
	Log           *logger.Logger
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.ScenarioUC, deps.TaskUC)
	inventoryHandler := NewInventoryHandler(deps.CategoryUC, deps.CatalogUC, deps.Movements, deps.Replenishment)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.AppointmentUC)
	noticeHandler := NewNoticeHandler(deps.NoticeUC, deps.AssistantUC)
	shopHandler := NewShopHandler(deps.OrderUC, deps.InvoiceUC)
	scanHandler := NewScanHandler(deps.ScanUC)
	outlineHandler := NewOutlineHandler(deps.OutlineUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.RTIUC)
	aiHandler := NewAIHandler(deps.AISettingsUC)
	backupHandler := NewBackupHandler(deps.BackupUC)
	realtimeHandler := NewRealtimeHandler(deps.StreamCtx, deps.Events, deps.Log)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público; los admin ven también lo no publicado)
	catalog := api.Group("/", OptionalAuth(deps.JWTSecret))
	catalog.Get("/categories", inventoryHandler.ListCategories)
	catalog.Get("/accessories", inventoryHandler.ListAccessories)
	catalog.Get("/accessories/:id", inventoryHandler.GetAccessory)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/dashboard", dashboardHandler.Overview)
	protected.Get("/realtime/stream", realtimeHandler.Stream)

	// Proyectos
	projects := protected.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Get("/:id/summary", dashboardHandler.ProjectSummary)
	projects.Post("/:id/scenarios", projectHandler.CreateScenario)
	projects.Get("/:id/scenarios", projectHandler.ListScenarios)
	projects.Post("/:id/tasks", projectHandler.CreateTask)
	projects.Get("/:id/tasks", projectHandler.ListTasks)
	projects.Post("/:id/expenses", expenseHandler.Create)
	projects.Get("/:id/expenses", expenseHandler.List)
	projects.Post("/:id/appointments", expenseHandler.CreateAppointment)
	projects.Get("/:id/appointments", expenseHandler.ListAppointments)
	projects.Post("/:id/outlines", outlineHandler.Create)
	projects.Get("/:id/outlines", outlineHandler.List)
	projects.Post("/:id/scans/registration", scanHandler.ScanRegistration)
	projects.Post("/:id/scans/invoice", scanHandler.ScanInvoice)
	projects.Get("/:id/scans", scanHandler.List)
	projects.Get("/:id/rti", dashboardHandler.RTIPreview)
	projects.Get("/:id/rti/pdf", dashboardHandler.RTIPDF)

	// Escenarios
	scenarios := protected.Group("/scenarios")
	scenarios.Get("/:id", projectHandler.GetScenario)
	scenarios.Put("/:id", projectHandler.UpdateScenario)
	scenarios.Delete("/:id", projectHandler.DeleteScenario)
	scenarios.Put("/:id/items", projectHandler.SetScenarioItems)
	scenarios.Post("/:id/principal", projectHandler.SetPrincipal)
	scenarios.Get("/:id/totals", projectHandler.ScenarioTotals)

	// Tareas
	tasks := protected.Group("/tasks")
	tasks.Put("/:id", projectHandler.UpdateTask)
	tasks.Delete("/:id", projectHandler.DeleteTask)
	tasks.Post("/:id/toggle", projectHandler.ToggleTask)

	// Gastos y citas
	expenses := protected.Group("/expenses")
	expenses.Get("/:id", expenseHandler.Get)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)
	expenses.Post("/:id/pay", expenseHandler.MarkPaid)

	appointments := protected.Group("/appointments")
	appointments.Get("/upcoming", expenseHandler.UpcomingAppointments)
	appointments.Put("/:id", expenseHandler.UpdateAppointment)
	appointments.Delete("/:id", expenseHandler.DeleteAppointment)

	// Contornos
	outlines := protected.Group("/outlines")
	outlines.Get("/:id", outlineHandler.Get)
	outlines.Put("/:id", outlineHandler.Update)
	outlines.Delete("/:id", outlineHandler.Delete)
	outlines.Get("/:id/export", outlineHandler.Export)

	// Escaneos
	scans := protected.Group("/scans")
	scans.Get("/:id", scanHandler.Get)
	scans.Post("/:id/rescan", scanHandler.RescanZone)

	// Notices y asistente
	notices := protected.Group("/notices")
	notices.Get("/", noticeHandler.List)
	notices.Get("/search", noticeHandler.Search)
	notices.Get("/:id", noticeHandler.Get)
	notices.Get("/:id/download", noticeHandler.Download)

	assistant := protected.Group("/assistant")
	assistant.Post("/ask", noticeHandler.Ask)
	assistant.Get("/history", noticeHandler.History)
	assistant.Delete("/history", noticeHandler.ClearHistory)

	// Tienda
	orders := protected.Group("/orders")
	orders.Post("/", shopHandler.Checkout)
	orders.Get("/", shopHandler.ListMine)
	orders.Get("/:id", shopHandler.Get)
	orders.Post("/:id/cancel", shopHandler.Cancel)
	orders.Get("/:id/invoice", shopHandler.Invoice)

	// Preferencias y copias
	settings := protected.Group("/settings")
	settings.Get("/ai", aiHandler.Get)
	settings.Put("/ai", aiHandler.Save)
	settings.Delete("/ai", aiHandler.Delete)
	settings.Get("/backup", backupHandler.GetSettings)
	settings.Put("/backup", backupHandler.SaveSettings)
	protected.Post("/backups", backupHandler.Run)

	// Administración
	admin := protected.Group("/admin", RequireRole("admin"))
	admin.Get("/users", authHandler.ListUsers)
	admin.Put("/users/:id/status", authHandler.SetUserStatus)
	admin.Put("/users/:id/role", authHandler.SetUserRole)
	admin.Post("/categories", inventoryHandler.CreateCategory)
	admin.Put("/categories/:id", inventoryHandler.UpdateCategory)
	admin.Delete("/categories/:id", inventoryHandler.DeleteCategory)
	admin.Post("/accessories", inventoryHandler.CreateAccessory)
	admin.Put("/accessories/:id", inventoryHandler.UpdateAccessory)
	admin.Delete("/accessories/:id", inventoryHandler.DeleteAccessory)
	admin.Post("/accessories/:id/movements", inventoryHandler.RegisterMovement)
	admin.Get("/accessories/:id/movements", inventoryHandler.ListMovements)
	admin.Get("/restock", inventoryHandler.GetRestockReport)
	admin.Post("/notices", noticeHandler.Upload)
	admin.Put("/notices/:id", noticeHandler.Update)
	admin.Delete("/notices/:id", noticeHandler.Delete)
	admin.Post("/notices/:id/index", noticeHandler.Index)
	admin.Get("/orders", shopHandler.ListAll)
	admin.Put("/orders/:id/status", shopHandler.UpdateStatus)
}

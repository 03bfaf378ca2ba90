package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/vanbuilder-api/docs"
	appanalytics "github.com/jhoicas/vanbuilder-api/internal/application/analytics"
	"github.com/jhoicas/vanbuilder-api/internal/application/auth"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/application/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/application/scan"
	"github.com/jhoicas/vanbuilder-api/internal/application/shop"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
	infraai "github.com/jhoicas/vanbuilder-api/internal/infrastructure/ai"
	"github.com/jhoicas/vanbuilder-api/internal/infrastructure/export"
	"github.com/jhoicas/vanbuilder-api/internal/infrastructure/imaging"
	infrapdf "github.com/jhoicas/vanbuilder-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vanbuilder-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vanbuilder-api/internal/infrastructure/realtime"
	"github.com/jhoicas/vanbuilder-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/vanbuilder-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/vanbuilder-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/vanbuilder-api/internal/interfaces/http"
	"github.com/jhoicas/vanbuilder-api/pkg/config"
	"github.com/jhoicas/vanbuilder-api/pkg/logger"
	"github.com/jhoicas/vanbuilder-api/pkg/secretbox"
)

// Las notices de hasta 20 MB van en multipart.
const bodyLimit = 25 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// ── Repositorios ──
	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	scenarioRepo := postgres.NewScenarioRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	accessoryRepo := postgres.NewAccessoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	noticeRepo := postgres.NewNoticeRepository(pool)
	chatRepo := postgres.NewChatMessageRepository(pool)
	scanRepo := postgres.NewScanJobRepository(pool)
	outlineRepo := postgres.NewOutlineRepository(pool)
	aiConfigRepo := postgres.NewAIConfigRepository(pool)
	backupRepo := postgres.NewBackupSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// ── Tiempo real: Redis si está configurado, si no en memoria (una sola instancia) ──
	var (
		publisher  ports.EventPublisher
		subscriber ports.EventSubscriber
	)
	if cfg.Redis.Addr != "" {
		client, err := realtime.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		broker := realtime.NewRedisBroker(client, log)
		publisher, subscriber = broker, broker
	} else {
		broker := realtime.NewMemoryBroker(log)
		publisher, subscriber = broker, broker
		log.Warn().Msg("REDIS_ADDR vacío: eventos en memoria")
	}
	notifier := events.NewNotifier(publisher, log)

	// ── Almacenamiento de objetos ──
	var objects ports.ObjectStorage = storage.Disabled{}
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("bucket S3")
		}
		objects = s3
	} else {
		log.Warn().Msg("almacenamiento no configurado: notices, escaneos y copias deshabilitados")
	}

	// ── IA ──
	var sealer ports.SecretSealer
	if cfg.SecretKey != "" {
		box, err := secretbox.New(cfg.SecretKey)
		if err != nil {
			log.Fatal().Err(err).Msg("SECRET_KEY inválida")
		}
		sealer = box
	}
	resolver := infraai.NewResolver(aiConfigRepo, sealer, cfg.AI, infraai.NewModel)
	serverAI := usecase.ServerAI{
		Provider:       cfg.AI.DefaultProvider,
		GeminiModel:    cfg.AI.GeminiModel,
		AnthropicModel: cfg.AI.AnthropicModel,
		HasGeminiKey:   cfg.AI.GeminiAPIKey != "",
		HasAnthropic:   cfg.AI.AnthropicAPIKey != "",
	}

	// ── Casos de uso ──
	access := usecase.NewProjectAccess(projectRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, access, notifier)
	scenarioUC := usecase.NewScenarioUseCase(scenarioRepo, accessoryRepo, txRunner, access, notifier)
	taskUC := usecase.NewTaskUseCase(taskRepo, access, notifier)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, access, notifier)
	appointmentUC := usecase.NewAppointmentUseCase(appointmentRepo, access, notifier)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, notifier)
	catalogUC := inventory.NewCatalogUseCase(accessoryRepo, movementRepo, categoryRepo, notifier)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, notifier)
	replenishmentUC := inventory.NewReplenishmentUseCase(accessoryRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderUC := shop.NewOrderUseCase(txRunner, registerMovementUC, accessoryRepo, orderRepo, cfg.Shop.VATRate, notifier)
	invoiceUC := shop.NewInvoiceUseCase(orderUC, userRepo, pdfGenerator, ports.ShopInfo{
		Name:    cfg.Shop.Name,
		SIRET:   cfg.Shop.SIRET,
		Address: cfg.Shop.Address,
		Email:   cfg.Shop.Email,
		VATRate: cfg.Shop.VATRate,
	})

	noticeUC := usecase.NewNoticeUseCase(noticeRepo, objects, resolver, cfg.AI.Timeout(), notifier)
	assistantUC := usecase.NewAssistantUseCase(noticeRepo, chatRepo, access, resolver, cfg.AI.Timeout())
	scanUC := scan.NewUseCase(scan.Deps{
		Jobs:      scanRepo,
		Access:    access,
		Projects:  projectUC,
		Expenses:  expenseUC,
		Storage:   objects,
		AI:        resolver,
		Images:    imaging.NewProcessor(),
		AITimeout: cfg.AI.Timeout(),
		Notifier:  notifier,
	})
	outlineUC := usecase.NewOutlineUseCase(outlineRepo, export.NewExporter(), access, notifier)
	rtiUC, err := usecase.NewRTIUseCase(access, scenarioRepo, accessoryRepo, expenseRepo, appointmentRepo, pdfGenerator)
	if err != nil {
		log.Fatal().Err(err).Msg("checklist RTI")
	}
	dashboardUC := appanalytics.NewDashboardUseCase(access, projectRepo, expenseRepo, taskRepo, appointmentRepo, scenarioRepo, accessoryRepo)
	aiSettingsUC := usecase.NewAISettingsUseCase(aiConfigRepo, sealer, serverAI)
	backupUC := usecase.NewBackupUseCase(usecase.BackupRepos{
		Settings:     backupRepo,
		Projects:     projectRepo,
		Tasks:        taskRepo,
		Expenses:     expenseRepo,
		Appointments: appointmentRepo,
		Scenarios:    scenarioRepo,
	}, spreadsheet.NewWorkbookBuilder(), objects, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Copias programadas
	backups := scheduler.NewTicker("backups", cfg.Backup.ScanInterval, backupUC.RunDue, log)
	backups.Start(ctx)

	// Sin WriteTimeout: el stream SSE queda abierto.
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		BodyLimit:   bodyLimit,
		ReadTimeout: time.Second * 30,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vanbuilder API",
	}))

	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProjectUC:     projectUC,
		ScenarioUC:    scenarioUC,
		TaskUC:        taskUC,
		CategoryUC:    categoryUC,
		CatalogUC:     catalogUC,
		Movements:     registerMovementUC,
		Replenishment: replenishmentUC,
		ExpenseUC:     expenseUC,
		AppointmentUC: appointmentUC,
		NoticeUC:      noticeUC,
		AssistantUC:   assistantUC,
		OrderUC:       orderUC,
		InvoiceUC:     invoiceUC,
		ScanUC:        scanUC,
		OutlineUC:     outlineUC,
		RTIUC:         rtiUC,
		DashboardUC:   dashboardUC,
		AISettingsUC:  aiSettingsUC,
		BackupUC:      backupUC,
		Events:        subscriber,
		StreamCtx:     ctx,
		Log:           log.Named("http"),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Cancelar ctx cierra las suscripciones SSE y detiene el barrido de copias.
	stop()
	backups.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

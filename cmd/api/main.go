package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"

	_ "github.com/jhoicas/autoservicio-api/docs"
	"github.com/jhoicas/autoservicio-api/internal/application/auth"
	"github.com/jhoicas/autoservicio-api/internal/application/inventory"
	"github.com/jhoicas/autoservicio-api/internal/application/sales"
	"github.com/jhoicas/autoservicio-api/internal/application/tickets"
	"github.com/jhoicas/autoservicio-api/internal/application/usecase"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/filestore"
	infrahtml "github.com/jhoicas/autoservicio-api/internal/infrastructure/html"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/memory"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/autoservicio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/autoservicio-api/internal/interfaces/http"
	"github.com/jhoicas/autoservicio-api/pkg/config"
	"github.com/jhoicas/autoservicio-api/pkg/logger"
)

type repositories struct {
	products repository.ProductRepository
	users    repository.UserRepository
	sales    repository.SaleRepository
	counts   repository.InventoryCountRepository
}

// @title           Autoservicio API
// @version         1.0
// @description     API del punto de venta de autoservicio: catálogo, ventas, tickets PDF, conteos de inventario y reportes.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Escriba "Bearer" seguido de un espacio y el token JWT.
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("aplicación detenida con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// run arma dependencias, sirve HTTP y espera la señal de apagado.
// Los defer (pool, workers) se ejecutan en cualquier salida con error.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()

	var repos repositories
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		repos = repositories{store.Products, store.Users, store.Sales, store.Counts}
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(pool); err != nil {
				return fmt.Errorf("migraciones: %w", err)
			}
		}
		store := postgres.NewStore(pool)
		repos = repositories{store.Products, store.Users, store.Sales, store.Counts}
	}

	fs := afero.NewOsFs()
	ticketsDir, err := filestore.NewDir(fs, cfg.Files.TicketsDir, "/tickets")
	if err != nil {
		return fmt.Errorf("directorio de tickets: %w", err)
	}
	reportsDir, err := filestore.NewDir(fs, cfg.Files.ReportsDir, "/reports")
	if err != nil {
		return fmt.Errorf("directorio de reportes: %w", err)
	}
	reportesDir, err := filestore.NewDir(fs, cfg.Files.ReportesDir, "/reportes")
	if err != nil {
		return fmt.Errorf("directorio de reportes html: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	pdfGenerator := infrapdf.NewMarotoGenerator(cfg.App.Name)
	ticketSvc := tickets.NewService(repos.sales, repos.products, pdfGenerator, ticketsDir)
	dispatcher := tickets.NewDispatcher(ticketSvc, cfg.Tickets.Workers, cfg.Tickets.QueueSize, recorder)

	productUC := usecase.NewProductUseCase(repos.products)
	userUC := usecase.NewUserUseCase(repos.users, time.Duration(cfg.Users.InactivityMinutes)*time.Minute)
	reconciliationUC := inventory.NewReconciliationUseCase(repos.products, repos.counts, pdfGenerator, reportsDir)
	createSaleUC := sales.NewCreateSaleUseCase(productUC, repos.sales, dispatcher, recorder)
	saleQueryUC := sales.NewSaleQueryUseCase(repos.sales, repos.products)
	reportUC := sales.NewReportUseCase(repos.sales, repos.products, pdfGenerator, infrahtml.NewRenderer(), reportsDir, reportesDir, time.Local)
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(recorder))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Autoservicio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = registry
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		UserUC:         userUC,
		Reconciliation: reconciliationUC,
		CreateSale:     createSaleUC,
		SaleQuery:      saleQueryUC,
		Reports:        reportUC,
		Tickets:        ticketSvc,
		JWTSecret:      cfg.JWT.Secret,
		Static: httpRouter.StaticDirs{
			Tickets:  ticketsDir.Root(),
			Reports:  reportsDir.Root(),
			Reportes: reportesDir.Root(),
		},
		Gatherer: gatherer,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	case serveErr = <-listenErr:
		if serveErr != nil {
			serveErr = fmt.Errorf("servidor HTTP: %w", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// después del servidor: ya no entran ventas nuevas
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tickets pendientes sin generar")
	}
	return serveErr
}

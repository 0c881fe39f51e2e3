package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/autoservicio-api/internal/application/auth"
	"github.com/jhoicas/autoservicio-api/internal/application/inventory"
	"github.com/jhoicas/autoservicio-api/internal/application/sales"
	"github.com/jhoicas/autoservicio-api/internal/application/tickets"
	"github.com/jhoicas/autoservicio-api/internal/application/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StaticDirs directorios servidos tal cual (tickets y reportes generados).
type StaticDirs struct {
	Tickets  string
	Reports  string
	Reportes string
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	UserUC         *usecase.UserUseCase
	Reconciliation *inventory.ReconciliationUseCase
	CreateSale     *sales.CreateSaleUseCase
	SaleQuery      *sales.SaleQueryUseCase
	Reports        *sales.ReportUseCase
	Tickets        *tickets.Service
	JWTSecret      string
	Static         StaticDirs
	// Gatherer nil deshabilita /metrics.
	Gatherer prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Static.Tickets != "" {
		app.Static("/tickets", deps.Static.Tickets)
	}
	if deps.Static.Reports != "" {
		app.Static("/reports", deps.Static.Reports)
	}
	if deps.Static.Reportes != "" {
		app.Static("/reportes", deps.Static.Reportes)
	}
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", requireAuth, authHandler.Logout)

	// Products (público: el kiosko no tiene sesión)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Inventory; las rutas fijas antes de /:id
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Reconciliation)
	inv.Get("/report", inventoryHandler.Report)
	inv.Delete("/clear", inventoryHandler.Clear)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Record)
	inv.Put("/:id", inventoryHandler.Update)

	// Sales
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery, deps.Reports)
	salesGroup.Get("/report", saleHandler.Summary)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.Get)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/sales/pdf", reportHandler.SalesPDF)

	// Tickets
	ticketsGroup := api.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.Tickets)
	ticketsGroup.Get("/", ticketHandler.List)
	ticketsGroup.Get("/:saleId", ticketHandler.Get)
	ticketsGroup.Get("/:saleId/pdf", ticketHandler.PDF)

	// Users (protegido)
	users := api.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}

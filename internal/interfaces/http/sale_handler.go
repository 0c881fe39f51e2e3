package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/sales"
)

// SaleHandler registra y consulta ventas.
type SaleHandler struct {
	create  *sales.CreateSaleUseCase
	query   *sales.SaleQueryUseCase
	reports *sales.ReportUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, query *sales.SaleQueryUseCase, reports *sales.ReportUseCase) *SaleHandler {
	return &SaleHandler{create: create, query: query, reports: reports}
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Success      200  {array}   dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar venta
// @Description  Valida líneas y total, descuenta existencias y encola la generación del ticket PDF.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "productos, total, observaciones, numeroTicket"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.create.CreateSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	out, err := h.query.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de ventas
// @Description  Totales por producto; guarda además el reporte HTML del día.
// @Tags         sales
// @Produce      json
// @Param        fechaInicio  query  string  false  "YYYY-MM-DD"
// @Param        fechaFin     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.SalesSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/report [get]
func (h *SaleHandler) Summary(c *fiber.Ctx) error {
	from, to, err := dateRange(c, "fechaInicio", "fechaFin")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.Summary(c.UserContext(), dto.SalesReportQuery{From: from, To: to})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

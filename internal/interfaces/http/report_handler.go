package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/sales"
)

// ReportHandler reportes de ventas por periodo.
type ReportHandler struct {
	uc *sales.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *sales.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func reportQuery(c *fiber.Ctx) (dto.SalesReportQuery, error) {
	from, to, err := dateRange(c, "startDate", "endDate")
	if err != nil {
		return dto.SalesReportQuery{}, err
	}
	return dto.SalesReportQuery{From: from, To: to, Type: c.Query("type")}, nil
}

// Sales godoc
// @Summary      Ventas agrupadas
// @Description  type=daily|weekly|monthly agrupa; cualquier otro valor devuelve la lista plana.
// @Tags         reports
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        type       query  string  false  "daily | weekly | monthly"
// @Success      200  {array}   dto.SalesGroup
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Grouped(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	if !out.Grouped {
		return c.JSON(out.Ventas)
	}
	return c.JSON(out.Grupos)
}

// SalesPDF godoc
// @Summary      Reporte PDF de ventas
// @Tags         reports
// @Produce      application/pdf
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        type       query  string  false  "daily | weekly | monthly"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	f, err := h.uc.PDF(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, f)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/autoservicio-api/internal/application/tickets"
)

// TicketHandler consulta tickets y descarga su PDF.
type TicketHandler struct {
	svc *tickets.Service
}

// NewTicketHandler construye el handler.
func NewTicketHandler(svc *tickets.Service) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// List godoc
// @Summary      Listar tickets
// @Tags         tickets
// @Produce      json
// @Success      200  {array}   dto.TicketSummary
// @Router       /api/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Datos del ticket
// @Tags         tickets
// @Produce      json
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{saleId} [get]
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("saleId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      PDF del ticket
// @Description  Devuelve el PDF ya generado o lo genera en el momento.
// @Tags         tickets
// @Produce      application/pdf
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/tickets/{saleId}/pdf [get]
func (h *TicketHandler) PDF(c *fiber.Ctx) error {
	f, err := h.svc.PDF(c.UserContext(), c.Params("saleId"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, f)
}

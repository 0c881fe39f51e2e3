package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/inventory"
)

// InventoryHandler expone los conteos físicos y el reporte de conciliación.
type InventoryHandler struct {
	uc *inventory.ReconciliationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ReconciliationUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar conteos de inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.InventoryCountResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Record godoc
// @Summary      Registrar conteo físico
// @Description  Calcula la diferencia contra el sistema y sobrescribe la existencia del producto.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryCountRequest  true  "producto, existenciaFisica, observaciones"
// @Success      201   {object}  dto.InventoryCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Record(c *fiber.Ctx) error {
	var in dto.InventoryCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Corregir conteo físico
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conteo"
// @Param        body  body  dto.UpdateInventoryCountRequest  true  "existenciaFisica, observaciones"
// @Success      200   {object}  dto.InventoryCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de inventario
// @Tags         inventory
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	f, err := h.uc.Report(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, f)
}

// Clear godoc
// @Summary      Limpiar inventario
// @Description  Borra todos los conteos y deja todas las existencias en 0.
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/inventory/clear [delete]
func (h *InventoryHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Inventario limpiado exitosamente"})
}

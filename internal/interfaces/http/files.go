package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/period"
)

// sendAttachment responde el archivo como descarga.
func sendAttachment(c *fiber.Ctx, f *dto.FileResponse) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.Status(fiber.StatusOK).Send(f.Data)
}

// dateRange lee un rango de fechas del query string. Solo filtra si vienen ambos extremos;
// una fecha sin hora en el extremo final cubre el día completo.
func dateRange(c *fiber.Ctx, fromKey, toKey string) (from, to *time.Time, err error) {
	rawFrom, rawTo := c.Query(fromKey), c.Query(toKey)
	if rawFrom == "" || rawTo == "" {
		return nil, nil, nil
	}
	f, err := period.ParseDate(rawFrom)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	t, err := period.ParseDate(rawTo)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if len(rawTo) == len("2006-01-02") {
		t = period.DayEnd(t)
	}
	return &f, &t, nil
}

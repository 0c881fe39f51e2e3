package tickets

import (
	"context"
	"fmt"

	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/internal/application/sales"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// FileName nombre determinista del PDF de una venta.
func FileName(saleID string) string {
	return fmt.Sprintf("ticket_%s.pdf", saleID)
}

// Service listado de tickets, generación bajo demanda y generación en segundo plano.
type Service struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	renderer    ports.TicketRenderer
	dir         ports.ArtifactDir
}

// NewService construye el servicio de tickets.
func NewService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, renderer ports.TicketRenderer, dir ports.ArtifactDir) *Service {
	return &Service{saleRepo: saleRepo, productRepo: productRepo, renderer: renderer, dir: dir}
}

// List devuelve id, número, total y fecha de cada venta, más recientes primero.
func (s *Service) List(ctx context.Context) ([]dto.TicketSummary, error) {
	list, err := s.saleRepo.List(ctx, repository.SaleFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketSummary, 0, len(list))
	for _, sale := range list {
		out = append(out, dto.TicketSummary{
			ID:           sale.ID,
			NumeroTicket: sale.TicketNumber,
			Total:        sale.Total,
			Fecha:        sale.Date,
		})
	}
	return out, nil
}

// Get detalle de un ticket con productos resueltos.
func (s *Service) Get(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := sales.FindSale(ctx, s.saleRepo, saleID)
	if err != nil {
		return nil, err
	}
	out, err := sales.ToSaleResponses(ctx, s.productRepo, []*entity.Sale{sale})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// PDF devuelve el ticket ya generado si existe; si no, lo genera y lo guarda.
// No modifica pdfUrl de la venta.
func (s *Service) PDF(ctx context.Context, saleID string) (*dto.FileResponse, error) {
	sale, err := sales.FindSale(ctx, s.saleRepo, saleID)
	if err != nil {
		return nil, err
	}
	name := FileName(sale.ID)
	exists, err := s.dir.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		data, err := s.dir.Read(name)
		if err != nil {
			return nil, err
		}
		return &dto.FileResponse{Name: name, ContentType: "application/pdf", Data: data}, nil
	}
	data, err := s.render(ctx, sale)
	if err != nil {
		return nil, err
	}
	if err := s.dir.Write(name, data); err != nil {
		return nil, fmt.Errorf("guardar ticket: %w", err)
	}
	log.Info().Str("sale_id", sale.ID).Str("path", name).Msg("ticket generado bajo demanda")
	return &dto.FileResponse{Name: name, ContentType: "application/pdf", Data: data}, nil
}

// RenderAndAttach genera el ticket, lo guarda en la ruta determinista y registra su URL en la venta.
// Es el paso posterior a confirmar la venta; no reintenta.
func (s *Service) RenderAndAttach(ctx context.Context, saleID string) error {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return fmt.Errorf("%w: venta %s", domain.ErrNotFound, saleID)
	}
	data, err := s.render(ctx, sale)
	if err != nil {
		return err
	}
	name := FileName(sale.ID)
	if err := s.dir.Write(name, data); err != nil {
		return fmt.Errorf("guardar ticket: %w", err)
	}
	// La venta se vuelve a leer al actualizar: pudo cambiar o desaparecer mientras se generaba.
	if err := s.saleRepo.SetPDFURL(ctx, sale.ID, s.dir.URL(name)); err != nil {
		return fmt.Errorf("actualizar pdfUrl: %w", err)
	}
	return nil
}

func (s *Service) render(ctx context.Context, sale *entity.Sale) ([]byte, error) {
	lookup := sales.NewProductLookup(s.productRepo)
	view := ports.TicketView{
		Number: sale.DisplayNumber(),
		Date:   sale.Date,
		Total:  sale.Total,
		Notes:  sale.Notes,
	}
	for _, it := range sale.Items {
		name, err := lookup.Name(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		view.Lines = append(view.Lines, ports.TicketLine{
			Name:      name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	data, err := s.renderer.RenderTicket(ctx, view)
	if err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return data, nil
}

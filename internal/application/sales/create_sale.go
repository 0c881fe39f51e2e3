package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// totalTolerance diferencia máxima aceptada entre total calculado y total enviado.
var totalTolerance = decimal.RequireFromString("0.01")

// CreateSaleUseCase registra una venta y descuenta existencias línea por línea.
// No hay transacción: si una línea posterior falla, las existencias ya descontadas
// en líneas anteriores no se restauran.
type CreateSaleUseCase struct {
	catalog  StockDecrementer
	saleRepo repository.SaleRepository
	tickets  TicketScheduler
	metrics  Metrics
	now      func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso. tickets y metrics pueden ser nil.
func NewCreateSaleUseCase(catalog StockDecrementer, saleRepo repository.SaleRepository, tickets TicketScheduler, metrics Metrics) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		catalog:  catalog,
		saleRepo: saleRepo,
		tickets:  tickets,
		metrics:  metrics,
		now:      time.Now,
	}
}

// CreateSale valida, descuenta stock, verifica el total y persiste la venta.
// La generación del ticket se encola después de persistir y nunca se espera.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	out, err := uc.createSale(ctx, in)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.SaleRejected(err)
		}
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.SaleCreated()
	}
	return out, nil
}

func (uc *CreateSaleUseCase) createSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Productos) == 0 {
		return nil, fmt.Errorf("%w: la venta debe incluir al menos un producto", domain.ErrInvalidInput)
	}
	if in.Total == nil || !in.Total.IsPositive() {
		return nil, fmt.Errorf("%w: el total de la venta proporcionado no es válido", domain.ErrInvalidInput)
	}

	items := make([]entity.SaleItem, 0, len(in.Productos))
	lines := make([]dto.SaleLineResponse, 0, len(in.Productos))
	computed := decimal.Zero

	for _, line := range in.Productos {
		productID := strings.TrimSpace(line.Producto)
		if productID == "" || line.Cantidad == nil {
			return nil, fmt.Errorf("%w: cada producto debe tener un ID y una cantidad", domain.ErrInvalidInput)
		}
		if _, err := uuid.Parse(productID); err != nil {
			return nil, fmt.Errorf("%w: ID de producto inválido", domain.ErrInvalidInput)
		}
		qty := *line.Cantidad
		if qty < 1 {
			return nil, fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
		}

		// Lee precio vigente, valida existencia y la persiste descontada antes de pasar a la siguiente línea.
		product, err := uc.catalog.DecrementStock(ctx, productID, qty)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: producto no encontrado: %s", domain.ErrNotFound, productID)
			}
			log.Warn().Err(err).Str("product_id", productID).Int("cantidad", qty).Msg("línea de venta rechazada")
			return nil, err
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		computed = computed.Add(subtotal)
		items = append(items, entity.SaleItem{
			ProductID: product.ID,
			Quantity:  qty,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		price := product.Price
		lines = append(lines, dto.SaleLineResponse{
			Producto:       dto.ProductRef{ID: product.ID, Nombre: product.Name, Precio: &price},
			Cantidad:       qty,
			PrecioUnitario: product.Price,
			Subtotal:       subtotal,
		})
	}

	if computed.Sub(*in.Total).Abs().GreaterThan(totalTolerance) {
		log.Warn().
			Str("calculado", computed.StringFixed(2)).
			Str("proporcionado", in.Total.StringFixed(2)).
			Msg("total de venta no coincide")
		return nil, domain.ErrTotalMismatch
	}

	sale := &entity.Sale{
		ID:           uuid.New().String(),
		TicketNumber: normalizeTicketNumber(in.NumeroTicket),
		Items:        items,
		Total:        computed,
		Date:         uc.now(),
		Notes:        in.Observaciones,
		Status:       entity.SaleStatusCompleted,
	}
	if err := uc.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	log.Info().Str("sale_id", sale.ID).Str("total", sale.Total.StringFixed(2)).Int("lineas", len(items)).Msg("venta registrada")

	if uc.tickets != nil && !uc.tickets.Submit(sale.ID) {
		log.Warn().Str("sale_id", sale.ID).Msg("ticket no encolado; disponible bajo demanda")
	}

	return &dto.SaleResponse{
		ID:            sale.ID,
		NumeroTicket:  sale.TicketNumber,
		Productos:     lines,
		Total:         sale.Total,
		Fecha:         sale.Date,
		Observaciones: sale.Notes,
		Estado:        sale.Status,
		PDFURL:        sale.PDFURL,
	}, nil
}

func normalizeTicketNumber(n *string) *string {
	if n == nil {
		return nil
	}
	v := strings.TrimSpace(*n)
	if v == "" {
		return nil
	}
	return &v
}

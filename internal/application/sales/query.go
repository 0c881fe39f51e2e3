package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/usecase"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
)

// SaleQueryUseCase consultas de ventas con productos resueltos.
type SaleQueryUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo, productRepo: productRepo}
}

// List devuelve todas las ventas, más recientes primero.
func (uc *SaleQueryUseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.List(ctx, repository.SaleFilter{})
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(ctx, uc.productRepo, list)
}

// Get obtiene una venta. ErrInvalidInput si el ID no es válido, ErrNotFound si no existe.
func (uc *SaleQueryUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := FindSale(ctx, uc.saleRepo, id)
	if err != nil {
		return nil, err
	}
	out, err := ToSaleResponses(ctx, uc.productRepo, []*entity.Sale{sale})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// FindSale valida el ID y carga la venta.
func FindSale(ctx context.Context, repo repository.SaleRepository, id string) (*entity.Sale, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: ID de venta inválido", domain.ErrInvalidInput)
	}
	sale, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta no encontrada", domain.ErrNotFound)
	}
	return sale, nil
}

// ProductLookup resuelve productos por ID con caché por llamada.
type ProductLookup struct {
	repo  repository.ProductRepository
	cache map[string]*entity.Product
}

// NewProductLookup crea un resolvedor vacío.
func NewProductLookup(repo repository.ProductRepository) *ProductLookup {
	return &ProductLookup{repo: repo, cache: map[string]*entity.Product{}}
}

// Get devuelve el producto o nil si ya no existe.
func (l *ProductLookup) Get(ctx context.Context, id string) (*entity.Product, error) {
	if p, ok := l.cache[id]; ok {
		return p, nil
	}
	p, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.cache[id] = p
	return p, nil
}

// Name devuelve el nombre del producto o el ID si fue eliminado.
func (l *ProductLookup) Name(ctx context.Context, id string) (string, error) {
	p, err := l.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if p == nil {
		return id, nil
	}
	return p.Name, nil
}

// ToSaleResponses mapea ventas resolviendo el producto de cada línea.
func ToSaleResponses(ctx context.Context, productRepo repository.ProductRepository, list []*entity.Sale) ([]dto.SaleResponse, error) {
	lookup := NewProductLookup(productRepo)
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		lines := make([]dto.SaleLineResponse, 0, len(s.Items))
		for _, it := range s.Items {
			p, err := lookup.Get(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			lines = append(lines, dto.SaleLineResponse{
				Producto:       usecase.ProductRefOf(it.ProductID, p),
				Cantidad:       it.Quantity,
				PrecioUnitario: it.UnitPrice,
				Subtotal:       it.Subtotal,
			})
		}
		out = append(out, dto.SaleResponse{
			ID:            s.ID,
			NumeroTicket:  s.TicketNumber,
			Productos:     lines,
			Total:         s.Total,
			Fecha:         s.Date,
			Observaciones: s.Notes,
			Estado:        s.Status,
			PDFURL:        s.PDFURL,
		})
	}
	return out, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// ProductUseCase casos de uso del catálogo. La existencia la modifican también ventas y conteos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

func validateProduct(in dto.ProductRequest) error {
	if strings.TrimSpace(in.Nombre) == "" || in.Precio == nil || in.Cantidad == nil {
		return fmt.Errorf("%w: nombre, precio y cantidad son requeridos", domain.ErrInvalidInput)
	}
	if in.Precio.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if *in.Cantidad < 0 {
		return fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	return nil
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Nombre),
		Price:     *in.Precio,
		Quantity:  *in.Cantidad,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista todos los productos, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update sobrescribe nombre, precio y cantidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	product, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(in.Nombre)
	product.Price = *in.Precio
	product.Quantity = *in.Cantidad
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// DecrementStock descuenta qty unidades leyendo y escribiendo la existencia sin bloqueo:
// dos ventas concurrentes pueden leer la misma existencia y ambas descontar.
// Devuelve el producto tal como se leyó (precio vigente).
func (uc *ProductUseCase) DecrementStock(ctx context.Context, id string, qty int) (*entity.Product, error) {
	product, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.HasStock(qty) {
		return nil, fmt.Errorf("%w para %s. Disponible: %d", domain.ErrInsufficientStock, product.Name, product.Quantity)
	}
	if err := uc.repo.UpdateQuantity(ctx, id, product.Quantity-qty); err != nil {
		return nil, err
	}
	log.Debug().Str("product_id", id).Int("cantidad", qty).Int("existencia", product.Quantity-qty).Msg("stock descontado")
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Nombre:    p.Name,
		Precio:    p.Price,
		Cantidad:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProductRefOf construye la referencia embebida de un producto (id, nombre, precio).
// Un producto ya eliminado produce solo el ID.
func ProductRefOf(id string, p *entity.Product) dto.ProductRef {
	if p == nil {
		return dto.ProductRef{ID: id}
	}
	price := p.Price
	return dto.ProductRef{ID: p.ID, Nombre: p.Name, Precio: &price}
}

package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/usecase"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/memory"
)

func producto(nombre string, precio int64, cantidad int) dto.ProductRequest {
	p := decimal.NewFromInt(precio)
	return dto.ProductRequest{Nombre: nombre, Precio: &p, Cantidad: &cantidad}
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products)
	neg := decimal.NewFromInt(-1)
	cero := 0
	cases := []struct {
		name string
		in   dto.ProductRequest
	}{
		{"sin nombre", producto("  ", 100, 1)},
		{"sin precio", dto.ProductRequest{Nombre: "Pan", Cantidad: &cero}},
		{"sin cantidad", dto.ProductRequest{Nombre: "Pan", Precio: &neg}},
		{"precio negativo", dto.ProductRequest{Nombre: "Pan", Precio: &neg, Cantidad: &cero}},
		{"cantidad negativa", producto("Pan", 100, -1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductCRUD(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products)
	ctx := context.Background()

	created, err := uc.Create(ctx, producto(" Pan ", 1500, 10))
	require.NoError(t, err)
	assert.Equal(t, "Pan", created.Nombre)
	assert.NotEmpty(t, created.ID)

	updated, err := uc.Update(ctx, created.ID, producto("Pan integral", 1800, 0))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1800).Equal(updated.Precio))
	assert.Equal(t, 0, updated.Cantidad)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pan integral", list[0].Nombre)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)

	_, err = uc.Update(ctx, created.ID, producto("X", 1, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecrementStock(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products)
	ctx := context.Background()
	p, err := uc.Create(ctx, producto("Leche", 3000, 3))
	require.NoError(t, err)

	read, err := uc.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, read.Quantity, "devuelve el producto tal como se leyó")

	after, err := uc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Quantity)

	_, err = uc.DecrementStock(ctx, p.ID, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Leche")
	assert.Contains(t, err.Error(), "Disponible: 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuento concurrente: lectura y escritura sin bloqueo
// ──────────────────────────────────────────────────────────────────────────────

// barrierRepo entrega la misma lectura a los dos lectores antes de permitir escrituras.
type barrierRepo struct {
	repository.ProductRepository

	mu      sync.Mutex
	product entity.Product
	readers sync.WaitGroup
	writes  []int
}

func (r *barrierRepo) GetByID(_ context.Context, _ string) (*entity.Product, error) {
	r.mu.Lock()
	p := r.product
	r.mu.Unlock()
	r.readers.Done()
	r.readers.Wait()
	return &p, nil
}

func (r *barrierRepo) UpdateQuantity(_ context.Context, _ string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.product.Quantity = qty
	r.writes = append(r.writes, qty)
	return nil
}

func TestDecrementStock_DosVentasConLaMismaLectura_PierdenUnDescuento(t *testing.T) {
	repo := &barrierRepo{product: entity.Product{ID: "p-1", Name: "Pan", Price: decimal.NewFromInt(1000), Quantity: 10}}
	repo.readers.Add(2)
	uc := usecase.NewProductUseCase(repo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.DecrementStock(context.Background(), "p-1", 3)
		}(i)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("los descuentos no terminaron")
	}

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, []int{7, 7}, repo.writes, "ambas escrituras parten de la existencia 10")
	assert.Equal(t, 7, repo.product.Quantity, "queda q-qty, no q-2*qty")
}

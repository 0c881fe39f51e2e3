package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_UnicidadDeUsernameYEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.Users.Create(ctx, &entity.User{ID: "u1", Username: "ana", Email: "ana@kiosko.co"}))

	err := store.Users.Create(ctx, &entity.User{ID: "u2", Username: "ana", Email: "otra@kiosko.co"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = store.Users.Create(ctx, &entity.User{ID: "u3", Username: "beto", Email: "ANA@kiosko.co"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := store.Users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}

func TestUserRepo_UpdateDetectaConflictoConOtroUsuario(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Users.Create(ctx, &entity.User{ID: "u1", Username: "ana", Email: "ana@kiosko.co"}))
	require.NoError(t, store.Users.Create(ctx, &entity.User{ID: "u2", Username: "beto", Email: "beto@kiosko.co"}))

	err := store.Users.Update(ctx, &entity.User{ID: "u2", Username: "ana", Email: "beto@kiosko.co"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Actualizarse a sí mismo con los mismos datos no es conflicto.
	err = store.Users.Update(ctx, &entity.User{ID: "u2", Username: "beto", Email: "beto@kiosko.co", FirstName: "Beto"})
	assert.NoError(t, err)
}

func TestProductRepo_CopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Pan", Price: decimal.NewFromInt(2), Quantity: 5}))

	p, err := store.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Quantity = 99

	again, err := store.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Quantity)
}

func TestProductRepo_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	p, err := store.Products.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, store.Products.Delete(ctx, "nope"), domain.ErrNotFound)
	assert.ErrorIs(t, store.Products.UpdateQuantity(ctx, "nope", 1), domain.ErrNotFound)
}

func TestSaleRepo_NumeroTicketUnicoSoloSiExiste(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	n := "T-001"

	require.NoError(t, store.Sales.Create(ctx, &entity.Sale{ID: "s1", Date: time.Now()}))
	require.NoError(t, store.Sales.Create(ctx, &entity.Sale{ID: "s2", Date: time.Now()}))
	require.NoError(t, store.Sales.Create(ctx, &entity.Sale{ID: "s3", TicketNumber: &n, Date: time.Now()}))

	dup := "T-001"
	err := store.Sales.Create(ctx, &entity.Sale{ID: "s4", TicketNumber: &dup, Date: time.Now()})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSaleRepo_ListFiltraPorRango(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	d1 := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Sales.Create(ctx, &entity.Sale{ID: "a", Date: d1}))
	require.NoError(t, store.Sales.Create(ctx, &entity.Sale{ID: "b", Date: d2}))

	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	list, err := store.Sales.List(ctx, repository.SaleFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	all, err := store.Sales.List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID, "más reciente primero")
}

func TestInventoryCountRepo_DeleteAll(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Counts.Create(ctx, &entity.InventoryCount{ID: "c1", ProductID: "p1"}))
	require.NoError(t, store.Counts.Create(ctx, &entity.InventoryCount{ID: "c2", ProductID: "p2"}))

	require.NoError(t, store.Counts.DeleteAll(ctx))

	list, err := store.Counts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

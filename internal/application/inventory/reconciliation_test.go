package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/inventory"
	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/filestore"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/memory"
)

type captureRenderer struct {
	last  ports.InventoryReport
	calls int
}

func (c *captureRenderer) RenderInventoryReport(_ context.Context, r ports.InventoryReport) ([]byte, error) {
	c.last = r
	c.calls++
	return []byte("%PDF-inventario"), nil
}

type fixture struct {
	store   *memory.Store
	uc      *inventory.ReconciliationUseCase
	render  *captureRenderer
	reports *filestore.Dir
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reports, err := filestore.NewDir(afero.NewMemMapFs(), "reports", "/reports")
	require.NoError(t, err)
	store := memory.NewStore()
	r := &captureRenderer{}
	uc := inventory.NewReconciliationUseCase(store.Products, store.Counts, r, reports).
		WithClock(func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) })
	return &fixture{store: store, uc: uc, render: r, reports: reports}
}

func (f *fixture) product(t *testing.T, name string, qty int) string {
	t.Helper()
	p := &entity.Product{ID: uuid.New().String(), Name: name, Price: decimal.NewFromInt(1000), Quantity: qty}
	require.NoError(t, f.store.Products.Create(context.Background(), p))
	return p.ID
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func intPtr(n int) *int { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Record / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_CalculaDiferenciaYSobrescribeExistencia(t *testing.T) {
	f := newFixture(t)
	id := f.product(t, "Arroz", 10)

	out, err := f.uc.Record(context.Background(), dto.InventoryCountRequest{Producto: id, ExistenciaFisica: intPtr(7), Observaciones: "faltan 3"})
	require.NoError(t, err)

	assert.Equal(t, -3, out.Diferencia)
	assert.Equal(t, "Arroz", out.Producto.Nombre)
	assert.Equal(t, 7, f.stock(t, id))
}

func TestRecord_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Record(context.Background(), dto.InventoryCountRequest{Producto: uuid.New().String(), ExistenciaFisica: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecord_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Record(ctx, dto.InventoryCountRequest{Producto: "x", ExistenciaFisica: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Record(ctx, dto.InventoryCountRequest{Producto: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_DosEdiciones_DiferenciaContraExistenciaActual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.product(t, "Frijol", 10)

	count, err := f.uc.Record(ctx, dto.InventoryCountRequest{Producto: id, ExistenciaFisica: intPtr(8)})
	require.NoError(t, err)

	first, err := f.uc.Update(ctx, count.ID, dto.UpdateInventoryCountRequest{ExistenciaFisica: intPtr(6)})
	require.NoError(t, err)
	assert.Equal(t, -2, first.Diferencia, "contra la existencia 8 que dejó el conteo")

	// Una venta entre ediciones cambia la existencia del sistema.
	require.NoError(t, f.store.Products.UpdateQuantity(ctx, id, 4))

	second, err := f.uc.Update(ctx, count.ID, dto.UpdateInventoryCountRequest{ExistenciaFisica: intPtr(5), Observaciones: "recontado"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Diferencia, "contra la existencia 4 al momento de la segunda edición")
	assert.Equal(t, "recontado", second.Observaciones)
	assert.Equal(t, 5, f.stock(t, id))
}

func TestUpdate_ConteoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Update(context.Background(), "nope", dto.UpdateInventoryCountRequest{ExistenciaFisica: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clear / Report
// ──────────────────────────────────────────────────────────────────────────────

func TestClear_SinConteosYExistenciasEnCero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "A", 10)
	b := f.product(t, "B", 3)
	_, err := f.uc.Record(ctx, dto.InventoryCountRequest{Producto: a, ExistenciaFisica: intPtr(9)})
	require.NoError(t, err)

	require.NoError(t, f.uc.Clear(ctx))

	counts, err := f.uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.Equal(t, 0, f.stock(t, a))
	assert.Equal(t, 0, f.stock(t, b))
}

func TestReport_SinProductos_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Report(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.render.calls)
}

func TestReport_UltimoConteoPorProducto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Contado", 10)
	f.product(t, "Pendiente", 2)

	_, err := f.uc.Record(ctx, dto.InventoryCountRequest{Producto: a, ExistenciaFisica: intPtr(9)})
	require.NoError(t, err)
	f.uc.WithClock(func() time.Time { return time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC) })
	_, err = f.uc.Record(ctx, dto.InventoryCountRequest{Producto: a, ExistenciaFisica: intPtr(12)})
	require.NoError(t, err)

	file, err := f.uc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, "inventario_2024-06-02.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)

	exists, err := f.reports.Exists(file.Name)
	require.NoError(t, err)
	assert.False(t, exists, "el reporte se elimina después de leerlo")

	rep := f.render.last
	assert.Equal(t, 1, rep.Counted)
	assert.Equal(t, 1, rep.NotCounted)
	assert.Equal(t, []string{"Pendiente"}, rep.Pending)
	for _, row := range rep.Rows {
		if row.Name == "Contado" {
			require.NotNil(t, row.PhysicalQty)
			assert.Equal(t, 12, *row.PhysicalQty)
			assert.Equal(t, 3, *row.Difference)
		} else {
			assert.Nil(t, row.PhysicalQty)
		}
	}
}

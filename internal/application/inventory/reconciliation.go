package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	domaininv "github.com/jhoicas/autoservicio-api/internal/domain/inventory"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// ReconciliationUseCase conteos físicos contra la existencia del catálogo.
// El conteo se toma como verdad: sobrescribe la existencia sin comparar con ventas
// ocurridas entre el conteo y el guardado (gana la última escritura).
type ReconciliationUseCase struct {
	productRepo repository.ProductRepository
	countRepo   repository.InventoryCountRepository
	pdf         ports.InventoryReportRenderer
	reports     ports.ArtifactDir
	now         func() time.Time
}

// NewReconciliationUseCase construye el caso de uso.
func NewReconciliationUseCase(
	productRepo repository.ProductRepository,
	countRepo repository.InventoryCountRepository,
	pdf ports.InventoryReportRenderer,
	reports ports.ArtifactDir,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		productRepo: productRepo,
		countRepo:   countRepo,
		pdf:         pdf,
		reports:     reports,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *ReconciliationUseCase) WithClock(now func() time.Time) *ReconciliationUseCase {
	uc.now = now
	return uc
}

func (uc *ReconciliationUseCase) product(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto no encontrado", domain.ErrNotFound)
	}
	return p, nil
}

// List devuelve los conteos, más recientes primero, con el producto resuelto.
func (uc *ReconciliationUseCase) List(ctx context.Context) ([]dto.InventoryCountResponse, error) {
	counts, err := uc.countRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cache := map[string]*entity.Product{}
	out := make([]dto.InventoryCountResponse, 0, len(counts))
	for _, c := range counts {
		p, ok := cache[c.ProductID]
		if !ok {
			if p, err = uc.productRepo.GetByID(ctx, c.ProductID); err != nil {
				return nil, err
			}
			cache[c.ProductID] = p
		}
		out = append(out, toCountResponse(c, p))
	}
	return out, nil
}

// Record registra un conteo: diferencia contra la existencia actual y sobrescribe la existencia.
func (uc *ReconciliationUseCase) Record(ctx context.Context, in dto.InventoryCountRequest) (*dto.InventoryCountResponse, error) {
	productID := strings.TrimSpace(in.Producto)
	if productID == "" || in.ExistenciaFisica == nil {
		return nil, fmt.Errorf("%w: producto y existenciaFisica son requeridos", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, fmt.Errorf("%w: ID de producto inválido", domain.ErrInvalidInput)
	}
	if *in.ExistenciaFisica < 0 {
		return nil, fmt.Errorf("%w: la existencia física no puede ser negativa", domain.ErrInvalidInput)
	}
	p, err := uc.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	count := &entity.InventoryCount{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		PhysicalQty: *in.ExistenciaFisica,
		Difference:  domaininv.Difference(*in.ExistenciaFisica, p.Quantity),
		CountedAt:   uc.now(),
		Notes:       in.Observaciones,
	}
	if err := uc.countRepo.Create(ctx, count); err != nil {
		return nil, err
	}
	if err := uc.productRepo.UpdateQuantity(ctx, p.ID, count.PhysicalQty); err != nil {
		return nil, err
	}
	p.Quantity = count.PhysicalQty
	log.Info().Str("count_id", count.ID).Str("product_id", p.ID).Int("diferencia", count.Difference).Msg("conteo registrado")
	out := toCountResponse(count, p)
	return &out, nil
}

// Update corrige un conteo. La diferencia se recalcula contra la existencia actual del producto,
// no contra la del conteo original. Observaciones vacías conservan las anteriores.
func (uc *ReconciliationUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryCountRequest) (*dto.InventoryCountResponse, error) {
	if in.ExistenciaFisica == nil {
		return nil, fmt.Errorf("%w: existenciaFisica es requerida", domain.ErrInvalidInput)
	}
	if *in.ExistenciaFisica < 0 {
		return nil, fmt.Errorf("%w: la existencia física no puede ser negativa", domain.ErrInvalidInput)
	}
	count, err := uc.countRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, fmt.Errorf("%w: registro de inventario no encontrado", domain.ErrNotFound)
	}
	p, err := uc.product(ctx, count.ProductID)
	if err != nil {
		return nil, err
	}

	count.PhysicalQty = *in.ExistenciaFisica
	count.Difference = domaininv.Difference(count.PhysicalQty, p.Quantity)
	if in.Observaciones != "" {
		count.Notes = in.Observaciones
	}
	if err := uc.countRepo.Update(ctx, count); err != nil {
		return nil, err
	}
	if err := uc.productRepo.UpdateQuantity(ctx, p.ID, count.PhysicalQty); err != nil {
		return nil, err
	}
	p.Quantity = count.PhysicalQty
	log.Info().Str("count_id", count.ID).Str("product_id", p.ID).Int("diferencia", count.Difference).Msg("conteo actualizado")
	out := toCountResponse(count, p)
	return &out, nil
}

// Clear elimina todos los conteos y deja en 0 la existencia de todos los productos.
func (uc *ReconciliationUseCase) Clear(ctx context.Context) error {
	if err := uc.countRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := uc.productRepo.ResetAllQuantities(ctx); err != nil {
		return err
	}
	log.Warn().Msg("inventario limpiado: conteos eliminados y existencias en 0")
	return nil
}

// Report genera el PDF producto contra último conteo. ErrNotFound si no hay productos.
func (uc *ReconciliationUseCase) Report(ctx context.Context) (*dto.FileResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no hay productos registrados para generar el reporte", domain.ErrNotFound)
	}
	counts, err := uc.countRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	latest := domaininv.LatestByProduct(counts)

	report := ports.InventoryReport{GeneratedAt: uc.now()}
	for _, p := range products {
		row := ports.InventoryRow{Name: p.Name, Price: p.Price, SystemQty: p.Quantity}
		if c, ok := latest[p.ID]; ok {
			physical, diff := c.PhysicalQty, c.Difference
			row.PhysicalQty = &physical
			row.Difference = &diff
			report.Counted++
		} else {
			report.NotCounted++
			report.Pending = append(report.Pending, p.Name)
		}
		report.Rows = append(report.Rows, row)
	}

	data, err := uc.pdf.RenderInventoryReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("render reporte inventario: %w", err)
	}
	name := fmt.Sprintf("inventario_%s.pdf", report.GeneratedAt.Format("2006-01-02"))
	return ports.Materialize(uc.reports, name, data)
}

func toCountResponse(c *entity.InventoryCount, p *entity.Product) dto.InventoryCountResponse {
	ref := dto.ProductRef{ID: c.ProductID}
	if p != nil {
		price, qty := p.Price, p.Quantity
		ref = dto.ProductRef{ID: p.ID, Nombre: p.Name, Precio: &price, Cantidad: &qty}
	}
	return dto.InventoryCountResponse{
		ID:               c.ID,
		Producto:         ref,
		ExistenciaFisica: c.PhysicalQty,
		Diferencia:       c.Difference,
		FechaConteo:      c.CountedAt,
		Observaciones:    c.Notes,
	}
}

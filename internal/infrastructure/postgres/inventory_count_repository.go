package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
)

var _ repository.InventoryCountRepository = (*InventoryCountRepo)(nil)

const countColumns = `id, product_id, physical_qty, difference, counted_at, notes`

// InventoryCountRepo implementación del puerto InventoryCountRepository sobre PostgreSQL.
type InventoryCountRepo struct {
	q Querier
}

// NewInventoryCountRepository construye el adaptador de persistencia para conteos.
func NewInventoryCountRepository(q Querier) *InventoryCountRepo {
	return &InventoryCountRepo{q: q}
}

// Create persiste un conteo físico.
func (r *InventoryCountRepo) Create(ctx context.Context, c *entity.InventoryCount) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventory_counts (`+countColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.ProductID, c.PhysicalQty, c.Difference, c.CountedAt, c.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory count: %w", err)
	}
	return nil
}

// GetByID obtiene un conteo por ID.
func (r *InventoryCountRepo) GetByID(ctx context.Context, id string) (*entity.InventoryCount, error) {
	c, err := scanCount(r.q.QueryRow(ctx, `SELECT `+countColumns+` FROM inventory_counts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory count: %w", err)
	}
	return c, nil
}

// List devuelve los conteos, más recientes primero.
func (r *InventoryCountRepo) List(ctx context.Context) ([]*entity.InventoryCount, error) {
	rows, err := r.q.Query(ctx, `SELECT `+countColumns+` FROM inventory_counts ORDER BY counted_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list inventory counts: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryCount
	for rows.Next() {
		c, err := scanCount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza existencia física, diferencia, fecha y observaciones.
func (r *InventoryCountRepo) Update(ctx context.Context, c *entity.InventoryCount) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_counts SET physical_qty = $2, difference = $3, counted_at = $4, notes = $5 WHERE id = $1`,
		c.ID, c.PhysicalQty, c.Difference, c.CountedAt, c.Notes,
	)
	if err != nil {
		return fmt.Errorf("update inventory count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll borra todos los conteos.
func (r *InventoryCountRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_counts`); err != nil {
		return fmt.Errorf("delete inventory counts: %w", err)
	}
	return nil
}

func scanCount(row pgx.Row) (*entity.InventoryCount, error) {
	var c entity.InventoryCount
	if err := row.Scan(&c.ID, &c.ProductID, &c.PhysicalQty, &c.Difference, &c.CountedAt, &c.Notes); err != nil {
		return nil, err
	}
	return &c, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, ticket_number, items, total, sale_date, notes, status, pdf_url`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Las líneas viajan en una columna JSONB junto a la cabecera: un INSERT, sin transacción.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

type saleItemRow struct {
	ProductID string          `json:"producto"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Create persiste la venta con sus líneas.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	items := make([]saleItemRow, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, saleItemRow(it))
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode sale items: %w", err)
	}
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		sale.ID, sale.TicketNumber, raw, sale.Total, sale.Date, sale.Notes, sale.Status, sale.PDFURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el número de ticket ya existe", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// List devuelve las ventas del rango (inclusivo), más recientes primero.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var (
		conds []string
		args  []any
	)
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("sale_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("sale_date <= $%d", len(args)))
	}
	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY sale_date DESC, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SetPDFURL registra la URL del ticket generado.
func (r *SaleRepo) SetPDFURL(ctx context.Context, id, url string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET pdf_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("set sale pdf url: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s    entity.Sale
		raw  []byte
		date time.Time
	)
	if err := row.Scan(&s.ID, &s.TicketNumber, &raw, &s.Total, &date, &s.Notes, &s.Status, &s.PDFURL); err != nil {
		return nil, err
	}
	s.Date = date
	var items []saleItemRow
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode sale items: %w", err)
		}
	}
	s.Items = make([]entity.SaleItem, 0, len(items))
	for _, it := range items {
		s.Items = append(s.Items, entity.SaleItem(it))
	}
	return &s, nil
}

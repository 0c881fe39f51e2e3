package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/period"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReportUseCase reportes de ventas: resumen por producto (HTML persistente), agrupación
// por periodo (JSON) y PDF descargable.
type ReportUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	pdf         ports.SalesReportRenderer
	html        ports.SalesSummaryRenderer
	reports     ports.ArtifactDir // PDFs ad-hoc, se eliminan tras leerlos
	reportes    ports.ArtifactDir // HTML por fecha de generación, se conservan
	loc         *time.Location
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. Las claves de periodo se calculan en loc.
func NewReportUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	pdf ports.SalesReportRenderer,
	html ports.SalesSummaryRenderer,
	reports ports.ArtifactDir,
	reportes ports.ArtifactDir,
	loc *time.Location,
) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		pdf:         pdf,
		html:        html,
		reports:     reports,
		reportes:    reportes,
		loc:         loc,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

func (uc *ReportUseCase) list(ctx context.Context, q dto.SalesReportQuery) ([]*entity.Sale, error) {
	return uc.saleRepo.List(ctx, repository.SaleFilter{From: q.From, To: q.To})
}

// Summary totaliza ventas e ingresos por producto y guarda el reporte HTML del día.
func (uc *ReportUseCase) Summary(ctx context.Context, q dto.SalesReportQuery) (*dto.SalesSummaryResponse, error) {
	list, err := uc.list(ctx, q)
	if err != nil {
		return nil, err
	}
	report, err := uc.buildReport(ctx, q, list)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]dto.ProductSales, len(report.ByProduct))
	for _, r := range report.ByProduct {
		byProduct[r.Name] = dto.ProductSales{Cantidad: r.Quantity, Ingresos: r.Revenue}
	}

	data, err := uc.html.RenderSalesSummary(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("render reporte html: %w", err)
	}
	name := fmt.Sprintf("reporte_%s.html", report.GeneratedAt.Format("2006-01-02"))
	if err := uc.reportes.Write(name, data); err != nil {
		return nil, fmt.Errorf("guardar reporte html: %w", err)
	}
	log.Info().Str("path", name).Int("ventas", report.SalesCount).Msg("reporte de ventas generado")

	return &dto.SalesSummaryResponse{
		TotalVentas:       report.SalesCount,
		VentasPorProducto: byProduct,
		TotalIngresos:     report.TotalAmount,
		ReporteURL:        uc.reportes.URL(name),
	}, nil
}

// Grouped agrupa por día, semana ISO o mes. Con otro tipo devuelve la lista plana.
// Los grupos conservan el orden de las ventas (más recientes primero).
func (uc *ReportUseCase) Grouped(ctx context.Context, q dto.SalesReportQuery) (*dto.GroupedSales, error) {
	list, err := uc.list(ctx, q)
	if err != nil {
		return nil, err
	}
	responses, err := ToSaleResponses(ctx, uc.productRepo, list)
	if err != nil {
		return nil, err
	}
	if !period.Valid(q.Type) {
		return &dto.GroupedSales{Ventas: responses}, nil
	}

	index := map[string]int{}
	groups := make([]dto.SalesGroup, 0)
	for i, s := range list {
		key := period.Key(q.Type, s.Date.In(uc.loc))
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, dto.SalesGroup{Fecha: key, Ventas: []dto.SaleResponse{}, Total: decimal.Zero})
		}
		g := &groups[pos]
		g.Ventas = append(g.Ventas, responses[i])
		g.Total = g.Total.Add(s.Total)
		g.Productos += s.Units()
	}
	return &dto.GroupedSales{Grouped: true, Grupos: groups}, nil
}

// PDF genera el reporte PDF, lo escribe en el directorio de reportes, lo lee y lo elimina.
func (uc *ReportUseCase) PDF(ctx context.Context, q dto.SalesReportQuery) (*dto.FileResponse, error) {
	list, err := uc.list(ctx, q)
	if err != nil {
		return nil, err
	}
	report, err := uc.buildReport(ctx, q, list)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.RenderSalesReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("render reporte pdf: %w", err)
	}
	name := fmt.Sprintf("reporte_%s.pdf", report.GeneratedAt.Format("2006-01-02"))
	return ports.Materialize(uc.reports, name, data)
}

func (uc *ReportUseCase) buildReport(ctx context.Context, q dto.SalesReportQuery, list []*entity.Sale) (ports.SalesReport, error) {
	lookup := NewProductLookup(uc.productRepo)
	report := ports.SalesReport{
		GeneratedAt: uc.now().In(uc.loc),
		From:        q.From,
		To:          q.To,
		Type:        q.Type,
		SalesCount:  len(list),
		TotalAmount: decimal.Zero,
		AverageSale: decimal.Zero,
	}
	byName := map[string]int{}
	for _, s := range list {
		report.TotalAmount = report.TotalAmount.Add(s.Total)
		report.UnitsSold += s.Units()
		names := make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			name, err := lookup.Name(ctx, it.ProductID)
			if err != nil {
				return report, err
			}
			names = append(names, fmt.Sprintf("%s (%d)", name, it.Quantity))
			pos, ok := byName[name]
			if !ok {
				pos = len(report.ByProduct)
				byName[name] = pos
				report.ByProduct = append(report.ByProduct, ports.ProductSalesRow{Name: name, Revenue: decimal.Zero})
			}
			report.ByProduct[pos].Quantity += it.Quantity
			report.ByProduct[pos].Revenue = report.ByProduct[pos].Revenue.Add(it.Subtotal)
		}
		report.Rows = append(report.Rows, ports.SalesReportRow{
			Date:     s.Date.In(uc.loc),
			Ticket:   s.DisplayNumber(),
			Products: strings.Join(names, ", "),
			Status:   s.Status,
			Total:    s.Total,
		})
	}
	if report.SalesCount > 0 {
		report.AverageSale = report.TotalAmount.Div(decimal.NewFromInt(int64(report.SalesCount))).Round(2)
	}
	return report, nil
}

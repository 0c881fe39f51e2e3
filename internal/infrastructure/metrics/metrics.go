// Package metrics expone los contadores Prometheus del autoservicio.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "autoservicio"

// Motivos de rechazo de una venta.
const (
	RejectionValidation        = "validation"
	RejectionNotFound          = "not_found"
	RejectionInsufficientStock = "insufficient_stock"
	RejectionTotalMismatch     = "total_mismatch"
	RejectionDuplicate         = "duplicate"
	RejectionUnknown           = "unknown"
)

// Recorder agrupa los contadores de negocio y de HTTP. Un Recorder nil no registra nada.
type Recorder struct {
	salesCreated   prometheus.Counter
	saleRejections *prometheus.CounterVec
	ticketRenders  *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewRecorder crea los colectores y los registra en reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		salesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_created_total",
			Help:      "Ventas persistidas.",
		}),
		saleRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sale_rejections_total",
			Help:      "Ventas rechazadas por motivo.",
		}, []string{"reason"}),
		ticketRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_renders_total",
			Help:      "Tickets PDF generados en segundo plano por resultado.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg != nil {
		reg.MustRegister(r.salesCreated, r.saleRejections, r.ticketRenders, r.httpRequests, r.httpDuration)
	}
	return r
}

// SaleCreated incrementa el contador de ventas persistidas.
func (r *Recorder) SaleCreated() {
	if r == nil {
		return
	}
	r.salesCreated.Inc()
}

// SaleRejected registra un rechazo clasificado a partir del error.
func (r *Recorder) SaleRejected(err error) {
	if r == nil {
		return
	}
	r.saleRejections.WithLabelValues(ClassifySaleRejection(err)).Inc()
}

// TicketRender registra el resultado de una generación de ticket.
func (r *Recorder) TicketRender(result string) {
	if r == nil {
		return
	}
	r.ticketRenders.WithLabelValues(result).Inc()
}

// ObserveHTTP registra una petición atendida.
func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SalesCreatedCounter expone el contador para pruebas.
func (r *Recorder) SalesCreatedCounter() prometheus.Counter { return r.salesCreated }

// SaleRejectionsCounter expone el contador de rechazos para pruebas.
func (r *Recorder) SaleRejectionsCounter() *prometheus.CounterVec { return r.saleRejections }

// TicketRendersCounter expone el contador de tickets para pruebas.
func (r *Recorder) TicketRendersCounter() *prometheus.CounterVec { return r.ticketRenders }

// ClassifySaleRejection traduce un error de la venta a una etiqueta de métrica.
func ClassifySaleRejection(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return RejectionValidation
	case errors.Is(err, domain.ErrNotFound):
		return RejectionNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return RejectionInsufficientStock
	case errors.Is(err, domain.ErrTotalMismatch):
		return RejectionTotalMismatch
	case errors.Is(err, domain.ErrDuplicate):
		return RejectionDuplicate
	default:
		return RejectionUnknown
	}
}

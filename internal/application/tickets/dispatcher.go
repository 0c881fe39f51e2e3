package tickets

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Resultados reportados a RenderMetrics.
const (
	ResultRendered = "ok"
	ResultFailed   = "error"
	ResultDropped  = "dropped"
)

// Renderer paso de generación que ejecutan los workers.
type Renderer interface {
	RenderAndAttach(ctx context.Context, saleID string) error
}

// RenderMetrics contador por resultado.
type RenderMetrics interface {
	TicketRender(result string)
}

// Dispatcher cola acotada de generación de tickets con workers fijos.
// Submit nunca bloquea la respuesta HTTP: con la cola llena el trabajo se descarta
// y el ticket queda disponible por la ruta bajo demanda.
type Dispatcher struct {
	renderer Renderer
	metrics  RenderMetrics
	jobs     chan string

	mu     sync.RWMutex
	closed bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewDispatcher arranca workers goroutines que consumen una cola de tamaño queueSize.
func NewDispatcher(renderer Renderer, workers, queueSize int, metrics RenderMetrics) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		renderer: renderer,
		metrics:  metrics,
		jobs:     make(chan string, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for saleID := range d.jobs {
		d.run(saleID)
	}
}

func (d *Dispatcher) run(saleID string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("sale_id", saleID).Msg("pánico generando ticket")
			d.observe(ResultFailed)
		}
	}()
	if err := d.renderer.RenderAndAttach(d.ctx, saleID); err != nil {
		log.Error().Err(err).Str("sale_id", saleID).Msg("error generando ticket en segundo plano")
		d.observe(ResultFailed)
		return
	}
	log.Info().Str("sale_id", saleID).Msg("ticket generado")
	d.observe(ResultRendered)
}

func (d *Dispatcher) observe(result string) {
	if d.metrics != nil {
		d.metrics.TicketRender(result)
	}
}

// Submit encola la generación del ticket. Devuelve false si la cola está llena o cerrada.
func (d *Dispatcher) Submit(saleID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.observe(ResultDropped)
		return false
	}
	select {
	case d.jobs <- saleID:
		return true
	default:
		d.observe(ResultDropped)
		return false
	}
}

// Shutdown deja de aceptar trabajos y espera a que terminen los encolados.
// Si ctx vence antes, cancela los trabajos en curso y devuelve ctx.Err().
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return ctx.Err()
	}
}

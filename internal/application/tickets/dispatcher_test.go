package tickets_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoservicio-api/internal/application/tickets"
)

type recordingJob struct {
	mu      sync.Mutex
	done    []string
	fail    map[string]bool
	block   chan struct{}
	started chan string
}

func (r *recordingJob) RenderAndAttach(_ context.Context, saleID string) error {
	if r.started != nil {
		r.started <- saleID
	}
	if r.block != nil {
		<-r.block
	}
	if saleID == "panic" {
		panic("boom")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[saleID] {
		return errors.New("render falló")
	}
	r.done = append(r.done, saleID)
	return nil
}

func (r *recordingJob) Done() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.done...)
}

type resultCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *resultCounter) TicketRender(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[result]++
}

func (c *resultCounter) get(result string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[result]
}

func TestDispatcher_EjecutaTrabajosYSobreviveFallos(t *testing.T) {
	job := &recordingJob{fail: map[string]bool{"b": true}}
	metrics := &resultCounter{}
	d := tickets.NewDispatcher(job, 2, 10, metrics)

	for _, id := range []string{"a", "b", "panic", "c"} {
		require.True(t, d.Submit(id))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	assert.ElementsMatch(t, []string{"a", "c"}, job.Done())
	assert.Equal(t, 2, metrics.get(tickets.ResultRendered))
	assert.Equal(t, 2, metrics.get(tickets.ResultFailed))
}

func TestDispatcher_ColaLlenaDescarta(t *testing.T) {
	job := &recordingJob{block: make(chan struct{}), started: make(chan string, 1)}
	metrics := &resultCounter{}
	d := tickets.NewDispatcher(job, 1, 1, metrics)

	require.True(t, d.Submit("en-curso"))
	<-job.started // el worker tomó el primero y quedó bloqueado

	require.True(t, d.Submit("en-cola"))
	assert.False(t, d.Submit("descartado"), "con la cola llena Submit no bloquea")
	assert.Equal(t, 1, metrics.get(tickets.ResultDropped))

	close(job.block)
	require.NoError(t, d.Shutdown(context.Background()))
	assert.ElementsMatch(t, []string{"en-curso", "en-cola"}, job.Done())
}

func TestDispatcher_DespuesDeShutdownRechaza(t *testing.T) {
	d := tickets.NewDispatcher(&recordingJob{}, 1, 1, nil)
	require.NoError(t, d.Shutdown(context.Background()))
	assert.False(t, d.Submit("tarde"))
	// Shutdown es idempotente
	assert.NoError(t, d.Shutdown(context.Background()))
}

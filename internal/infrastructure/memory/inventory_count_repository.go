package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
)

var _ repository.InventoryCountRepository = (*InventoryCountRepo)(nil)

type countDoc struct {
	c   entity.InventoryCount
	seq uint64
}

// InventoryCountRepo conteos físicos en memoria.
type InventoryCountRepo struct {
	mu    sync.RWMutex
	items map[string]countDoc
	n     uint64 // orden de inserción
}

func (r *InventoryCountRepo) nextSeq() uint64 {
	r.n++
	return r.n
}

func (r *InventoryCountRepo) Create(_ context.Context, count *entity.InventoryCount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[count.ID]; ok {
		return domain.ErrDuplicate
	}
	r.items[count.ID] = countDoc{c: *count, seq: r.nextSeq()}
	return nil
}

func (r *InventoryCountRepo) GetByID(_ context.Context, id string) (*entity.InventoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	c := d.c
	return &c, nil
}

func (r *InventoryCountRepo) List(_ context.Context) ([]*entity.InventoryCount, error) {
	r.mu.RLock()
	docs := make([]countDoc, 0, len(r.items))
	for _, d := range r.items {
		docs = append(docs, d)
	}
	r.mu.RUnlock()
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].c.CountedAt.Equal(docs[j].c.CountedAt) {
			return docs[i].c.CountedAt.After(docs[j].c.CountedAt)
		}
		return docs[i].seq > docs[j].seq
	})
	list := make([]*entity.InventoryCount, 0, len(docs))
	for _, d := range docs {
		c := d.c
		list = append(list, &c)
	}
	return list, nil
}

func (r *InventoryCountRepo) Update(_ context.Context, count *entity.InventoryCount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[count.ID]
	if !ok {
		return domain.ErrNotFound
	}
	d.c = *count
	r.items[count.ID] = d
	return nil
}

func (r *InventoryCountRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = map[string]countDoc{}
	return nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productDoc struct {
	p   entity.Product
	seq uint64
}

// ProductRepo productos en memoria.
type ProductRepo struct {
	mu    sync.RWMutex
	items map[string]productDoc
	n     uint64 // orden de inserción
}

func (r *ProductRepo) nextSeq() uint64 {
	r.n++
	return r.n
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.items[product.ID] = productDoc{p: *product, seq: r.nextSeq()}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	p := doc.p
	return &p, nil
}

// List devuelve los productos del más reciente al más antiguo.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.RLock()
	docs := make([]productDoc, 0, len(r.items))
	for _, d := range r.items {
		docs = append(docs, d)
	}
	r.mu.RUnlock()
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].p.CreatedAt.Equal(docs[j].p.CreatedAt) {
			return docs[i].p.CreatedAt.After(docs[j].p.CreatedAt)
		}
		return docs[i].seq > docs[j].seq
	})
	list := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		p := d.p
		list = append(list, &p)
	}
	return list, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.items[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	doc.p.Name = product.Name
	doc.p.Price = product.Price
	doc.p.Quantity = product.Quantity
	doc.p.UpdatedAt = product.UpdatedAt
	r.items[product.ID] = doc
	return nil
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.p.Quantity = quantity
	doc.p.UpdatedAt = time.Now()
	r.items[id] = doc
	return nil
}

func (r *ProductRepo) ResetAllQuantities(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, doc := range r.items {
		doc.p.Quantity = 0
		doc.p.UpdatedAt = now
		r.items[id] = doc
	}
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

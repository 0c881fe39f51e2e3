package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

type saleDoc struct {
	s   entity.Sale
	seq uint64
}

// SaleRepo ventas en memoria; numeroTicket es único solo cuando viene informado.
type SaleRepo struct {
	mu    sync.RWMutex
	items map[string]saleDoc
	n     uint64 // orden de inserción
}

func (r *SaleRepo) nextSeq() uint64 {
	r.n++
	return r.n
}

func cloneSale(s *entity.Sale) entity.Sale {
	c := *s
	c.Items = append([]entity.SaleItem(nil), s.Items...)
	if s.TicketNumber != nil {
		n := *s.TicketNumber
		c.TicketNumber = &n
	}
	if s.PDFURL != nil {
		u := *s.PDFURL
		c.PDFURL = &u
	}
	return c
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	if sale.TicketNumber != nil {
		for _, d := range r.items {
			if d.s.TicketNumber != nil && *d.s.TicketNumber == *sale.TicketNumber {
				return domain.ErrDuplicate
			}
		}
	}
	r.items[sale.ID] = saleDoc{s: cloneSale(sale), seq: r.nextSeq()}
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	s := cloneSale(&d.s)
	return &s, nil
}

func (r *SaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	r.mu.RLock()
	docs := make([]saleDoc, 0, len(r.items))
	for _, d := range r.items {
		if filter.From != nil && d.s.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && d.s.Date.After(*filter.To) {
			continue
		}
		docs = append(docs, d)
	}
	r.mu.RUnlock()
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].s.Date.Equal(docs[j].s.Date) {
			return docs[i].s.Date.After(docs[j].s.Date)
		}
		return docs[i].seq > docs[j].seq
	})
	list := make([]*entity.Sale, 0, len(docs))
	for _, d := range docs {
		s := cloneSale(&d.s)
		list = append(list, &s)
	}
	return list, nil
}

func (r *SaleRepo) SetPDFURL(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.s.PDFURL = &url
	r.items[id] = d
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userDoc struct {
	u   entity.User
	seq uint64
}

// UserRepo usuarios en memoria; username y email son únicos (email sin distinguir mayúsculas).
type UserRepo struct {
	mu    sync.RWMutex
	items map[string]userDoc
	n     uint64 // orden de inserción
}

func (r *UserRepo) nextSeq() uint64 {
	r.n++
	return r.n
}

// conflicts revisa unicidad contra todos los usuarios excepto selfID. Requiere el lock tomado.
func (r *UserRepo) conflicts(u *entity.User, selfID string) bool {
	for id, d := range r.items {
		if id == selfID {
			continue
		}
		if d.u.Username == u.Username {
			return true
		}
		if u.Email != "" && strings.EqualFold(d.u.Email, u.Email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[user.ID]; ok || r.conflicts(user, "") {
		return domain.ErrDuplicate
	}
	r.items[user.ID] = userDoc{u: *user, seq: r.nextSeq()}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	u := d.u
	return &u, nil
}

func (r *UserRepo) find(match func(*entity.User) bool) *entity.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.items {
		if match(&d.u) {
			u := d.u
			return &u
		}
	}
	return nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	docs := make([]userDoc, 0, len(r.items))
	for _, d := range r.items {
		docs = append(docs, d)
	}
	r.mu.RUnlock()
	sort.Slice(docs, func(i, j int) bool { return docs[i].seq > docs[j].seq })
	list := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		u := d.u
		list = append(list, &u)
	}
	return list, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.conflicts(user, user.ID) {
		return domain.ErrDuplicate
	}
	d.u = *user
	r.items[user.ID] = d
	return nil
}

func (r *UserRepo) SetActivity(_ context.Context, id string, active bool, lastActive *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.u.IsActive = active
	if lastActive != nil {
		d.u.LastActive = *lastActive
	}
	d.u.UpdatedAt = time.Now()
	r.items[id] = d
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

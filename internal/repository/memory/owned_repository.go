package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"portfolio-backend/internal/domain"
)

// OwnedRepo is an owner-filtered table for one resource kind.
type OwnedRepo[T any, PT domain.Resource[T], P domain.Patch[T]] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func NewOwnedRepo[T any, PT domain.Resource[T], P domain.Patch[T]]() *OwnedRepo[T, PT, P] {
	return &OwnedRepo[T, PT, P]{rows: make(map[string]T)}
}

func (r *OwnedRepo[T, PT, P]) Create(ctx context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[PT(item).Meta().ID] = detach(*item)
	return nil
}

// ListByOwner returns the owner's rows newest first, ties broken by id.
func (r *OwnedRepo[T, PT, P]) ListByOwner(ctx context.Context, ownerID string) ([]T, error) {
	r.mu.RLock()
	out := make([]T, 0)
	for _, row := range r.rows {
		if PT(&row).Meta().UserID == ownerID {
			out = append(out, detach(row))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := PT(&out[i]).Meta(), PT(&out[j]).Meta()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out, nil
}

func (r *OwnedRepo[T, PT, P]) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok || PT(&row).Meta().UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	row = detach(row)
	return &row, nil
}

func (r *OwnedRepo[T, PT, P]) Update(ctx context.Context, id, ownerID string, patch P) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || PT(&row).Meta().UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&row)
	PT(&row).Meta().UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	r.rows[id] = detach(row)
	return &row, nil
}

func (r *OwnedRepo[T, PT, P]) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || PT(&row).Meta().UserID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// detach copies the slice fields of a row so callers never share backing arrays with the table.
func detach[T any](row T) T {
	switch v := any(&row).(type) {
	case *domain.Job:
		v.Skills = slices.Clone(v.Skills)
	case *domain.Education:
		v.Skills = slices.Clone(v.Skills)
	case *domain.Project:
		v.Skills = slices.Clone(v.Skills)
	}
	return row
}

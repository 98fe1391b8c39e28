package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"horeca-board/services/banner/internal/entity"
	"horeca-board/services/banner/internal/repo/persistent"
)

// memRepo is an in-memory BannerRepository that counts writes.
type memRepo struct {
	mu      sync.Mutex
	rows    map[string]entity.Banner
	seq     int
	writes  int
	listErr error
	clock   func() time.Time
}

var _ persistent.BannerRepository = (*memRepo)(nil)

func newMemRepo(clock func() time.Time) *memRepo {
	return &memRepo{rows: map[string]entity.Banner{}, clock: clock}
}

func (r *memRepo) Create(_ context.Context, b *entity.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.writes++
	b.ID = fmt.Sprintf("b%d", r.seq)
	b.CreatedAt = r.clock().Add(time.Duration(r.seq) * time.Millisecond)
	b.UpdatedAt = b.CreatedAt
	r.rows[b.ID] = *b
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &b, nil
}

func (r *memRepo) list(keep func(b entity.Banner) bool) []*entity.Banner {
	out := []*entity.Banner{}
	for _, b := range r.rows {
		if keep(b) {
			b := b
			out = append(out, &b)
		}
	}
	entity.SortForDisplay(out)
	return out
}

func (r *memRepo) ListActive(_ context.Context, now time.Time) ([]*entity.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.list(func(b entity.Banner) bool {
		return b.Status == entity.StatusActive && b.IsActive && !b.ExpiresAt.Before(now)
	}), nil
}

func (r *memRepo) ListByOwner(_ context.Context, userID string) ([]*entity.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(b entity.Banner) bool { return b.UserID == userID }), nil
}

func (r *memRepo) ListByStatus(_ context.Context, status entity.Status) ([]*entity.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(b entity.Banner) bool { return b.Status == status }), nil
}

func (r *memRepo) TransitionStatus(_ context.Context, id string, from []entity.Status, to entity.Status, expiresAt *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if b.Status == f {
			r.writes++
			b.Status = to
			if expiresAt != nil {
				b.ExpiresAt = *expiresAt
			}
			r.rows[id] = b
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) AdjustPriority(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return entity.ErrNotFound
	}
	r.writes++
	b.Priority += delta
	r.rows[id] = b
	return nil
}

func (r *memRepo) ToggleActive(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return entity.ErrNotFound
	}
	r.writes++
	b.IsActive = !b.IsActive
	r.rows[id] = b
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return entity.ErrNotFound
	}
	r.writes++
	delete(r.rows, id)
	return nil
}

func (r *memRepo) ExpireElapsed(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.rows {
		if b.Status == entity.StatusActive && b.ExpiresAt.Before(now) {
			b.Status = entity.StatusExpired
			r.rows[id] = b
			n++
		}
	}
	r.writes += int(n)
	return n, nil
}

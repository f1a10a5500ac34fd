package memstore

import (
	"context"
	"sync"

	domain "agrifund-backend/internal/domain/loan"
)

// LoanRepository keeps applications in memory. It is the default backend and
// the one handler tests run against; the mysql package is the durable
// alternative behind the same interface.
type LoanRepository struct {
	mu     sync.RWMutex
	nextID uint64
	byUser map[string][]*domain.LoanApplication
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{byUser: make(map[string][]*domain.LoanApplication)}
}

func (r *LoanRepository) Create(ctx context.Context, l *domain.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	l.ID = r.nextID
	cp := *l
	r.byUser[l.UserID] = append(r.byUser[l.UserID], &cp)
	return nil
}

// FindLatestByUser picks the greatest CreatedAt; ties resolve to the record
// inserted last (highest ID).
func (r *LoanRepository) FindLatestByUser(ctx context.Context, userID string) (*domain.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	apps := r.byUser[userID]
	if len(apps) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := apps[0]
	for _, a := range apps[1:] {
		if a.CreatedAt.After(latest.CreatedAt) ||
			(a.CreatedAt.Equal(latest.CreatedAt) && a.ID > latest.ID) {
			latest = a
		}
	}
	cp := *latest
	return &cp, nil
}

func (r *LoanRepository) FindAllByUser(ctx context.Context, userID string) ([]domain.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	apps := r.byUser[userID]
	out := make([]domain.LoanApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, *a)
	}
	return out, nil
}

func (r *LoanRepository) Update(ctx context.Context, l *domain.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.byUser[l.UserID] {
		if a.ApplicationID == l.ApplicationID {
			cp := *l
			r.byUser[l.UserID][i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *LoanRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byUser[userID])), nil
}

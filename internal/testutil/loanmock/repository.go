package loanmock

import (
	"context"

	domain "agrifund-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset methods fall back to "no data" behavior.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.LoanApplication) error
	FindLatestByUserFn func(ctx context.Context, userID string) (*domain.LoanApplication, error)
	FindAllByUserFn    func(ctx context.Context, userID string) ([]domain.LoanApplication, error)
	UpdateFn           func(ctx context.Context, l *domain.LoanApplication) error
	CountByUserFn      func(ctx context.Context, userID string) (int64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) FindLatestByUser(ctx context.Context, userID string) (*domain.LoanApplication, error) {
	if m.FindLatestByUserFn != nil {
		return m.FindLatestByUserFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindAllByUser(ctx context.Context, userID string) ([]domain.LoanApplication, error) {
	if m.FindAllByUserFn != nil {
		return m.FindAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) Update(ctx context.Context, l *domain.LoanApplication) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, l)
	}
	return nil
}

func (m *Repo) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.CountByUserFn != nil {
		return m.CountByUserFn(ctx, userID)
	}
	return 0, nil
}

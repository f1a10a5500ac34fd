package loan

import "context"

// Repository is the storage contract the ledger depends on. Implementations
// must return ErrNotFound from FindLatestByUser when the user has no
// applications, and must keep FindAllByUser in insertion order.
type Repository interface {
	Create(ctx context.Context, l *LoanApplication) error
	FindLatestByUser(ctx context.Context, userID string) (*LoanApplication, error)
	FindAllByUser(ctx context.Context, userID string) ([]LoanApplication, error)
	Update(ctx context.Context, l *LoanApplication) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

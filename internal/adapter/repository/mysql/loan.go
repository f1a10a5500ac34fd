package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "agrifund-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *LoanRepository) Tx(ctx context.Context, fn func(repo domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LoanRepository{db: tx})
	})
}

func (r *LoanRepository) Create(ctx context.Context, l *domain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) FindLatestByUser(ctx context.Context, userID string) (*domain.LoanApplication, error) {
	var out domain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) FindAllByUser(ctx context.Context, userID string) ([]domain.LoanApplication, error) {
	var out []domain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return out, nil
}

func (r *LoanRepository) Update(ctx context.Context, l *domain.LoanApplication) error {
	res := r.db.WithContext(ctx).Save(l)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&domain.LoanApplication{}).
		Where("user_id = ?", userID).
		Count(&n)
	return n, res.Error
}

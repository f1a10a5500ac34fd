package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "agrifund-backend/internal/domain/loan"
)

// Guard: the mock must keep satisfying domain.Repository.
var _ domain.Repository = (*Repo)(nil)

func TestDefaults(t *testing.T) {
	m := &Repo{}
	ctx := context.Background()

	if err := m.Create(ctx, &domain.LoanApplication{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if _, err := m.FindLatestByUser(ctx, "u"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindLatestByUser default err = %v", err)
	}
	if all, err := m.FindAllByUser(ctx, "u"); err != nil || all != nil {
		t.Fatalf("FindAllByUser default = %v, %v", all, err)
	}
	if n, err := m.CountByUser(ctx, "u"); err != nil || n != 0 {
		t.Fatalf("CountByUser default = %d, %v", n, err)
	}
}

func TestOverrides(t *testing.T) {
	want := &domain.LoanApplication{ApplicationID: "abc"}
	m := &Repo{
		FindLatestByUserFn: func(ctx context.Context, userID string) (*domain.LoanApplication, error) {
			return want, nil
		},
	}
	got, err := m.FindLatestByUser(context.Background(), "u")
	if err != nil || got != want {
		t.Fatalf("override not used: %v, %v", got, err)
	}
}

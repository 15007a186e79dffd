package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/models"
)

type fakeTariffRepo struct {
	tariff *models.Tariff
	err    error
}

func (f *fakeTariffRepo) GetActive(context.Context) (*models.Tariff, error) {
	return f.tariff, f.err
}

func TestTariffService_UsesStoredTariff(t *testing.T) {
	t.Parallel()

	repo := &fakeTariffRepo{tariff: &models.Tariff{Name: "Office", PricePerReading: decimal.RequireFromString("0.75"), IsActive: true}}
	svc := NewTariffService(repo, decimal.NewFromInt(1), zap.NewNop())

	got, err := svc.ActiveTariff(context.Background())
	if err != nil {
		t.Fatalf("ActiveTariff: %v", err)
	}
	if got.Name != "Office" || !got.PricePerReading.Equal(decimal.RequireFromString("0.75")) {
		t.Fatalf("unexpected tariff: %+v", got)
	}
}

func TestTariffService_FallsBackOnRepoError(t *testing.T) {
	t.Parallel()

	repo := &fakeTariffRepo{err: errors.New("connection refused")}
	svc := NewTariffService(repo, decimal.NewFromInt(3), zap.NewNop())

	got, err := svc.ActiveTariff(context.Background())
	if err != nil {
		t.Fatalf("ActiveTariff: %v", err)
	}
	if !got.PricePerReading.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("price=%s want 3", got.PricePerReading)
	}
}

func TestTariffService_NoTariffConfigured(t *testing.T) {
	t.Parallel()

	svc := NewTariffService(nil, decimal.Zero, zap.NewNop())
	if _, err := svc.ActiveTariff(context.Background()); !errors.Is(err, ErrNoTariff) {
		t.Fatalf("err=%v want ErrNoTariff", err)
	}

	failing := NewTariffService(&fakeTariffRepo{err: errors.New("boom")}, decimal.Zero, zap.NewNop())
	if _, err := failing.ActiveTariff(context.Background()); !errors.Is(err, ErrNoTariff) {
		t.Fatalf("err=%v want ErrNoTariff", err)
	}
}

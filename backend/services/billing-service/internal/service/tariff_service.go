package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/models"
)

// ErrNoTariff is returned when neither a stored nor a default tariff is available.
var ErrNoTariff = errors.New("tariff: no tariff configured")

// TariffRepository loads the active tariff from storage.
type TariffRepository interface {
	GetActive(ctx context.Context) (*models.Tariff, error)
}

// TariffService provides the rate per reading with a configured fallback.
type TariffService struct {
	repo          TariffRepository
	defaultTariff models.Tariff
	logger        *zap.Logger
}

// NewTariffService returns a service; repo may be nil when no database is configured.
func NewTariffService(repo TariffRepository, defaultPrice decimal.Decimal, logger *zap.Logger) *TariffService {
	return &TariffService{
		repo: repo,
		defaultTariff: models.Tariff{
			Name:            "Default",
			PricePerReading: defaultPrice,
			IsActive:        true,
		},
		logger: logger,
	}
}

// ActiveTariff returns the stored active tariff or the default.
func (s *TariffService) ActiveTariff(ctx context.Context) (*models.Tariff, error) {
	if s.repo == nil {
		return s.fallback(nil)
	}

	tariff, err := s.repo.GetActive(ctx)
	if err != nil {
		s.logger.Warn("active tariff lookup failed, using default", zap.Error(err))
		return s.fallback(err)
	}
	return tariff, nil
}

func (s *TariffService) fallback(cause error) (*models.Tariff, error) {
	if !s.defaultTariff.PricePerReading.IsPositive() {
		if cause != nil {
			return nil, errors.Join(ErrNoTariff, cause)
		}
		return nil, ErrNoTariff
	}
	t := s.defaultTariff
	return &t, nil
}

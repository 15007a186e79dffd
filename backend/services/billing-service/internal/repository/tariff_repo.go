package repository

import (
	"context"
	"database/sql"
	"errors"

	"meterdesk/backend/services/billing-service/internal/models"
)

// ErrNoActiveTariff means the tariffs table has no active row.
var ErrNoActiveTariff = errors.New("tariff: no active tariff")

// TariffRepository reads tariffs from Postgres.
type TariffRepository struct {
	db *sql.DB
}

// NewTariffRepository returns repository.
func NewTariffRepository(db *sql.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

// GetActive returns the most recently updated active tariff.
func (r *TariffRepository) GetActive(ctx context.Context) (*models.Tariff, error) {
	const query = `
		SELECT id, name, price_per_reading, is_active, created_at, updated_at
		FROM tariffs
		WHERE is_active = true
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var t models.Tariff
	if err := r.db.QueryRowContext(ctx, query).Scan(
		&t.ID,
		&t.Name,
		&t.PricePerReading,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveTariff
		}
		return nil, err
	}
	return &t, nil
}

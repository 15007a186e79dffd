package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tariff describes the price charged per billable reading.
type Tariff struct {
	ID              int64           `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	PricePerReading decimal.Decimal `db:"price_per_reading" json:"price_per_reading"`
	IsActive        bool            `db:"is_active" json:"is_active"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

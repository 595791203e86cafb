package entity

import "github.com/shopspring/decimal"

// Stats resumen de ocupación del almacén.
type Stats struct {
	Total         int
	Available     int
	Occupied      int
	OccupancyRate decimal.Decimal // porcentaje con un decimal
}

// NewStats calcula la tasa de ocupación redondeada a un decimal. Con total 0 la tasa es 0.
func NewStats(total, occupied int) Stats {
	rate := decimal.Zero
	if total > 0 {
		rate = decimal.NewFromInt(int64(occupied)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			Round(1)
	}
	return Stats{
		Total:         total,
		Available:     total - occupied,
		Occupied:      occupied,
		OccupancyRate: rate,
	}
}

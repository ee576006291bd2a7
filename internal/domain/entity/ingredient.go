package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un insumo (tabla insumos). Stock es el saldo del ledger de stock.
type Ingredient struct {
	ID          int64
	Name        string
	UnitMeasure string          // kg, g, l, ml, un
	Stock       decimal.Decimal // nunca negativo en estado confirmado
	Minimum     *decimal.Decimal
	AverageCost decimal.Decimal // costo medio ponderado por unidad (custo_medio); se recalcula en cada entrada
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QuantityPlaces decimales de saldos y cantidades de insumo (NUMERIC(14,4)).
const QuantityPlaces = 4

// RoundQuantity normaliza una cantidad de insumo a QuantityPlaces decimales.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityPlaces)
}

// BelowMinimum indica si el saldo quedó por debajo del mínimo configurado.
func (i *Ingredient) BelowMinimum() bool {
	return i.Minimum != nil && i.Stock.LessThan(*i.Minimum)
}

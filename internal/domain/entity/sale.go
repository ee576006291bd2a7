package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Sale es un registro inmutable de venta (tabla vendas). ComandaID es nil en ventas directas del PDV.
type Sale struct {
	ID        int64
	BatchID   string
	ProductID int64
	ComandaID *int64
	Quantity  int
	UnitPrice decimal.Decimal
	SoldAt    time.Time
}

// MaxLineQuantity es el tope de unidades por línea; las columnas de cantidad son INTEGER.
const MaxLineQuantity = math.MaxInt32

// ValidQuantity indica si q cabe en una línea de venta o de comanda.
func ValidQuantity(q int) bool {
	return q > 0 && q <= MaxLineQuantity
}

// Subtotal = UnitPrice * Quantity redondeado a centavos.
func (s *Sale) Subtotal() decimal.Decimal {
	return LineSubtotal(s.UnitPrice, s.Quantity)
}

// LineSubtotal calcula precio * cantidad con redondeo a 2 decimales.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

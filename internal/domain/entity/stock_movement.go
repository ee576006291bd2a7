package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de stock.
const (
	MovementTypeSale    = "SALE"
	MovementTypeRestock = "RESTOCK"
)

// StockMovement registra cada cambio de saldo de un insumo (tabla movimentos_estoque).
// Quantity es negativo en salidas.
type StockMovement struct {
	ID           int64
	IngredientID int64
	Type         string
	Quantity     decimal.Decimal
	Previous     decimal.Decimal
	Resulting    decimal.Decimal
	Reference    string // batch_id de la venta o referencia libre de la entrada
	CreatedAt    time.Time
}

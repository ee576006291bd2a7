package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest body para POST /api/insumos/:id/entradas.
type RestockRequest struct {
	Quantity  decimal.Decimal  `json:"quantidade"`
	Reference string           `json:"referencia,omitempty"`
	UnitCost  *decimal.Decimal `json:"custo_unitario,omitempty"` // recalcula custo_medio si viene
}

// StockMovementResponse movimiento del ledger de stock.
type StockMovementResponse struct {
	ID           int64           `json:"id"`
	IngredientID int64           `json:"insumo_id"`
	Type         string          `json:"tipo"`
	Quantity     decimal.Decimal `json:"quantidade"`
	Previous     decimal.Decimal `json:"saldo_anterior"`
	Resulting    decimal.Decimal `json:"saldo_resultante"`
	Reference    string          `json:"referencia"`
	CreatedAt    time.Time       `json:"criado_em"`
}

// LowStockSuggestionDTO insumo por debajo del mínimo con la cantidad sugerida de compra.
type LowStockSuggestionDTO struct {
	IngredientID      int64           `json:"insumo_id"`
	Name              string          `json:"nome"`
	UnitMeasure       string          `json:"unidade_medida"`
	CurrentStock      decimal.Decimal `json:"estoque_atual"`
	Minimum           decimal.Decimal `json:"estoque_minimo"`
	IdealStock        decimal.Decimal `json:"estoque_ideal"`       // Minimum * 1.5
	SuggestedOrderQty decimal.Decimal `json:"quantidade_sugerida"` // IdealStock - CurrentStock
	Priority          int             `json:"prioridade"`          // 1 = más urgente
}

// DeductionDTO resultado de la baja de un insumo en una venta.
type DeductionDTO struct {
	IngredientID int64           `json:"insumo_id"`
	Name         string          `json:"nome"`
	UnitMeasure  string          `json:"unidade_medida"`
	Deducted     decimal.Decimal `json:"quantidade_baixada"`
	Remaining    decimal.Decimal `json:"estoque_restante"`
}

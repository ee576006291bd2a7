package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest línea del carrito.
type CartItemRequest struct {
	ProductID int64 `json:"produto_id"`
	Quantity  int   `json:"quantidade"`
}

// RegisterSaleRequest body para POST /api/vendas.
type RegisterSaleRequest struct {
	Items []CartItemRequest `json:"itens"`
}

// SaleLineResponse venta registrada por línea del carrito.
type SaleLineResponse struct {
	SaleID      int64           `json:"venda_id"`
	ProductID   int64           `json:"produto_id"`
	ProductName string          `json:"produto_nome,omitempty"`
	ComandaID   *int64          `json:"comanda_id,omitempty"`
	Quantity    int             `json:"quantidade"`
	UnitPrice   decimal.Decimal `json:"preco_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	SoldAt      time.Time       `json:"data_venda"`
}

// SaleConfirmation respuesta de RegisterSale.
type SaleConfirmation struct {
	BatchID    string             `json:"lote_id"`
	Sales      []SaleLineResponse `json:"vendas"`
	Total      decimal.Decimal    `json:"total"`
	Deductions []DeductionDTO     `json:"baixas"`
	SoldAt     time.Time          `json:"data_venda"`
}

// SaleListResponse histórico paginado.
type SaleListResponse struct {
	Items []SaleLineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

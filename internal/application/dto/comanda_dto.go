package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddItemRequest body para POST /api/comandas/:id/itens.
type AddItemRequest struct {
	ProductID int64  `json:"produto_id"`
	Quantity  int    `json:"quantidade"`
	Notes     string `json:"observacoes,omitempty"`
}

// PaymentRequest body para POST /api/comandas/:id/pagamento.
type PaymentRequest struct {
	AmountTendered decimal.Decimal `json:"valor_pago"`
	PaymentMethod  string          `json:"forma_pagamento"`
}

// ComandaItemResponse línea de comanda.
type ComandaItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"produto_id"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"observacoes,omitempty"`
	AddedAt   time.Time       `json:"data_adicao"`
}

// ComandaResponse comanda con sus items.
type ComandaResponse struct {
	ID             int64                 `json:"id"`
	TableID        int64                 `json:"mesa_id"`
	Status         string                `json:"status"`
	Total          decimal.Decimal       `json:"total"`
	PaymentMethod  string                `json:"forma_pagamento,omitempty"`
	AmountTendered *decimal.Decimal      `json:"valor_pago,omitempty"`
	Change         *decimal.Decimal      `json:"troco,omitempty"`
	OpenedAt       time.Time             `json:"data_abertura"`
	ClosedAt       *time.Time            `json:"data_fechamento,omitempty"`
	Items          []ComandaItemResponse `json:"itens"`
}

// PaymentResponse resultado de CloseAndPay.
type PaymentResponse struct {
	Comanda    ComandaResponse    `json:"comanda"`
	Change     decimal.Decimal    `json:"troco"`
	BatchID    string             `json:"lote_id"`
	Sales      []SaleLineResponse `json:"vendas"`
	Deductions []DeductionDTO     `json:"baixas"`
}

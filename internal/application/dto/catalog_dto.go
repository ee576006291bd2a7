package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientRequest body para POST /api/insumos.
type IngredientRequest struct {
	Name        string           `json:"nome"`
	UnitMeasure string           `json:"unidade_medida"`
	Stock       decimal.Decimal  `json:"estoque_atual"`
	Minimum     *decimal.Decimal `json:"estoque_minimo,omitempty"`
	UnitCost    *decimal.Decimal `json:"custo_unitario,omitempty"`
}

// UpdateIngredientRequest campos opcionales; el saldo solo cambia vía entradas y ventas.
type UpdateIngredientRequest struct {
	Name        *string          `json:"nome,omitempty"`
	UnitMeasure *string          `json:"unidade_medida,omitempty"`
	Minimum     *decimal.Decimal `json:"estoque_minimo,omitempty"`
}

// IngredientResponse insumo.
type IngredientResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"nome"`
	UnitMeasure string           `json:"unidade_medida"`
	Stock       decimal.Decimal  `json:"estoque_atual"`
	Minimum     *decimal.Decimal `json:"estoque_minimo,omitempty"`
	AverageCost decimal.Decimal  `json:"custo_medio"`
	UpdatedAt   time.Time        `json:"atualizado_em"`
}

// CreateProductRequest body para POST /api/produtos.
type CreateProductRequest struct {
	Name  string          `json:"nome"`
	Price decimal.Decimal `json:"preco_venda"`
}

// ProductResponse producto del cardápio.
type ProductResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"nome"`
	Price decimal.Decimal `json:"preco_venda"`
}

// RecipeEntryRequest body para POST /api/fichas-tecnicas.
type RecipeEntryRequest struct {
	ProductID       int64           `json:"produto_id"`
	IngredientID    int64           `json:"insumo_id"`
	QuantityPerUnit decimal.Decimal `json:"quantidade_necessaria"`
}

// RecipeEntryResponse línea de ficha técnica con datos del insumo.
type RecipeEntryResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"produto_id"`
	IngredientID    int64           `json:"insumo_id"`
	IngredientName  string          `json:"insumo_nome"`
	UnitMeasure     string          `json:"unidade_medida"`
	QuantityPerUnit decimal.Decimal `json:"quantidade_necessaria"`
}

// CreateTableRequest body para POST /api/mesas.
type CreateTableRequest struct {
	Number   int    `json:"numero"`
	Capacity int    `json:"capacidade"`
	Location string `json:"localizacao,omitempty"`
}

// TableResponse mesa.
type TableResponse struct {
	ID       int64  `json:"id"`
	Number   int    `json:"numero"`
	Capacity int    `json:"capacidade"`
	Location string `json:"localizacao,omitempty"`
	Status   string `json:"status"`
}

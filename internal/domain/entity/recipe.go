package entity

import "github.com/shopspring/decimal"

// RecipeEntry es una línea de ficha técnica: cuánto de un insumo consume una unidad vendida.
// IngredientName y UnitMeasure vienen del JOIN con insumos en las lecturas.
type RecipeEntry struct {
	ID              int64
	ProductID       int64
	IngredientID    int64
	QuantityPerUnit decimal.Decimal
	IngredientName  string
	UnitMeasure     string
}

package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LowStockSource es lo mínimo que necesita el reporte (lo implementa IngredientRepository).
type LowStockSource interface {
	ListBelowMinimum(ctx context.Context) ([]*entity.Ingredient, error)
}

// LowStockUseCase genera la lista de reposición de insumos bajo el stock mínimo.
type LowStockUseCase struct {
	source LowStockSource
}

// NewLowStockUseCase construye el caso de uso de reposición.
func NewLowStockUseCase(source LowStockSource) *LowStockUseCase {
	return &LowStockUseCase{source: source}
}

// GenerateList devuelve los insumos bajo el mínimo con la cantidad sugerida de compra,
// ordenados por déficit relativo (el más agotado primero).
func (uc *LowStockUseCase) GenerateList(ctx context.Context) ([]dto.LowStockSuggestionDTO, error) {
	raw, err := uc.source.ListBelowMinimum(ctx)
	if err != nil {
		return nil, domain.Storage(err)
	}
	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.LowStockSuggestionDTO, 0, len(raw))
	for _, ing := range raw {
		if !ing.BelowMinimum() {
			continue
		}
		ideal := ing.Minimum.Mul(factor)
		suggested := ideal.Sub(ing.Stock)
		if suggested.LessThan(decimal.Zero) {
			suggested = decimal.Zero
		}
		suggestions = append(suggestions, dto.LowStockSuggestionDTO{
			IngredientID:      ing.ID,
			Name:              ing.Name,
			UnitMeasure:       ing.UnitMeasure,
			CurrentStock:      ing.Stock,
			Minimum:           *ing.Minimum,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		})
	}

	// Déficit relativo = (mínimo - actual) / mínimo; empate por déficit absoluto.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra := relativeDeficit(a)
		rb := relativeDeficit(b)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return a.Minimum.Sub(a.CurrentStock).GreaterThan(b.Minimum.Sub(b.CurrentStock))
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func relativeDeficit(s dto.LowStockSuggestionDTO) decimal.Decimal {
	if s.Minimum.IsZero() {
		return decimal.Zero
	}
	return s.Minimum.Sub(s.CurrentStock).Div(s.Minimum)
}

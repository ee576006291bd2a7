package catalog

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// GetRecipe devuelve la ficha técnica del producto con nombre y unidad de cada insumo.
func (uc *UseCase) GetRecipe(ctx context.Context, productID int64) ([]*dto.RecipeEntryResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, domain.Storage(err)
	}
	if p == nil {
		return nil, domain.ProductNotFound(productID)
	}
	entries, err := uc.repos.Recipes.ListByProduct(ctx, productID)
	if err != nil {
		return nil, domain.Storage(err)
	}
	out := make([]*dto.RecipeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toRecipeResponse(e))
	}
	return out, nil
}

// AddRecipeEntry vincula un insumo al producto; ambos deben existir.
func (uc *UseCase) AddRecipeEntry(ctx context.Context, in dto.RecipeEntryRequest) (*dto.RecipeEntryResponse, error) {
	if in.ProductID <= 0 || in.IngredientID <= 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, nil, "produto_id e insumo_id são obrigatórios")
	}
	qty := entity.RoundQuantity(in.QuantityPerUnit)
	if !qty.IsPositive() {
		return nil, domain.Detailed(domain.ErrInvalidQuantity,
			map[string]any{"quantity_per_unit": in.QuantityPerUnit.String()},
			"quantidade_necessaria %s", in.QuantityPerUnit.String())
	}
	var out *dto.RecipeEntryResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		p, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ProductNotFound(in.ProductID)
		}
		ing, err := repos.Ingredients.GetByID(ctx, in.IngredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.IngredientNotFound(in.IngredientID)
		}
		e := &entity.RecipeEntry{
			ProductID:       p.ID,
			IngredientID:    ing.ID,
			QuantityPerUnit: qty,
			IngredientName:  ing.Name,
			UnitMeasure:     ing.UnitMeasure,
		}
		if err := repos.Recipes.Create(ctx, e); err != nil {
			return err
		}
		out = toRecipeResponse(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveRecipeEntry quita una línea de ficha técnica.
func (uc *UseCase) RemoveRecipeEntry(ctx context.Context, entryID int64) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		e, err := repos.Recipes.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.Detailed(domain.ErrRecipeEntryNotFound, map[string]any{"entry_id": entryID},
				"ficha técnica ID %d", entryID)
		}
		return repos.Recipes.Delete(ctx, entryID)
	})
}

func toRecipeResponse(e *entity.RecipeEntry) *dto.RecipeEntryResponse {
	return &dto.RecipeEntryResponse{
		ID:              e.ID,
		ProductID:       e.ProductID,
		IngredientID:    e.IngredientID,
		IngredientName:  e.IngredientName,
		UnitMeasure:     e.UnitMeasure,
		QuantityPerUnit: e.QuantityPerUnit,
	}
}

package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// ListIngredients lista todos los insumos por nombre.
func (uc *UseCase) ListIngredients(ctx context.Context) ([]*dto.IngredientResponse, error) {
	list, err := uc.repos.Ingredients.List(ctx)
	if err != nil {
		return nil, domain.Storage(err)
	}
	out := make([]*dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, inventory.IngredientToResponse(ing))
	}
	return out, nil
}

// GetIngredient obtiene un insumo.
func (uc *UseCase) GetIngredient(ctx context.Context, id int64) (*dto.IngredientResponse, error) {
	ing, err := uc.repos.Ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage(err)
	}
	if ing == nil {
		return nil, domain.IngredientNotFound(id)
	}
	return inventory.IngredientToResponse(ing), nil
}

// CreateIngredient da de alta un insumo. Un saldo inicial > 0 queda en el ledger como RESTOCK.
func (uc *UseCase) CreateIngredient(ctx context.Context, in dto.IngredientRequest) (*dto.IngredientResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.UnitMeasure)
	if name == "" || unit == "" {
		return nil, domain.Detailed(domain.ErrInvalidInput, nil, "nome e unidade_medida são obrigatórios")
	}
	stock := entity.RoundQuantity(in.Stock)
	if stock.IsNegative() {
		return nil, domain.Detailed(domain.ErrInvalidInput, map[string]any{"stock": in.Stock.String()},
			"estoque_atual não pode ser negativo")
	}
	minimum, err := roundedMinimum(in.Minimum)
	if err != nil {
		return nil, err
	}
	cost := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.Detailed(domain.ErrInvalidInput, nil, "custo_unitario não pode ser negativo")
		}
		cost = in.UnitCost.Round(4)
	}

	now := uc.now()
	ing := &entity.Ingredient{
		Name:        name,
		UnitMeasure: unit,
		Stock:       stock,
		Minimum:     minimum,
		AverageCost: cost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Ingredients.Create(ctx, ing); err != nil {
			return err
		}
		if !ing.Stock.IsPositive() {
			return nil
		}
		return repos.Movements.Create(ctx, &entity.StockMovement{
			IngredientID: ing.ID,
			Type:         entity.MovementTypeRestock,
			Quantity:     ing.Stock,
			Previous:     decimal.Zero,
			Resulting:    ing.Stock,
			Reference:    "estoque inicial",
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("ingredient_id", ing.ID).Str("name", ing.Name).Msg("insumo cadastrado")
	return inventory.IngredientToResponse(ing), nil
}

// UpdateIngredient actualiza nombre, unidad o mínimo. No toca el saldo.
func (uc *UseCase) UpdateIngredient(ctx context.Context, id int64, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	var out *dto.IngredientResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		locked, err := repos.Ingredients.LockForUpdate(ctx, []int64{id})
		if err != nil {
			return err
		}
		ing, ok := locked[id]
		if !ok {
			return domain.IngredientNotFound(id)
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.Detailed(domain.ErrInvalidInput, nil, "nome vazio")
			}
			ing.Name = strings.TrimSpace(*in.Name)
		}
		if in.UnitMeasure != nil {
			if strings.TrimSpace(*in.UnitMeasure) == "" {
				return domain.Detailed(domain.ErrInvalidInput, nil, "unidade_medida vazia")
			}
			ing.UnitMeasure = strings.TrimSpace(*in.UnitMeasure)
		}
		if in.Minimum != nil {
			if ing.Minimum, err = roundedMinimum(in.Minimum); err != nil {
				return err
			}
		}
		ing.UpdatedAt = uc.now()
		if err := repos.Ingredients.Update(ctx, ing); err != nil {
			return err
		}
		out = inventory.IngredientToResponse(ing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteIngredient elimina un insumo que ninguna ficha técnica referencia.
func (uc *UseCase) DeleteIngredient(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		locked, err := repos.Ingredients.LockForUpdate(ctx, []int64{id})
		if err != nil {
			return err
		}
		if _, ok := locked[id]; !ok {
			return domain.IngredientNotFound(id)
		}
		inUse, err := repos.Recipes.IngredientInUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return domain.Detailed(domain.ErrIngredientInUse, map[string]any{"ingredient_id": id},
				"insumo ID %d referenciado por ficha técnica", id)
		}
		return repos.Ingredients.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("ingredient_id", id).Msg("insumo removido")
	return nil
}

func roundedMinimum(m *decimal.Decimal) (*decimal.Decimal, error) {
	if m == nil {
		return nil, nil
	}
	r := entity.RoundQuantity(*m)
	if r.IsNegative() {
		return nil, domain.Detailed(domain.ErrInvalidInput, nil, "estoque_minimo não pode ser negativo")
	}
	return &r, nil
}

package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/costing"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// StockUseCase registra entradas de insumos y expone el ledger de movimientos.
// Las entradas usan el mismo bloqueo de fila (SELECT FOR UPDATE) que las bajas por venta.
type StockUseCase struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
	now       func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, movements repository.StockMovementRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, movements: movements, now: time.Now}
}

// Restock bloquea la fila del insumo, suma la cantidad y guarda el movimiento RESTOCK.
// Con custo_unitario informado recalcula el costo medio ponderado en la misma transacción.
func (uc *StockUseCase) Restock(ctx context.Context, ingredientID int64, in dto.RestockRequest) (*dto.IngredientResponse, error) {
	qty := entity.RoundQuantity(in.Quantity)
	if !qty.IsPositive() {
		return nil, domain.Detailed(domain.ErrInvalidQuantity, map[string]any{"quantity": in.Quantity.String()},
			"quantidade %s", in.Quantity.String())
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.Detailed(domain.ErrInvalidInput, map[string]any{"unit_cost": in.UnitCost.String()},
			"custo_unitario não pode ser negativo")
	}
	now := uc.now()
	var out *dto.IngredientResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		locked, err := repos.Ingredients.LockForUpdate(ctx, []int64{ingredientID})
		if err != nil {
			return err
		}
		ing, ok := locked[ingredientID]
		if !ok {
			return domain.IngredientNotFound(ingredientID)
		}
		previous := ing.Stock
		balance, err := repos.Ingredients.AddStock(ctx, ingredientID, qty)
		if err != nil {
			return err
		}
		if !balance.Equal(previous.Add(qty)) {
			return domain.Consistency(map[string]any{
				"ingredient_id": ingredientID,
				"previous":      previous.String(),
				"added":         qty.String(),
				"resulting":     balance.String(),
			}, "saldo do insumo %d divergente após entrada", ingredientID)
		}
		if err := repos.Movements.Create(ctx, &entity.StockMovement{
			IngredientID: ingredientID,
			Type:         entity.MovementTypeRestock,
			Quantity:     qty,
			Previous:     previous,
			Resulting:    balance,
			Reference:    in.Reference,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		if in.UnitCost != nil {
			cost := costing.WeightedAverage(previous, ing.AverageCost, qty, *in.UnitCost)
			if err := repos.Ingredients.SetAverageCost(ctx, ingredientID, cost); err != nil {
				return err
			}
			ing.AverageCost = cost
		}
		ing.Stock = balance
		ing.UpdatedAt = now
		out = IngredientToResponse(ing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovements devuelve el ledger del insumo, más reciente primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, ingredientID int64, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	page.DefaultPage()
	list, err := uc.movements.ListByIngredient(ctx, ingredientID, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Storage(err)
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:           m.ID,
			IngredientID: m.IngredientID,
			Type:         m.Type,
			Quantity:     m.Quantity,
			Previous:     m.Previous,
			Resulting:    m.Resulting,
			Reference:    m.Reference,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out, nil
}

// IngredientToResponse mapea la entidad al DTO.
func IngredientToResponse(i *entity.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:          i.ID,
		Name:        i.Name,
		UnitMeasure: i.UnitMeasure,
		Stock:       i.Stock,
		Minimum:     i.Minimum,
		AverageCost: i.AverageCost,
		UpdatedAt:   i.UpdatedAt,
	}
}

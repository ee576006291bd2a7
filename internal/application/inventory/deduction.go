package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Line es una línea a descontar: producto y unidades vendidas.
type Line struct {
	ProductID int64
	Quantity  int
}

// Deduction baja aplicada a un insumo.
type Deduction struct {
	IngredientID int64
	Name         string
	UnitMeasure  string
	Quantity     decimal.Decimal
	Remaining    decimal.Decimal
}

// LineResult producto resuelto y bajas aplicadas para una línea.
type LineResult struct {
	Product    *entity.Product
	Quantity   int
	Deductions []Deduction
}

type requirement struct {
	ingredientID int64
	total        decimal.Decimal
}

// DeductInTx resuelve la ficha técnica de cada línea (en el orden recibido), verifica el stock
// de todos los insumos de la línea y recién entonces descuenta. Usa los repositorios del caller
// (misma transacción): si retorna error, el caller debe hacer rollback.
//
// Todos los insumos involucrados se bloquean de una vez en orden de id, así dos ventas
// concurrentes nunca se bloquean en orden cruzado.
func DeductInTx(
	ctx context.Context,
	repos repository.Repos,
	lines []Line,
	reference string,
	now time.Time,
) ([]LineResult, error) {
	products := make([]*entity.Product, len(lines))
	recipes := make([][]*entity.RecipeEntry, len(lines))
	idSet := make(map[int64]struct{})
	for i, l := range lines {
		if !entity.ValidQuantity(l.Quantity) {
			return nil, domain.Detailed(domain.ErrInvalidQuantity,
				map[string]any{"product_id": l.ProductID, "quantity": l.Quantity},
				"produto ID %d com quantidade %d", l.ProductID, l.Quantity)
		}
		product, err := repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		products[i] = product
		entries, err := repos.Recipes.ListByProduct(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		recipes[i] = entries
		for _, e := range entries {
			idSet[e.IngredientID] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked := map[int64]*entity.Ingredient{}
	if len(ids) > 0 {
		var err error
		if locked, err = repos.Ingredients.LockForUpdate(ctx, ids); err != nil {
			return nil, err
		}
	}

	results := make([]LineResult, 0, len(lines))
	for i, l := range lines {
		if products[i] == nil {
			return nil, domain.ProductNotFound(l.ProductID)
		}
		if len(recipes[i]) == 0 {
			return nil, domain.MissingRecipe(l.ProductID)
		}
		reqs := requirementsFor(recipes[i], l.Quantity)

		// 1) verificar todos los insumos de la línea
		for _, r := range reqs {
			ing, ok := locked[r.ingredientID]
			if !ok {
				return nil, domain.IngredientNotFound(r.ingredientID)
			}
			if ing.Stock.LessThan(r.total) {
				return nil, domain.InsufficientStock(ing.ID, ing.Name, r.total.String(), ing.Stock.String())
			}
		}

		// 2) descontar y registrar el movimiento
		res := LineResult{Product: products[i], Quantity: l.Quantity}
		for _, r := range reqs {
			ing := locked[r.ingredientID]
			previous := ing.Stock
			balance, err := repos.Ingredients.AddStock(ctx, ing.ID, r.total.Neg())
			if err != nil {
				return nil, err
			}
			expected := previous.Sub(r.total)
			if balance.IsNegative() || !balance.Equal(expected) {
				return nil, domain.Consistency(map[string]any{
					"ingredient_id": ing.ID,
					"previous":      previous.String(),
					"deducted":      r.total.String(),
					"resulting":     balance.String(),
				}, "saldo do insumo %d divergente após baixa", ing.ID)
			}
			ing.Stock = balance
			mov := &entity.StockMovement{
				IngredientID: ing.ID,
				Type:         entity.MovementTypeSale,
				Quantity:     r.total.Neg(),
				Previous:     previous,
				Resulting:    balance,
				Reference:    reference,
				CreatedAt:    now,
			}
			if err := repos.Movements.Create(ctx, mov); err != nil {
				return nil, err
			}
			res.Deductions = append(res.Deductions, Deduction{
				IngredientID: ing.ID,
				Name:         ing.Name,
				UnitMeasure:  ing.UnitMeasure,
				Quantity:     r.total,
				Remaining:    balance,
			})
		}
		results = append(results, res)
	}
	return results, nil
}

// requirementsFor agrega por insumo (una ficha puede repetir un insumo) manteniendo el orden de aparición.
func requirementsFor(entries []*entity.RecipeEntry, quantity int) []requirement {
	qty := decimal.NewFromInt(int64(quantity))
	index := make(map[int64]int, len(entries))
	reqs := make([]requirement, 0, len(entries))
	for _, e := range entries {
		total := e.QuantityPerUnit.Mul(qty)
		if pos, ok := index[e.IngredientID]; ok {
			reqs[pos].total = reqs[pos].total.Add(total)
			continue
		}
		index[e.IngredientID] = len(reqs)
		reqs = append(reqs, requirement{ingredientID: e.IngredientID, total: total})
	}
	return reqs
}

// SummarizeDeductions agrega las bajas de todas las líneas por insumo; Remaining es el saldo final.
func SummarizeDeductions(results []LineResult) []dto.DeductionDTO {
	index := make(map[int64]int)
	out := make([]dto.DeductionDTO, 0)
	for _, r := range results {
		for _, d := range r.Deductions {
			if pos, ok := index[d.IngredientID]; ok {
				out[pos].Deducted = out[pos].Deducted.Add(d.Quantity)
				out[pos].Remaining = d.Remaining
				continue
			}
			index[d.IngredientID] = len(out)
			out = append(out, dto.DeductionDTO{
				IngredientID: d.IngredientID,
				Name:         d.Name,
				UnitMeasure:  d.UnitMeasure,
				Deducted:     d.Quantity,
				Remaining:    d.Remaining,
			})
		}
	}
	return out
}

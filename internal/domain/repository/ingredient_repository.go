package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IngredientRepository define el puerto para insumos y su saldo de stock.
// Usado dentro de transacciones para garantizar consistencia del ledger.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id int64) (*entity.Ingredient, error)
	List(ctx context.Context) ([]*entity.Ingredient, error)
	Update(ctx context.Context, ingredient *entity.Ingredient) error
	Delete(ctx context.Context, id int64) error
	// LockForUpdate bloquea las filas indicadas en orden de id (SELECT ... FOR UPDATE).
	// Los ids inexistentes simplemente no aparecen en el mapa.
	LockForUpdate(ctx context.Context, ids []int64) (map[int64]*entity.Ingredient, error)
	// AddStock suma delta (negativo en salidas) y devuelve el saldo resultante.
	AddStock(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error)
	SetAverageCost(ctx context.Context, id int64, cost decimal.Decimal) error
	ListBelowMinimum(ctx context.Context) ([]*entity.Ingredient, error)
}

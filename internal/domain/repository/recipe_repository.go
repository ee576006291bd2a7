package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// RecipeRepository define el puerto para la ficha técnica (bill of materials).
type RecipeRepository interface {
	Create(ctx context.Context, entry *entity.RecipeEntry) error
	GetByID(ctx context.Context, id int64) (*entity.RecipeEntry, error)
	Delete(ctx context.Context, id int64) error
	// ListByProduct devuelve las entradas del producto ordenadas por id, con nombre y unidad del insumo.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.RecipeEntry, error)
	// IngredientInUse indica si algún producto referencia el insumo.
	IngredientInUse(ctx context.Context, ingredientID int64) (bool, error)
}

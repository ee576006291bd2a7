package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo ficha técnica sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

const recipeSelect = `
	SELECT ft.id, ft.produto_id, ft.insumo_id, ft.quantidade_necessaria,
	       COALESCE(i.nome, ''), COALESCE(i.unidade_medida, '')
	FROM ficha_tecnica ft
	LEFT JOIN insumos i ON i.id = ft.insumo_id`

// Create persiste una línea de ficha técnica.
func (r *RecipeRepo) Create(ctx context.Context, e *entity.RecipeEntry) error {
	query := `
		INSERT INTO ficha_tecnica (produto_id, insumo_id, quantidade_necessaria)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, e.ProductID, e.IngredientID, e.QuantityPerUnit).Scan(&e.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.Detailed(domain.ErrInvalidInput,
				map[string]any{"product_id": e.ProductID, "ingredient_id": e.IngredientID},
				"produto ou insumo inexistente")
		}
		return fmt.Errorf("insert ficha_tecnica: %w", err)
	}
	return nil
}

// GetByID obtiene una línea; (nil, nil) si no existe.
func (r *RecipeRepo) GetByID(ctx context.Context, id int64) (*entity.RecipeEntry, error) {
	var e entity.RecipeEntry
	err := r.q.QueryRow(ctx, recipeSelect+` WHERE ft.id = $1`, id).Scan(
		&e.ID, &e.ProductID, &e.IngredientID, &e.QuantityPerUnit, &e.IngredientName, &e.UnitMeasure,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ficha_tecnica: %w", err)
	}
	return &e, nil
}

// Delete elimina una línea.
func (r *RecipeRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ficha_tecnica WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ficha_tecnica: %w", err)
	}
	return nil
}

// ListByProduct devuelve la ficha del producto en orden de id.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.RecipeEntry, error) {
	rows, err := r.q.Query(ctx, recipeSelect+` WHERE ft.produto_id = $1 ORDER BY ft.id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list ficha_tecnica: %w", err)
	}
	defer rows.Close()
	var out []*entity.RecipeEntry
	for rows.Next() {
		var e entity.RecipeEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.IngredientID, &e.QuantityPerUnit, &e.IngredientName, &e.UnitMeasure); err != nil {
			return nil, fmt.Errorf("scan ficha_tecnica: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// IngredientInUse indica si alguna ficha técnica referencia el insumo.
func (r *RecipeRepo) IngredientInUse(ctx context.Context, ingredientID int64) (bool, error) {
	var inUse bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ficha_tecnica WHERE insumo_id = $1)`, ingredientID).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("ficha_tecnica insumo em uso: %w", err)
	}
	return inUse, nil
}

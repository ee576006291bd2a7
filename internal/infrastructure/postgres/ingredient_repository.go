package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, nome, unidade_medida, estoque_atual, estoque_minimo, custo_medio, criado_em, atualizado_em`

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var i entity.Ingredient
	var minimum decimal.NullDecimal
	if err := row.Scan(&i.ID, &i.Name, &i.UnitMeasure, &i.Stock, &minimum, &i.AverageCost, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	if minimum.Valid {
		m := minimum.Decimal
		i.Minimum = &m
	}
	return &i, nil
}

// Create persiste un nuevo insumo.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO insumos (nome, unidade_medida, estoque_atual, estoque_minimo, custo_medio, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		ing.Name, ing.UnitMeasure, ing.Stock, ing.Minimum, ing.AverageCost, ing.CreatedAt, ing.UpdatedAt,
	).Scan(&ing.ID)
	if err != nil {
		return fmt.Errorf("insert insumo: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo; (nil, nil) si no existe.
func (r *IngredientRepo) GetByID(ctx context.Context, id int64) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM insumos WHERE id = $1`
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return ing, nil
}

// List lista los insumos por nombre.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	return r.list(ctx, `SELECT `+ingredientColumns+` FROM insumos ORDER BY nome, id`)
}

// ListBelowMinimum insumos con mínimo configurado y saldo por debajo.
func (r *IngredientRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Ingredient, error) {
	return r.list(ctx, `
		SELECT `+ingredientColumns+` FROM insumos
		WHERE estoque_minimo IS NOT NULL AND estoque_atual < estoque_minimo
		ORDER BY id`)
}

func (r *IngredientRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()
	var out []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Update actualiza nombre, unidad y mínimo. El saldo solo cambia por AddStock.
func (r *IngredientRepo) Update(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		UPDATE insumos SET nome = $2, unidade_medida = $3, estoque_minimo = $4, atualizado_em = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, ing.ID, ing.Name, ing.UnitMeasure, ing.Minimum, ing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.IngredientNotFound(ing.ID)
	}
	return nil
}

// Delete elimina el insumo. La FK de ficha_tecnica lo impide si está referenciado.
func (r *IngredientRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM insumos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Detailed(domain.ErrIngredientInUse, map[string]any{"ingredient_id": id},
				"insumo ID %d referenciado por ficha técnica", id)
		}
		return fmt.Errorf("delete insumo: %w", err)
	}
	return nil
}

// LockForUpdate bloquea todas las filas pedidas en una sola sentencia, en orden de id.
func (r *IngredientRepo) LockForUpdate(ctx context.Context, ids []int64) (map[int64]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM insumos WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock insumos: %w", err)
	}
	defer rows.Close()
	out := make(map[int64]*entity.Ingredient, len(ids))
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		out[ing.ID] = ing
	}
	return out, rows.Err()
}

// SetAverageCost guarda el costo medio recalculado en la entrada.
func (r *IngredientRepo) SetAverageCost(ctx context.Context, id int64, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE insumos SET custo_medio = $2 WHERE id = $1`, id, cost)
	if err != nil {
		return fmt.Errorf("update custo insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.IngredientNotFound(id)
	}
	return nil
}

// AddStock suma delta al saldo y devuelve el resultado.
func (r *IngredientRepo) AddStock(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE insumos SET estoque_atual = estoque_atual + $2, atualizado_em = now()
		WHERE id = $1
		RETURNING estoque_atual`
	var balance decimal.Decimal
	if err := r.q.QueryRow(ctx, query, id, delta).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.IngredientNotFound(id)
		}
		if isCheckViolation(err) {
			return decimal.Zero, domain.Consistency(map[string]any{"ingredient_id": id, "delta": delta.String()},
				"saldo do insumo %d ficaria negativo", id)
		}
		return decimal.Zero, fmt.Errorf("update estoque: %w", err)
	}
	return balance, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo ledger de stock sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra el movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO movimentos_estoque (insumo_id, tipo, quantidade, saldo_anterior, saldo_resultante, referencia, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.IngredientID, m.Type, m.Quantity, m.Previous, m.Resulting, m.Reference, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movimento: %w", err)
	}
	return nil
}

// ListByIngredient movimientos del insumo, más reciente primero.
func (r *StockMovementRepo) ListByIngredient(ctx context.Context, ingredientID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, insumo_id, tipo, quantidade, saldo_anterior, saldo_resultante, referencia, criado_em
		FROM movimentos_estoque WHERE insumo_id = $1
		ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ingredientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimentos: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.IngredientID, &m.Type, &m.Quantity, &m.Previous, &m.Resulting, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas (append-only) sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, lote_id::text, produto_id, comanda_id, quantidade_vendida, preco_unitario, data_venda`

// Create inserta la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO vendas (lote_id, produto_id, comanda_id, quantidade_vendida, preco_unitario, data_venda)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, s.BatchID, s.ProductID, s.ComandaID, s.Quantity, s.UnitPrice, s.SoldAt).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert venda: %w", err)
	}
	return nil
}

// List histórico, más reciente primero.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM vendas ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByBatch ventas de un mismo lote (una llamada a RegisterSale o un pago de comanda).
func (r *SaleRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM vendas WHERE lote_id = $1::uuid ORDER BY id`, batchID)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vendas: %w", err)
	}
	defer rows.Close()
	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.BatchID, &s.ProductID, &s.ComandaID, &s.Quantity, &s.UnitPrice, &s.SoldAt); err != nil {
			return nil, fmt.Errorf("scan venda: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

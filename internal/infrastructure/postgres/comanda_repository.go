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

var _ repository.ComandaRepository = (*ComandaRepo)(nil)

// ComandaRepo comandas e itens_comanda sobre PostgreSQL.
type ComandaRepo struct {
	q Querier
}

// NewComandaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComandaRepository(q Querier) *ComandaRepo {
	return &ComandaRepo{q: q}
}

const (
	comandaColumns = `id, mesa_id, status, total, COALESCE(forma_pagamento, ''), valor_pago, troco, data_abertura, data_fechamento`
	itemColumns    = `id, comanda_id, produto_id, quantidade, preco_unitario, subtotal, observacoes, data_adicao`

	// índice parcial: una comanda abierta por mesa
	openComandaIndex = "uq_comandas_mesa_aberta"
)

func scanComanda(row pgx.Row) (*entity.Comanda, error) {
	var c entity.Comanda
	err := row.Scan(&c.ID, &c.TableID, &c.Status, &c.Total, &c.PaymentMethod,
		&c.AmountTendered, &c.Change, &c.OpenedAt, &c.ClosedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanItem(row pgx.Row) (*entity.ComandaItem, error) {
	var it entity.ComandaItem
	err := row.Scan(&it.ID, &it.ComandaID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal, &it.Notes, &it.AddedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create abre la comanda. Si la mesa ya tiene una abierta, el índice parcial lo rechaza.
func (r *ComandaRepo) Create(ctx context.Context, c *entity.Comanda) error {
	query := `
		INSERT INTO comandas (mesa_id, status, total, data_abertura)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, c.TableID, c.Status, c.Total, c.OpenedAt).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) && constraintOf(err) == openComandaIndex {
			return domain.Detailed(domain.ErrTableAlreadyOccupied, map[string]any{"table_id": c.TableID},
				"mesa ID %d já possui comanda aberta", c.TableID)
		}
		return fmt.Errorf("insert comanda: %w", err)
	}
	return nil
}

// GetByID obtiene la comanda; (nil, nil) si no existe.
func (r *ComandaRepo) GetByID(ctx context.Context, id int64) (*entity.Comanda, error) {
	return r.get(ctx, `SELECT `+comandaColumns+` FROM comandas WHERE id = $1`, id)
}

// GetForUpdate obtiene la comanda y bloquea la fila.
func (r *ComandaRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Comanda, error) {
	return r.get(ctx, `SELECT `+comandaColumns+` FROM comandas WHERE id = $1 FOR UPDATE`, id)
}

// GetOpenByTable devuelve la comanda abierta de la mesa, si hay.
func (r *ComandaRepo) GetOpenByTable(ctx context.Context, tableID int64) (*entity.Comanda, error) {
	return r.get(ctx, `SELECT `+comandaColumns+` FROM comandas WHERE mesa_id = $1 AND status = 'aberta'`, tableID)
}

func (r *ComandaRepo) get(ctx context.Context, query string, arg int64) (*entity.Comanda, error) {
	c, err := scanComanda(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comanda: %w", err)
	}
	return c, nil
}

// List comandas más recientes primero; status vacío = todas.
func (r *ComandaRepo) List(ctx context.Context, status string) ([]*entity.Comanda, error) {
	query := `SELECT ` + comandaColumns + ` FROM comandas WHERE ($1::text = '' OR status = $1::text) ORDER BY id DESC`
	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list comandas: %w", err)
	}
	defer rows.Close()
	var out []*entity.Comanda
	for rows.Next() {
		c, err := scanComanda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comanda: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateTotal persiste el total acumulado.
func (r *ComandaRepo) UpdateTotal(ctx context.Context, c *entity.Comanda) error {
	if _, err := r.q.Exec(ctx, `UPDATE comandas SET total = $2 WHERE id = $1`, c.ID, c.Total); err != nil {
		return fmt.Errorf("update total comanda: %w", err)
	}
	return nil
}

// Close persiste el estado terminal y los datos de pago.
func (r *ComandaRepo) Close(ctx context.Context, c *entity.Comanda) error {
	query := `
		UPDATE comandas
		SET status = $2, data_fechamento = $3, forma_pagamento = NULLIF($4, ''), valor_pago = $5, troco = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Status, c.ClosedAt, c.PaymentMethod, c.AmountTendered, c.Change)
	if err != nil {
		return fmt.Errorf("close comanda: %w", err)
	}
	return nil
}

// AddItem inserta una línea.
func (r *ComandaRepo) AddItem(ctx context.Context, it *entity.ComandaItem) error {
	query := `
		INSERT INTO itens_comanda (comanda_id, produto_id, quantidade, preco_unitario, subtotal, observacoes, data_adicao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		it.ComandaID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal, it.Notes, it.AddedAt,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert item comanda: %w", err)
	}
	return nil
}

// GetItem obtiene la línea si pertenece a la comanda.
func (r *ComandaRepo) GetItem(ctx context.Context, comandaID, itemID int64) (*entity.ComandaItem, error) {
	query := `SELECT ` + itemColumns + ` FROM itens_comanda WHERE comanda_id = $1 AND id = $2`
	return r.getItem(ctx, query, comandaID, itemID)
}

// FindItem primera línea con el mismo producto y observación.
func (r *ComandaRepo) FindItem(ctx context.Context, comandaID, productID int64, notes string) (*entity.ComandaItem, error) {
	query := `
		SELECT ` + itemColumns + ` FROM itens_comanda
		WHERE comanda_id = $1 AND produto_id = $2 AND observacoes = $3
		ORDER BY id LIMIT 1`
	return r.getItem(ctx, query, comandaID, productID, notes)
}

func (r *ComandaRepo) getItem(ctx context.Context, query string, args ...any) (*entity.ComandaItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item comanda: %w", err)
	}
	return it, nil
}

// UpdateItem actualiza cantidad y subtotal (el precio congelado no cambia).
func (r *ComandaRepo) UpdateItem(ctx context.Context, it *entity.ComandaItem) error {
	query := `UPDATE itens_comanda SET quantidade = $3, subtotal = $4 WHERE comanda_id = $1 AND id = $2`
	if _, err := r.q.Exec(ctx, query, it.ComandaID, it.ID, it.Quantity, it.Subtotal); err != nil {
		return fmt.Errorf("update item comanda: %w", err)
	}
	return nil
}

// DeleteItem elimina la línea.
func (r *ComandaRepo) DeleteItem(ctx context.Context, comandaID, itemID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM itens_comanda WHERE comanda_id = $1 AND id = $2`, comandaID, itemID); err != nil {
		return fmt.Errorf("delete item comanda: %w", err)
	}
	return nil
}

// ListItems líneas de la comanda en orden de inserción.
func (r *ComandaRepo) ListItems(ctx context.Context, comandaID int64) ([]*entity.ComandaItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM itens_comanda WHERE comanda_id = $1 ORDER BY id`, comandaID)
	if err != nil {
		return nil, fmt.Errorf("list itens comanda: %w", err)
	}
	defer rows.Close()
	var out []*entity.ComandaItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item comanda: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

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

var _ repository.TableRepository = (*TableRepo)(nil)

// TableRepo mesas sobre PostgreSQL.
type TableRepo struct {
	q Querier
}

// NewTableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

const tableColumns = `id, numero, capacidade, COALESCE(localizacao, ''), status, data_criacao`

func scanTable(row pgx.Row) (*entity.Table, error) {
	var t entity.Table
	if err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.Location, &t.Status, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste la mesa; número repetido => ErrDuplicate.
func (r *TableRepo) Create(ctx context.Context, t *entity.Table) error {
	query := `
		INSERT INTO mesas (numero, capacidade, localizacao, status, data_criacao)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, t.Number, t.Capacity, t.Location, t.Status, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Detailed(domain.ErrDuplicate, map[string]any{"number": t.Number},
				"mesa número %d já existe", t.Number)
		}
		return fmt.Errorf("insert mesa: %w", err)
	}
	return nil
}

// GetByID obtiene una mesa; (nil, nil) si no existe.
func (r *TableRepo) GetByID(ctx context.Context, id int64) (*entity.Table, error) {
	return r.get(ctx, `SELECT `+tableColumns+` FROM mesas WHERE id = $1`, id)
}

// GetForUpdate obtiene la mesa y bloquea la fila (SELECT FOR UPDATE).
func (r *TableRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Table, error) {
	return r.get(ctx, `SELECT `+tableColumns+` FROM mesas WHERE id = $1 FOR UPDATE`, id)
}

func (r *TableRepo) get(ctx context.Context, query string, id int64) (*entity.Table, error) {
	t, err := scanTable(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mesa: %w", err)
	}
	return t, nil
}

// List mesas por número.
func (r *TableRepo) List(ctx context.Context) ([]*entity.Table, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tableColumns+` FROM mesas ORDER BY numero`)
	if err != nil {
		return nil, fmt.Errorf("list mesas: %w", err)
	}
	defer rows.Close()
	var out []*entity.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mesa: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado de la mesa.
func (r *TableRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE mesas SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update status mesa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Detailed(domain.ErrTableNotFound, map[string]any{"table_id": id}, "mesa ID %d", id)
	}
	return nil
}

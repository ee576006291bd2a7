package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// TableRepository puerto para mesas.
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id int64) (*entity.Table, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Table, error)
	List(ctx context.Context) ([]*entity.Table, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

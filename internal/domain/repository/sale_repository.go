package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// SaleRepository persiste ventas (append-only).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.Sale, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// ComandaRepository puerto para comandas y sus items.
type ComandaRepository interface {
	Create(ctx context.Context, comanda *entity.Comanda) error
	GetByID(ctx context.Context, id int64) (*entity.Comanda, error)
	// GetForUpdate bloquea la fila de la comanda hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Comanda, error)
	GetOpenByTable(ctx context.Context, tableID int64) (*entity.Comanda, error)
	List(ctx context.Context, status string) ([]*entity.Comanda, error)
	UpdateTotal(ctx context.Context, comanda *entity.Comanda) error
	// Close persiste estado terminal, fecha de cierre y datos de pago.
	Close(ctx context.Context, comanda *entity.Comanda) error

	AddItem(ctx context.Context, item *entity.ComandaItem) error
	GetItem(ctx context.Context, comandaID, itemID int64) (*entity.ComandaItem, error)
	// FindItem busca la línea de mismo producto y observación (política merge).
	FindItem(ctx context.Context, comandaID, productID int64, notes string) (*entity.ComandaItem, error)
	UpdateItem(ctx context.Context, item *entity.ComandaItem) error
	DeleteItem(ctx context.Context, comandaID, itemID int64) error
	ListItems(ctx context.Context, comandaID int64) ([]*entity.ComandaItem, error)
}

package inventory

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de stock: si fn retorna error nada de lo escrito persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

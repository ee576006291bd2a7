package sale

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repositorios atados a ella (commit si fn retorna nil).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// TxRunner ejecuta fn en una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// UseCase administración del catálogo: insumos, productos, fichas técnicas y mesas.
// Las lecturas usan repos (pool); las escrituras con precondiciones corren en txRunner.
type UseCase struct {
	txRunner TxRunner
	repos    repository.Repos
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, repos repository.Repos, log *logger.Logger) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		repos:    repos,
		log:      log.WithComponent("catalog"),
		now:      time.Now,
	}
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/restaurante-api/internal/application/catalog"
	"github.com/jhoicas/restaurante-api/internal/application/comanda"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/application/sale"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ sale.TxRunner      = (*TxRunner)(nil)
	_ comanda.TxRunner   = (*TxRunner)(nil)
	_ catalog.TxRunner   = (*TxRunner)(nil)
)

// TxOptions límites de cada transacción.
type TxOptions struct {
	StatementTimeout time.Duration
	LockTimeout      time.Duration
	MaxRetries       int
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED + FOR UPDATE).
type TxRunner struct {
	pool *pgxpool.Pool
	opts TxOptions
	log  *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, opts TxOptions, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, opts: opts, log: log.WithComponent("postgres")}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Ante 40001/40P01 repite fn completo hasta MaxRetries veces. Los errores de negocio no se reintentan;
// cualquier otra falla sale como domain.ErrStorage.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) || attempt >= r.opts.MaxRetries {
			break
		}
		wait := backoff(attempt)
		r.log.Warn().Err(err).Int("attempt", attempt+1).Dur("backoff", wait).Msg("conflito de concorrência, repetindo transação")
		select {
		case <-ctx.Done():
			return domain.Storage(ctx.Err())
		case <-time.After(wait):
		}
	}
	return domain.Storage(err)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if ms := r.opts.StatementTimeout.Milliseconds(); ms > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", ms)); err != nil {
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}
	if ms := r.opts.LockTimeout.Milliseconds(); ms > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", ms)); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// backoff 20ms, 40ms, 80ms... con tope de 500ms.
func backoff(attempt int) time.Duration {
	d := 20 * time.Millisecond << attempt
	if d <= 0 || d > 500*time.Millisecond {
		return 500 * time.Millisecond
	}
	return d
}

package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurante-api/internal/domain"
)

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"envuelto con %w", fmt.Errorf("update: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"envuelto como storage", domain.Storage(&pgconn.PgError{Code: "40001"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"error de negocio", domain.ErrInsufficientStock, false},
		{"error genérico", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryable(tc.err))
		})
	}
}

func TestConstraintHelpers(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_comandas_mesa_aberta"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isForeignKeyViolation(err))
	assert.Equal(t, "uq_comandas_mesa_aberta", constraintOf(err))

	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.Empty(t, constraintOf(errors.New("x")))
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 20*time.Millisecond, backoff(0))
	assert.Equal(t, 40*time.Millisecond, backoff(1))
	assert.Equal(t, 320*time.Millisecond, backoff(4))
	assert.Equal(t, 500*time.Millisecond, backoff(5), "tope")
	assert.Equal(t, 500*time.Millisecond, backoff(70), "overflow")
}

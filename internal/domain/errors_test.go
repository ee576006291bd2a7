package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurante-api/internal/domain"
)

func TestDetailError_IsContraSentinel(t *testing.T) {
	err := domain.InsufficientStock(3, "Carne", "6", "5")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrMissingRecipe)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "INSUFFICIENT_STOCK", domain.CodeOf(err))
	assert.Equal(t, `estoque insuficiente: insumo "Carne". Necessário: 6, Disponível: 5`, err.Error())

	fields := domain.FieldsOf(err)
	assert.Equal(t, int64(3), fields["ingredient_id"])
	assert.Equal(t, "Carne", fields["ingredient_name"])
}

func TestDetailError_EnvueltoSigueClasificado(t *testing.T) {
	err := fmt.Errorf("linha 2: %w", domain.MissingRecipe(9))
	assert.ErrorIs(t, err, domain.ErrMissingRecipe)
	assert.Equal(t, "MISSING_RECIPE", domain.CodeOf(err))
	assert.Equal(t, int64(9), domain.FieldsOf(err)["product_id"])
}

func TestStorage(t *testing.T) {
	cause := errors.New("connection reset")
	err := domain.Storage(cause)

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
	assert.Contains(t, err.Error(), "connection reset")

	assert.NoError(t, domain.Storage(nil))

	// un error de dominio no se reclasifica
	business := domain.ProductNotFound(1)
	assert.Same(t, business, domain.Storage(business))
}

func TestKindOf_ErrorDesconocido(t *testing.T) {
	err := errors.New("???")
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
	assert.Equal(t, "STORAGE_FAILURE", domain.CodeOf(err))
	assert.Nil(t, domain.FieldsOf(err))
}

func TestConsistency(t *testing.T) {
	err := domain.Consistency(map[string]any{"ingredient_id": int64(1)}, "saldo %s", "-1")
	assert.ErrorIs(t, err, domain.ErrConsistencyViolation)
	assert.Equal(t, domain.KindConsistency, domain.KindOf(err))
}

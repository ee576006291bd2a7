package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/catalog"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

func newUseCase() (*catalog.UseCase, *memory.Store) {
	store := memory.NewStore()
	return catalog.NewUseCase(store, store.Repos(), logger.Nop()), store
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Insumos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateIngredient_RegistraEstoqueInicial(t *testing.T) {
	uc, store := newUseCase()
	ctx := context.Background()

	out, err := uc.CreateIngredient(ctx, dto.IngredientRequest{Name: " Queijo ", UnitMeasure: "kg", Stock: dec("2.5"), Minimum: ptr(dec("1"))})
	require.NoError(t, err)
	assert.Equal(t, "Queijo", out.Name)
	assert.True(t, out.Stock.Equal(dec("2.5")))

	movs, err := store.Repos().Movements.ListByIngredient(ctx, out.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeRestock, movs[0].Type)
	assert.True(t, movs[0].Previous.IsZero())
	assert.True(t, movs[0].Resulting.Equal(dec("2.5")))

	empty, err := uc.CreateIngredient(ctx, dto.IngredientRequest{Name: "Sal", UnitMeasure: "kg"})
	require.NoError(t, err)
	movs, err = store.Repos().Movements.ListByIngredient(ctx, empty.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "saldo cero no genera movimiento")
}

func TestCreateIngredient_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	for name, in := range map[string]dto.IngredientRequest{
		"sin nombre":                 {UnitMeasure: "kg"},
		"sin unidad":                 {Name: "Sal"},
		"saldo negativo":             {Name: "Sal", UnitMeasure: "kg", Stock: dec("-1")},
		"mínimo negativo":            {Name: "Sal", UnitMeasure: "kg", Minimum: ptr(dec("-0.1"))},
		"mínimo redondea a negativo": {Name: "Sal", UnitMeasure: "kg", Minimum: ptr(dec("-0.00005"))},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateIngredient(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateIngredient_NoTocaSaldo(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	ing, err := uc.CreateIngredient(ctx, dto.IngredientRequest{Name: "Leite", UnitMeasure: "l", Stock: dec("4")})
	require.NoError(t, err)

	out, err := uc.UpdateIngredient(ctx, ing.ID, dto.UpdateIngredientRequest{UnitMeasure: ptr("ml"), Minimum: ptr(dec("1000"))})
	require.NoError(t, err)
	assert.Equal(t, "Leite", out.Name)
	assert.Equal(t, "ml", out.UnitMeasure)
	require.NotNil(t, out.Minimum)
	assert.True(t, out.Minimum.Equal(dec("1000")))
	assert.True(t, out.Stock.Equal(dec("4")))

	_, err = uc.UpdateIngredient(ctx, ing.ID, dto.UpdateIngredientRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateIngredient(ctx, 999, dto.UpdateIngredientRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestDeleteIngredient_EnUsoPorFicha(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	ing, err := uc.CreateIngredient(ctx, dto.IngredientRequest{Name: "Pão", UnitMeasure: "un", Stock: dec("10")})
	require.NoError(t, err)
	prod, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "X-Burger", Price: dec("12.5")})
	require.NoError(t, err)
	entry, err := uc.AddRecipeEntry(ctx, dto.RecipeEntryRequest{ProductID: prod.ID, IngredientID: ing.ID, QuantityPerUnit: dec("1")})
	require.NoError(t, err)

	err = uc.DeleteIngredient(ctx, ing.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientInUse)

	require.NoError(t, uc.RemoveRecipeEntry(ctx, entry.ID))
	require.NoError(t, uc.DeleteIngredient(ctx, ing.ID))

	_, err = uc.GetIngredient(ctx, ing.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
	assert.ErrorIs(t, uc.DeleteIngredient(ctx, ing.ID), domain.ErrIngredientNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Produtos y ficha técnica
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Suco", Price: dec("7.999")})
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(dec("8")), "redondeo a centavos")

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Grátis", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// 0,004 se redondea a 0,00 y deja de ser un precio válido
	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Bala", Price: dec("0.004")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.GetProduct(ctx, 77)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateIngredient_RedondeaCantidades(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	out, err := uc.CreateIngredient(ctx, dto.IngredientRequest{
		Name: "Azeite", UnitMeasure: "l", Stock: dec("1.23456"), Minimum: ptr(dec("0.50004")),
	})
	require.NoError(t, err)
	assert.True(t, out.Stock.Equal(dec("1.2346")))
	require.NotNil(t, out.Minimum)
	assert.True(t, out.Minimum.Equal(dec("0.5")))
}

func TestRecipe_AltaConsultaYErrores(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	ing, err := uc.CreateIngredient(ctx, dto.IngredientRequest{Name: "Farinha", UnitMeasure: "kg", Stock: dec("5")})
	require.NoError(t, err)
	prod, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Pizza", Price: dec("40")})
	require.NoError(t, err)

	_, err = uc.AddRecipeEntry(ctx, dto.RecipeEntryRequest{ProductID: prod.ID, IngredientID: ing.ID, QuantityPerUnit: dec("0.350")})
	require.NoError(t, err)

	entries, err := uc.GetRecipe(ctx, prod.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Farinha", entries[0].IngredientName)
	assert.Equal(t, "kg", entries[0].UnitMeasure)
	assert.True(t, entries[0].QuantityPerUnit.Equal(dec("0.35")))

	_, err = uc.AddRecipeEntry(ctx, dto.RecipeEntryRequest{ProductID: prod.ID, IngredientID: ing.ID, QuantityPerUnit: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	// 0.00004 redondea a cero con 4 casas
	_, err = uc.AddRecipeEntry(ctx, dto.RecipeEntryRequest{ProductID: prod.ID, IngredientID: ing.ID, QuantityPerUnit: dec("0.00004")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = uc.AddRecipeEntry(ctx, dto.RecipeEntryRequest{ProductID: 99, IngredientID: ing.ID, QuantityPerUnit: dec("1")})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = uc.AddRecipeEntry(ctx, dto.RecipeEntryRequest{ProductID: prod.ID, IngredientID: 99, QuantityPerUnit: dec("1")})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
	_, err = uc.GetRecipe(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, uc.RemoveRecipeEntry(ctx, 99), domain.ErrRecipeEntryNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mesas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTable_NumeroDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	tb, err := uc.CreateTable(ctx, dto.CreateTableRequest{Number: 3, Capacity: 4, Location: "varanda"})
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusAvailable, tb.Status)

	_, err = uc.CreateTable(ctx, dto.CreateTableRequest{Number: 3, Capacity: 2})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateTable(ctx, dto.CreateTableRequest{Number: 4, Capacity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListTables(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReserva_Transiciones(t *testing.T) {
	uc, store := newUseCase()
	ctx := context.Background()
	tb, err := uc.CreateTable(ctx, dto.CreateTableRequest{Number: 1, Capacity: 2})
	require.NoError(t, err)

	_, err = uc.ReleaseReservation(ctx, tb.ID)
	assert.ErrorIs(t, err, domain.ErrTableNotAvailable, "no está reservada")

	out, err := uc.Reserve(ctx, tb.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusReserved, out.Status)

	_, err = uc.Reserve(ctx, tb.ID)
	assert.ErrorIs(t, err, domain.ErrTableNotAvailable)

	out, err = uc.ReleaseReservation(ctx, tb.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusAvailable, out.Status)

	require.NoError(t, store.Repos().Tables.UpdateStatus(ctx, tb.ID, entity.TableStatusOccupied))
	_, err = uc.Reserve(ctx, tb.ID)
	assert.ErrorIs(t, err, domain.ErrTableNotAvailable, "ocupada")

	_, err = uc.Reserve(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Lista de reposición
// ──────────────────────────────────────────────────────────────────────────────

type mockLowStockSource struct{ mock.Mock }

func (m *mockLowStockSource) ListBelowMinimum(ctx context.Context) ([]*entity.Ingredient, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Ingredient)
	return list, args.Error(1)
}

func TestGenerateList_OrdenaPorDeficitRelativo(t *testing.T) {
	source := &mockLowStockSource{}
	source.On("ListBelowMinimum", mock.Anything).Return([]*entity.Ingredient{
		{ID: 1, Name: "Arroz", UnitMeasure: "kg", Stock: dec("8"), Minimum: ptr(dec("10"))}, // 20%
		{ID: 2, Name: "Óleo", UnitMeasure: "l", Stock: dec("1"), Minimum: ptr(dec("4"))},    // 75%
		{ID: 3, Name: "Sal", UnitMeasure: "kg", Stock: dec("5"), Minimum: ptr(dec("5"))},    // no está bajo
		{ID: 4, Name: "Açúcar", UnitMeasure: "kg", Stock: dec("0"), Minimum: ptr(dec("2"))}, // 100%
	}, nil).Once()

	out, err := inventory.NewLowStockUseCase(source).GenerateList(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, int64(4), out[0].IngredientID)
	assert.Equal(t, int64(2), out[1].IngredientID)
	assert.Equal(t, int64(1), out[2].IngredientID)
	for i, s := range out {
		assert.Equal(t, i+1, s.Priority)
	}
	assert.True(t, out[1].IdealStock.Equal(dec("6")))
	assert.True(t, out[1].SuggestedOrderQty.Equal(dec("5")), "4*1,5 - 1")
	source.AssertExpectations(t)
}

func TestGenerateList_FallaDelOrigen(t *testing.T) {
	source := &mockLowStockSource{}
	source.On("ListBelowMinimum", mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := inventory.NewLowStockUseCase(source).GenerateList(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)
	source.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas de stock
// ──────────────────────────────────────────────────────────────────────────────

func seedIngredient(t *testing.T, store *memory.Store, stock string) int64 {
	t.Helper()
	ing := &entity.Ingredient{Name: "Tomate", UnitMeasure: "kg", Stock: dec(stock)}
	require.NoError(t, store.Repos().Ingredients.Create(context.Background(), ing))
	return ing.ID
}

func TestRestock_SumaYRegistraMovimiento(t *testing.T) {
	store := memory.NewStore()
	id := seedIngredient(t, store, "1.5")
	uc := inventory.NewStockUseCase(store, store.Repos().Movements)

	out, err := uc.Restock(context.Background(), id, dto.RestockRequest{Quantity: dec("2.25"), Reference: "NF 881"})
	require.NoError(t, err)
	assert.True(t, out.Stock.Equal(dec("3.75")))

	movs, err := uc.ListMovements(context.Background(), id, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeRestock, movs[0].Type)
	assert.True(t, movs[0].Previous.Equal(dec("1.5")))
	assert.True(t, movs[0].Resulting.Equal(dec("3.75")))
	assert.Equal(t, "NF 881", movs[0].Reference)
}

func TestRestock_Errores(t *testing.T) {
	store := memory.NewStore()
	id := seedIngredient(t, store, "1")
	uc := inventory.NewStockUseCase(store, store.Repos().Movements)
	ctx := context.Background()

	_, err := uc.Restock(ctx, id, dto.RestockRequest{Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Restock(ctx, 999, dto.RestockRequest{Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	store.FailOn("movements.create", errors.New("disk"))
	_, err = uc.Restock(ctx, id, dto.RestockRequest{Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrStorage)
	store.FailOn("movements.create", nil)

	ing, err := store.Repos().Ingredients.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, ing.Stock.Equal(dec("1")), "rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// DeductInTx
// ──────────────────────────────────────────────────────────────────────────────

func TestDeductInTx_AgregaInsumoRepetidoEnLaFicha(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repos()
	cheese := &entity.Ingredient{Name: "Queijo", UnitMeasure: "g", Stock: dec("500")}
	require.NoError(t, repos.Ingredients.Create(ctx, cheese))
	pizza := &entity.Product{Name: "Pizza 4 queijos", Price: dec("50")}
	require.NoError(t, repos.Products.Create(ctx, pizza))
	// dos entradas del mismo insumo: 100 g + 50 g por unidad
	require.NoError(t, repos.Recipes.Create(ctx, &entity.RecipeEntry{ProductID: pizza.ID, IngredientID: cheese.ID, QuantityPerUnit: dec("100")}))
	require.NoError(t, repos.Recipes.Create(ctx, &entity.RecipeEntry{ProductID: pizza.ID, IngredientID: cheese.ID, QuantityPerUnit: dec("50")}))

	var results []inventory.LineResult
	err := store.Run(ctx, func(tx repository.Repos) error {
		var err error
		results, err = inventory.DeductInTx(ctx, tx, []inventory.Line{{ProductID: pizza.ID, Quantity: 3}}, "lote-1", time.Now())
		return err
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Deductions, 1, "un descuento por insumo")
	assert.True(t, results[0].Deductions[0].Quantity.Equal(dec("450")))
	assert.True(t, results[0].Deductions[0].Remaining.Equal(dec("50")))

	summary := inventory.SummarizeDeductions(results)
	require.Len(t, summary, 1)
	assert.True(t, summary[0].Deducted.Equal(dec("450")))

	ing, err := repos.Ingredients.GetByID(ctx, cheese.ID)
	require.NoError(t, err)
	assert.True(t, ing.Stock.Equal(dec("50")))
}

func TestDeductInTx_CantidadFueraDeRango(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	id := seedIngredient(t, store, "10")

	for _, qty := range []int{0, -3, entity.MaxLineQuantity + 1} {
		err := store.Run(ctx, func(tx repository.Repos) error {
			_, err := inventory.DeductInTx(ctx, tx, []inventory.Line{{ProductID: 1, Quantity: qty}}, "lote", time.Now())
			return err
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "quantidade %d", qty)
	}
	ing, err := store.Repos().Ingredients.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, ing.Stock.Equal(dec("10")))
}

func TestRestock_RedondeaACuatroDecimales(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	id := seedIngredient(t, store, "1")
	uc := inventory.NewStockUseCase(store, store.Repos().Movements)

	out, err := uc.Restock(ctx, id, dto.RestockRequest{Quantity: dec("0.123456")})
	require.NoError(t, err)
	assert.True(t, out.Stock.Equal(dec("1.1235")))

	movs, err := uc.ListMovements(ctx, id, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.Equal(dec("0.1235")), "el movimiento registra el mismo delta del saldo")

	_, err = uc.Restock(ctx, id, dto.RestockRequest{Quantity: dec("0.00001")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSummarizeDeductions_SumaEntreLineas(t *testing.T) {
	results := []inventory.LineResult{
		{Deductions: []inventory.Deduction{{IngredientID: 1, Name: "Pão", Quantity: dec("2"), Remaining: dec("8")}}},
		{Deductions: []inventory.Deduction{
			{IngredientID: 2, Name: "Carne", Quantity: dec("1"), Remaining: dec("4")},
			{IngredientID: 1, Name: "Pão", Quantity: dec("3"), Remaining: dec("5")},
		}},
	}
	out := inventory.SummarizeDeductions(results)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].IngredientID)
	assert.True(t, out[0].Deducted.Equal(dec("5")))
	assert.True(t, out[0].Remaining.Equal(dec("5")), "saldo final")
	assert.Equal(t, int64(2), out[1].IngredientID)
}

func TestRestock_RecalculaCustoMedio(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	ing := &entity.Ingredient{Name: "Queijo", UnitMeasure: "kg", Stock: dec("2"), AverageCost: dec("40")}
	require.NoError(t, store.Repos().Ingredients.Create(ctx, ing))
	uc := inventory.NewStockUseCase(store, store.Repos().Movements)

	out, err := uc.Restock(ctx, ing.ID, dto.RestockRequest{Quantity: dec("6"), UnitCost: ptr(dec("48"))})
	require.NoError(t, err)
	assert.True(t, out.AverageCost.Equal(dec("46")), "(2*40 + 6*48) / 8")

	// sin custo_unitario el costo se mantiene
	out, err = uc.Restock(ctx, ing.ID, dto.RestockRequest{Quantity: dec("1")})
	require.NoError(t, err)
	assert.True(t, out.AverageCost.Equal(dec("46")))

	_, err = uc.Restock(ctx, ing.ID, dto.RestockRequest{Quantity: dec("1"), UnitCost: ptr(dec("-1"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

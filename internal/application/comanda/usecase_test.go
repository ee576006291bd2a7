package comanda_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/comanda"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks y fixture
// ──────────────────────────────────────────────────────────────────────────────

type mockReceipts struct{ mock.Mock }

func (m *mockReceipts) GenerateReceiptPDF(ctx context.Context, r comanda.Receipt) ([]byte, error) {
	args := m.Called(ctx, r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type fixture struct {
	store    *memory.Store
	receipts *mockReceipts
	uc       *comanda.UseCase
	table    int64
	bread    int64
	burger   int64
	soda     int64
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T, policy comanda.LinePolicy) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()

	table := &entity.Table{Number: 7, Capacity: 4, Status: entity.TableStatusAvailable}
	require.NoError(t, repos.Tables.Create(ctx, table))

	bread := &entity.Ingredient{Name: "Pão", UnitMeasure: "un", Stock: dec("3")}
	can := &entity.Ingredient{Name: "Lata", UnitMeasure: "un", Stock: dec("10")}
	require.NoError(t, repos.Ingredients.Create(ctx, bread))
	require.NoError(t, repos.Ingredients.Create(ctx, can))

	burger := &entity.Product{Name: "X-Burger", Price: dec("12.50")}
	soda := &entity.Product{Name: "Refrigerante", Price: dec("6.00")}
	require.NoError(t, repos.Products.Create(ctx, burger))
	require.NoError(t, repos.Products.Create(ctx, soda))
	require.NoError(t, repos.Recipes.Create(ctx, &entity.RecipeEntry{ProductID: burger.ID, IngredientID: bread.ID, QuantityPerUnit: dec("1")}))
	require.NoError(t, repos.Recipes.Create(ctx, &entity.RecipeEntry{ProductID: soda.ID, IngredientID: can.ID, QuantityPerUnit: dec("1")}))

	receipts := &mockReceipts{}
	return &fixture{
		store:    store,
		receipts: receipts,
		uc:       comanda.NewUseCase(store, repos.Comandas, repos.Tables, repos.Products, receipts, policy, logger.Nop()),
		table:    table.ID,
		bread:    bread.ID,
		burger:   burger.ID,
		soda:     soda.ID,
	}
}

func (f *fixture) tableStatus(t *testing.T) string {
	t.Helper()
	tb, err := f.store.Repos().Tables.GetByID(context.Background(), f.table)
	require.NoError(t, err)
	return tb.Status
}

func (f *fixture) stock(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	ing, err := f.store.Repos().Ingredients.GetByID(context.Background(), id)
	require.NoError(t, err)
	return ing.Stock
}

func (f *fixture) open(t *testing.T) *dto.ComandaResponse {
	t.Helper()
	c, err := f.uc.OpenComanda(context.Background(), f.table)
	require.NoError(t, err)
	return c
}

func (f *fixture) add(t *testing.T, comandaID, productID int64, qty int, notes string) *dto.ComandaResponse {
	t.Helper()
	c, err := f.uc.AddLineItem(context.Background(), comandaID, dto.AddItemRequest{ProductID: productID, Quantity: qty, Notes: notes})
	require.NoError(t, err)
	return c
}

func pay(amount, method string) dto.PaymentRequest {
	return dto.PaymentRequest{AmountTendered: dec(amount), PaymentMethod: method}
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura
// ──────────────────────────────────────────────────────────────────────────────

func TestOpenComanda_OcupaMesa(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)

	c := f.open(t)
	assert.Equal(t, entity.ComandaStatusOpen, c.Status)
	assert.True(t, c.Total.IsZero())
	assert.Equal(t, entity.TableStatusOccupied, f.tableStatus(t))

	_, err := f.uc.OpenComanda(context.Background(), f.table)
	assert.ErrorIs(t, err, domain.ErrTableAlreadyOccupied)
	assert.Equal(t, c.ID, domain.FieldsOf(err)["comanda_id"])
}

func TestOpenComanda_MesaInexistente(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	_, err := f.uc.OpenComanda(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestOpenComanda_MesaReservadaSePuedeAbrir(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	require.NoError(t, f.store.Repos().Tables.UpdateStatus(context.Background(), f.table, entity.TableStatusReserved))

	f.open(t)
	assert.Equal(t, entity.TableStatusOccupied, f.tableStatus(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Itens
// ──────────────────────────────────────────────────────────────────────────────

func TestAddLineItem_MergeSumaMismaLinea(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)

	f.add(t, c.ID, f.burger, 1, "")
	out := f.add(t, c.ID, f.burger, 2, "")
	require.Len(t, out.Items, 1)
	assert.Equal(t, 3, out.Items[0].Quantity)
	assert.True(t, out.Items[0].Subtotal.Equal(dec("37.50")))
	assert.True(t, out.Total.Equal(dec("37.50")))

	// observación distinta = línea distinta
	out = f.add(t, c.ID, f.burger, 1, "sem cebola")
	assert.Len(t, out.Items, 2)
	assert.True(t, out.Total.Equal(dec("50")))
}

func TestAddLineItem_SeparateCreaLineas(t *testing.T) {
	f := newFixture(t, comanda.LinePolicySeparate)
	c := f.open(t)

	f.add(t, c.ID, f.burger, 1, "")
	out := f.add(t, c.ID, f.burger, 1, "")
	assert.Len(t, out.Items, 2)
	assert.True(t, out.Total.Equal(dec("25")))
}

func TestAddLineItem_PrecioCongeladoEnLaLinea(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	out := f.add(t, c.ID, f.soda, 1, "")
	assert.True(t, out.Items[0].UnitPrice.Equal(dec("6")))
}

func TestAddLineItem_Errores(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	ctx := context.Background()

	_, err := f.uc.AddLineItem(ctx, c.ID, dto.AddItemRequest{ProductID: f.burger, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.AddLineItem(ctx, c.ID, dto.AddItemRequest{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.uc.AddLineItem(ctx, 999, dto.AddItemRequest{ProductID: f.burger, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrComandaNotFound)

	got, err := f.uc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.Total.IsZero())
}

func TestAddLineItem_TopeDeCantidadPorLinea(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	ctx := context.Background()
	c := f.open(t)

	_, err := f.uc.AddLineItem(ctx, c.ID, dto.AddItemRequest{ProductID: f.soda, Quantity: math.MaxInt})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	full := f.add(t, c.ID, f.soda, entity.MaxLineQuantity, "")
	require.Len(t, full.Items, 1)

	// la suma del merge pasaría el tope: se rechaza sin tocar la línea ni el total
	_, err = f.uc.AddLineItem(ctx, c.ID, dto.AddItemRequest{ProductID: f.soda, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	got, err := f.uc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, entity.MaxLineQuantity, got.Items[0].Quantity)
	assert.True(t, got.Total.Equal(full.Total))
	assert.True(t, got.Total.IsPositive())

	_, err = f.uc.CloseAndPay(ctx, c.ID, pay("0", entity.PaymentPix))
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
	assert.Equal(t, entity.TableStatusOccupied, f.tableStatus(t))
}

func TestRemoveLineItem_DescuentaDelTotal(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.burger, 2, "")
	out := f.add(t, c.ID, f.soda, 1, "")
	require.Len(t, out.Items, 2)

	out, err := f.uc.RemoveLineItem(context.Background(), c.ID, out.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Total.Equal(dec("6")))

	_, err = f.uc.RemoveLineItem(context.Background(), c.ID, 999)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagamento
// ──────────────────────────────────────────────────────────────────────────────

func TestCloseAndPay_DescuentaEstoqueYLiberaMesa(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.burger, 2, "")
	f.add(t, c.ID, f.soda, 1, "")

	out, err := f.uc.CloseAndPay(context.Background(), c.ID, pay("50", entity.PaymentCash))
	require.NoError(t, err)

	assert.Equal(t, entity.ComandaStatusPaid, out.Comanda.Status)
	assert.True(t, out.Comanda.Total.Equal(dec("31")))
	assert.True(t, out.Change.Equal(dec("19")))
	require.NotNil(t, out.Comanda.Change)
	assert.True(t, out.Comanda.Change.Equal(dec("19")))
	assert.Equal(t, entity.PaymentCash, out.Comanda.PaymentMethod)
	require.NotNil(t, out.Comanda.ClosedAt)

	require.Len(t, out.Sales, 2, "una venta por línea")
	for _, s := range out.Sales {
		require.NotNil(t, s.ComandaID)
		assert.Equal(t, c.ID, *s.ComandaID)
	}
	assert.Equal(t, "X-Burger", out.Sales[0].ProductName)

	assert.True(t, f.stock(t, f.bread).Equal(dec("1")))
	assert.Equal(t, entity.TableStatusAvailable, f.tableStatus(t))

	// la mesa admite una nueva comanda
	f.open(t)
}

func TestCloseAndPay_ValorExactoSinTroco(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.soda, 1, "")

	out, err := f.uc.CloseAndPay(context.Background(), c.ID, pay("6.00", entity.PaymentPix))
	require.NoError(t, err)
	assert.True(t, out.Change.IsZero())
}

func TestCloseAndPay_PagoInsuficiente(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.burger, 1, "")

	_, err := f.uc.CloseAndPay(context.Background(), c.ID, pay("10", entity.PaymentCash))
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
	assert.Equal(t, "12.50", domain.FieldsOf(err)["total"])

	got, err := f.uc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ComandaStatusOpen, got.Status)
	assert.True(t, f.stock(t, f.bread).Equal(dec("3")))
}

func TestCloseAndPay_FormaDePagoInvalida(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.burger, 1, "")

	_, err := f.uc.CloseAndPay(context.Background(), c.ID, pay("20", "cheque"))
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)

	_, err = f.uc.CloseAndPay(context.Background(), c.ID, pay("-1", entity.PaymentCash))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCloseAndPay_ComandaVacia(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)

	_, err := f.uc.CloseAndPay(context.Background(), c.ID, pay("0", entity.PaymentCash))
	assert.ErrorIs(t, err, domain.ErrComandaEmpty)
}

func TestCloseAndPay_EstoqueInsuficiente_NadaCambia(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.soda, 1, "")
	f.add(t, c.ID, f.burger, 4, "")

	_, err := f.uc.CloseAndPay(context.Background(), c.ID, pay("100", entity.PaymentCredit))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.uc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ComandaStatusOpen, got.Status)
	assert.Equal(t, entity.TableStatusOccupied, f.tableStatus(t))
	assert.True(t, f.stock(t, f.bread).Equal(dec("3")))
	sales, err := f.store.Repos().Sales.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCloseAndPay_FallaAlLiberarMesa_Rollback(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.burger, 1, "")
	f.store.FailOn("tables.update_status", errors.New("timeout"))

	_, err := f.uc.CloseAndPay(context.Background(), c.ID, pay("20", entity.PaymentDebit))
	assert.ErrorIs(t, err, domain.ErrStorage)

	f.store.FailOn("tables.update_status", nil)
	got, err := f.uc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ComandaStatusOpen, got.Status)
	assert.True(t, f.stock(t, f.bread).Equal(dec("3")))
}

func TestCloseAndPay_ComandaYaPaga(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.soda, 1, "")
	_, err := f.uc.CloseAndPay(context.Background(), c.ID, pay("6", entity.PaymentPix))
	require.NoError(t, err)

	_, err = f.uc.CloseAndPay(context.Background(), c.ID, pay("6", entity.PaymentPix))
	assert.ErrorIs(t, err, domain.ErrComandaNotOpen)
	_, err = f.uc.Cancel(context.Background(), c.ID)
	assert.ErrorIs(t, err, domain.ErrComandaNotOpen)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelamento, consultas y recibo
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_LiberaMesaSinVentas(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.burger, 1, "")

	out, err := f.uc.Cancel(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ComandaStatusCancelled, out.Status)
	assert.Equal(t, entity.TableStatusAvailable, f.tableStatus(t))
	assert.True(t, f.stock(t, f.bread).Equal(dec("3")))
}

func TestList_FiltraPorStatus(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	_, err := f.uc.Cancel(context.Background(), c.ID)
	require.NoError(t, err)
	f.open(t)

	all, err := f.uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	open, err := f.uc.List(context.Background(), entity.ComandaStatusOpen)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = f.uc.List(context.Background(), "fechada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_NoEncontrada(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	_, err := f.uc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrComandaNotFound)
}

func TestReceipt_ArmaLineasConNombreDeProducto(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.add(t, c.ID, f.burger, 2, "bem passado")

	f.receipts.On("GenerateReceiptPDF", mock.Anything, mock.MatchedBy(func(r comanda.Receipt) bool {
		return r.Comanda.ID == c.ID &&
			r.Table != nil && r.Table.Number == 7 &&
			len(r.Lines) == 1 &&
			r.Lines[0].ProductName == "X-Burger" &&
			r.Lines[0].Quantity == 2 &&
			r.Lines[0].Notes == "bem passado" &&
			r.Lines[0].Subtotal.Equal(dec("25"))
	})).Return([]byte("%PDF-1.7"), nil).Once()

	pdf, err := f.uc.Receipt(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)
	f.receipts.AssertExpectations(t)
}

func TestReceipt_FallaDelGenerador(t *testing.T) {
	f := newFixture(t, comanda.LinePolicyMerge)
	c := f.open(t)
	f.receipts.On("GenerateReceiptPDF", mock.Anything, mock.Anything).Return(nil, errors.New("font missing")).Once()

	_, err := f.uc.Receipt(context.Background(), c.ID)
	assert.ErrorIs(t, err, domain.ErrStorage)
	f.receipts.AssertExpectations(t)
}

func TestParseLinePolicy(t *testing.T) {
	p, err := comanda.ParseLinePolicy("")
	require.NoError(t, err)
	assert.Equal(t, comanda.LinePolicyMerge, p)

	p, err = comanda.ParseLinePolicy("separate")
	require.NoError(t, err)
	assert.Equal(t, comanda.LinePolicySeparate, p)

	_, err = comanda.ParseLinePolicy("sum")
	assert.Error(t, err)
}

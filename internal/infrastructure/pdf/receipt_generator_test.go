package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/comanda"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func sampleReceipt(c *entity.Comanda) comanda.Receipt {
	return comanda.Receipt{
		Comanda: c,
		Table:   &entity.Table{ID: 1, Number: 7, Location: "Varanda"},
		Lines: []comanda.ReceiptLine{
			{ProductName: "X-Burger", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50"), Subtotal: decimal.RequireFromString("25.00"), Notes: "sem cebola"},
			{ProductName: "Refrigerante", Quantity: 1, UnitPrice: decimal.RequireFromString("6.00"), Subtotal: decimal.RequireFromString("6.00")},
		},
	}
}

func TestGenerateReceiptPDF_ComandaAberta(t *testing.T) {
	g := NewReceiptGenerator("Bistrô do Centro")
	c := &entity.Comanda{ID: 15, TableID: 1, Status: entity.ComandaStatusOpen, Total: decimal.RequireFromString("31.00"), OpenedAt: time.Now()}

	out, err := g.GenerateReceiptPDF(context.Background(), sampleReceipt(c))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceiptPDF_ComandaPaga(t *testing.T) {
	g := NewReceiptGenerator("Bistrô do Centro")
	closed := time.Now()
	tendered := decimal.RequireFromString("50")
	change := decimal.RequireFromString("19")
	c := &entity.Comanda{
		ID: 16, TableID: 1, Status: entity.ComandaStatusPaid, Total: decimal.RequireFromString("31.00"),
		PaymentMethod: entity.PaymentCash, AmountTendered: &tendered, Change: &change,
		OpenedAt: closed.Add(-time.Hour), ClosedAt: &closed,
	}

	out, err := g.GenerateReceiptPDF(context.Background(), sampleReceipt(c))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMoney_FormatoBrasileiro(t *testing.T) {
	g := NewReceiptGenerator("x")
	assert.Equal(t, "R$ 1.234,50", g.money(decimal.RequireFromString("1234.5")))
}

func TestNonEmpty(t *testing.T) {
	assert.Equal(t, "-", nonEmpty("", "-"))
	assert.Equal(t, "Salão", nonEmpty("Salão", "-"))
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de comanda. Paid y Cancelled son terminales.
const (
	ComandaStatusOpen      = "aberta"
	ComandaStatusPaid      = "paga"
	ComandaStatusCancelled = "cancelada"
)

// Formas de pago aceptadas en el cierre.
const (
	PaymentCash   = "dinheiro"
	PaymentCredit = "cartao_credito"
	PaymentDebit  = "cartao_debito"
	PaymentPix    = "pix"
)

// ValidPaymentMethod indica si m es una forma de pago conocida.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentDebit, PaymentPix:
		return true
	}
	return false
}

// Comanda es la cuenta abierta de una mesa. Total = suma de subtotales de sus items.
type Comanda struct {
	ID             int64
	TableID        int64
	Status         string
	Total          decimal.Decimal
	PaymentMethod  string
	AmountTendered *decimal.Decimal
	Change         *decimal.Decimal
	OpenedAt       time.Time
	ClosedAt       *time.Time
}

// IsOpen indica si la comanda acepta items.
func (c *Comanda) IsOpen() bool { return c.Status == ComandaStatusOpen }

// ComandaItem es una línea de la comanda con precio congelado al momento de agregarla.
type ComandaItem struct {
	ID        int64
	ComandaID int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Notes     string
	AddedAt   time.Time
}

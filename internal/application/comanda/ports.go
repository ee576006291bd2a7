package comanda

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repositorios atados a ella (commit si fn retorna nil).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// ReceiptLine línea del recibo con el nombre del producto resuelto.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Notes       string
}

// Receipt datos que necesita el generador de recibos.
type Receipt struct {
	Comanda *entity.Comanda
	Table   *entity.Table
	Lines   []ReceiptLine
}

// ReceiptGenerator genera la representación impresa (PDF) de una comanda.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt Receipt) ([]byte, error)
}

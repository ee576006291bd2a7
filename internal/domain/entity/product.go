package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem de la carta (tabla produtos).
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal // preco_venda, > 0
	CreatedAt time.Time
}

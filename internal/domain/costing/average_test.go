package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedAverage(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name                       string
		stock, cost, inQty, inCost string
		want                       string
	}{
		{"primera entrada", "0", "0", "10", "4.20", "4.2"},
		{"mismo costo", "5", "3", "5", "3", "3"},
		{"promedio", "10", "2", "10", "4", "3"},
		{"ponderado", "2", "10", "6", "6", "7"},
		{"redondeo a 4 casas", "2", "1", "1", "2", "1.3333"},
		{"saldo residual negativo", "-1", "5", "1", "8", "8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverage(d(tt.stock), d(tt.cost), d(tt.inQty), d(tt.inCost))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

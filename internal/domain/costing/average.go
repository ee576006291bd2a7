// Package costing calcula el costo medio ponderado de un insumo en cada entrada.
package costing

import "github.com/shopspring/decimal"

// WeightedAverage devuelve el nuevo costo unitario tras una entrada:
//
//	((saldo * custoAtual) + (entrada * custoEntrada)) / (saldo + entrada)
//
// Con saldo resultante cero o negativo devuelve el costo de la entrada.
func WeightedAverage(stock, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	total := stock.Add(inQty)
	if total.LessThanOrEqual(decimal.Zero) {
		return inCost
	}
	if stock.LessThanOrEqual(decimal.Zero) {
		return inCost.Round(4)
	}
	return stock.Mul(currentCost).Add(inQty.Mul(inCost)).Div(total).Round(4)
}

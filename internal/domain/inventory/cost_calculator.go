package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio móvil (servicio de dominio).
// NuevaTasa = ((QtyActual * TasaActual) + (QtyEntrada * TasaEntrada)) / (QtyActual + QtyEntrada)
// Con existencia resultante <= 0 se conserva la tasa de entrada.
func CostCalculator(qtyActual, tasaActual, qtyEntrada, tasaEntrada decimal.Decimal) decimal.Decimal {
	sum := qtyActual.Add(qtyEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return tasaEntrada
	}
	if qtyActual.LessThan(decimal.Zero) {
		// Existencia previa negativa: el costo viejo no es representativo.
		return tasaEntrada
	}
	num := qtyActual.Mul(tasaActual).Add(qtyEntrada.Mul(tasaEntrada))
	return num.Div(sum)
}

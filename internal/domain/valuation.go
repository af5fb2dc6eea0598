package domain

import "time"

// LegPrice es el precio teórico de una pata y su aporte al coste neto.
type LegPrice struct {
	Leg
	Premium      float64 // precio teórico de la call
	Contribution float64 // Weight × Premium
}

// Valuation es el resultado de valorar una butterfly con un modelo.
type Valuation struct {
	ID       string
	Model    string
	Spread   ButterflySpread
	Legs     []LegPrice
	Cost     float64 // C1 - 2·C2 + C3, sin clamp
	ValuedAt time.Time
}

// IsDebit devuelve true si abrir la posición cuesta prima neta.
// Bajo un modelo libre de arbitraje una butterfly genuina siempre es débito.
func (v Valuation) IsDebit() bool {
	return v.Cost > 0
}

// MaxProfit es el payoff máximo menos el coste pagado.
func (v Valuation) MaxProfit() float64 {
	return v.Spread.MaxPayoff() - v.Cost
}

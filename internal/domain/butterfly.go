package domain

import (
	"fmt"
	"math"
)

// Pesos de la long call butterfly: compra 1 K1, vende 2 K2, compra 1 K3.
const (
	WeightWing = 1.0
	WeightBody = -2.0
)

// ButterflySpread es una long call butterfly sobre un mismo subyacente y vencimiento.
// Template aporta S, T, r y sigma; su Strike se ignora.
type ButterflySpread struct {
	Template OptionContract
	Lower    float64 // K1
	Middle   float64 // K2
	Upper    float64 // K3
}

// Leg es una pata de la estrategia: strike y peso con signo.
type Leg struct {
	Strike float64
	Weight float64
}

// Validate exige una plantilla válida y K1 < K2 < K3, todos positivos.
// Los strikes no tienen por qué estar equiespaciados.
func (b ButterflySpread) Validate() error {
	if err := b.Template.validateMarket(); err != nil {
		return fmt.Errorf("domain.ButterflySpread: %w", err)
	}
	for _, k := range [...]float64{b.Lower, b.Middle, b.Upper} {
		if !positive(k) {
			return fmt.Errorf("domain.ButterflySpread: strike must be > 0, got %v: %w", k, ErrDomain)
		}
	}
	if !(b.Lower < b.Middle && b.Middle < b.Upper) {
		return fmt.Errorf("domain.ButterflySpread: strikes must satisfy K1 < K2 < K3, got %v/%v/%v: %w",
			b.Lower, b.Middle, b.Upper, ErrDomain)
	}
	return nil
}

// IsSymmetric devuelve true si K2 es el punto medio de K1 y K3.
func (b ButterflySpread) IsSymmetric() bool {
	return math.Abs(b.Middle-(b.Lower+b.Upper)/2) < 1e-9
}

// Legs devuelve las tres patas en orden K1, K2, K3.
func (b ButterflySpread) Legs() []Leg {
	return []Leg{
		{Strike: b.Lower, Weight: WeightWing},
		{Strike: b.Middle, Weight: WeightBody},
		{Strike: b.Upper, Weight: WeightWing},
	}
}

// MaxPayoff es el payoff a vencimiento con S_T = K2, donde alcanza su máximo.
func (b ButterflySpread) MaxPayoff() float64 {
	return b.Middle - b.Lower
}

// PayoffAt devuelve el payoff a vencimiento para un precio final del subyacente.
func (b ButterflySpread) PayoffAt(spotAtExpiry float64) float64 {
	var total float64
	for _, leg := range b.Legs() {
		total += leg.Weight * math.Max(spotAtExpiry-leg.Strike, 0)
	}
	return total
}

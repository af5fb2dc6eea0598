package domain

import (
	"fmt"
	"math"
)

// OptionContract describe una call europea a valorar.
// Es un valor inmutable: se crea por cada llamada de pricing.
type OptionContract struct {
	Spot   float64 // S: precio actual del subyacente
	Strike float64 // K: precio de ejercicio
	Expiry float64 // T: tiempo a vencimiento en años
	Rate   float64 // r: tasa libre de riesgo (puede ser negativa)
	Vol    float64 // sigma: volatilidad anualizada
}

// WithStrike devuelve una copia del contrato con otro strike.
func (c OptionContract) WithStrike(k float64) OptionContract {
	c.Strike = k
	return c
}

// Validate comprueba que la fórmula esté definida para el contrato.
// S, K, T y sigma deben ser estrictamente positivos; r solo debe ser finito.
func (c OptionContract) Validate() error {
	if err := c.validateMarket(); err != nil {
		return err
	}
	if !positive(c.Strike) {
		return fmt.Errorf("domain.OptionContract: strike must be > 0, got %v: %w", c.Strike, ErrDomain)
	}
	return nil
}

// validateMarket valida todo salvo el strike. La usa ButterflySpread,
// donde el strike de la plantilla se ignora.
func (c OptionContract) validateMarket() error {
	switch {
	case !positive(c.Spot):
		return fmt.Errorf("domain.OptionContract: spot must be > 0, got %v: %w", c.Spot, ErrDomain)
	case !positive(c.Expiry):
		return fmt.Errorf("domain.OptionContract: expiry must be > 0, got %v: %w", c.Expiry, ErrDomain)
	case !positive(c.Vol):
		return fmt.Errorf("domain.OptionContract: vol must be > 0, got %v: %w", c.Vol, ErrDomain)
	case math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0):
		return fmt.Errorf("domain.OptionContract: rate must be finite, got %v: %w", c.Rate, ErrDomain)
	}
	return nil
}

// positive es false para NaN, ±Inf y valores <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

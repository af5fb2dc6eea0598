package strategy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/alejandrodnm/butterfly/internal/domain"
)

// BlackScholes valora calls europeas con la fórmula cerrada de Black-Scholes
// (sin dividendos). No tiene estado: un valor cero es utilizable.
type BlackScholes struct{}

// NewBlackScholes crea el modelo.
func NewBlackScholes() *BlackScholes {
	return &BlackScholes{}
}

// Name implementa Pricer.
func (*BlackScholes) Name() string {
	return ModelBlackScholes
}

// Price implementa Pricer.
//
// Fórmula:
//
//	d1    = (ln(S/K) + (r + σ²/2)·T) / (σ·√T)
//	d2    = d1 - σ·√T
//	price = S·Φ(d1) - K·e^(-rT)·Φ(d2)
//
// Inputs degenerados (σ, T, S o K <= 0) fallan con domain.ErrDomain en vez
// de propagar NaN/Inf. El resultado no se redondea ni se acota.
func (*BlackScholes) Price(c domain.OptionContract) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("strategy.BlackScholes.Price: %w", err)
	}

	d1, d2 := D1D2(c)
	return c.Spot*normCDF(d1) - c.Strike*math.Exp(-c.Rate*c.Expiry)*normCDF(d2), nil
}

// D1D2 calcula los términos d1 y d2. Asume un contrato ya validado.
func D1D2(c domain.OptionContract) (d1, d2 float64) {
	volSqrtT := c.Vol * math.Sqrt(c.Expiry)
	d1 = (math.Log(c.Spot/c.Strike) + (c.Rate+c.Vol*c.Vol/2)*c.Expiry) / volSqrtT
	return d1, d1 - volSqrtT
}

// normCDF es Φ, la CDF de la normal estándar (basada en erfc, precisión double).
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

package butterfly

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/butterfly/internal/domain"
	"github.com/alejandrodnm/butterfly/internal/strategy"
)

// Evaluator valora una long call butterfly con el Pricer inyectado.
type Evaluator struct {
	pricer strategy.Pricer
}

// NewEvaluator crea un Evaluator. El Pricer se resuelve fuera (cmd/).
func NewEvaluator(pricer strategy.Pricer) *Evaluator {
	return &Evaluator{pricer: pricer}
}

// Evaluate valora las tres patas y devuelve cost = C1 - 2·C2 + C3.
//
// El coste no se acota: un valor negativo indica inconsistencia de inputs
// o error de redondeo cerca de cero y se devuelve tal cual.
func (e *Evaluator) Evaluate(_ context.Context, spread domain.ButterflySpread) (domain.Valuation, error) {
	if err := spread.Validate(); err != nil {
		return domain.Valuation{}, fmt.Errorf("butterfly.Evaluate: %w", err)
	}

	legs := spread.Legs()
	prices := make([]domain.LegPrice, 0, len(legs))
	var cost float64

	for i, leg := range legs {
		premium, err := e.pricer.Price(spread.Template.WithStrike(leg.Strike))
		if err != nil {
			return domain.Valuation{}, fmt.Errorf("butterfly.Evaluate: leg %d (K=%v): %w", i+1, leg.Strike, err)
		}
		contribution := leg.Weight * premium
		cost += contribution

		slog.Debug("leg priced",
			"leg", i+1,
			"strike", leg.Strike,
			"weight", leg.Weight,
			"premium", premium,
		)
		prices = append(prices, domain.LegPrice{Leg: leg, Premium: premium, Contribution: contribution})
	}

	if cost < 0 {
		slog.Warn("negative butterfly cost",
			"cost", cost,
			"model", e.pricer.Name(),
			"k1", spread.Lower, "k2", spread.Middle, "k3", spread.Upper,
		)
	}

	return domain.Valuation{
		Model:  e.pricer.Name(),
		Spread: spread,
		Legs:   prices,
		Cost:   cost,
	}, nil
}

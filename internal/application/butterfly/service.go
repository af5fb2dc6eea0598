package butterfly

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/butterfly/internal/domain"
	"github.com/alejandrodnm/butterfly/internal/ports"
)

// Service orquesta una ejecución: valorar, notificar y (opcional) persistir.
type Service struct {
	evaluator *Evaluator
	notifier  ports.Notifier
	store     ports.ValuationStore // nil = sin histórico
	now       func() time.Time
}

// NewService crea un Service con todas las dependencias inyectadas.
// store puede ser nil.
func NewService(evaluator *Evaluator, notifier ports.Notifier, store ports.ValuationStore) *Service {
	return &Service{
		evaluator: evaluator,
		notifier:  notifier,
		store:     store,
		now:       time.Now,
	}
}

// Run valora el spread una vez y publica el resultado.
func (s *Service) Run(ctx context.Context, spread domain.ButterflySpread) (domain.Valuation, error) {
	v, err := s.evaluator.Evaluate(ctx, spread)
	if err != nil {
		return domain.Valuation{}, err
	}
	v.ID = uuid.New().String()
	v.ValuedAt = s.now().UTC()

	slog.Info("butterfly valued",
		"id", v.ID,
		"model", v.Model,
		"cost", v.Cost,
		"symmetric", spread.IsSymmetric(),
	)

	if err := s.notifier.Notify(ctx, v); err != nil {
		return v, fmt.Errorf("butterfly.Run: notify: %w", err)
	}

	if s.store != nil {
		if err := s.store.SaveValuation(ctx, v); err != nil {
			return v, fmt.Errorf("butterfly.Run: save: %w", err)
		}
		slog.Debug("valuation stored", "id", v.ID)
	}

	return v, nil
}

package butterfly_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/butterfly/config"
	"github.com/alejandrodnm/butterfly/internal/application/butterfly"
	"github.com/alejandrodnm/butterfly/internal/domain"
	"github.com/alejandrodnm/butterfly/internal/strategy"
)

// --- mocks ---

// tablePricer devuelve un precio fijo por strike y cuenta las llamadas.
type tablePricer struct {
	prices map[float64]float64
	err    error
	calls  int
}

func (p *tablePricer) Name() string { return "Table" }

func (p *tablePricer) Price(c domain.OptionContract) (float64, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	return p.prices[c.Strike], nil
}

type mockNotifier struct {
	notified []domain.Valuation
	err      error
}

func (m *mockNotifier) Notify(_ context.Context, v domain.Valuation) error {
	m.notified = append(m.notified, v)
	return m.err
}

type mockStore struct {
	saved []domain.Valuation
	err   error
}

func (m *mockStore) SaveValuation(_ context.Context, v domain.Valuation) error {
	m.saved = append(m.saved, v)
	return m.err
}

func (m *mockStore) GetHistory(_ context.Context, _, _ time.Time) ([]domain.Valuation, error) {
	return m.saved, nil
}

func (m *mockStore) Close() error { return nil }

// --- helpers ---

func workedExample() domain.ButterflySpread {
	return domain.ButterflySpread{
		Template: domain.OptionContract{Spot: 100, Expiry: 1, Rate: 0.05, Vol: 0.2},
		Lower:    95,
		Middle:   100,
		Upper:    105,
	}
}

func blackScholesEvaluator() *butterfly.Evaluator {
	return butterfly.NewEvaluator(strategy.NewBlackScholes())
}

// --- Evaluator ---

func TestEvaluate_WorkedExample(t *testing.T) {
	v, err := blackScholesEvaluator().Evaluate(context.Background(), workedExample())
	require.NoError(t, err)
	require.Len(t, v.Legs, 3)

	c1, c2, c3 := v.Legs[0].Premium, v.Legs[1].Premium, v.Legs[2].Premium
	assert.Greater(t, c3, 0.0)
	assert.Greater(t, c1, c2)
	assert.Greater(t, c2, c3)

	assert.Equal(t, c1-2*c2+c3, v.Cost)
	assert.Greater(t, v.Cost, 0.0)
	assert.InDelta(t, 0.46665, v.Cost, 1e-4)
	assert.Equal(t, "BlackScholes", v.Model)
}

func TestEvaluate_Contributions(t *testing.T) {
	p := &tablePricer{prices: map[float64]float64{95: 13, 100: 10, 105: 8}}
	v, err := butterfly.NewEvaluator(p).Evaluate(context.Background(), workedExample())
	require.NoError(t, err)

	assert.Equal(t, 3, p.calls)
	assert.Equal(t, 13.0, v.Legs[0].Contribution)
	assert.Equal(t, -20.0, v.Legs[1].Contribution)
	assert.Equal(t, 8.0, v.Legs[2].Contribution)
	assert.Equal(t, 1.0, v.Cost)
}

func TestEvaluate_NegativeCostNotClamped(t *testing.T) {
	// precios no convexos: el evaluator no corrige, solo reporta
	p := &tablePricer{prices: map[float64]float64{95: 10, 100: 10, 105: 9}}
	v, err := butterfly.NewEvaluator(p).Evaluate(context.Background(), workedExample())
	require.NoError(t, err)
	assert.Equal(t, -1.0, v.Cost)
	assert.False(t, v.IsDebit())
}

func TestEvaluate_UnevenStrikes(t *testing.T) {
	spread := workedExample()
	spread.Lower = 90
	v, err := blackScholesEvaluator().Evaluate(context.Background(), spread)
	require.NoError(t, err)
	assert.False(t, spread.IsSymmetric())
	assert.Greater(t, v.Cost, 0.0)
}

func TestEvaluate_PositiveAcrossParameters(t *testing.T) {
	for _, spot := range []float64{80, 100, 120} {
		for _, vol := range []float64{0.1, 0.2, 0.5} {
			spread := workedExample()
			spread.Template.Spot = spot
			spread.Template.Vol = vol
			v, err := blackScholesEvaluator().Evaluate(context.Background(), spread)
			require.NoError(t, err)
			assert.Greater(t, v.Cost, 0.0, "spot=%v vol=%v", spot, vol)
			assert.Less(t, v.Cost, spread.MaxPayoff(), "spot=%v vol=%v", spot, vol)
		}
	}
}

func TestEvaluate_InvalidSpreadPricesNothing(t *testing.T) {
	p := &tablePricer{}
	spread := workedExample()
	spread.Lower, spread.Upper = spread.Upper, spread.Lower

	_, err := butterfly.NewEvaluator(p).Evaluate(context.Background(), spread)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Equal(t, 0, p.calls)
}

func TestEvaluate_DegenerateTemplate(t *testing.T) {
	spread := workedExample()
	spread.Template.Vol = 0
	_, err := blackScholesEvaluator().Evaluate(context.Background(), spread)
	assert.ErrorIs(t, err, domain.ErrDomain)
}

func TestEvaluate_PricerErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	p := &tablePricer{err: boom}
	_, err := butterfly.NewEvaluator(p).Evaluate(context.Background(), workedExample())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, p.calls)
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := blackScholesEvaluator()
	a, err := e.Evaluate(context.Background(), workedExample())
	require.NoError(t, err)
	b, err := e.Evaluate(context.Background(), workedExample())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// --- Service ---

func TestService_Run_NotifiesAndStores(t *testing.T) {
	n := &mockNotifier{}
	s := &mockStore{}
	svc := butterfly.NewService(blackScholesEvaluator(), n, s)

	v, err := svc.Run(context.Background(), workedExample())
	require.NoError(t, err)

	assert.NotEmpty(t, v.ID)
	assert.False(t, v.ValuedAt.IsZero())
	require.Len(t, n.notified, 1)
	require.Len(t, s.saved, 1)
	assert.Equal(t, v, n.notified[0])
	assert.Equal(t, v.ID, s.saved[0].ID)
}

func TestService_Run_WithoutStore(t *testing.T) {
	n := &mockNotifier{}
	svc := butterfly.NewService(blackScholesEvaluator(), n, nil)

	_, err := svc.Run(context.Background(), workedExample())
	require.NoError(t, err)
	assert.Len(t, n.notified, 1)
}

func TestService_Run_UniqueIDs(t *testing.T) {
	svc := butterfly.NewService(blackScholesEvaluator(), &mockNotifier{}, nil)
	a, err := svc.Run(context.Background(), workedExample())
	require.NoError(t, err)
	b, err := svc.Run(context.Background(), workedExample())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestService_Run_EvaluateErrorSkipsNotify(t *testing.T) {
	n := &mockNotifier{}
	s := &mockStore{}
	svc := butterfly.NewService(blackScholesEvaluator(), n, s)

	spread := workedExample()
	spread.Template.Expiry = 0
	_, err := svc.Run(context.Background(), spread)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Empty(t, n.notified)
	assert.Empty(t, s.saved)
}

func TestService_Run_StoreError(t *testing.T) {
	s := &mockStore{err: errors.New("disk full")}
	svc := butterfly.NewService(blackScholesEvaluator(), &mockNotifier{}, s)

	_, err := svc.Run(context.Background(), workedExample())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestService_Run_NotifyError(t *testing.T) {
	n := &mockNotifier{err: errors.New("stdout closed")}
	s := &mockStore{}
	svc := butterfly.NewService(blackScholesEvaluator(), n, s)

	_, err := svc.Run(context.Background(), workedExample())
	require.Error(t, err)
	assert.Empty(t, s.saved)
}

func TestService_Run_ConfiguredZeroVolRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pricing:\n  vol: 0\n"), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	n := &mockNotifier{}
	s := &mockStore{}
	svc := butterfly.NewService(blackScholesEvaluator(), n, s)

	_, err = svc.Run(context.Background(), cfg.Pricing.Spread())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Empty(t, n.notified)
	assert.Empty(t, s.saved)
}

package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/butterfly/internal/domain"
)

// Console implementa ports.Notifier.
type Console struct {
	out     io.Writer
	table   bool
	profile bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table, profile bool) *Console {
	return &Console{out: os.Stdout, table: table, profile: profile}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table, profile bool) *Console {
	return &Console{out: w, table: table, profile: profile}
}

// Notify imprime la valoración en el modo configurado.
// El modo por defecto es una sola línea con el coste y el modelo.
func (c *Console) Notify(_ context.Context, v domain.Valuation) error {
	if c.table {
		if err := c.printTable(v); err != nil {
			return fmt.Errorf("notify.Notify: %w", err)
		}
	}

	fmt.Fprintln(c.out, CompactLine(v))

	if c.table {
		c.printSummary(v)
	}
	if c.profile {
		if err := c.printProfile(v); err != nil {
			return fmt.Errorf("notify.Notify: %w", err)
		}
	}
	return nil
}

// CompactLine devuelve la línea de resultado estándar.
func CompactLine(v domain.Valuation) string {
	return fmt.Sprintf("Cost of Long Call Butterfly Spread using %s: %.2f", v.Model, v.Cost)
}

// printTable imprime el desglose por pata.
func (c *Console) printTable(v domain.Valuation) error {
	t := v.Spread.Template
	fmt.Fprintf(c.out, "\nS=%.2f  T=%.4fy  r=%.4f  σ=%.4f  model=%s\n",
		t.Spot, t.Expiry, t.Rate, t.Vol, v.Model)

	table := tablewriter.NewWriter(c.out)
	table.Header("Leg", "Side", "Strike", "Weight", "Premium", "Contribution")

	for i, lp := range v.Legs {
		if err := table.Append(
			fmt.Sprintf("K%d", i+1),
			side(lp.Weight),
			fmt.Sprintf("%.2f", lp.Strike),
			fmt.Sprintf("%+.0f", lp.Weight),
			fmt.Sprintf("%.4f", lp.Premium),
			fmt.Sprintf("%+.4f", lp.Contribution),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

// printSummary imprime débito/crédito y el perfil de riesgo a vencimiento.
func (c *Console) printSummary(v domain.Valuation) {
	kind := "DEBIT"
	if !v.IsDebit() {
		kind = "CREDIT (check inputs: a genuine butterfly is never a credit)"
	}
	fmt.Fprintf(c.out, "  Net premium: %.4f %s\n", v.Cost, kind)
	fmt.Fprintf(c.out, "  Max payoff:  %.4f at S_T=%.2f\n", v.Spread.MaxPayoff(), v.Spread.Middle)
	fmt.Fprintf(c.out, "  Max profit:  %.4f\n", v.MaxProfit())
	if v.Spread.IsSymmetric() && v.IsDebit() {
		fmt.Fprintf(c.out, "  Break-even:  %.2f / %.2f\n",
			v.Spread.Lower+v.Cost, v.Spread.Upper-v.Cost)
	}
	fmt.Fprintln(c.out)
}

// printProfile imprime el P&L a vencimiento en una rejilla de precios finales.
func (c *Console) printProfile(v domain.Valuation) error {
	fmt.Fprintln(c.out, "=== PAYOFF AT EXPIRY ===")

	table := tablewriter.NewWriter(c.out)
	table.Header("S_T", "Payoff", "P&L")
	for _, s := range profileGrid(v.Spread) {
		payoff := v.Spread.PayoffAt(s)
		if err := table.Append(
			fmt.Sprintf("%.2f", s),
			fmt.Sprintf("%.4f", payoff),
			fmt.Sprintf("%+.4f", payoff-v.Cost),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

// profileGrid devuelve K1-w, K1, puntos medios, K2, K3 y K3+w, con w el ancho del ala izquierda.
func profileGrid(b domain.ButterflySpread) []float64 {
	w := b.Middle - b.Lower
	return []float64{
		b.Lower - w,
		b.Lower,
		(b.Lower + b.Middle) / 2,
		b.Middle,
		(b.Middle + b.Upper) / 2,
		b.Upper,
		b.Upper + w,
	}
}

func side(weight float64) string {
	if weight < 0 {
		return "SELL"
	}
	return "BUY"
}

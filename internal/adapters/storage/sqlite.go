package storage

// sqlite.go — histórico de valoraciones.
//
// Una fila por ejecución en `valuations`, con los inputs del modelo, las tres
// primas y el coste neto. Solo se escribe si el usuario pasa un DSN; la
// ejecución por defecto no toca disco.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/butterfly/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS valuations (
    id         TEXT PRIMARY KEY,
    model      TEXT     NOT NULL,
    valued_at  TEXT     NOT NULL,
    spot       REAL     NOT NULL,
    expiry     REAL     NOT NULL,
    rate       REAL     NOT NULL,
    vol        REAL     NOT NULL,
    k1         REAL     NOT NULL,
    k2         REAL     NOT NULL,
    k3         REAL     NOT NULL,
    c1         REAL     NOT NULL,
    c2         REAL     NOT NULL,
    c3         REAL     NOT NULL,
    cost       REAL     NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_valuations_at ON valuations(valued_at DESC);
`

// timeLayout es de ancho fijo para que valued_at ordene bien como texto.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStorage implementa ports.ValuationStore usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica el schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// SaveValuation inserta una valoración. Requiere v.ID y exactamente tres patas.
func (s *SQLiteStorage) SaveValuation(ctx context.Context, v domain.Valuation) error {
	if v.ID == "" {
		return fmt.Errorf("storage.SaveValuation: empty id")
	}
	if len(v.Legs) != 3 {
		return fmt.Errorf("storage.SaveValuation: expected 3 legs, got %d", len(v.Legs))
	}

	t := v.Spread.Template
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO valuations
			(id, model, valued_at, spot, expiry, rate, vol, k1, k2, k3, c1, c2, c3, cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Model, v.ValuedAt.UTC().Format(timeLayout),
		t.Spot, t.Expiry, t.Rate, t.Vol,
		v.Spread.Lower, v.Spread.Middle, v.Spread.Upper,
		v.Legs[0].Premium, v.Legs[1].Premium, v.Legs[2].Premium,
		v.Cost,
	); err != nil {
		return fmt.Errorf("storage.SaveValuation: insert %s: %w", v.ID, err)
	}
	return nil
}

// GetHistory devuelve las valoraciones cuyo valued_at está en el rango dado.
// Ordenadas de la más reciente a la más antigua.
func (s *SQLiteStorage) GetHistory(ctx context.Context, from, to time.Time) ([]domain.Valuation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, valued_at, spot, expiry, rate, vol,
		       k1, k2, k3, c1, c2, c3, cost
		FROM valuations
		WHERE valued_at BETWEEN ? AND ?
		ORDER BY valued_at DESC
	`, from.UTC().Format(timeLayout), to.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Valuation
	for rows.Next() {
		var (
			v          domain.Valuation
			valuedAt   string
			c1, c2, c3 float64
		)
		if err := rows.Scan(
			&v.ID, &v.Model, &valuedAt,
			&v.Spread.Template.Spot, &v.Spread.Template.Expiry,
			&v.Spread.Template.Rate, &v.Spread.Template.Vol,
			&v.Spread.Lower, &v.Spread.Middle, &v.Spread.Upper,
			&c1, &c2, &c3, &v.Cost,
		); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: scan row: %w", err)
		}

		v.ValuedAt, _ = time.Parse(timeLayout, valuedAt)
		v.Legs = legPrices(v.Spread, c1, c2, c3)
		out = append(out, v)
	}

	return out, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// legPrices reconstruye el desglose por pata a partir de las primas guardadas.
func legPrices(b domain.ButterflySpread, premiums ...float64) []domain.LegPrice {
	legs := b.Legs()
	out := make([]domain.LegPrice, len(legs))
	for i, leg := range legs {
		out[i] = domain.LegPrice{Leg: leg, Premium: premiums[i], Contribution: leg.Weight * premiums[i]}
	}
	return out
}

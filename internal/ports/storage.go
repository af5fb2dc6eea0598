package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/butterfly/internal/domain"
)

// ValuationStore persiste el histórico de valoraciones.
type ValuationStore interface {
	// SaveValuation persiste una valoración. v.ID debe estar asignado.
	SaveValuation(ctx context.Context, v domain.Valuation) error

	// GetHistory devuelve las valoraciones registradas en el rango de tiempo dado.
	GetHistory(ctx context.Context, from, to time.Time) ([]domain.Valuation, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}

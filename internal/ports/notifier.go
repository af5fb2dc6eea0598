package ports

import (
	"context"

	"github.com/alejandrodnm/butterfly/internal/domain"
)

// Notifier presenta el resultado de una valoración al usuario.
type Notifier interface {
	// Notify muestra el coste de la butterfly.
	// En la implementación de consola, imprime una línea (o una tabla por pata).
	Notify(ctx context.Context, v domain.Valuation) error
}

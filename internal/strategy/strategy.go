package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alejandrodnm/butterfly/internal/domain"
)

// ModelBlackScholes es el nombre registrado del modelo Black-Scholes.
const ModelBlackScholes = "BlackScholes"

// Pricer define el contrato de un modelo de pricing de calls europeas.
// Cada modelo encapsula una fórmula distinta; las implementaciones son puras.
type Pricer interface {
	// Name devuelve el identificador único del modelo.
	Name() string

	// Price devuelve el precio teórico de la call. Devuelve un error que
	// envuelve domain.ErrDomain si el contrato no es válido para el modelo.
	Price(c domain.OptionContract) (float64, error)
}

// Constructor crea una instancia nueva de un Pricer.
type Constructor func() Pricer

// Registry mantiene los modelos disponibles indexados por nombre.
type Registry map[string]Constructor

// NewRegistry crea un registry vacío.
func NewRegistry() Registry {
	return make(Registry)
}

// DefaultRegistry devuelve un registry con todos los modelos incluidos.
func DefaultRegistry() Registry {
	r := NewRegistry()
	r.Register(ModelBlackScholes, func() Pricer { return NewBlackScholes() })
	return r
}

// Register añade un modelo al registry. Un nombre repetido reemplaza al anterior.
func (r Registry) Register(name string, ctor Constructor) {
	r[name] = ctor
}

// Resolve devuelve un Pricer para el nombre dado (match exacto, sensible a mayúsculas).
// Un nombre desconocido devuelve domain.ErrInvalidConfiguration y ningún Pricer.
func (r Registry) Resolve(name string) (Pricer, error) {
	ctor, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("strategy.Resolve: unknown model %q (registered: %s): %w",
			name, strings.Join(r.Names(), ", "), domain.ErrInvalidConfiguration)
	}
	return ctor(), nil
}

// Names devuelve los nombres registrados ordenados.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resuelve el nombre contra DefaultRegistry.
func Resolve(name string) (Pricer, error) {
	return DefaultRegistry().Resolve(name)
}

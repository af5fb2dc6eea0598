package domain

import "errors"

var (
	// ErrInvalidConfiguration indica que se pidió un modelo de pricing que no
	// está registrado. Es un error de programación/config: no hay fallback.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDomain indica inputs numéricos fuera del dominio de la fórmula
	// (S, K, T o sigma no positivos, o valores no finitos).
	ErrDomain = errors.New("domain error")
)

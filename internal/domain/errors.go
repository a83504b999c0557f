package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrLotesDesfasados: la suma de lotes activos no alcanza a cubrir una salida
	// que la validación contra el stock agregado ya había aceptado. El agregado y
	// el libro de lotes divergieron; la transacción debe abortarse completa.
	ErrLotesDesfasados = errors.New("lotes activos desfasados del stock agregado")
)

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNotReversible      = errors.New("solo los movimientos de venta pueden revertirse")
	ErrMissingAnchor      = errors.New("las páginas siguientes requieren el continuation_quantity de la página anterior")
)

// LineError identifica la línea de un lote (venta o devolución) que hizo
// abortar la operación completa. Reason es ErrInsufficientStock o ErrNotFound.
type LineError struct {
	SKU    string
	Reason error
}

func (e *LineError) Error() string {
	if errors.Is(e.Reason, ErrInsufficientStock) {
		return fmt.Sprintf("Item with SKU %s not found or insufficient stock", e.SKU)
	}
	return fmt.Sprintf("Item with SKU %s not found", e.SKU)
}

func (e *LineError) Unwrap() error { return e.Reason }

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockShortageError indica que una venta pidió más unidades de las disponibles.
// Lleva la cantidad disponible para que el caller pueda mostrarla sin otra consulta.
// errors.Is(err, ErrInsufficientStock) devuelve true para este error.
type StockShortageError struct {
	Available int
	Requested int
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *StockShortageError) Is(target error) bool {
	return target == ErrInsufficientStock
}

package logger

import (
	"time"

	"github.com/tu-usuario/pos-inventario/internal/application/engine"
)

var _ engine.Observer = (*OperationObserver)(nil)

// OperationObserver registra cada operación del motor con su resultado y duración.
type OperationObserver struct {
	log *Logger
}

// NewOperationObserver construye el observador sobre el logger dado.
func NewOperationObserver(log *Logger) *OperationObserver {
	return &OperationObserver{log: log}
}

// ObserveOperation emite una línea por operación. Los resultados de negocio
// (stock insuficiente, duplicado) se registran como info, no como error.
func (o *OperationObserver) ObserveOperation(operation, outcome string, duration time.Duration) {
	event := o.log.Info()
	if outcome == "error" {
		event = o.log.Error()
	}
	event.
		Str("operation", operation).
		Str("outcome", outcome).
		Dur("duration", duration).
		Msg("operación completada")
}

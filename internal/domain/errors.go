package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El motor de ajustes nunca los registra ni los traga: los retorna al gateway,
// que decide el mensaje hacia el usuario.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrInvalidTransition: el evento solicitado no es válido desde el estado actual.
	// No es un fallo del sistema; la operación se rechaza sin cambio de estado.
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// ErrValidationFailed: datos del evento inválidos (ej. motivo de rechazo fuera de 10–500 caracteres).
	ErrValidationFailed = errors.New("validación fallida")

	// ErrAlreadyProcessed: process invocado sobre un ajuste que ya tiene movimiento de kardex enlazado.
	// El llamador debe tratarlo como "ya ocurrió", no como reintentable.
	ErrAlreadyProcessed = errors.New("el ajuste ya fue procesado")

	// ErrConcurrentModification: conflicto de bloqueo/versión sobre la fila de stock durante process.
	// El llamador puede reintentar la operación completa.
	ErrConcurrentModification = errors.New("modificación concurrente, reintente la operación")
)

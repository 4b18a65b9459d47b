package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidReference    = errors.New("referencia a un recurso inexistente")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrUpstreamUnavailable = errors.New("servicio externo no disponible")
)

// InsufficientStockError lleva el detalle de los ingredientes faltantes.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando.
type InsufficientStockError struct {
	Missing []string
}

func (e *InsufficientStockError) Error() string {
	if len(e.Missing) == 0 {
		return ErrInsufficientStock.Error()
	}
	return fmt.Sprintf("stock insuficiente, ingredientes faltantes: %s", strings.Join(e.Missing, ", "))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError lleva detalle por campo para respuestas 400.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrEmptySelection = errors.New("debe seleccionar elementos para realizar acciones sobre ellos; no se modificó ningún elemento")
	ErrConfiguration  = errors.New("configuración de administración inválida")
)

// ValidationError agrupa errores por campo de un envío (formulario, edición en lista, fila de importación).
// La clave "__all__" contiene errores que no pertenecen a un campo concreto.
type ValidationError struct {
	Fields map[string][]string
}

// NonFieldKey clave para errores generales del formulario.
const NonFieldKey = "__all__"

// NewValidationError crea un error vacío listo para acumular mensajes.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add agrega un mensaje al campo.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Merge copia los errores de other anteponiendo prefix a cada campo.
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for f, msgs := range other.Fields {
		for _, m := range msgs {
			e.Add(prefix+f, m)
		}
	}
}

// HasErrors indica si hay al menos un mensaje.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil devuelve nil cuando no hay errores, para poder retornar directamente.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validación: " + strings.Join(parts, ", ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigurationError describe un descriptor de administración inválido. Se detecta al registrar
// el modelo (arranque) y es fatal.
type ConfigurationError struct {
	Model  string
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("admin %s: %s: %s", e.Model, e.Option, e.Reason)
}

// Is permite errors.Is(err, ErrConfiguration).
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

package repository

import (
	"strings"
	"time"
)

// ConditionKind tipo de predicado aplicable a un campo.
type ConditionKind int

const (
	// CondIn el campo es igual a alguno de Values (OR). En M2M: alguno de los relacionados está en Values.
	CondIn ConditionKind = iota
	// CondRange Lower <= campo <= Upper (o < Upper si UpperOpen). Límite nil = sin cota.
	CondRange
	// CondDatePart año/mes/día de un campo temporal (0 = no se filtra esa parte).
	CondDatePart
)

// Condition predicado sobre un campo. Las condiciones de una Query se combinan con AND.
type Condition struct {
	Kind   ConditionKind
	Field  string
	Values []any
	Negate bool

	Lower     any
	Upper     any
	UpperOpen bool

	Year, Month, Day int
}

// In construye una condición de igualdad múltiple.
func In(field string, values ...any) Condition {
	return Condition{Kind: CondIn, Field: field, Values: values}
}

// NotIn negación de In.
func NotIn(field string, values ...any) Condition {
	return Condition{Kind: CondIn, Field: field, Values: values, Negate: true}
}

// IDsIn condición sobre la identidad.
func IDsIn(ids []int64) Condition {
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return Condition{Kind: CondIn, Field: "id", Values: values}
}

// SearchMode forma de comparar un término contra un campo.
type SearchMode int

const (
	SearchContains SearchMode = iota
	SearchPrefix
	SearchExact
)

// SearchField campo de búsqueda y su modo.
type SearchField struct {
	Field string
	Mode  SearchMode
}

// ParseSearchField interpreta los prefijos "^" (prefijo) y "=" (exacto).
func ParseSearchField(spec string) SearchField {
	switch {
	case strings.HasPrefix(spec, "^"):
		return SearchField{Field: spec[1:], Mode: SearchPrefix}
	case strings.HasPrefix(spec, "="):
		return SearchField{Field: spec[1:], Mode: SearchExact}
	}
	return SearchField{Field: spec, Mode: SearchContains}
}

// Search búsqueda de texto libre: cada palabra debe coincidir con al menos un campo.
type Search struct {
	Terms  []string
	Fields []SearchField
}

// OrderField criterio de ordenamiento.
type OrderField struct {
	Field string
	Desc  bool
}

// ParseOrder interpreta "campo" / "-campo".
func ParseOrder(spec string) OrderField {
	if strings.HasPrefix(spec, "-") {
		return OrderField{Field: spec[1:], Desc: true}
	}
	return OrderField{Field: spec}
}

// Query consulta sobre un Record Store. Limit 0 = sin límite.
type Query struct {
	Conditions []Condition
	Search     *Search
	Order      []OrderField
	Limit      int
	Offset     int
	// None fuerza un resultado vacío (p. ej. rango con límite inferior mayor al superior).
	None bool
}

// With devuelve una copia con condiciones adicionales.
func (q Query) With(conds ...Condition) Query {
	out := q
	out.Conditions = append(append([]Condition(nil), q.Conditions...), conds...)
	return out
}

// Unpaged copia sin orden ni paginación (para conteos y distintos).
func (q Query) Unpaged() Query {
	out := q
	out.Order = nil
	out.Limit = 0
	out.Offset = 0
	return out
}

// DateTrunc granularidad para DistinctDates.
type DateTrunc string

const (
	TruncYear  DateTrunc = "year"
	TruncMonth DateTrunc = "month"
	TruncDay   DateTrunc = "day"
)

// Truncate aplica la granularidad a t (en UTC).
func (d DateTrunc) Truncate(t time.Time) time.Time {
	t = t.UTC()
	switch d {
	case TruncYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	case TruncMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

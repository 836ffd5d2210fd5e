package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Formatos de fecha aceptados en formularios e importaciones.
const (
	DateLayout = "2006-01-02"
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Parse convierte texto (formulario, CSV) al tipo Go del campo. Texto vacío devuelve (nil, nil).
func (f *Field) Parse(raw string) (any, error) {
	s := strings.TrimSpace(raw)
	switch f.Type {
	case FieldString, FieldText, FieldSlug, FieldImage:
		if s == "" {
			return nil, nil
		}
		return s, nil
	case FieldAutoID, FieldInt, FieldForeignKey:
		if s == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q no es un número entero válido", raw)
		}
		return n, nil
	case FieldBool:
		if s == "" {
			return nil, nil
		}
		return parseBool(s)
	case FieldDate:
		if s == "" {
			return nil, nil
		}
		t, err := parseTime(s)
		if err != nil {
			return nil, err
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case FieldDateTime:
		if s == "" {
			return nil, nil
		}
		return parseTime(s)
	case FieldManyToMany:
		ids := []int64{}
		if s == "" {
			return ids, nil
		}
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%q no es un identificador válido", part)
			}
			ids = append(ids, n)
		}
		return SortIDs(ids), nil
	}
	return nil, fmt.Errorf("tipo de campo no soportado: %s", f.Type)
}

// Coerce convierte un valor decodificado de JSON (string, float64, bool, []any, nil)
// al tipo Go del campo.
func (f *Field) Coerce(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		if f.Type == FieldManyToMany {
			return []int64{}, nil
		}
		return nil, nil
	case string:
		return f.Parse(x)
	case float64:
		switch f.Type {
		case FieldAutoID, FieldInt, FieldForeignKey:
			if x != float64(int64(x)) {
				return nil, fmt.Errorf("%v no es un número entero válido", x)
			}
			return int64(x), nil
		}
	case int:
		return f.Coerce(float64(x))
	case int64:
		return f.Coerce(float64(x))
	case bool:
		if f.Type == FieldBool {
			return x, nil
		}
	case time.Time:
		if f.IsTemporal() {
			return x, nil
		}
	case []int64:
		if f.Type == FieldManyToMany {
			return SortIDs(x), nil
		}
	case []any:
		if f.Type == FieldManyToMany {
			ids := make([]int64, 0, len(x))
			for _, item := range x {
				n, err := (&Field{Type: FieldInt}).Coerce(item)
				if err != nil || n == nil {
					return nil, fmt.Errorf("%v no es un identificador válido", item)
				}
				ids = append(ids, n.(int64))
			}
			return SortIDs(ids), nil
		}
	}
	return nil, fmt.Errorf("valor %v inválido para un campo %s", v, f.Type)
}

// Validate verifica las restricciones del campo sobre un valor ya convertido.
func (f *Field) Validate(v any) error {
	if v == nil {
		if f.Required {
			return fmt.Errorf("este campo es obligatorio")
		}
		return nil
	}
	switch f.Type {
	case FieldString, FieldText, FieldSlug, FieldImage:
		s, _ := v.(string)
		if s == "" && f.Required {
			return fmt.Errorf("este campo es obligatorio")
		}
		if n := utf8.RuneCountInString(s); f.MaxLength > 0 && n > f.MaxLength {
			return fmt.Errorf("asegúrese de que este valor tenga como máximo %d caracteres (tiene %d)", f.MaxLength, n)
		}
		if f.Type == FieldSlug && s != "" && !slugPattern.MatchString(s) {
			return fmt.Errorf("introduzca un slug válido: letras, números, guiones bajos o medios")
		}
	case FieldForeignKey:
		if id, _ := v.(int64); id <= 0 {
			return fmt.Errorf("seleccione una opción válida")
		}
	case FieldManyToMany:
		if ids, _ := v.([]int64); f.Required && len(ids) == 0 {
			return fmt.Errorf("este campo es obligatorio")
		}
	}
	return nil
}

// Format representa el valor como texto para exportación.
func (f *Field) Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		if x.IsZero() {
			return ""
		}
		if f.Type == FieldDate {
			return x.Format(DateLayout)
		}
		return x.UTC().Format(time.RFC3339)
	case []int64:
		parts := make([]string, 0, len(x))
		for _, id := range x {
			parts = append(parts, strconv.FormatInt(id, 10))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "y", "si", "sí", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q no es un valor booleano válido", s)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q no es una fecha válida", s)
}

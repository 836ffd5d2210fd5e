package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
)

// JSON codec de arreglo de objetos; conserva el orden de las columnas.
type JSON struct{}

var _ admin.Codec = (*JSON)(nil)

// NewJSON codec JSON.
func NewJSON() *JSON { return &JSON{} }

func (JSON) Format() string      { return "json" }
func (JSON) ContentType() string { return "application/json" }

// Encode escribe [{"col": "valor", ...}, ...] con las claves en el orden de la cabecera.
func (JSON) Encode(ds *admin.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range ds.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  {")
		for j, h := range ds.Headers {
			if j > 0 {
				buf.WriteString(", ")
			}
			k, _ := json.Marshal(h)
			v, _ := json.Marshal(cell(row, j))
			buf.Write(k)
			buf.WriteString(": ")
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	if len(ds.Rows) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

// Decode acepta un arreglo de objetos planos. Números, booleanos y arreglos se convierten a texto.
func (JSON) Decode(r io.Reader) (*admin.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	b := newTableBuilder("")
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		b.startRow()
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("json: %w", err)
			}
			key, _ := tok.(string)
			var raw any
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("json: %w", err)
			}
			b.set(key, scalar(raw))
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
	}
	return b.dataset(), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("json: se esperaba %q", want)
	}
	return nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case json.Number:
		return x.String()
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, scalar(e))
		}
		return strings.Join(parts, ",")
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

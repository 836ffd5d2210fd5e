package exchange

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV codec de valores separados por comas con fila de cabecera.
type CSV struct {
	Comma rune
}

var _ admin.Codec = (*CSV)(nil)

// NewCSV codec CSV separado por comas.
func NewCSV() *CSV { return &CSV{Comma: ','} }

func (c *CSV) Format() string      { return "csv" }
func (c *CSV) ContentType() string { return "text/csv; charset=utf-8" }

// Encode escribe la cabecera y una línea por fila.
func (c *CSV) Encode(ds *admin.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = c.Comma
	if err := w.Write(ds.Headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(ds.Rows); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode lee la cabecera y las filas; tolera BOM y filas con menos columnas.
func (c *CSV) Decode(r io.Reader) (*admin.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = c.Comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: archivo vacío")
	}
	ds := &admin.Dataset{Headers: records[0]}
	for _, rec := range records[1:] {
		ds.Rows = append(ds.Rows, pad(rec, len(ds.Headers)))
	}
	return ds, nil
}

// Package exchange implementa los formatos tabulares de importación/exportación del panel.
package exchange

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
)

// Codecs formatos de intercambio bidireccionales, en el orden en que se ofrecen.
func Codecs() []admin.Codec {
	return []admin.Codec{NewCSV(), NewJSON(), NewYAML(), NewXML()}
}

// Charsets aceptados al importar archivos de texto.
const (
	CharsetUTF8        = "utf-8"
	CharsetLatin1      = "latin1"
	CharsetWindows1252 = "windows-1252"
)

// NewReader decodifica r desde charset a UTF-8. Vacío equivale a UTF-8.
func NewReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return r, nil
	case CharsetLatin1, "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case CharsetWindows1252, "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	}
	return nil, fmt.Errorf("codificación %q no soportada (utf-8, latin1, windows-1252)", charset)
}

// pad completa con vacíos las filas cortas.
func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

// tableBuilder arma un Dataset a partir de registros clave/valor: la cabecera es la unión
// de claves en orden de aparición.
type tableBuilder struct {
	ds      *admin.Dataset
	index   map[string]int
	objects []map[int]string
}

func newTableBuilder(title string) *tableBuilder {
	return &tableBuilder{ds: &admin.Dataset{Title: title}, index: make(map[string]int)}
}

func (b *tableBuilder) startRow() {
	b.objects = append(b.objects, make(map[int]string))
}

func (b *tableBuilder) set(key, value string) {
	i, ok := b.index[key]
	if !ok {
		i = len(b.ds.Headers)
		b.index[key] = i
		b.ds.Headers = append(b.ds.Headers, key)
	}
	b.objects[len(b.objects)-1][i] = value
}

func (b *tableBuilder) dataset() *admin.Dataset {
	for _, obj := range b.objects {
		row := make([]string, len(b.ds.Headers))
		for i, v := range obj {
			row[i] = v
		}
		b.ds.Rows = append(b.ds.Rows, row)
	}
	return b.ds
}

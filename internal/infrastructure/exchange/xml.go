package exchange

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
)

// XML codec <dataset><row><campo>valor</campo>...</row></dataset>.
type XML struct{}

var _ admin.Codec = (*XML)(nil)

// NewXML codec XML.
func NewXML() *XML { return &XML{} }

func (XML) Format() string      { return "xml" }
func (XML) ContentType() string { return "application/xml" }

// Encode escribe un elemento por fila y un hijo por columna.
func (XML) Encode(ds *admin.Dataset) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("dataset")
	if ds.Title != "" {
		root.CreateAttr("title", ds.Title)
	}
	for _, row := range ds.Rows {
		el := root.CreateElement("row")
		for i, h := range ds.Headers {
			el.CreateElement(h).SetText(cell(row, i))
		}
	}
	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xml: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode lee las filas hijas de la raíz; la cabecera es la unión de etiquetas en orden de aparición.
func (XML) Decode(r io.Reader) (*admin.Dataset, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("xml: documento sin elemento raíz")
	}
	b := newTableBuilder(root.SelectAttrValue("title", ""))
	for _, rowEl := range root.ChildElements() {
		b.startRow()
		for _, f := range rowEl.ChildElements() {
			b.set(f.Tag, f.Text())
		}
	}
	return b.dataset(), nil
}

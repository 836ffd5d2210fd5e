package exchange

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
)

// YAML codec de secuencia de mapas; se trabaja sobre yaml.Node para conservar el orden de las claves.
type YAML struct{}

var _ admin.Codec = (*YAML)(nil)

// NewYAML codec YAML.
func NewYAML() *YAML { return &YAML{} }

func (YAML) Format() string      { return "yaml" }
func (YAML) ContentType() string { return "application/yaml" }

// Encode escribe una lista de mapas; todos los valores como cadenas.
func (YAML) Encode(ds *admin.Dataset) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, row := range ds.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i, h := range ds.Headers {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: h},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cell(row, i)},
			)
		}
		seq.Content = append(seq.Content, m)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{seq}}); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode acepta una lista de mapas planos; listas anidadas se unen con comas.
func (YAML) Decode(r io.Reader) (*admin.Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("yaml: archivo vacío")
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("yaml: se esperaba una lista de registros")
	}
	b := newTableBuilder("")
	for _, item := range doc.Content[0].Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("yaml: línea %d: se esperaba un mapa", item.Line)
		}
		b.startRow()
		for i := 0; i+1 < len(item.Content); i += 2 {
			b.set(item.Content[i].Value, nodeText(item.Content[i+1]))
		}
	}
	return b.dataset(), nil
}

func nodeText(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			parts = append(parts, nodeText(c))
		}
		return strings.Join(parts, ",")
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return ""
		case "!!bool":
			if strings.EqualFold(n.Value, "true") {
				return "1"
			}
			return "0"
		}
		return n.Value
	}
	return ""
}

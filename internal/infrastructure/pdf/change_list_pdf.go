// Package pdf genera la exportación en PDF de una lista de cambios del panel.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del listado       │  Fecha + N° de registros │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por campo exportado                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
)

// maroto reparte el ancho en 12 columnas.
const gridColumns = 12

// Los textos largos se recortan para que cada fila ocupe una sola línea.
const maxCellRunes = 40

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Codec ─────────────────────────────────────────────────────────────────────

// ChangeListPDF implementa admin.Codec solo en sentido de exportación usando Maroto v2.
type ChangeListPDF struct {
	now func() time.Time
}

var _ admin.Codec = (*ChangeListPDF)(nil)

// NewChangeListPDF construye el exportador.
func NewChangeListPDF() *ChangeListPDF { return &ChangeListPDF{now: time.Now} }

func (g *ChangeListPDF) Format() string      { return "pdf" }
func (g *ChangeListPDF) ContentType() string { return "application/pdf" }

// Decode no está soportado: el PDF es solo de salida.
func (g *ChangeListPDF) Decode(io.Reader) (*admin.Dataset, error) {
	return nil, admin.ErrDecodeUnsupported
}

// Encode genera el documento y devuelve sus bytes.
func (g *ChangeListPDF) Encode(ds *admin.Dataset) ([]byte, error) {
	if len(ds.Headers) == 0 {
		return nil, fmt.Errorf("pdf: el listado no tiene columnas")
	}
	if len(ds.Headers) > gridColumns {
		return nil, fmt.Errorf("pdf: máximo %d columnas, el listado tiene %d", gridColumns, len(ds.Headers))
	}
	title := nonEmpty(ds.Title, "Listado")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)
	widths := columnWidths(len(ds.Headers))

	m.AddRows(headerRow(title, len(ds.Rows), g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(ds.Headers, widths))
	m.AddRows(tableRows(ds, widths)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación + total (der).
func headerRow(title string, total int, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(strconv.Itoa(total)+" registros", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: nombres de las columnas exportadas.
func tableHeaderRow(headers []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1.5, Left: 1,
		})))
	}
	return row.New(7).Add(cols...)
}

// tableRows: una fila por registro, con fondo alterno.
func tableRows(ds *admin.Dataset, widths []int) []core.Row {
	out := make([]core.Row, 0, len(ds.Rows))
	for n, rec := range ds.Rows {
		cols := make([]core.Col, 0, len(ds.Headers))
		for i := range ds.Headers {
			value := ""
			if i < len(rec) {
				value = truncate(rec[i], maxCellRunes)
			}
			cols = append(cols, col.New(widths[i]).Add(text.New(value, props.Text{Size: 7.5, Top: 1, Left: 1})))
		}
		r := row.New(6).Add(cols...)
		if n%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Exportado desde el panel de administración del catálogo.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte las 12 columnas de la grilla; el resto va a las primeras.
// Ej: 9 columnas → [2 2 2 1 1 1 1 1 1]
func columnWidths(n int) []int {
	base, rest := gridColumns/n, gridColumns%n
	out := make([]int, n)
	for i := range out {
		out[i] = base
		if i < rest {
			out[i]++
		}
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

package admin

import (
	"context"
	"time"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

// StrColumn columna especial que muestra la representación textual del registro.
const StrColumn = "__str__"

// DefaultExtra en InlineAdmin.Extra toma el valor configurado en el sitio.
const DefaultExtra = -1

// FilterKind tipo de widget de filtro de la barra lateral.
type FilterKind string

const (
	FilterDropdown        FilterKind = "dropdown"
	FilterBoolean         FilterKind = "boolean"
	FilterDateRange       FilterKind = "date_range"
	FilterDateTimeRange   FilterKind = "datetime_range"
	FilterRelatedDropdown FilterKind = "related_dropdown"
)

// ListFilter filtro declarado sobre un campo.
type ListFilter struct {
	Field string
	Kind  FilterKind
	Title string // vacío = etiqueta del campo
}

// Computed columna o valor de solo lectura calculado a partir del registro.
type Computed struct {
	Name  string
	Label string
	Func  func(r *entity.Record) any
	HTML  bool
	// OrderBy campo o agregado por el que se ordena la columna; vacío = no ordenable.
	OrderBy string
}

// InlineAdmin edición de registros hijos dentro del formulario del padre.
type InlineAdmin struct {
	Model    string
	FK       string // campo FK del hijo que apunta al padre
	Fields   []string
	Extra    int
	Collapse bool
	Label    string
}

// ActionOutcome resultado de una acción masiva.
type ActionOutcome struct {
	Matched int
	Changed int
	Message string
}

// ActionFunc ejecuta una acción sobre los ids seleccionados dentro de la transacción del lote.
type ActionFunc func(ctx context.Context, ac ActionContext, ids []int64) (ActionOutcome, error)

// ActionContext acceso al store del modelo y al reloj del sitio durante una acción.
type ActionContext struct {
	Store repository.RecordStore
	Now   func() time.Time
}

// Action acción masiva registrada en un modelo.
type Action struct {
	Name        string
	Description string
	Run         ActionFunc
}

// Resource campos intercambiados por importación/exportación. Fields vacío = todos.
type Resource struct {
	Fields []string
}

// ModelAdmin descriptor declarativo de cómo se administra un modelo.
type ModelAdmin struct {
	Model string

	ListDisplay      []string
	ListEditable     []string
	ListDisplayLinks []string
	ListFilter       []ListFilter
	SearchFields     []string
	SearchHelpText   string
	Ordering         []string
	ListPerPage      int
	ListMaxShowAll   int
	DateHierarchy    string

	Fields             [][]string
	ReadonlyFields     []string
	PrepopulatedFields map[string][]string
	FilterHorizontal   []string
	FilterVertical     []string
	RawIDFields        []string
	Inlines            []InlineAdmin

	Actions  []Action
	Computed []Computed
	Resource *Resource

	// DisableDeleteSelected quita la acción incorporada delete_selected.
	DisableDeleteSelected bool
}

package dto

// IndexResponse portada del panel.
type IndexResponse struct {
	SiteTitle  string       `json:"site_title"`
	SiteHeader string       `json:"site_header"`
	IndexTitle string       `json:"index_title"`
	Models     []ModelEntry `json:"models"`
	Formats    []string     `json:"formats"`
}

// ModelEntry modelo registrado.
type ModelEntry struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	LabelPlural  string `json:"label_plural"`
	ImportExport bool   `json:"import_export"`
}

// ColumnResponse columna de la lista.
type ColumnResponse struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Sorted   string `json:"sorted,omitempty"` // asc | desc
	Link     bool   `json:"link"`
	Editable bool   `json:"editable"`
	HTML     bool   `json:"html"`
}

// CellResponse valor de una celda: Value crudo y Display formateado para mostrar.
type CellResponse struct {
	Value   any    `json:"value"`
	Display string `json:"display"`
}

// RowResponse fila de la lista, celdas en el orden de las columnas.
type RowResponse struct {
	ID    int64          `json:"id"`
	Label string         `json:"label"`
	Cells []CellResponse `json:"cells"`
}

// FilterChoice opción de un filtro de selección.
type FilterChoice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FilterState estado de un filtro de la barra lateral.
type FilterState struct {
	Field   string         `json:"field"`
	Title   string         `json:"title"`
	Kind    string         `json:"kind"`
	Params  []string       `json:"params"`
	Choices []FilterChoice `json:"choices,omitempty"`
	Lower   string         `json:"lower,omitempty"`
	Upper   string         `json:"upper,omitempty"`
	Active  bool           `json:"active"`
}

// DateChoice enlace de la jerarquía de fechas; Params se agregan a la query string.
type DateChoice struct {
	Label  string            `json:"label"`
	Params map[string]string `json:"params"`
}

// DateHierarchyResponse navegación año → mes → día.
type DateHierarchyResponse struct {
	Field   string       `json:"field"`
	Level   string       `json:"level"` // year | month | day | done
	Back    *DateChoice  `json:"back,omitempty"`
	Choices []DateChoice `json:"choices"`
}

// ActionInfo acción disponible en la lista.
type ActionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ChangeListResponse lista de cambios de un modelo.
type ChangeListResponse struct {
	Model          string                 `json:"model"`
	Label          string                 `json:"label"`
	LabelPlural    string                 `json:"label_plural"`
	Columns        []ColumnResponse       `json:"columns"`
	Rows           []RowResponse          `json:"rows"`
	Pagination     PageResponse           `json:"pagination"`
	Search         string                 `json:"search"`
	Searchable     bool                   `json:"searchable"`
	SearchHelpText string                 `json:"search_help_text,omitempty"`
	Filters        []FilterState          `json:"filters"`
	DateHierarchy  *DateHierarchyResponse `json:"date_hierarchy,omitempty"`
	Actions        []ActionInfo           `json:"actions"`
	Order          []string               `json:"order"`
}

// ListEditRequest ediciones de la lista: id del registro -> campo -> valor.
type ListEditRequest struct {
	Rows map[string]map[string]any `json:"rows"`
}

// ListEditResponse resultado de guardar ediciones de la lista.
type ListEditResponse struct {
	Updated int    `json:"updated"`
	Message string `json:"message"`
}

// ActionRequest ejecución de una acción masiva.
type ActionRequest struct {
	Action string  `json:"action"`
	IDs    []int64 `json:"ids"`
}

// ActionResultResponse resultado de una acción masiva.
type ActionResultResponse struct {
	Action   string `json:"action"`
	Selected int    `json:"selected"`
	Matched  int    `json:"matched"`
	Changed  int    `json:"changed"`
	Updated  int    `json:"updated"`
	Message  string `json:"message"`
}

// Choice opción de un campo de relación en el formulario.
type Choice struct {
	Value    int64  `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FormField campo del formulario.
type FormField struct {
	Name             string   `json:"name"`
	Label            string   `json:"label"`
	Type             string   `json:"type"`
	Widget           string   `json:"widget"`
	Value            any      `json:"value"`
	Display          string   `json:"display,omitempty"`
	Required         bool     `json:"required"`
	Readonly         bool     `json:"readonly"`
	HTML             bool     `json:"html,omitempty"`
	MaxLength        int      `json:"max_length,omitempty"`
	PrepopulatedFrom []string `json:"prepopulated_from,omitempty"`
	Choices          []Choice `json:"choices,omitempty"`
}

// FormLine campos que se muestran en una misma línea.
type FormLine struct {
	Fields []FormField `json:"fields"`
}

// InlineRow registro hijo (ID nil = espacio en blanco).
type InlineRow struct {
	ID     *int64      `json:"id"`
	Fields []FormField `json:"fields"`
}

// InlineFormResponse bloque de hijos editables dentro del formulario del padre.
type InlineFormResponse struct {
	Name     string      `json:"name"`
	Label    string      `json:"label"`
	FK       string      `json:"fk"`
	Collapse bool        `json:"collapse"`
	Extra    int         `json:"extra"`
	Rows     []InlineRow `json:"rows"`
}

// FormResponse formulario de alta o edición.
type FormResponse struct {
	Model   string               `json:"model"`
	Title   string               `json:"title"`
	ID      *int64               `json:"id"`
	Label   string               `json:"label,omitempty"`
	Lines   []FormLine           `json:"lines"`
	Inlines []InlineFormResponse `json:"inlines,omitempty"`
}

// InlineSubmission fila enviada de un inline. ID 0 = nueva.
type InlineSubmission struct {
	ID     int64          `json:"id"`
	Values map[string]any `json:"values"`
	Delete bool           `json:"delete"`
}

// FormSubmission envío de un formulario; Inlines indexado por nombre del modelo hijo.
type FormSubmission struct {
	Values  map[string]any                `json:"values"`
	Inlines map[string][]InlineSubmission `json:"inlines"`
}

// RecordResponse registro guardado.
type RecordResponse struct {
	ID     int64          `json:"id"`
	Label  string         `json:"label"`
	Values map[string]any `json:"values"`
}

// RowError error de una fila de importación (filas desde 1).
type RowError struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// ImportReport resumen de una importación.
type ImportReport struct {
	BatchID   string     `json:"batch_id"`
	Format    string     `json:"format"`
	DryRun    bool       `json:"dry_run"`
	TotalRows int        `json:"total_rows"`
	Created   int        `json:"created"`
	Updated   int        `json:"updated"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"errors"`
}

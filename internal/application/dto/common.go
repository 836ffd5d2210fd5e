package dto

// PageRequest parámetros reservados de una lista de cambios. El resto de la query string son filtros.
type PageRequest struct {
	Page  int    `query:"page"`
	All   string `query:"all"`
	Q     string `query:"q"`
	Order string `query:"o"` // separado por comas: "name,-id"
}

// DefaultPage aplica valores por defecto (páginas desde 1).
func (p *PageRequest) DefaultPage() {
	if p.Page == 0 {
		p.Page = 1
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page        int  `json:"page"`
	NumPages    int  `json:"num_pages"`
	PerPage     int  `json:"per_page"`
	ResultCount int  `json:"result_count"` // filtrados
	FullCount   int  `json:"full_count"`   // sin filtrar
	ShowAll     bool `json:"show_all"`
	CanShowAll  bool `json:"can_show_all"`
}

// ErrorResponse cuerpo de error HTTP. Fields trae los errores de validación por campo.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

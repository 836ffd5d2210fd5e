package entity

// FieldType tipo semántico de un campo; determina parseo, formato y widget.
type FieldType int

const (
	FieldAutoID FieldType = iota
	FieldInt
	FieldString
	FieldText
	FieldSlug
	FieldBool
	FieldDate
	FieldDateTime
	FieldImage
	FieldForeignKey
	FieldManyToMany
)

var fieldTypeNames = map[FieldType]string{
	FieldAutoID:     "auto",
	FieldInt:        "integer",
	FieldString:     "string",
	FieldText:       "text",
	FieldSlug:       "slug",
	FieldBool:       "boolean",
	FieldDate:       "date",
	FieldDateTime:   "datetime",
	FieldImage:      "image",
	FieldForeignKey: "foreign_key",
	FieldManyToMany: "many_to_many",
}

func (t FieldType) String() string {
	if s, ok := fieldTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Field metadatos de una columna (o relación) de un modelo.
type Field struct {
	Name      string
	Label     string
	Column    string // vacío = Name
	Type      FieldType
	MaxLength int
	Required  bool
	Unique    bool
	Default   any

	AutoNow    bool // se actualiza en cada guardado
	AutoNowAdd bool // se fija al crear

	UploadTo string // solo FieldImage: subdirectorio de media

	// FK y M2M
	Related string // nombre del modelo relacionado
	// M2M: tabla intermedia y columnas (dueño y destino).
	Through       string
	ThroughOwner  string
	ThroughTarget string
}

// ColumnName devuelve el nombre físico de la columna.
func (f *Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// IsRelation indica si el campo es FK o M2M.
func (f *Field) IsRelation() bool {
	return f.Type == FieldForeignKey || f.Type == FieldManyToMany
}

// IsTemporal indica si el campo es fecha o fecha-hora.
func (f *Field) IsTemporal() bool {
	return f.Type == FieldDate || f.Type == FieldDateTime
}

// IsAuto indica si el valor lo asigna el sistema (id o timestamps automáticos).
func (f *Field) IsAuto() bool {
	return f.Type == FieldAutoID || f.AutoNow || f.AutoNowAdd
}

// Annotation agregado calculado por el store en la misma consulta: cantidad de filas
// de Model cuyo FK apunta al registro.
type Annotation struct {
	Name  string
	Model string // modelo hijo
	FK    string // campo FK del hijo
}

// Model metadatos de una entidad administrable.
type Model struct {
	Name        string
	Label       string
	LabelPlural string
	Table       string
	Fields      []*Field
	Annotations []Annotation
	// Display representación textual del registro (equivalente a __str__).
	Display func(r *Record) string
}

// Field busca un campo por nombre.
func (m *Model) Field(name string) (*Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// IDField devuelve el campo identidad.
func (m *Model) IDField() *Field {
	for _, f := range m.Fields {
		if f.Type == FieldAutoID {
			return f
		}
	}
	return nil
}

// FieldNames nombres de todos los campos en orden declarado.
func (m *Model) FieldNames() []string {
	out := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		out = append(out, f.Name)
	}
	return out
}

// HasAnnotation indica si el modelo declara el agregado name.
func (m *Model) HasAnnotation(name string) bool {
	for _, a := range m.Annotations {
		if a.Name == name {
			return true
		}
	}
	return false
}

// String representación para listas y dropdowns.
func (m *Model) String(r *Record) string {
	if r == nil {
		return ""
	}
	if m.Display != nil {
		return m.Display(r)
	}
	return m.Label + " object (" + formatInt(r.ID) + ")"
}

// Defaults valores iniciales de un registro nuevo.
func (m *Model) Defaults() Values {
	v := make(Values)
	for _, f := range m.Fields {
		if f.Default != nil {
			v[f.Name] = f.Default
		}
	}
	return v
}

// CatalogModels modelos administrados por el panel, en orden de dependencia.
func CatalogModels() []*Model {
	return []*Model{CategoryModel, ProductModel, ReviewModel}
}

package entity

// CategoryModel metadatos de Category (solo nombre).
var CategoryModel = &Model{
	Name:        "category",
	Label:       "Categoría",
	LabelPlural: "Categorías",
	Table:       "categories",
	Fields: []*Field{
		{Name: "id", Label: "ID", Type: FieldAutoID},
		{Name: "name", Label: "Nombre", Type: FieldString, MaxLength: 100, Required: true},
	},
	Display: func(r *Record) string { return r.String("name") },
}

// Category representa una categoría de productos; muchos productos referencian muchas categorías.
type Category struct {
	ID   int64
	Name string
}

// CategoryFromRecord vista tipada de un registro de categoría.
func CategoryFromRecord(r *Record) Category {
	return Category{ID: r.ID, Name: r.String("name")}
}

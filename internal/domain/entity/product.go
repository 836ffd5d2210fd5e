package entity

import "time"

// DefaultProductImage imagen asignada cuando no se sube ninguna.
const DefaultProductImage = "defaults/product.png"

// ProductModel metadatos de Product. Slug se deriva del nombre al crear y es único.
var ProductModel = &Model{
	Name:        "product",
	Label:       "Producto",
	LabelPlural: "Productos",
	Table:       "products",
	Fields: []*Field{
		{Name: "id", Label: "ID", Type: FieldAutoID},
		{Name: "name", Label: "Nombre", Type: FieldString, MaxLength: 100, Required: true},
		{Name: "description", Label: "Descripción", Type: FieldText, Default: ""},
		{Name: "is_in_stock", Label: "En stock", Type: FieldBool, Default: true},
		{Name: "slug", Label: "Slug", Type: FieldSlug, MaxLength: 100, Unique: true},
		{Name: "image", Label: "Imagen", Type: FieldImage, MaxLength: 255, UploadTo: "product", Default: DefaultProductImage},
		{Name: "create_date", Label: "Fecha de creación", Type: FieldDateTime, AutoNowAdd: true},
		{Name: "update_date", Label: "Fecha de actualización", Type: FieldDateTime, AutoNow: true},
		{
			Name: "categories", Label: "Categorías", Type: FieldManyToMany, Related: "category",
			Through: "product_categories", ThroughOwner: "product_id", ThroughTarget: "category_id",
		},
	},
	Annotations: []Annotation{
		{Name: ReviewCountAnnotation, Model: "review", FK: "product"},
	},
	Display: func(r *Record) string { return r.String("name") },
}

// ReviewCountAnnotation agregado con la cantidad de reseñas de cada producto.
const ReviewCountAnnotation = "review_count"

// Product vista tipada de un producto del catálogo.
type Product struct {
	ID          int64
	Name        string
	Description string
	IsInStock   bool
	Slug        string
	Image       string
	CreateDate  time.Time
	UpdateDate  time.Time
	Categories  []int64
	ReviewCount int64
}

// ProductFromRecord vista tipada de un registro de producto.
func ProductFromRecord(r *Record) Product {
	return Product{
		ID:          r.ID,
		Name:        r.String("name"),
		Description: r.String("description"),
		IsInStock:   r.Bool("is_in_stock"),
		Slug:        r.String("slug"),
		Image:       r.String("image"),
		CreateDate:  r.Time("create_date"),
		UpdateDate:  r.Time("update_date"),
		Categories:  r.IDs("categories"),
		ReviewCount: r.Int(ReviewCountAnnotation),
	}
}

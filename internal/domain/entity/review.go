package entity

import (
	"time"
	"unicode/utf8"
)

// ReviewModel metadatos de Review. Siempre referencia un producto existente.
var ReviewModel = &Model{
	Name:        "review",
	Label:       "Reseña",
	LabelPlural: "Reseñas",
	Table:       "reviews",
	Fields: []*Field{
		{Name: "id", Label: "ID", Type: FieldAutoID},
		{Name: "product", Label: "Producto", Column: "product_id", Type: FieldForeignKey, Related: "product", Required: true},
		{Name: "content", Label: "Reseña", Type: FieldText, Required: true},
		{Name: "created_date", Label: "Fecha", Type: FieldDateTime, AutoNowAdd: true},
	},
	Display: func(r *Record) string { return truncate(r.String("content"), 50) },
}

// Review vista tipada de una reseña.
type Review struct {
	ID          int64
	ProductID   int64
	Content     string
	CreatedDate time.Time
}

// ReviewFromRecord vista tipada de un registro de reseña.
func ReviewFromRecord(r *Record) Review {
	return Review{
		ID:          r.ID,
		ProductID:   r.Int("product"),
		Content:     r.String("content"),
		CreatedDate: r.Time("created_date"),
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}

// Package catalog registra en el sitio de administración los modelos del catálogo
// (Category, Product, Review) con su configuración de listas, formularios y acciones.
package catalog

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// Textos del sitio cuando la configuración no los define.
const (
	DefaultSiteTitle  = "Catálogo"
	DefaultSiteHeader = "Administración del catálogo"
	DefaultIndexTitle = "Panel de administración"
)

// NoImageDisplay texto de la miniatura cuando el producto no tiene imagen.
const NoImageDisplay = "-*-"

// Options dependencias de las columnas calculadas.
type Options struct {
	// Now reloj para added_days_ago; nil = time.Now.
	Now func() time.Time
	// MediaURL prefijo público de los archivos subidos (p. ej. "/media").
	MediaURL string
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Register registra Category, Product y Review. Devuelve el primer error de configuración.
func Register(site *admin.Site, opts Options) error {
	for _, ma := range []admin.ModelAdmin{CategoryAdmin(), ProductAdmin(opts), ReviewAdmin()} {
		if err := site.Register(ma); err != nil {
			return err
		}
	}
	return nil
}

// CategoryAdmin categorías con la configuración por defecto.
func CategoryAdmin() admin.ModelAdmin {
	return admin.ModelAdmin{Model: entity.CategoryModel.Name}
}

// ReviewInline reseñas editables dentro del formulario de producto, plegadas.
func ReviewInline() admin.InlineAdmin {
	return admin.InlineAdmin{
		Model:    entity.ReviewModel.Name,
		FK:       "product",
		Extra:    admin.DefaultExtra,
		Collapse: true,
	}
}

// ProductAdmin lista, filtros, formulario, acciones e importación/exportación de productos.
func ProductAdmin(opts Options) admin.ModelAdmin {
	return admin.ModelAdmin{
		Model: entity.ProductModel.Name,
		ListDisplay: []string{
			"view_image_in_list", "id", "name", "is_in_stock", "create_date", "update_date",
			"added_days_ago", "how_many_reviews",
		},
		ListEditable:     []string{"is_in_stock"},
		ListDisplayLinks: []string{"id", "name"},
		ListFilter: []admin.ListFilter{
			{Field: "name", Kind: admin.FilterDropdown},
			{Field: "is_in_stock", Kind: admin.FilterBoolean},
			{Field: "create_date", Kind: admin.FilterDateRange},
			{Field: "update_date", Kind: admin.FilterDateTimeRange},
		},
		SearchFields:       []string{"id", "name"},
		SearchHelpText:     "Busque por id o nombre del producto.",
		Ordering:           []string{"id"},
		ListPerPage:        20,
		ListMaxShowAll:     200,
		DateHierarchy:      "create_date",
		PrepopulatedFields: map[string][]string{"slug": {"name"}},
		ReadonlyFields:     []string{"view_image"},
		Fields: [][]string{
			{"name", "is_in_stock"},
			{"image", "view_image"},
			{"slug"},
			{"categories"},
			{"description"},
		},
		FilterHorizontal: []string{"categories"},
		Inlines:          []admin.InlineAdmin{ReviewInline()},
		Actions:          []admin.Action{SetStockIn(), SetStockOut()},
		Computed: []admin.Computed{
			{Name: "view_image_in_list", Label: "Imagen", HTML: true, Func: thumbnail(opts.MediaURL)},
			{Name: "view_image", Label: "Vista previa", HTML: true, Func: preview(opts.MediaURL)},
			{Name: "added_days_ago", Label: "Días", Func: addedDaysAgo(opts.now)},
			{Name: "how_many_reviews", Label: "Reseñas", OrderBy: entity.ReviewCountAnnotation, Func: howManyReviews},
		},
		Resource: &admin.Resource{},
	}
}

// ReviewAdmin reseñas: texto resumido, fecha, producto por id y filtro por producto reseñado.
func ReviewAdmin() admin.ModelAdmin {
	return admin.ModelAdmin{
		Model:       entity.ReviewModel.Name,
		ListDisplay: []string{admin.StrColumn, "created_date"},
		RawIDFields: []string{"product"},
		ListFilter:  []admin.ListFilter{{Field: "product", Kind: admin.FilterRelatedDropdown}},
	}
}

// SetStockIn marca los productos seleccionados como disponibles.
func SetStockIn() admin.Action {
	return admin.SetFieldAction("set_stock_in", "Agregar al stock los productos seleccionados", "is_in_stock", true,
		func(n int) string { return fmt.Sprintf("%d producto(s) marcados como \"En stock\".", n) })
}

// SetStockOut marca los productos seleccionados como agotados.
func SetStockOut() admin.Action {
	return admin.SetFieldAction("set_stock_out", "Quitar del stock los productos seleccionados", "is_in_stock", false,
		func(n int) string { return fmt.Sprintf("%d producto(s) marcados como \"Sin stock\".", n) })
}

// MediaPath URL pública de un archivo guardado en media.
func MediaPath(mediaURL, name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return strings.TrimRight(mediaURL, "/") + "/" + strings.TrimLeft(name, "/")
}

func thumbnail(mediaURL string) func(r *entity.Record) any {
	return func(r *entity.Record) any {
		p := entity.ProductFromRecord(r)
		if p.Image == "" {
			return NoImageDisplay
		}
		return fmt.Sprintf(`<img src="%s" style="height:30px; width:30px;">`, html.EscapeString(MediaPath(mediaURL, p.Image)))
	}
}

func preview(mediaURL string) func(r *entity.Record) any {
	return func(r *entity.Record) any {
		img := r.String("image")
		if img == "" {
			return ""
		}
		return fmt.Sprintf(`<img src="%s" style="max-height:200px;">`, html.EscapeString(MediaPath(mediaURL, img)))
	}
}

// addedDaysAgo días completos transcurridos desde la creación.
func addedDaysAgo(now func() time.Time) func(r *entity.Record) any {
	return func(r *entity.Record) any {
		p := entity.ProductFromRecord(r)
		if p.CreateDate.IsZero() {
			return nil
		}
		return int64(math.Floor(now().Sub(p.CreateDate).Hours() / 24))
	}
}

func howManyReviews(r *entity.Record) any {
	return entity.ProductFromRecord(r).ReviewCount
}

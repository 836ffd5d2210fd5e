package admin_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/exchange"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/memory"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db   *memory.Database
	site *admin.Site
}

func newFixture(t *testing.T, admins ...admin.ModelAdmin) *fixture {
	t.Helper()
	db := memory.NewDatabase(entity.CatalogModels()...)
	site := admin.NewSite(
		admin.SiteConfig{Title: "Catálogo", Header: "Administración", ListPerPage: 100, MaxShowAll: 200, InlineExtra: 3},
		db, db,
		admin.WithClock(func() time.Time { return fixedNow }),
		admin.WithCodecs(exchange.Codecs()...),
	)
	for _, ma := range admins {
		require.NoError(t, site.Register(ma))
	}
	return &fixture{db: db, site: site}
}

func catalogFixture(t *testing.T) *fixture {
	return newFixture(t, admin.ModelAdmin{Model: "category"}, productAdmin(), reviewAdmin())
}

func productAdmin() admin.ModelAdmin {
	return admin.ModelAdmin{
		Model:            "product",
		ListDisplay:      []string{"id", "name", "is_in_stock", "create_date", "how_many_reviews"},
		ListEditable:     []string{"is_in_stock"},
		ListDisplayLinks: []string{"id", "name"},
		ListFilter: []admin.ListFilter{
			{Field: "name", Kind: admin.FilterDropdown},
			{Field: "is_in_stock", Kind: admin.FilterBoolean},
			{Field: "create_date", Kind: admin.FilterDateRange},
			{Field: "update_date", Kind: admin.FilterDateTimeRange},
		},
		SearchFields:       []string{"id", "name"},
		Ordering:           []string{"id"},
		ListPerPage:        20,
		ListMaxShowAll:     200,
		DateHierarchy:      "create_date",
		Fields:             [][]string{{"name", "slug"}, {"description"}, {"is_in_stock", "image"}, {"categories"}, {"view_image"}},
		ReadonlyFields:     []string{"view_image"},
		PrepopulatedFields: map[string][]string{"slug": {"name"}},
		FilterHorizontal:   []string{"categories"},
		Inlines: []admin.InlineAdmin{
			{Model: "review", FK: "product", Fields: []string{"content"}, Extra: admin.DefaultExtra, Collapse: true},
		},
		Actions: []admin.Action{
			admin.SetFieldAction("set_stock_in", "Marcar en stock", "is_in_stock", true, nil),
			admin.SetFieldAction("set_stock_out", "Marcar sin stock", "is_in_stock", false, nil),
		},
		Computed: []admin.Computed{
			{Name: "view_image", Label: "Vista previa", HTML: true, Func: func(r *entity.Record) any { return r.String("image") }},
			{
				Name: "how_many_reviews", Label: "Reseñas", OrderBy: entity.ReviewCountAnnotation,
				Func: func(r *entity.Record) any { return r.Int(entity.ReviewCountAnnotation) },
			},
		},
		Resource: &admin.Resource{},
	}
}

func reviewAdmin() admin.ModelAdmin {
	return admin.ModelAdmin{
		Model:       "review",
		ListDisplay: []string{admin.StrColumn, "created_date"},
		ListFilter:  []admin.ListFilter{{Field: "product", Kind: admin.FilterRelatedDropdown}},
		RawIDFields: []string{"product"},
	}
}

func (f *fixture) create(t *testing.T, model string, vals entity.Values) int64 {
	t.Helper()
	st, err := f.db.Store(model)
	require.NoError(t, err)
	rec, err := st.Create(context.Background(), vals)
	require.NoError(t, err)
	return rec.ID
}

func (f *fixture) product(t *testing.T, name string, inStock bool, created time.Time) int64 {
	t.Helper()
	return f.create(t, "product", entity.Values{
		"name": name, "is_in_stock": inStock, "create_date": created, "update_date": created,
	})
}

func (f *fixture) review(t *testing.T, productID int64, content string) int64 {
	t.Helper()
	return f.create(t, "review", entity.Values{"product": productID, "content": content, "created_date": fixedNow})
}

func (f *fixture) get(t *testing.T, model string, id int64) *entity.Record {
	t.Helper()
	st, err := f.db.Store(model)
	require.NoError(t, err)
	rec, err := st.Get(context.Background(), id)
	require.NoError(t, err)
	return rec
}

func (f *fixture) count(t *testing.T, model string) int {
	t.Helper()
	st, err := f.db.Store(model)
	require.NoError(t, err)
	n, err := st.Count(context.Background(), repository.Query{})
	require.NoError(t, err)
	return n
}

// seedProducts crea n productos en stock, uno por día a partir del 1 de enero de 2024.
func (f *fixture) seedProducts(t *testing.T, n int) {
	t.Helper()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		f.product(t, fmt.Sprintf("Producto %02d", i+1), true, start.AddDate(0, 0, i))
	}
}

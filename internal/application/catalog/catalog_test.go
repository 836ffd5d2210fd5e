package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/memory"
)

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newSite(t *testing.T) (*admin.Site, *memory.Database) {
	t.Helper()
	db := memory.NewDatabase(entity.CatalogModels()...)
	site := admin.NewSite(admin.SiteConfig{Title: DefaultSiteTitle, ListPerPage: 100, MaxShowAll: 200, InlineExtra: 1}, db, db,
		admin.WithClock(func() time.Time { return now }))
	require.NoError(t, Register(site, Options{Now: func() time.Time { return now }, MediaURL: "/media/"}))
	return site, db
}

func TestRegister_AllModels(t *testing.T) {
	site, _ := newSite(t)
	idx := site.Index()
	require.Len(t, idx.Models, 3)
	assert.Equal(t, "category", idx.Models[0].Name)
	assert.Equal(t, "product", idx.Models[1].Name)
	assert.Equal(t, "review", idx.Models[2].Name)
}

func TestProductChangeList_Columns(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()
	products, err := db.Store("product")
	require.NoError(t, err)
	reviews, err := db.Store("review")
	require.NoError(t, err)

	_, err = products.Create(ctx, entity.Values{"name": "Taza", "create_date": now.Add(-50 * time.Hour)})
	require.NoError(t, err)
	_, err = products.Create(ctx, entity.Values{"name": "Plato", "image": "", "create_date": now})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, entity.Values{"product": int64(1), "content": "Muy buena"})
	require.NoError(t, err)

	res, err := site.ChangeList(ctx, "product", dto.PageRequest{}, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Columns))
	for _, c := range res.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"view_image_in_list", "id", "name", "is_in_stock", "create_date", "update_date", "added_days_ago", "how_many_reviews",
	}, names)
	assert.False(t, res.Columns[0].Link)
	assert.True(t, res.Columns[0].HTML)
	assert.True(t, res.Columns[1].Link)
	assert.True(t, res.Columns[3].Editable)
	assert.False(t, res.Columns[6].Sortable)
	assert.True(t, res.Columns[7].Sortable)
	assert.Equal(t, 20, res.Pagination.PerPage)
	assert.NotEmpty(t, res.SearchHelpText)

	taza := res.Rows[0].Cells
	assert.Equal(t, `<img src="/media/defaults/product.png" style="height:30px; width:30px;">`, taza[0].Value)
	assert.Equal(t, int64(2), taza[6].Value)
	assert.Equal(t, int64(1), taza[7].Value)

	plato := res.Rows[1].Cells
	assert.Equal(t, NoImageDisplay, plato[0].Value)
	assert.Equal(t, int64(0), plato[6].Value)
}

func TestStockActions(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()
	products, err := db.Store("product")
	require.NoError(t, err)
	for _, name := range []string{"Taza", "Plato", "Vaso"} {
		_, err := products.Create(ctx, entity.Values{"name": name})
		require.NoError(t, err)
	}

	res, err := site.RunAction(ctx, "product", "set_stock_out", []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, `2 producto(s) marcados como "Sin stock".`, res.Message)

	res, err = site.RunAction(ctx, "product", "set_stock_in", []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 2, res.Changed)
}

func TestProductForm_Layout(t *testing.T) {
	site, _ := newSite(t)
	form, err := site.Form(context.Background(), "product", nil)
	require.NoError(t, err)

	require.Len(t, form.Lines, 5)
	assert.Equal(t, "name", form.Lines[0].Fields[0].Name)
	assert.Equal(t, "view_image", form.Lines[1].Fields[1].Name)
	assert.True(t, form.Lines[1].Fields[1].Readonly)
	assert.Equal(t, admin.WidgetFilterHorizontal, form.Lines[3].Fields[0].Widget)
	require.Len(t, form.Inlines, 1)
	assert.True(t, form.Inlines[0].Collapse)
	assert.Len(t, form.Inlines[0].Rows, 1)
	assert.Equal(t, "content", form.Inlines[0].Rows[0].Fields[0].Name)
}

func TestMediaPath(t *testing.T) {
	assert.Equal(t, "/media/product/a.png", MediaPath("/media/", "/product/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", MediaPath("/media", "https://cdn.example.com/a.png"))
	assert.Equal(t, "", MediaPath("/media", ""))
}

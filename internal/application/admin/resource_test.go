package admin_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

func seedCatalog(t *testing.T, f *fixture) {
	t.Helper()
	f.create(t, "category", entity.Values{"name": "Cocina"})
	f.create(t, "category", entity.Values{"name": "Mesa"})
	f.create(t, "product", entity.Values{
		"name": "Blue Mug", "slug": "blue-mug", "description": "Taza, \"azul\"", "is_in_stock": true,
		"create_date": fixedNow, "update_date": fixedNow, "categories": []int64{1, 2},
	})
	f.create(t, "product", entity.Values{
		"name": "Plato", "slug": "plato", "is_in_stock": false,
		"create_date": fixedNow, "update_date": fixedNow, "categories": []int64{2},
	})
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, format := range []string{"csv", "json", "yaml", "xml"} {
		t.Run(format, func(t *testing.T) {
			src := catalogFixture(t)
			seedCatalog(t, src)
			out, err := src.site.Export(ctx, "product", format)
			require.NoError(t, err)
			assert.Equal(t, 2, out.Rows)
			assert.Equal(t, "product-2024-03-15."+format, out.Filename)

			dst := catalogFixture(t)
			dst.create(t, "category", entity.Values{"name": "Cocina"})
			dst.create(t, "category", entity.Values{"name": "Mesa"})
			rep, err := dst.site.Import(ctx, "product", format, bytes.NewReader(out.Data), false)
			require.NoError(t, err)
			assert.Equal(t, 2, rep.Created)
			assert.Empty(t, rep.Errors)
			assert.NotEmpty(t, rep.BatchID)

			again, err := dst.site.Export(ctx, "product", format)
			require.NoError(t, err)
			assert.Equal(t, string(out.Data), string(again.Data))

			// Reimportar el mismo archivo actualiza por id.
			rep, err = dst.site.Import(ctx, "product", format, bytes.NewReader(out.Data), false)
			require.NoError(t, err)
			assert.Equal(t, 0, rep.Created)
			assert.Equal(t, 2, rep.Updated)
			assert.Equal(t, 2, dst.count(t, "product"))
		})
	}
}

func TestImport_ReportsBadRows(t *testing.T) {
	f := catalogFixture(t)
	in := strings.Join([]string{
		"name,is_in_stock,categories",
		"Blue Mug,1,",
		"Red Mug,maybe,",
		",,",
		"Green Mug,0,7",
		"Blue Mug,1,",
		"Yellow Mug,no,",
	}, "\n")

	rep, err := f.site.Import(context.Background(), "product", "csv", strings.NewReader(in), false)
	require.NoError(t, err)
	assert.Equal(t, 5, rep.TotalRows)
	assert.Equal(t, 2, rep.Created)
	assert.Equal(t, 3, rep.Failed)
	require.Len(t, rep.Errors, 3)
	assert.Equal(t, 2, rep.Errors[0].Row)
	assert.Equal(t, "is_in_stock", rep.Errors[0].Field)
	assert.Equal(t, 4, rep.Errors[1].Row)
	assert.Equal(t, "categories", rep.Errors[1].Field)
	assert.Equal(t, 5, rep.Errors[2].Row)
	assert.Equal(t, "slug", rep.Errors[2].Field)

	assert.Equal(t, 2, f.count(t, "product"))
	yellow := f.get(t, "product", 2)
	assert.Equal(t, "yellow-mug", yellow.String("slug"))
	assert.False(t, yellow.Bool("is_in_stock"))
	assert.Equal(t, fixedNow, yellow.Time("create_date"))
}

func TestImport_RequiresMissingColumns(t *testing.T) {
	f := catalogFixture(t)
	rep, err := f.site.Import(context.Background(), "product", "csv", strings.NewReader("slug\nsolo-slug\n"), false)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, "name", rep.Errors[0].Field)
}

func TestImport_DryRunDiscardsChanges(t *testing.T) {
	f := catalogFixture(t)
	in := "name,is_in_stock\nBlue Mug,1\nBlue Mug,1\nRed Mug,tal vez\n"

	rep, err := f.site.Import(context.Background(), "product", "csv", strings.NewReader(in), true)
	require.NoError(t, err)
	assert.True(t, rep.DryRun)
	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, 2, rep.Failed)
	assert.Equal(t, 0, f.count(t, "product"))
}

func TestImport_Errors(t *testing.T) {
	f := catalogFixture(t)
	ctx := context.Background()

	_, err := f.site.Import(ctx, "product", "xlsx", strings.NewReader(""), false)
	assert.Contains(t, validationFields(t, err), "format")

	_, err = f.site.Import(ctx, "product", "json", strings.NewReader(`{"name": "x"}`), false)
	assert.Contains(t, validationFields(t, err), "file")

	_, err = f.site.Export(ctx, "category", "csv")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package admin_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/jhoicas/catalog-admin/internal/domain"
)

func TestRegister_RejectsInvalidDescriptors(t *testing.T) {
	tests := []struct {
		name   string
		ma     admin.ModelAdmin
		option string
	}{
		{
			name:   "modelo desconocido",
			ma:     admin.ModelAdmin{Model: "order"},
			option: "model",
		},
		{
			name: "primera columna editable",
			ma: admin.ModelAdmin{
				Model: "product", ListDisplay: []string{"is_in_stock", "name"},
				ListDisplayLinks: []string{"name"}, ListEditable: []string{"is_in_stock"},
			},
			option: "list_editable",
		},
		{
			name: "columna editable y enlace",
			ma: admin.ModelAdmin{
				Model: "product", ListDisplay: []string{"id", "is_in_stock"},
				ListDisplayLinks: []string{"id", "is_in_stock"}, ListEditable: []string{"is_in_stock"},
			},
			option: "list_editable",
		},
		{
			name:   "jerarquía sobre campo no temporal",
			ma:     admin.ModelAdmin{Model: "product", DateHierarchy: "name"},
			option: "date_hierarchy",
		},
		{
			name:   "columna inexistente",
			ma:     admin.ModelAdmin{Model: "product", ListDisplay: []string{"id", "price"}},
			option: "list_display",
		},
		{
			name:   "filtro incompatible con el campo",
			ma:     admin.ModelAdmin{Model: "product", ListFilter: []admin.ListFilter{{Field: "name", Kind: admin.FilterBoolean}}},
			option: "list_filter",
		},
		{
			name:   "tipo de filtro desconocido",
			ma:     admin.ModelAdmin{Model: "product", ListFilter: []admin.ListFilter{{Field: "name", Kind: "slider"}}},
			option: "list_filter",
		},
		{
			name:   "inline sin clave foránea al padre",
			ma:     admin.ModelAdmin{Model: "product", Inlines: []admin.InlineAdmin{{Model: "review", FK: "content"}}},
			option: "inlines",
		},
		{
			name:   "campo automático en el formulario",
			ma:     admin.ModelAdmin{Model: "product", Fields: [][]string{{"name", "create_date"}}},
			option: "fields",
		},
		{
			name:   "filter_horizontal sobre campo escalar",
			ma:     admin.ModelAdmin{Model: "product", FilterHorizontal: []string{"name"}},
			option: "filter_horizontal",
		},
		{
			name:   "orden por columna inexistente",
			ma:     admin.ModelAdmin{Model: "product", Ordering: []string{"-price"}},
			option: "ordering",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.site.Register(tt.ma)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfiguration))

			var cfgErr *domain.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.option, cfgErr.Option)
			assert.Empty(t, f.site.Index().Models)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t, admin.ModelAdmin{Model: "category"})
	err := f.site.Register(admin.ModelAdmin{Model: "category"})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestIndex_ListsModelsInRegistrationOrder(t *testing.T) {
	f := catalogFixture(t)
	idx := f.site.Index()

	assert.Equal(t, "Catálogo", idx.SiteTitle)
	require.Len(t, idx.Models, 3)
	assert.Equal(t, "category", idx.Models[0].Name)
	assert.Equal(t, "product", idx.Models[1].Name)
	assert.True(t, idx.Models[1].ImportExport)
	assert.False(t, idx.Models[2].ImportExport)
	assert.Equal(t, []string{"csv", "json", "yaml", "xml"}, idx.Formats)
}

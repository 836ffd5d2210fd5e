package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

func catalogResolver(name string) (*entity.Model, bool) {
	for _, m := range entity.CatalogModels() {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

func productBuilder() *sqlBuilder {
	return newSQLBuilder(entity.ProductModel, catalogResolver)
}

func TestSQLBuilder_WhereCombinesConditions(t *testing.T) {
	b := productBuilder()
	lower := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sql, err := b.where(repository.Query{
		Conditions: []repository.Condition{
			repository.In("is_in_stock", true),
			{Kind: repository.CondRange, Field: "create_date", Lower: lower, Upper: lower.AddDate(0, 1, 0), UpperOpen: true},
			repository.NotIn("name", "Taza", "Plato"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`(t."is_in_stock" IN ($1)) AND (t."create_date" >= $2 AND t."create_date" < $3) AND NOT (t."name" IN ($4, $5))`,
		sql)
	assert.Equal(t, []any{true, lower, lower.AddDate(0, 1, 0), "Taza", "Plato"}, b.args)
}

func TestSQLBuilder_WhereEdgeCases(t *testing.T) {
	sql, err := productBuilder().where(repository.Query{None: true, Conditions: []repository.Condition{repository.In("id", int64(1))}})
	require.NoError(t, err)
	assert.Equal(t, "FALSE", sql)

	sql, err = productBuilder().where(repository.Query{})
	require.NoError(t, err)
	assert.Equal(t, "TRUE", sql)

	sql, err = productBuilder().where(repository.Query{Conditions: []repository.Condition{repository.IDsIn(nil)}})
	require.NoError(t, err)
	assert.Equal(t, "(FALSE)", sql)

	_, err = productBuilder().where(repository.Query{Conditions: []repository.Condition{repository.In("price", 1)}})
	assert.Error(t, err)
}

func TestSQLBuilder_ManyToManyUsesThroughTable(t *testing.T) {
	b := productBuilder()
	sql, err := b.condition(repository.In("categories", int64(2)))
	require.NoError(t, err)
	assert.Equal(t, `(EXISTS (SELECT 1 FROM "product_categories" x WHERE x."product_id" = t.id AND x."category_id" IN ($1)))`, sql)
}

func TestSQLBuilder_DatePartOnDateTimeUsesUTC(t *testing.T) {
	b := productBuilder()
	sql, err := b.condition(repository.Condition{Kind: repository.CondDatePart, Field: "create_date", Year: 2024, Month: 3})
	require.NoError(t, err)
	assert.Equal(t,
		`(EXTRACT(YEAR FROM (t."create_date" AT TIME ZONE 'UTC'))::int = $1 AND EXTRACT(MONTH FROM (t."create_date" AT TIME ZONE 'UTC'))::int = $2)`,
		sql)
	assert.Equal(t, []any{2024, 3}, b.args)
}

func TestSQLBuilder_SearchEscapesLike(t *testing.T) {
	b := productBuilder()
	sql, err := b.where(repository.Query{Search: &repository.Search{
		Terms:  []string{"50%"},
		Fields: []repository.SearchField{repository.ParseSearchField("=id"), repository.ParseSearchField("name")},
	}})
	require.NoError(t, err)
	assert.Equal(t, `(LOWER(CAST(t."id" AS TEXT)) = LOWER($1) OR CAST(t."name" AS TEXT) ILIKE $2)`, sql)
	assert.Equal(t, []any{"50%", `%50\%%`}, b.args)
}

func TestSQLBuilder_OrderBy(t *testing.T) {
	b := productBuilder()
	sql, err := b.orderBy([]repository.OrderField{repository.ParseOrder("-" + entity.ReviewCountAnnotation), repository.ParseOrder("name")})
	require.NoError(t, err)
	assert.Equal(t, `"review_count" DESC, t."name" ASC, t.id ASC`, sql)

	sql, err = b.orderBy([]repository.OrderField{repository.ParseOrder("-id")})
	require.NoError(t, err)
	assert.Equal(t, "t.id DESC", sql)

	sql, err = b.orderBy(nil)
	require.NoError(t, err)
	assert.Equal(t, "t.id ASC", sql)

	_, err = b.orderBy([]repository.OrderField{{Field: "categories"}})
	assert.Error(t, err)
}

func TestSQLBuilder_SelectListIncludesRelationsAndAnnotations(t *testing.T) {
	cols, err := productBuilder().selectList()
	require.NoError(t, err)
	assert.Contains(t, cols, `ARRAY(SELECT x."category_id" FROM "product_categories" x WHERE x."product_id" = t.id ORDER BY 1) AS "categories"`)
	assert.Contains(t, cols, `(SELECT COUNT(*) FROM "reviews" c WHERE c."product_id" = t.id) AS "review_count"`)
	assert.Equal(t, `t."name"`, cols[1])

	orphan := newSQLBuilder(entity.ProductModel, func(string) (*entity.Model, bool) { return nil, false })
	_, err = orphan.selectList()
	assert.Error(t, err)
}

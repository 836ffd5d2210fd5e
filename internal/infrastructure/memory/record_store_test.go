package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

func newCatalog(t *testing.T) (*Database, repository.RecordStore, repository.RecordStore, repository.RecordStore) {
	t.Helper()
	db := NewDatabase(entity.CatalogModels()...)
	cats, err := db.Store("category")
	require.NoError(t, err)
	products, err := db.Store("product")
	require.NoError(t, err)
	reviews, err := db.Store("review")
	require.NoError(t, err)
	return db, cats, products, reviews
}

func TestRecordStore_CreateAppliesDefaults(t *testing.T) {
	_, _, products, _ := newCatalog(t)
	rec, err := products.Create(context.Background(), entity.Values{"name": "Taza"})
	require.NoError(t, err)

	p := entity.ProductFromRecord(rec)
	assert.Equal(t, int64(1), p.ID)
	assert.True(t, p.IsInStock)
	assert.Equal(t, entity.DefaultProductImage, p.Image)
	assert.Empty(t, p.Categories)
	assert.Equal(t, int64(0), p.ReviewCount)
	assert.False(t, p.CreateDate.IsZero())
}

func TestRecordStore_Constraints(t *testing.T) {
	_, cats, products, reviews := newCatalog(t)
	ctx := context.Background()

	_, err := products.Create(ctx, entity.Values{"name": "A", "slug": "a"})
	require.NoError(t, err)
	_, err = products.Create(ctx, entity.Values{"name": "B", "slug": "a"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = products.Create(ctx, entity.Values{"name": "C", "slug": ""})
	require.NoError(t, err)
	_, err = products.Create(ctx, entity.Values{"name": "D", "slug": ""})
	require.NoError(t, err, "los slugs vacíos no chocan")

	_, err = reviews.Create(ctx, entity.Values{"product": int64(99), "content": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = cats.Create(ctx, entity.Values{"id": int64(5), "name": "Cocina"})
	require.NoError(t, err)
	_, err = cats.Create(ctx, entity.Values{"id": int64(5), "name": "Mesa"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	next, err := cats.Create(ctx, entity.Values{"name": "Baño"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), next.ID)

	_, err = products.Update(ctx, 1, entity.Values{"categories": []int64{5, 42}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = products.Get(ctx, 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_QueryConditions(t *testing.T) {
	_, _, products, reviews := newCatalog(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 30, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"Blue Mug", "Red Mug", "Blue Plate", "Green Bowl"} {
		_, err := products.Create(ctx, entity.Values{
			"name": name, "is_in_stock": i%2 == 0, "create_date": base.AddDate(0, 0, i),
			"categories": []int64{},
		})
		require.NoError(t, err)
	}
	_, err := reviews.Create(ctx, entity.Values{"product": int64(3), "content": "a"})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, entity.Values{"product": int64(3), "content": "b"})
	require.NoError(t, err)

	ids := func(q repository.Query) []int64 {
		recs, err := products.Find(ctx, q)
		require.NoError(t, err)
		out := []int64{}
		for _, r := range recs {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 3}, ids(repository.Query{Conditions: []repository.Condition{repository.In("is_in_stock", true)}}))
	assert.Equal(t, []int64{2, 4}, ids(repository.Query{Conditions: []repository.Condition{repository.NotIn("is_in_stock", true)}}))
	assert.Equal(t, []int64{2, 3}, ids(repository.Query{Conditions: []repository.Condition{{
		Kind: repository.CondRange, Field: "create_date",
		Lower: base.AddDate(0, 0, 1), Upper: base.AddDate(0, 0, 3), UpperOpen: true,
	}}}))
	assert.Equal(t, []int64{3, 4}, ids(repository.Query{Conditions: []repository.Condition{{
		Kind: repository.CondDatePart, Field: "create_date", Year: 2024, Month: 2,
	}}}))
	assert.Equal(t, []int64{3}, ids(repository.Query{Search: &repository.Search{
		Terms: []string{"blue", "PLATE"}, Fields: []repository.SearchField{{Field: "name"}},
	}}))
	assert.Equal(t, []int64{1, 3}, ids(repository.Query{Search: &repository.Search{
		Terms: []string{"blue"}, Fields: []repository.SearchField{repository.ParseSearchField("^name")},
	}}))
	assert.Empty(t, ids(repository.Query{None: true}))
	assert.Equal(t, []int64{3, 1, 2, 4}, ids(repository.Query{Order: []repository.OrderField{
		{Field: entity.ReviewCountAnnotation, Desc: true},
	}}))
	assert.Equal(t, []int64{2, 3}, ids(repository.Query{Order: []repository.OrderField{{Field: "id"}}, Limit: 2, Offset: 1}))

	n, err := products.Count(ctx, repository.Query{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	months, err := products.DistinctDates(ctx, "create_date", repository.TruncMonth, repository.Query{})
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, time.January, months[0].Month())

	names, err := products.Distinct(ctx, "is_in_stock", repository.Query{})
	require.NoError(t, err)
	assert.Equal(t, []any{false, true}, names)
}

func TestRecordStore_M2MAndCascade(t *testing.T) {
	_, cats, products, reviews := newCatalog(t)
	ctx := context.Background()
	for _, name := range []string{"Cocina", "Mesa"} {
		_, err := cats.Create(ctx, entity.Values{"name": name})
		require.NoError(t, err)
	}
	_, err := products.Create(ctx, entity.Values{"name": "Taza", "categories": []int64{1, 2}})
	require.NoError(t, err)
	_, err = products.Create(ctx, entity.Values{"name": "Plato", "categories": []int64{2}})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, entity.Values{"product": int64(1), "content": "x"})
	require.NoError(t, err)

	recs, err := products.Find(ctx, repository.Query{Conditions: []repository.Condition{repository.In("categories", int64(1))}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Taza", recs[0].String("name"))

	distinct, err := products.Distinct(ctx, "categories", repository.Query{})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, distinct)

	require.NoError(t, cats.Delete(ctx, 2))
	taza, err := products.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, taza.IDs("categories"))

	require.NoError(t, products.Delete(ctx, 1))
	n, err := reviews.Count(ctx, repository.Query{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDatabase_RunRollsBackOnError(t *testing.T) {
	db, _, products, _ := newCatalog(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.Run(ctx, func(stores repository.Stores) error {
		st, err := stores.Store("product")
		if err != nil {
			return err
		}
		if _, err := st.Create(ctx, entity.Values{"name": "Fantasma"}); err != nil {
			return err
		}
		n, err := st.Count(ctx, repository.Query{})
		require.NoError(t, err)
		assert.Equal(t, 1, n, "la transacción ve sus propias escrituras")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := products.Count(ctx, repository.Query{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, db.Run(ctx, func(stores repository.Stores) error {
		st, _ := stores.Store("product")
		_, err := st.UpdateMany(ctx, []int64{1}, entity.Values{"name": "x"})
		return err
	}))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, db.Run(cancelled, func(repository.Stores) error { return nil }), context.Canceled)
}

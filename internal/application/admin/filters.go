package admin

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

// Sufijos de los parámetros de rango.
const (
	lowerSuffix = "__gte"
	upperSuffix = "__lte"
)

// filter widget de filtrado: traduce parámetros de la petición a condiciones del store.
type filter interface {
	spec() ListFilter
	params() []string
	// conditions devuelve none=true cuando el filtro no puede coincidir con nada.
	conditions(raw map[string][]string, verr *domain.ValidationError) (conds []repository.Condition, none bool)
	state(ctx context.Context, stores repository.Stores, store repository.RecordStore, raw map[string][]string) (dto.FilterState, error)
}

type filterFactory func(lf ListFilter, f *entity.Field, related *entity.Model) (filter, error)

// filterKinds registro de widgets: tipo declarado -> constructor que valida la compatibilidad del campo.
var filterKinds = map[FilterKind]filterFactory{
	FilterDropdown: func(lf ListFilter, f *entity.Field, _ *entity.Model) (filter, error) {
		if f.IsRelation() || f.Type == entity.FieldText {
			return nil, fmt.Errorf("%q: dropdown requiere un campo escalar", f.Name)
		}
		return &dropdownFilter{base: newBase(lf, f)}, nil
	},
	FilterBoolean: func(lf ListFilter, f *entity.Field, _ *entity.Model) (filter, error) {
		if f.Type != entity.FieldBool {
			return nil, fmt.Errorf("%q: boolean requiere un campo booleano", f.Name)
		}
		return &booleanFilter{base: newBase(lf, f)}, nil
	},
	FilterDateRange: func(lf ListFilter, f *entity.Field, _ *entity.Model) (filter, error) {
		if !f.IsTemporal() {
			return nil, fmt.Errorf("%q: date_range requiere un campo de fecha", f.Name)
		}
		return &rangeFilter{base: newBase(lf, f), days: true}, nil
	},
	FilterDateTimeRange: func(lf ListFilter, f *entity.Field, _ *entity.Model) (filter, error) {
		if f.Type != entity.FieldDateTime {
			return nil, fmt.Errorf("%q: datetime_range requiere un campo fecha-hora", f.Name)
		}
		return &rangeFilter{base: newBase(lf, f)}, nil
	},
	FilterRelatedDropdown: func(lf ListFilter, f *entity.Field, related *entity.Model) (filter, error) {
		if !f.IsRelation() || related == nil {
			return nil, fmt.Errorf("%q: related_dropdown requiere una relación", f.Name)
		}
		return &relatedFilter{base: newBase(lf, f), related: related}, nil
	},
}

func newFilter(lf ListFilter, f *entity.Field, related *entity.Model) (filter, error) {
	factory, ok := filterKinds[lf.Kind]
	if !ok {
		return nil, fmt.Errorf("%q: tipo de filtro desconocido %q", f.Name, lf.Kind)
	}
	return factory(lf, f, related)
}

type base struct {
	lf    ListFilter
	field *entity.Field
}

func newBase(lf ListFilter, f *entity.Field) base {
	if lf.Title == "" {
		lf.Title = f.Label
	}
	return base{lf: lf, field: f}
}

func (b base) spec() ListFilter { return b.lf }

func (b base) params() []string { return []string{b.field.Name} }

func (b base) newState() dto.FilterState {
	return dto.FilterState{Field: b.field.Name, Title: b.lf.Title, Kind: string(b.lf.Kind), Params: b.params()}
}

// values valores no vacíos de un parámetro repetible.
func values(raw map[string][]string, key string) []string {
	var out []string
	for _, v := range raw[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseIn convierte los valores de un parámetro en una condición In (los valores repetidos se combinan con OR).
func (b base) parseIn(raw map[string][]string, verr *domain.ValidationError, parse func(string) (any, error)) []repository.Condition {
	var in []any
	for _, s := range values(raw, b.field.Name) {
		v, err := parse(s)
		if err != nil {
			verr.Add(b.field.Name, err.Error())
			continue
		}
		if v != nil {
			in = append(in, v)
		}
	}
	if len(in) == 0 {
		return nil
	}
	return []repository.Condition{repository.In(b.field.Name, in...)}
}

func selectedSet(raw map[string][]string, key string) map[string]bool {
	set := make(map[string]bool)
	for _, v := range values(raw, key) {
		set[v] = true
	}
	return set
}

func sortChoices(choices []dto.FilterChoice) {
	sort.SliceStable(choices, func(i, j int) bool {
		a, b := strings.ToLower(choices[i].Label), strings.ToLower(choices[j].Label)
		if a != b {
			return a < b
		}
		return choices[i].Value < choices[j].Value
	})
}

// dropdownFilter valores exactos presentes en los registros.
type dropdownFilter struct{ base }

func (d *dropdownFilter) conditions(raw map[string][]string, verr *domain.ValidationError) ([]repository.Condition, bool) {
	return d.parseIn(raw, verr, d.field.Parse), false
}

func (d *dropdownFilter) state(ctx context.Context, _ repository.Stores, store repository.RecordStore, raw map[string][]string) (dto.FilterState, error) {
	st := d.newState()
	distinct, err := store.Distinct(ctx, d.field.Name, repository.Query{})
	if err != nil {
		return st, fmt.Errorf("filtro %s: %w", d.field.Name, err)
	}
	selected := selectedSet(raw, d.field.Name)
	for _, v := range distinct {
		value := d.field.Format(v)
		st.Choices = append(st.Choices, dto.FilterChoice{Value: value, Label: displayValue(d.field, v), Selected: selected[value]})
	}
	sortChoices(st.Choices)
	st.Active = len(selected) > 0
	return st, nil
}

// booleanFilter Todos / Sí / No.
type booleanFilter struct{ base }

func (b *booleanFilter) conditions(raw map[string][]string, verr *domain.ValidationError) ([]repository.Condition, bool) {
	return b.parseIn(raw, verr, b.field.Parse), false
}

func (b *booleanFilter) state(_ context.Context, _ repository.Stores, _ repository.RecordStore, raw map[string][]string) (dto.FilterState, error) {
	st := b.newState()
	selected := selectedSet(raw, b.field.Name)
	st.Active = len(selected) > 0
	st.Choices = []dto.FilterChoice{
		{Value: "", Label: "Todos", Selected: !st.Active},
		{Value: "1", Label: "Sí", Selected: selected["1"]},
		{Value: "0", Label: "No", Selected: selected["0"]},
	}
	return st, nil
}

// rangeFilter cotas inclusivas <campo>__gte / <campo>__lte. Con days=true las cotas son días
// de calendario y la superior cubre el día completo.
type rangeFilter struct {
	base
	days bool
}

func (r *rangeFilter) params() []string {
	return []string{r.field.Name + lowerSuffix, r.field.Name + upperSuffix}
}

func (r *rangeFilter) newState() dto.FilterState {
	st := r.base.newState()
	st.Params = r.params()
	return st
}

func (r *rangeFilter) parse(s string) (time.Time, error) {
	if r.days {
		t, err := time.Parse(entity.DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("introduzca una fecha válida (AAAA-MM-DD)")
		}
		return t, nil
	}
	v, err := r.field.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("introduzca una fecha y hora válidas")
	}
	return v.(time.Time), nil
}

func (r *rangeFilter) bound(raw map[string][]string, key string, verr *domain.ValidationError) (*time.Time, bool) {
	vs := values(raw, key)
	if len(vs) == 0 {
		return nil, true
	}
	t, err := r.parse(vs[len(vs)-1])
	if err != nil {
		verr.Add(key, err.Error())
		return nil, false
	}
	return &t, true
}

func (r *rangeFilter) conditions(raw map[string][]string, verr *domain.ValidationError) ([]repository.Condition, bool) {
	lo, okLo := r.bound(raw, r.field.Name+lowerSuffix, verr)
	hi, okHi := r.bound(raw, r.field.Name+upperSuffix, verr)
	if !okLo || !okHi || (lo == nil && hi == nil) {
		return nil, false
	}
	if lo != nil && hi != nil && lo.After(*hi) {
		return nil, true
	}
	c := repository.Condition{Kind: repository.CondRange, Field: r.field.Name}
	if lo != nil {
		c.Lower = *lo
	}
	if hi != nil {
		c.Upper = *hi
		if r.days && r.field.Type == entity.FieldDateTime {
			c.Upper = hi.AddDate(0, 0, 1)
			c.UpperOpen = true
		}
	}
	return []repository.Condition{c}, false
}

func (r *rangeFilter) state(_ context.Context, _ repository.Stores, _ repository.RecordStore, raw map[string][]string) (dto.FilterState, error) {
	st := r.newState()
	if v := values(raw, r.field.Name+lowerSuffix); len(v) > 0 {
		st.Lower = v[len(v)-1]
	}
	if v := values(raw, r.field.Name+upperSuffix); len(v) > 0 {
		st.Upper = v[len(v)-1]
	}
	st.Active = st.Lower != "" || st.Upper != ""
	return st, nil
}

// relatedFilter registros relacionados que efectivamente están referenciados.
type relatedFilter struct {
	base
	related *entity.Model
}

func parseID(s string) (any, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%q no es un identificador válido", s)
	}
	return id, nil
}

func (r *relatedFilter) conditions(raw map[string][]string, verr *domain.ValidationError) ([]repository.Condition, bool) {
	return r.parseIn(raw, verr, parseID), false
}

func (r *relatedFilter) state(ctx context.Context, stores repository.Stores, store repository.RecordStore, raw map[string][]string) (dto.FilterState, error) {
	st := r.newState()
	distinct, err := store.Distinct(ctx, r.field.Name, repository.Query{})
	if err != nil {
		return st, fmt.Errorf("filtro %s: %w", r.field.Name, err)
	}
	ids := make([]int64, 0, len(distinct))
	for _, v := range distinct {
		if id, ok := v.(int64); ok {
			ids = append(ids, id)
		}
	}
	selected := selectedSet(raw, r.field.Name)
	st.Active = len(selected) > 0
	if len(ids) == 0 {
		return st, nil
	}
	relStore, err := stores.Store(r.related.Name)
	if err != nil {
		return st, err
	}
	recs, err := relStore.Find(ctx, repository.Query{Conditions: []repository.Condition{repository.IDsIn(ids)}})
	if err != nil {
		return st, fmt.Errorf("filtro %s: %w", r.field.Name, err)
	}
	for _, rec := range recs {
		value := strconv.FormatInt(rec.ID, 10)
		st.Choices = append(st.Choices, dto.FilterChoice{Value: value, Label: r.related.String(rec), Selected: selected[value]})
	}
	sortChoices(st.Choices)
	return st, nil
}

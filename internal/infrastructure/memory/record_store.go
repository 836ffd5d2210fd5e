package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

var _ repository.RecordStore = (*RecordStore)(nil)

// RecordStore implementación en memoria del puerto RecordStore.
type RecordStore struct {
	db    *Database
	model *entity.Model
	tx    *state
}

// Model devuelve los metadatos del modelo.
func (s *RecordStore) Model() *entity.Model { return s.model }

func (s *RecordStore) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return fn(s.db.st)
}

// Find devuelve los registros que cumplen q, ordenados y paginados.
func (s *RecordStore) Find(ctx context.Context, q repository.Query) ([]*entity.Record, error) {
	var out []*entity.Record
	err := s.do(ctx, func(st *state) error {
		out = s.query(st, q)
		return nil
	})
	return out, err
}

// Count cantidad de registros que cumplen q (sin paginar).
func (s *RecordStore) Count(ctx context.Context, q repository.Query) (int, error) {
	var n int
	err := s.do(ctx, func(st *state) error {
		n = len(s.query(st, q.Unpaged()))
		return nil
	})
	return n, err
}

// Get obtiene un registro por ID.
func (s *RecordStore) Get(ctx context.Context, id int64) (*entity.Record, error) {
	var rec *entity.Record
	err := s.do(ctx, func(st *state) error {
		row, ok := st.tables[s.model.Name].rows[id]
		if !ok {
			return domain.ErrNotFound
		}
		rec = s.record(st, id, row)
		return nil
	})
	return rec, err
}

// Create inserta un registro completando los valores por defecto.
func (s *RecordStore) Create(ctx context.Context, values entity.Values) (*entity.Record, error) {
	var rec *entity.Record
	err := s.do(ctx, func(st *state) error {
		t := st.tables[s.model.Name]
		row := s.withDefaults(values)
		var id int64
		if v, ok := values["id"].(int64); ok && v > 0 {
			if _, exists := t.rows[v]; exists {
				return domain.ErrDuplicate
			}
			id = v
		} else {
			id = t.seq + 1
		}
		delete(row, "id")
		if err := s.checkConstraints(st, id, row); err != nil {
			return err
		}
		if id > t.seq {
			t.seq = id
		}
		t.rows[id] = row
		rec = s.record(st, id, row)
		return nil
	})
	return rec, err
}

// Update modifica los campos presentes en values.
func (s *RecordStore) Update(ctx context.Context, id int64, values entity.Values) (*entity.Record, error) {
	var rec *entity.Record
	err := s.do(ctx, func(st *state) error {
		t := st.tables[s.model.Name]
		row, ok := t.rows[id]
		if !ok {
			return domain.ErrNotFound
		}
		next := row.Clone()
		for k, v := range values {
			if k == "id" {
				continue
			}
			next[k] = v
		}
		if err := s.checkConstraints(st, id, next); err != nil {
			return err
		}
		t.rows[id] = next
		rec = s.record(st, id, next)
		return nil
	})
	return rec, err
}

// UpdateMany aplica values a cada id existente.
func (s *RecordStore) UpdateMany(ctx context.Context, ids []int64, values entity.Values) (int, error) {
	var n int
	err := s.do(ctx, func(st *state) error {
		t := st.tables[s.model.Name]
		pending := make(map[int64]entity.Values)
		for _, id := range entity.SortIDs(ids) {
			row, ok := t.rows[id]
			if !ok {
				continue
			}
			next := row.Clone()
			for k, v := range values {
				if k != "id" {
					next[k] = v
				}
			}
			if err := s.checkConstraints(st, id, next); err != nil {
				return err
			}
			pending[id] = next
		}
		for id, row := range pending {
			t.rows[id] = row
		}
		n = len(pending)
		return nil
	})
	return n, err
}

// Delete elimina el registro y aplica la cascada sobre FKs y M2M que lo referencian.
func (s *RecordStore) Delete(ctx context.Context, id int64) error {
	return s.do(ctx, func(st *state) error {
		if _, ok := st.tables[s.model.Name].rows[id]; !ok {
			return domain.ErrNotFound
		}
		s.db.cascade(st, s.model, id)
		return nil
	})
}

// Distinct valores distintos del campo, ascendentes.
func (s *RecordStore) Distinct(ctx context.Context, field string, q repository.Query) ([]any, error) {
	f, ok := s.model.Field(field)
	if !ok {
		return nil, fmt.Errorf("memory: campo desconocido %s.%s", s.model.Name, field)
	}
	var out []any
	err := s.do(ctx, func(st *state) error {
		seen := make(map[any]bool)
		for _, r := range s.query(st, q.Unpaged()) {
			if f.Type == entity.FieldManyToMany {
				for _, id := range r.IDs(field) {
					if !seen[id] {
						seen[id] = true
						out = append(out, id)
					}
				}
				continue
			}
			v := r.Get(field)
			if v == nil {
				continue
			}
			key := v
			if t, ok := v.(time.Time); ok {
				key = t.UnixNano()
			}
			if !seen[key] {
				seen[key] = true
				out = append(out, v)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return compare(out[i], out[j]) < 0 })
		return nil
	})
	return out, err
}

// DistinctDates fechas distintas truncadas.
func (s *RecordStore) DistinctDates(ctx context.Context, field string, trunc repository.DateTrunc, q repository.Query) ([]time.Time, error) {
	var out []time.Time
	err := s.do(ctx, func(st *state) error {
		seen := make(map[int64]bool)
		for _, r := range s.query(st, q.Unpaged()) {
			t := r.Time(field)
			if t.IsZero() {
				continue
			}
			d := trunc.Truncate(t)
			if !seen[d.UnixNano()] {
				seen[d.UnixNano()] = true
				out = append(out, d)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
		return nil
	})
	return out, err
}

// ── consultas ────────────────────────────────────────────────────────────────

func (s *RecordStore) query(st *state, q repository.Query) []*entity.Record {
	if q.None {
		return nil
	}
	t := st.tables[s.model.Name]
	var out []*entity.Record
	for id, row := range t.rows {
		r := s.record(st, id, row)
		if s.matches(r, q) {
			out = append(out, r)
		}
	}
	order := q.Order
	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range order {
			c := compare(out[i].Get(o.Field), out[j].Get(o.Field))
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (s *RecordStore) record(st *state, id int64, row entity.Values) *entity.Record {
	v := row.Clone()
	for _, a := range s.model.Annotations {
		var n int64
		if child, ok := st.tables[a.Model]; ok {
			for _, crow := range child.rows {
				if fk, _ := crow[a.FK].(int64); fk == id {
					n++
				}
			}
		}
		v[a.Name] = n
	}
	return &entity.Record{ID: id, Values: v}
}

func (s *RecordStore) matches(r *entity.Record, q repository.Query) bool {
	for _, c := range q.Conditions {
		if !s.matchCondition(r, c) {
			return false
		}
	}
	if q.Search != nil {
		for _, term := range q.Search.Terms {
			if !s.matchTerm(r, term, q.Search.Fields) {
				return false
			}
		}
	}
	return true
}

func (s *RecordStore) matchCondition(r *entity.Record, c repository.Condition) bool {
	switch c.Kind {
	case repository.CondIn:
		hit := false
		if f, ok := s.model.Field(c.Field); ok && f.Type == entity.FieldManyToMany {
			for _, id := range r.IDs(c.Field) {
				if containsValue(c.Values, id) {
					hit = true
					break
				}
			}
		} else {
			hit = containsValue(c.Values, r.Get(c.Field))
		}
		return hit != c.Negate
	case repository.CondRange:
		v := r.Get(c.Field)
		if v == nil {
			return false
		}
		if c.Lower != nil && compare(v, c.Lower) < 0 {
			return false
		}
		if c.Upper != nil {
			cmp := compare(v, c.Upper)
			if cmp > 0 || (c.UpperOpen && cmp == 0) {
				return false
			}
		}
		return true
	case repository.CondDatePart:
		t := r.Time(c.Field).UTC()
		if t.IsZero() {
			return false
		}
		if c.Year != 0 && t.Year() != c.Year {
			return false
		}
		if c.Month != 0 && int(t.Month()) != c.Month {
			return false
		}
		if c.Day != 0 && t.Day() != c.Day {
			return false
		}
		return true
	}
	return false
}

func (s *RecordStore) matchTerm(r *entity.Record, term string, fields []repository.SearchField) bool {
	needle := strings.ToLower(term)
	for _, sf := range fields {
		f, ok := s.model.Field(sf.Field)
		if !ok {
			continue
		}
		hay := strings.ToLower(f.Format(r.Get(sf.Field)))
		switch sf.Mode {
		case repository.SearchExact:
			if hay == needle {
				return true
			}
		case repository.SearchPrefix:
			if strings.HasPrefix(hay, needle) {
				return true
			}
		default:
			if strings.Contains(hay, needle) {
				return true
			}
		}
	}
	return false
}

// ── restricciones ────────────────────────────────────────────────────────────

func (s *RecordStore) withDefaults(values entity.Values) entity.Values {
	row := s.model.Defaults()
	now := time.Now().UTC()
	for _, f := range s.model.Fields {
		if f.Type == entity.FieldAutoID {
			continue
		}
		if _, ok := row[f.Name]; ok {
			continue
		}
		switch f.Type {
		case entity.FieldString, entity.FieldText, entity.FieldSlug, entity.FieldImage:
			row[f.Name] = ""
		case entity.FieldBool:
			row[f.Name] = false
		case entity.FieldManyToMany:
			row[f.Name] = []int64{}
		case entity.FieldDate, entity.FieldDateTime:
			if f.AutoNow || f.AutoNowAdd {
				row[f.Name] = now
			}
		}
	}
	for k, v := range values {
		if v != nil {
			row[k] = v
		}
	}
	return row
}

func (s *RecordStore) checkConstraints(st *state, id int64, row entity.Values) error {
	for _, f := range s.model.Fields {
		v := row[f.Name]
		switch {
		case f.Unique && v != nil && v != "":
			for otherID, other := range st.tables[s.model.Name].rows {
				if otherID != id && compare(other[f.Name], v) == 0 {
					return fmt.Errorf("%w: %s.%s", domain.ErrDuplicate, s.model.Name, f.Name)
				}
			}
		case f.Type == entity.FieldForeignKey:
			fk, _ := v.(int64)
			if _, ok := st.tables[f.Related].rows[fk]; !ok {
				return fmt.Errorf("%w: %s.%s referencia inexistente %d", domain.ErrInvalidInput, s.model.Name, f.Name, fk)
			}
		case f.Type == entity.FieldManyToMany:
			ids, _ := v.([]int64)
			for _, rid := range ids {
				if _, ok := st.tables[f.Related].rows[rid]; !ok {
					return fmt.Errorf("%w: %s.%s referencia inexistente %d", domain.ErrInvalidInput, s.model.Name, f.Name, rid)
				}
			}
		}
	}
	return nil
}

func (db *Database) cascade(st *state, m *entity.Model, id int64) {
	delete(st.tables[m.Name].rows, id)
	for _, other := range db.order {
		for _, f := range other.Fields {
			if f.Related != m.Name {
				continue
			}
			switch f.Type {
			case entity.FieldForeignKey:
				var children []int64
				for cid, crow := range st.tables[other.Name].rows {
					if fk, _ := crow[f.Name].(int64); fk == id {
						children = append(children, cid)
					}
				}
				for _, cid := range children {
					db.cascade(st, other, cid)
				}
			case entity.FieldManyToMany:
				for _, orow := range st.tables[other.Name].rows {
					ids, _ := orow[f.Name].([]int64)
					kept := ids[:0:0]
					for _, rid := range ids {
						if rid != id {
							kept = append(kept, rid)
						}
					}
					orow[f.Name] = kept
				}
			}
		}
	}
}

func containsValue(values []any, v any) bool {
	for _, x := range values {
		if compare(x, v) == 0 {
			return true
		}
	}
	return false
}

// compare ordena valores del mismo tipo; tipos distintos se comparan por su texto.
func compare(a, b any) int {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	if b == nil {
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

var (
	_ repository.RecordStore = (*RecordRepo)(nil)
	_ repository.Stores      = (*Stores)(nil)
)

// Stores construye repositorios genéricos por modelo sobre un pool o una tx.
type Stores struct {
	q      Querier
	models map[string]*entity.Model
}

// NewStores registra los modelos administrables. Pasar pool o tx (Querier).
func NewStores(q Querier, models ...*entity.Model) *Stores {
	s := &Stores{q: q, models: make(map[string]*entity.Model, len(models))}
	for _, m := range models {
		s.models[m.Name] = m
	}
	return s
}

// Store devuelve el repositorio del modelo.
func (s *Stores) Store(model string) (repository.RecordStore, error) {
	m, ok := s.models[model]
	if !ok {
		return nil, fmt.Errorf("postgres: modelo desconocido %q", model)
	}
	return &RecordRepo{q: s.q, model: m, resolve: s.resolve}, nil
}

func (s *Stores) resolve(name string) (*entity.Model, bool) {
	m, ok := s.models[name]
	return m, ok
}

// RecordRepo implementación del puerto RecordStore sobre PostgreSQL para un modelo.
type RecordRepo struct {
	q       Querier
	model   *entity.Model
	resolve func(string) (*entity.Model, bool)
}

// Model devuelve los metadatos del modelo.
func (r *RecordRepo) Model() *entity.Model { return r.model }

func (r *RecordRepo) builder() *sqlBuilder { return newSQLBuilder(r.model, r.resolve) }

// Find lista registros con filtros, orden y paginación.
func (r *RecordRepo) Find(ctx context.Context, q repository.Query) ([]*entity.Record, error) {
	b := r.builder()
	cols, err := b.selectList()
	if err != nil {
		return nil, err
	}
	where, err := b.where(q)
	if err != nil {
		return nil, err
	}
	order, err := b.orderBy(q.Order)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s", strings.Join(cols, ", "), b.table(), where, order)
	if q.Limit > 0 {
		query += " LIMIT " + b.arg(q.Limit)
	}
	if q.Offset > 0 {
		query += " OFFSET " + b.arg(q.Offset)
	}
	rows, err := r.q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.model.Table, err)
	}
	defer rows.Close()
	var list []*entity.Record
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.model.Table, err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Count cuenta los registros que cumplen q.
func (r *RecordRepo) Count(ctx context.Context, q repository.Query) (int, error) {
	b := r.builder()
	where, err := b.where(q)
	if err != nil {
		return 0, err
	}
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", b.table(), where)
	if err := r.q.QueryRow(ctx, query, b.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.model.Table, err)
	}
	return n, nil
}

// Get obtiene un registro por ID.
func (r *RecordRepo) Get(ctx context.Context, id int64) (*entity.Record, error) {
	list, err := r.Find(ctx, repository.Query{Conditions: []repository.Condition{repository.IDsIn([]int64{id})}})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return list[0], nil
}

// Create inserta el registro y reemplaza sus relaciones M2M.
func (r *RecordRepo) Create(ctx context.Context, values entity.Values) (*entity.Record, error) {
	b := r.builder()
	var cols, placeholders []string
	explicitID, hasID := values["id"].(int64)
	if hasID && explicitID > 0 {
		cols = append(cols, "id")
		placeholders = append(placeholders, b.arg(explicitID))
	}
	for _, f := range r.model.Fields {
		v, ok := values[f.Name]
		if !ok || v == nil || f.Type == entity.FieldAutoID || f.Type == entity.FieldManyToMany {
			continue
		}
		cols = append(cols, ident(f.ColumnName()))
		placeholders = append(placeholders, b.arg(v))
	}
	var query string
	if len(cols) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING id", ident(r.model.Table))
	} else {
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			ident(r.model.Table), strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	}
	var id int64
	if err := r.q.QueryRow(ctx, query, b.args...).Scan(&id); err != nil {
		return nil, translate("insert "+r.model.Table, err)
	}
	if hasID && explicitID > 0 {
		// Mantiene la secuencia por delante de los ids importados explícitamente.
		seq := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT MAX(id) FROM %s), 1))",
			r.model.Table, ident(r.model.Table))
		if _, err := r.q.Exec(ctx, seq); err != nil {
			return nil, translate("setval "+r.model.Table, err)
		}
	}
	if err := r.replaceRelations(ctx, id, values); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update modifica los campos presentes en values.
func (r *RecordRepo) Update(ctx context.Context, id int64, values entity.Values) (*entity.Record, error) {
	b := r.builder()
	idArg := b.arg(id)
	var sets []string
	for _, f := range r.model.Fields {
		v, ok := values[f.Name]
		if !ok || v == nil || f.Type == entity.FieldAutoID || f.Type == entity.FieldManyToMany {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = %s", ident(f.ColumnName()), b.arg(v)))
	}
	if len(sets) > 0 {
		query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s", ident(r.model.Table), strings.Join(sets, ", "), idArg)
		cmd, err := r.q.Exec(ctx, query, b.args...)
		if err != nil {
			return nil, translate("update "+r.model.Table, err)
		}
		if cmd.RowsAffected() == 0 {
			return nil, domain.ErrNotFound
		}
	} else if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := r.replaceRelations(ctx, id, values); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// UpdateMany actualiza campos escalares de varios registros en una sentencia.
func (r *RecordRepo) UpdateMany(ctx context.Context, ids []int64, values entity.Values) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	b := r.builder()
	var sets []string
	for _, f := range r.model.Fields {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		if f.Type == entity.FieldManyToMany || f.Type == entity.FieldAutoID {
			return 0, fmt.Errorf("update many %s: campo %s no admite actualización masiva: %w", r.model.Table, f.Name, domain.ErrInvalidInput)
		}
		sets = append(sets, fmt.Sprintf("%s = %s", ident(f.ColumnName()), b.arg(v)))
	}
	if len(sets) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ANY(%s)", ident(r.model.Table), strings.Join(sets, ", "), b.arg(ids))
	cmd, err := r.q.Exec(ctx, query, b.args...)
	if err != nil {
		return 0, translate("update many "+r.model.Table, err)
	}
	return int(cmd.RowsAffected()), nil
}

// Delete elimina un registro por ID (las FK hijas se borran por ON DELETE CASCADE).
func (r *RecordRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", ident(r.model.Table)), id)
	if err != nil {
		return translate("delete "+r.model.Table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Distinct valores distintos del campo entre los registros que cumplen q.
func (r *RecordRepo) Distinct(ctx context.Context, field string, q repository.Query) ([]any, error) {
	b := r.builder()
	f, ok := r.model.Field(field)
	if !ok {
		return nil, fmt.Errorf("postgres: campo desconocido %s.%s", r.model.Name, field)
	}
	where, err := b.where(q.Unpaged())
	if err != nil {
		return nil, err
	}
	var query string
	target := f
	if f.Type == entity.FieldManyToMany {
		query = fmt.Sprintf("SELECT DISTINCT x.%s FROM %s x JOIN %s ON t.id = x.%s WHERE %s ORDER BY 1",
			ident(f.ThroughTarget), ident(f.Through), b.table(), ident(f.ThroughOwner), where)
		target = &entity.Field{Type: entity.FieldInt}
	} else {
		col, _, err := b.column(field)
		if err != nil {
			return nil, err
		}
		query = fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s AND %s IS NOT NULL ORDER BY 1", col, b.table(), where, col)
	}
	rows, err := r.q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("distinct %s.%s: %w", r.model.Table, field, err)
	}
	defer rows.Close()
	var out []any
	for rows.Next() {
		dest := scanTarget(target)
		if err := rows.Scan(dest); err != nil {
			return nil, fmt.Errorf("scan distinct %s.%s: %w", r.model.Table, field, err)
		}
		out = append(out, deref(dest))
	}
	return out, rows.Err()
}

// DistinctDates fechas distintas del campo truncadas (UTC).
func (r *RecordRepo) DistinctDates(ctx context.Context, field string, trunc repository.DateTrunc, q repository.Query) ([]time.Time, error) {
	b := r.builder()
	col, f, err := b.column(field)
	if err != nil {
		return nil, err
	}
	if !f.IsTemporal() {
		return nil, fmt.Errorf("postgres: %s.%s no es un campo de fecha", r.model.Name, field)
	}
	if f.Type == entity.FieldDateTime {
		col = fmt.Sprintf("(%s AT TIME ZONE 'UTC')", col)
	}
	where, err := b.where(q.Unpaged())
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT DISTINCT date_trunc('%s', %s)::timestamp AS d FROM %s WHERE %s AND %s IS NOT NULL ORDER BY d",
		string(trunc), col, b.table(), where, col)
	rows, err := r.q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("distinct dates %s.%s: %w", r.model.Table, field, err)
	}
	defer rows.Close()
	var out []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan distinct dates: %w", err)
		}
		out = append(out, time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	}
	return out, rows.Err()
}

// replaceRelations reemplaza por completo cada M2M presente en values.
func (r *RecordRepo) replaceRelations(ctx context.Context, id int64, values entity.Values) error {
	for _, f := range r.model.Fields {
		if f.Type != entity.FieldManyToMany {
			continue
		}
		raw, ok := values[f.Name]
		if !ok {
			continue
		}
		ids, _ := raw.([]int64)
		del := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ident(f.Through), ident(f.ThroughOwner))
		if _, err := r.q.Exec(ctx, del, id); err != nil {
			return translate("clear "+f.Through, err)
		}
		if len(ids) == 0 {
			continue
		}
		ins := fmt.Sprintf("INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[])",
			ident(f.Through), ident(f.ThroughOwner), ident(f.ThroughTarget))
		if _, err := r.q.Exec(ctx, ins, id, entity.SortIDs(ids)); err != nil {
			return translate("insert "+f.Through, err)
		}
	}
	return nil
}

func (r *RecordRepo) scan(rows pgx.Rows) (*entity.Record, error) {
	dests := make([]any, 0, len(r.model.Fields)+len(r.model.Annotations))
	for _, f := range r.model.Fields {
		dests = append(dests, scanTarget(f))
	}
	for range r.model.Annotations {
		dests = append(dests, new(int64))
	}
	if err := rows.Scan(dests...); err != nil {
		return nil, err
	}
	rec := &entity.Record{Values: make(entity.Values, len(dests))}
	for i, f := range r.model.Fields {
		v := deref(dests[i])
		if f.Type == entity.FieldAutoID {
			rec.ID = v.(int64)
			continue
		}
		rec.Values[f.Name] = v
	}
	for i, a := range r.model.Annotations {
		rec.Values[a.Name] = deref(dests[len(r.model.Fields)+i])
	}
	return rec, nil
}

func scanTarget(f *entity.Field) any {
	switch f.Type {
	case entity.FieldAutoID, entity.FieldInt, entity.FieldForeignKey:
		return new(int64)
	case entity.FieldBool:
		return new(bool)
	case entity.FieldDate, entity.FieldDateTime:
		return new(time.Time)
	case entity.FieldManyToMany:
		return new([]int64)
	}
	return new(string)
}

func deref(p any) any {
	switch x := p.(type) {
	case *int64:
		return *x
	case *bool:
		return *x
	case *time.Time:
		return x.UTC()
	case *[]int64:
		if *x == nil {
			return []int64{}
		}
		return *x
	case *string:
		return *x
	}
	return nil
}

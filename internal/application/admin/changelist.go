package admin

import (
	"context"
	"errors"
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

// Parámetros reservados de la lista; el resto de la query string son filtros.
var reservedParams = map[string]bool{"page": true, "all": true, "q": true, "o": true}

// Sufijos de la jerarquía de fechas.
const (
	yearSuffix  = "__year"
	monthSuffix = "__month"
	daySuffix   = "__day"
)

// EmptyValueDisplay texto de una celda sin valor.
const EmptyValueDisplay = "-"

var monthNames = [...]string{"", "enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
	"agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// FilterParams descarta los parámetros reservados de una query string.
func FilterParams(query map[string][]string) map[string][]string {
	out := make(map[string][]string, len(query))
	for k, v := range query {
		if !reservedParams[k] {
			out[k] = v
		}
	}
	return out
}

type hierarchySel struct {
	year, month, day int
}

// listQuery consulta filtrada (sin orden ni paginación) a partir de la petición.
func (reg *registered) listQuery(req dto.PageRequest, raw map[string][]string, verr *domain.ValidationError) (repository.Query, hierarchySel) {
	var q repository.Query
	known := make(map[string]bool)
	for _, flt := range reg.filters {
		for _, p := range flt.params() {
			known[p] = true
		}
		conds, none := flt.conditions(raw, verr)
		q.Conditions = append(q.Conditions, conds...)
		q.None = q.None || none
	}

	var sel hierarchySel
	if f := reg.dateHierarchy; f != nil {
		parts := []struct {
			suffix string
			dst    *int
			max    int
		}{{yearSuffix, &sel.year, 9999}, {monthSuffix, &sel.month, 12}, {daySuffix, &sel.day, 31}}
		for _, p := range parts {
			key := f.Name + p.suffix
			known[key] = true
			vs := values(raw, key)
			if len(vs) == 0 {
				continue
			}
			n, err := strconv.Atoi(vs[len(vs)-1])
			if err != nil || n < 1 || n > p.max {
				verr.Add(key, fmt.Sprintf("%q no es un valor válido", vs[len(vs)-1]))
				continue
			}
			*p.dst = n
		}
		if sel.year != 0 || sel.month != 0 || sel.day != 0 {
			q.Conditions = append(q.Conditions, repository.Condition{
				Kind: repository.CondDatePart, Field: f.Name, Year: sel.year, Month: sel.month, Day: sel.day,
			})
		}
	}

	for key := range raw {
		if !known[key] && !reservedParams[key] {
			verr.Add(key, "parámetro de filtro desconocido")
		}
	}

	if terms := strings.Fields(req.Q); len(terms) > 0 && len(reg.search) > 0 {
		q.Search = &repository.Search{Terms: terms, Fields: reg.search}
	}
	return q, sel
}

// listOrder resuelve el parámetro o (columnas separadas por comas) o el orden por defecto.
func (reg *registered) listOrder(spec string, verr *domain.ValidationError) ([]repository.OrderField, []string) {
	if strings.TrimSpace(spec) == "" {
		public := append([]string(nil), reg.ma.Ordering...)
		if len(public) == 0 {
			public = []string{"id"}
		}
		return reg.ordering, public
	}
	var order []repository.OrderField
	var public []string
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		o := repository.ParseOrder(part)
		target := ""
		for _, col := range reg.columns {
			if col.name == o.Field && col.orderBy != "" {
				target = col.orderBy
			}
		}
		if target == "" {
			verr.Add("o", fmt.Sprintf("no se puede ordenar por %q", o.Field))
			continue
		}
		order = append(order, repository.OrderField{Field: target, Desc: o.Desc})
		public = append(public, part)
	}
	return order, public
}

// ChangeList lista paginada de un modelo con filtros, búsqueda y jerarquía de fechas aplicados.
func (s *Site) ChangeList(ctx context.Context, model string, req dto.PageRequest, raw map[string][]string) (*dto.ChangeListResponse, error) {
	reg, err := s.admin(model)
	if err != nil {
		return nil, err
	}
	store, err := s.store(s.stores, reg)
	if err != nil {
		return nil, err
	}
	req.DefaultPage()

	verr := domain.NewValidationError()
	q, sel := reg.listQuery(req, raw, verr)
	order, public := reg.listOrder(req.Order, verr)
	if verr.HasErrors() {
		return nil, verr
	}

	full, err := store.Count(ctx, repository.Query{})
	if err != nil {
		return nil, fmt.Errorf("contar %s: %w", model, err)
	}
	count, err := store.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("contar %s: %w", model, err)
	}

	page := dto.PageResponse{Page: req.Page, PerPage: reg.perPage, ResultCount: count, FullCount: full, NumPages: 1}
	page.CanShowAll = count <= reg.maxShowAll
	page.ShowAll = isTruthy(req.All) && page.CanShowAll
	if !page.ShowAll && count > 0 {
		page.NumPages = (count + reg.perPage - 1) / reg.perPage
	}
	if page.ShowAll {
		page.Page = 1
	} else if req.Page < 1 || req.Page > page.NumPages {
		verr.Add("page", fmt.Sprintf("página %d inválida (1-%d)", req.Page, page.NumPages))
		return nil, verr
	}

	pq := q
	pq.Order = order
	if !page.ShowAll {
		pq.Limit = reg.perPage
		pq.Offset = (page.Page - 1) * reg.perPage
	}
	recs, err := store.Find(ctx, pq)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", model, err)
	}

	out := &dto.ChangeListResponse{
		Model:          reg.model.Name,
		Label:          reg.model.Label,
		LabelPlural:    reg.model.LabelPlural,
		Columns:        reg.columnHeaders(order),
		Rows:           make([]dto.RowResponse, 0, len(recs)),
		Pagination:     page,
		Search:         req.Q,
		Searchable:     len(reg.search) > 0,
		SearchHelpText: reg.ma.SearchHelpText,
		Filters:        make([]dto.FilterState, 0, len(reg.filters)),
		Actions:        make([]dto.ActionInfo, 0, len(reg.actions)),
		Order:          public,
	}
	for _, r := range recs {
		out.Rows = append(out.Rows, reg.row(r))
	}
	for _, flt := range reg.filters {
		st, err := flt.state(ctx, s.stores, store, raw)
		if err != nil {
			return nil, err
		}
		out.Filters = append(out.Filters, st)
	}
	for _, a := range reg.actions {
		out.Actions = append(out.Actions, dto.ActionInfo{Name: a.Name, Description: a.Description})
	}
	if reg.dateHierarchy != nil {
		dh, err := dateHierarchy(ctx, store, reg.dateHierarchy, q, sel)
		if err != nil {
			return nil, err
		}
		out.DateHierarchy = dh
	}
	return out, nil
}

func (reg *registered) columnHeaders(order []repository.OrderField) []dto.ColumnResponse {
	out := make([]dto.ColumnResponse, 0, len(reg.columns))
	for _, col := range reg.columns {
		h := dto.ColumnResponse{
			Name:     col.name,
			Label:    col.label,
			Sortable: col.orderBy != "",
			Link:     col.link,
			Editable: col.editable,
			HTML:     col.computed != nil && col.computed.HTML,
		}
		if h.Sortable && len(order) > 0 && order[0].Field == col.orderBy {
			h.Sorted = "asc"
			if order[0].Desc {
				h.Sorted = "desc"
			}
		}
		out = append(out, h)
	}
	return out
}

func (reg *registered) row(r *entity.Record) dto.RowResponse {
	row := dto.RowResponse{ID: r.ID, Label: reg.model.String(r), Cells: make([]dto.CellResponse, 0, len(reg.columns))}
	for _, col := range reg.columns {
		var cell dto.CellResponse
		switch {
		case col.name == StrColumn:
			cell.Value = row.Label
			cell.Display = row.Label
		case col.computed != nil:
			cell.Value = col.computed.Func(r)
			cell.Display = displayAny(cell.Value)
		default:
			cell.Value = r.Get(col.field.Name)
			cell.Display = displayValue(col.field, cell.Value)
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

func dateHierarchy(ctx context.Context, store repository.RecordStore, f *entity.Field, q repository.Query, sel hierarchySel) (*dto.DateHierarchyResponse, error) {
	out := &dto.DateHierarchyResponse{Field: f.Name, Choices: []dto.DateChoice{}}
	params := func(y, m, d int) map[string]string {
		p := map[string]string{}
		if y > 0 {
			p[f.Name+yearSuffix] = strconv.Itoa(y)
		}
		if m > 0 {
			p[f.Name+monthSuffix] = strconv.Itoa(m)
		}
		if d > 0 {
			p[f.Name+daySuffix] = strconv.Itoa(d)
		}
		return p
	}
	var trunc repository.DateTrunc
	switch {
	case sel.year == 0:
		out.Level, trunc = "year", repository.TruncYear
	case sel.month == 0:
		out.Level, trunc = "month", repository.TruncMonth
		out.Back = &dto.DateChoice{Label: "Todas las fechas", Params: params(0, 0, 0)}
	case sel.day == 0:
		out.Level, trunc = "day", repository.TruncDay
		out.Back = &dto.DateChoice{Label: strconv.Itoa(sel.year), Params: params(sel.year, 0, 0)}
	default:
		out.Level = "done"
		out.Back = &dto.DateChoice{Label: monthNames[sel.month] + " " + strconv.Itoa(sel.year), Params: params(sel.year, sel.month, 0)}
		out.Choices = append(out.Choices, dto.DateChoice{
			Label:  fmt.Sprintf("%d de %s", sel.day, monthNames[sel.month]),
			Params: params(sel.year, sel.month, sel.day),
		})
		return out, nil
	}
	dates, err := store.DistinctDates(ctx, f.Name, trunc, q)
	if err != nil {
		return nil, fmt.Errorf("jerarquía %s: %w", f.Name, err)
	}
	for _, d := range dates {
		var c dto.DateChoice
		switch trunc {
		case repository.TruncYear:
			c = dto.DateChoice{Label: strconv.Itoa(d.Year()), Params: params(d.Year(), 0, 0)}
		case repository.TruncMonth:
			c = dto.DateChoice{Label: monthNames[d.Month()] + " " + strconv.Itoa(d.Year()), Params: params(d.Year(), int(d.Month()), 0)}
		default:
			c = dto.DateChoice{Label: fmt.Sprintf("%d de %s", d.Day(), monthNames[d.Month()]), Params: params(d.Year(), int(d.Month()), d.Day())}
		}
		out.Choices = append(out.Choices, c)
	}
	return out, nil
}

// SaveListEdits guarda las columnas editables de varias filas en una sola transacción.
// Cualquier fila inválida anula todo; los errores se indexan "<id>.<campo>".
func (s *Site) SaveListEdits(ctx context.Context, model string, edits map[int64]map[string]any) (int, error) {
	reg, err := s.admin(model)
	if err != nil {
		return 0, err
	}
	if len(edits) == 0 {
		return 0, nil
	}
	ids := make([]int64, 0, len(edits))
	for id := range edits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	updated := 0
	err = s.tx.Run(ctx, func(stores repository.Stores) error {
		store, err := s.store(stores, reg)
		if err != nil {
			return err
		}
		verr := domain.NewValidationError()
		pending := make(map[int64]entity.Values, len(ids))
		for _, id := range ids {
			key := strconv.FormatInt(id, 10)
			if _, err := store.Get(ctx, id); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					verr.Add(key, "el registro no existe")
					continue
				}
				return err
			}
			vals := entity.Values{}
			for name, raw := range edits[id] {
				f, ok := reg.editable[name]
				if !ok {
					verr.Add(key+"."+name, "columna no editable")
					continue
				}
				v, err := f.Coerce(raw)
				if err == nil {
					err = f.Validate(v)
				}
				if err == nil {
					err = s.checkConstraints(ctx, stores, reg.model, f, v, id)
				}
				if err != nil {
					verr.Add(key+"."+name, err.Error())
					continue
				}
				vals[name] = v
			}
			pending[id] = vals
		}
		if verr.HasErrors() {
			return verr
		}
		now := s.now()
		for _, id := range ids {
			vals := pending[id]
			if len(vals) == 0 {
				continue
			}
			touchAutoNow(reg.model, vals, now, false)
			if _, err := store.Update(ctx, id, vals); err != nil {
				return fmt.Errorf("actualizar %s %d: %w", model, id, err)
			}
			updated++
		}
		return nil
	})
	s.metrics.RecordSaved(model, "list_edit", err)
	if err != nil {
		s.log.Warn().Err(err).Str("model", model).Int("rows", len(edits)).Msg("edición en lista rechazada")
		return 0, err
	}
	s.log.Info().Str("model", model).Int("updated", updated).Msg("edición en lista guardada")
	return updated, nil
}

// touchAutoNow fija los timestamps automáticos (AutoNowAdd solo al crear).
func touchAutoNow(m *entity.Model, vals entity.Values, now time.Time, creating bool) {
	for _, f := range m.Fields {
		if f.AutoNow || (creating && f.AutoNowAdd) {
			vals[f.Name] = now.UTC()
		}
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "si", "sí":
		return true
	}
	return false
}

// displayValue formatea un valor de campo para mostrarlo.
func displayValue(f *entity.Field, v any) string {
	if f != nil && f.Type == entity.FieldDate {
		if t, ok := v.(time.Time); ok && !t.IsZero() {
			return t.Format(entity.DateLayout)
		}
	}
	if f != nil && f.Type == entity.FieldManyToMany {
		if s := f.Format(v); s != "" {
			return s
		}
		return EmptyValueDisplay
	}
	return displayAny(v)
}

func displayAny(v any) string {
	switch x := v.(type) {
	case nil:
		return EmptyValueDisplay
	case string:
		if x == "" {
			return EmptyValueDisplay
		}
		return x
	case bool:
		if x {
			return "Sí"
		}
		return "No"
	case time.Time:
		if x.IsZero() {
			return EmptyValueDisplay
		}
		return x.UTC().Format("2006-01-02 15:04")
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	}
	return fmt.Sprint(v)
}

package admin

import (
	"fmt"
	"strings"

	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

// column columna resuelta de la lista.
type column struct {
	name     string
	label    string
	field    *entity.Field
	computed *Computed
	orderBy  string
	link     bool
	editable bool
}

type inline struct {
	InlineAdmin
	model  *entity.Model
	fk     *entity.Field
	fields []*entity.Field
}

// registered descriptor validado con sus referencias ya resueltas.
type registered struct {
	ma            ModelAdmin
	model         *entity.Model
	columns       []column
	editable      map[string]*entity.Field
	filters       []filter
	search        []repository.SearchField
	ordering      []repository.OrderField
	perPage       int
	maxShowAll    int
	dateHierarchy *entity.Field
	layout        [][]string
	readonly      map[string]bool
	computed      map[string]*Computed
	inlines       []inline
	actions       []Action
	resource      []*entity.Field
}

func (r *registered) action(name string) (Action, bool) {
	for _, a := range r.actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// orderable resuelve el nombre público de una columna/campo al criterio que entiende el store.
func (r *registered) orderable(name string) (string, bool) {
	if f, ok := r.model.Field(name); ok && f.Type != entity.FieldManyToMany {
		return f.Name, true
	}
	if r.model.HasAnnotation(name) {
		return name, true
	}
	if c, ok := r.computed[name]; ok && c.OrderBy != "" {
		return c.OrderBy, true
	}
	return "", false
}

type configChecker struct {
	model string
}

func (c configChecker) fail(option, format string, args ...any) error {
	return &domain.ConfigurationError{Model: c.model, Option: option, Reason: fmt.Sprintf(format, args...)}
}

func (s *Site) modelMeta(name string) (*entity.Model, error) {
	st, err := s.stores.Store(name)
	if err != nil {
		return nil, err
	}
	return st.Model(), nil
}

// resolve valida el descriptor contra los metadatos del modelo.
func (s *Site) resolve(ma ModelAdmin) (*registered, error) {
	chk := configChecker{model: ma.Model}
	model, err := s.modelMeta(ma.Model)
	if err != nil {
		return nil, chk.fail("model", "modelo desconocido")
	}
	reg := &registered{
		ma:         ma,
		model:      model,
		editable:   make(map[string]*entity.Field),
		readonly:   make(map[string]bool),
		computed:   make(map[string]*Computed),
		perPage:    s.cfg.ListPerPage,
		maxShowAll: s.cfg.MaxShowAll,
	}

	for i := range ma.Computed {
		c := &ma.Computed[i]
		switch {
		case c.Name == "" || c.Func == nil:
			return nil, chk.fail("computed", "columna calculada sin nombre o sin función")
		case reg.computed[c.Name] != nil:
			return nil, chk.fail("computed", "%q duplicada", c.Name)
		}
		if _, ok := model.Field(c.Name); ok {
			return nil, chk.fail("computed", "%q coincide con un campo del modelo", c.Name)
		}
		if c.OrderBy != "" {
			if f, ok := model.Field(c.OrderBy); !(ok && f.Type != entity.FieldManyToMany) && !model.HasAnnotation(c.OrderBy) {
				return nil, chk.fail("computed", "%q ordena por %q, que no es campo ni agregado", c.Name, c.OrderBy)
			}
		}
		reg.computed[c.Name] = c
	}

	if ma.ListPerPage < 0 || ma.ListMaxShowAll < 0 {
		return nil, chk.fail("list_per_page", "los tamaños de página no pueden ser negativos")
	}
	if ma.ListPerPage > 0 {
		reg.perPage = ma.ListPerPage
	}
	if ma.ListMaxShowAll > 0 {
		reg.maxShowAll = ma.ListMaxShowAll
	}

	if err := s.resolveColumns(chk, reg); err != nil {
		return nil, err
	}
	if err := s.resolveFilters(chk, reg); err != nil {
		return nil, err
	}
	for _, spec := range ma.SearchFields {
		sf := repository.ParseSearchField(spec)
		f, ok := model.Field(sf.Field)
		if !ok || f.IsRelation() {
			return nil, chk.fail("search_fields", "%q no es un campo buscable", spec)
		}
		reg.search = append(reg.search, sf)
	}

	ordering := ma.Ordering
	if len(ordering) == 0 {
		ordering = []string{"id"}
	}
	for _, spec := range ordering {
		o := repository.ParseOrder(spec)
		target, ok := reg.orderable(o.Field)
		if !ok {
			return nil, chk.fail("ordering", "%q no es ordenable", spec)
		}
		reg.ordering = append(reg.ordering, repository.OrderField{Field: target, Desc: o.Desc})
	}

	if ma.DateHierarchy != "" {
		f, ok := model.Field(ma.DateHierarchy)
		if !ok || !f.IsTemporal() {
			return nil, chk.fail("date_hierarchy", "%q debe ser un campo de fecha o fecha-hora", ma.DateHierarchy)
		}
		reg.dateHierarchy = f
	}

	if err := s.resolveForm(chk, reg); err != nil {
		return nil, err
	}
	if err := s.resolveInlines(chk, reg); err != nil {
		return nil, err
	}
	if err := resolveActions(chk, reg); err != nil {
		return nil, err
	}

	if ma.Resource != nil {
		names := ma.Resource.Fields
		if len(names) == 0 {
			names = model.FieldNames()
		}
		for _, name := range names {
			f, ok := model.Field(name)
			if !ok {
				return nil, chk.fail("resource", "%q no es un campo", name)
			}
			reg.resource = append(reg.resource, f)
		}
	}
	return reg, nil
}

func (s *Site) resolveColumns(chk configChecker, reg *registered) error {
	ma, model := reg.ma, reg.model
	display := ma.ListDisplay
	if len(display) == 0 {
		display = []string{StrColumn}
	}
	index := make(map[string]int, len(display))
	for i, name := range display {
		if _, dup := index[name]; dup {
			return chk.fail("list_display", "%q repetida", name)
		}
		index[name] = i
		col := column{name: name}
		switch {
		case name == StrColumn:
			col.label = model.Label
		case reg.computed[name] != nil:
			c := reg.computed[name]
			col.computed, col.label, col.orderBy = c, c.Label, c.OrderBy
		default:
			f, ok := model.Field(name)
			if !ok {
				return chk.fail("list_display", "%q no es campo ni columna calculada", name)
			}
			if f.Type == entity.FieldManyToMany {
				return chk.fail("list_display", "%q es muchos-a-muchos y no puede mostrarse en la lista", name)
			}
			col.field, col.label, col.orderBy = f, f.Label, f.Name
		}
		if col.label == "" {
			col.label = name
		}
		reg.columns = append(reg.columns, col)
	}

	links := ma.ListDisplayLinks
	if len(links) == 0 {
		links = display[:1]
	}
	for _, name := range links {
		i, ok := index[name]
		if !ok {
			return chk.fail("list_display_links", "%q no está en list_display", name)
		}
		reg.columns[i].link = true
	}

	for _, name := range ma.ListEditable {
		i, ok := index[name]
		if !ok {
			return chk.fail("list_editable", "%q no está en list_display", name)
		}
		col := &reg.columns[i]
		if col.field == nil || col.field.IsAuto() {
			return chk.fail("list_editable", "%q no es un campo editable", name)
		}
		if col.link {
			return chk.fail("list_editable", "%q no puede ser a la vez editable y enlace", name)
		}
		if i == 0 {
			return chk.fail("list_editable", "%q es la primera columna y no puede ser editable", name)
		}
		col.editable = true
		reg.editable[name] = col.field
	}
	return nil
}

func (s *Site) resolveFilters(chk configChecker, reg *registered) error {
	seen := make(map[string]bool)
	for _, lf := range reg.ma.ListFilter {
		f, ok := reg.model.Field(lf.Field)
		if !ok {
			return chk.fail("list_filter", "%q no es un campo", lf.Field)
		}
		if seen[lf.Field] {
			return chk.fail("list_filter", "%q repetido", lf.Field)
		}
		seen[lf.Field] = true
		var related *entity.Model
		if f.IsRelation() {
			m, err := s.modelMeta(f.Related)
			if err != nil {
				return chk.fail("list_filter", "%q apunta a un modelo desconocido %q", lf.Field, f.Related)
			}
			related = m
		}
		flt, err := newFilter(lf, f, related)
		if err != nil {
			return chk.fail("list_filter", "%v", err)
		}
		reg.filters = append(reg.filters, flt)
	}
	return nil
}

func (s *Site) resolveForm(chk configChecker, reg *registered) error {
	ma, model := reg.ma, reg.model
	for _, name := range ma.ReadonlyFields {
		if _, ok := model.Field(name); !ok && reg.computed[name] == nil {
			return chk.fail("readonly_fields", "%q no es campo ni valor calculado", name)
		}
		reg.readonly[name] = true
	}

	layout := ma.Fields
	if len(layout) == 0 {
		for _, f := range model.Fields {
			if !f.IsAuto() {
				layout = append(layout, []string{f.Name})
			}
		}
		for _, name := range ma.ReadonlyFields {
			if reg.computed[name] != nil {
				layout = append(layout, []string{name})
			}
		}
	}
	seen := make(map[string]bool)
	for _, line := range layout {
		if len(line) == 0 {
			return chk.fail("fields", "línea vacía en el formulario")
		}
		for _, name := range line {
			if seen[name] {
				return chk.fail("fields", "%q aparece más de una vez", name)
			}
			seen[name] = true
			if reg.readonly[name] {
				continue
			}
			f, ok := model.Field(name)
			if !ok {
				return chk.fail("fields", "%q no es un campo; los valores calculados deben ir en readonly_fields", name)
			}
			if f.IsAuto() {
				return chk.fail("fields", "%q lo asigna el sistema; declárelo en readonly_fields", name)
			}
		}
	}
	reg.layout = layout

	for target, sources := range ma.PrepopulatedFields {
		f, ok := model.Field(target)
		if !ok || (f.Type != entity.FieldSlug && f.Type != entity.FieldString) {
			return chk.fail("prepopulated_fields", "%q debe ser un campo de texto", target)
		}
		if reg.readonly[target] {
			return chk.fail("prepopulated_fields", "%q es de solo lectura", target)
		}
		if len(sources) == 0 {
			return chk.fail("prepopulated_fields", "%q sin campos de origen", target)
		}
		for _, src := range sources {
			sf, ok := model.Field(src)
			if !ok || sf.IsRelation() {
				return chk.fail("prepopulated_fields", "origen %q inválido para %q", src, target)
			}
		}
	}

	check := func(option string, names []string, types ...entity.FieldType) error {
		for _, name := range names {
			f, ok := model.Field(name)
			if !ok || !oneOf(f.Type, types...) {
				return chk.fail(option, "%q no es un campo de relación compatible", name)
			}
		}
		return nil
	}
	if err := check("filter_horizontal", ma.FilterHorizontal, entity.FieldManyToMany); err != nil {
		return err
	}
	if err := check("filter_vertical", ma.FilterVertical, entity.FieldManyToMany); err != nil {
		return err
	}
	return check("raw_id_fields", ma.RawIDFields, entity.FieldForeignKey, entity.FieldManyToMany)
}

func (s *Site) resolveInlines(chk configChecker, reg *registered) error {
	seen := make(map[string]bool)
	for _, ia := range reg.ma.Inlines {
		child, err := s.modelMeta(ia.Model)
		if err != nil {
			return chk.fail("inlines", "modelo %q desconocido", ia.Model)
		}
		if seen[ia.Model] {
			return chk.fail("inlines", "%q repetido", ia.Model)
		}
		seen[ia.Model] = true
		fk, ok := child.Field(ia.FK)
		if !ok || fk.Type != entity.FieldForeignKey || fk.Related != reg.model.Name {
			return chk.fail("inlines", "%s.%s no es una clave foránea hacia %s", ia.Model, ia.FK, reg.model.Name)
		}
		if ia.Extra < DefaultExtra {
			return chk.fail("inlines", "extra negativo en %q", ia.Model)
		}
		in := inline{InlineAdmin: ia, model: child, fk: fk}
		if in.Extra == DefaultExtra {
			in.Extra = s.cfg.InlineExtra
		}
		if in.Label == "" {
			in.Label = child.LabelPlural
		}
		names := ia.Fields
		if len(names) == 0 {
			for _, f := range child.Fields {
				if !f.IsAuto() && f.Name != ia.FK {
					names = append(names, f.Name)
				}
			}
		}
		for _, name := range names {
			f, ok := child.Field(name)
			if !ok || f.IsAuto() || f.Name == ia.FK {
				return chk.fail("inlines", "%s.%s no es editable en línea", ia.Model, name)
			}
			in.fields = append(in.fields, f)
		}
		reg.inlines = append(reg.inlines, in)
	}
	return nil
}

func resolveActions(chk configChecker, reg *registered) error {
	if !reg.ma.DisableDeleteSelected {
		reg.actions = append(reg.actions, DeleteSelectedAction(reg.model))
	}
	for _, a := range reg.ma.Actions {
		if a.Name == "" || a.Run == nil {
			return chk.fail("actions", "acción sin nombre o sin función")
		}
		if _, dup := reg.action(a.Name); dup {
			return chk.fail("actions", "%q repetida", a.Name)
		}
		if a.Description == "" {
			a.Description = strings.ReplaceAll(a.Name, "_", " ")
		}
		reg.actions = append(reg.actions, a)
	}
	return nil
}

func oneOf(t entity.FieldType, types ...entity.FieldType) bool {
	for _, x := range types {
		if t == x {
			return true
		}
	}
	return false
}

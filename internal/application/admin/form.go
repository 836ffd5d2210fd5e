package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
	"github.com/jhoicas/catalog-admin/pkg/slug"
)

// Widgets de formulario.
const (
	WidgetText             = "text"
	WidgetTextarea         = "textarea"
	WidgetNumber           = "number"
	WidgetCheckbox         = "checkbox"
	WidgetDate             = "date"
	WidgetDateTime         = "datetime"
	WidgetImage            = "image"
	WidgetSelect           = "select"
	WidgetSelectMultiple   = "select_multiple"
	WidgetFilterHorizontal = "filter_horizontal"
	WidgetFilterVertical   = "filter_vertical"
	WidgetRawID            = "raw_id"
	WidgetReadonly         = "readonly"
)

// Form formulario de alta (id nil) o de edición de un registro existente.
func (s *Site) Form(ctx context.Context, model string, id *int64) (*dto.FormResponse, error) {
	reg, err := s.admin(model)
	if err != nil {
		return nil, err
	}
	store, err := s.store(s.stores, reg)
	if err != nil {
		return nil, err
	}
	rec := &entity.Record{Values: reg.model.Defaults()}
	out := &dto.FormResponse{Model: reg.model.Name, Title: "Añadir " + strings.ToLower(reg.model.Label)}
	if id != nil {
		if rec, err = store.Get(ctx, *id); err != nil {
			return nil, err
		}
		out.ID = &rec.ID
		out.Label = reg.model.String(rec)
		out.Title = "Modificar " + strings.ToLower(reg.model.Label)
	}

	for _, line := range reg.layout {
		fl := dto.FormLine{Fields: make([]dto.FormField, 0, len(line))}
		for _, name := range line {
			ff, err := s.formField(ctx, reg, rec, name)
			if err != nil {
				return nil, err
			}
			fl.Fields = append(fl.Fields, ff)
		}
		out.Lines = append(out.Lines, fl)
	}

	for _, in := range reg.inlines {
		block := dto.InlineFormResponse{
			Name: in.Model, Label: in.Label, FK: in.FK, Collapse: in.Collapse, Extra: in.Extra,
			Rows: []dto.InlineRow{},
		}
		if id != nil {
			childStore, err := s.stores.Store(in.model.Name)
			if err != nil {
				return nil, err
			}
			children, err := childStore.Find(ctx, repository.Query{
				Conditions: []repository.Condition{repository.In(in.FK, rec.ID)},
				Order:      []repository.OrderField{{Field: "id"}},
			})
			if err != nil {
				return nil, fmt.Errorf("inline %s: %w", in.Model, err)
			}
			for _, child := range children {
				row, err := s.inlineRow(ctx, in, child)
				if err != nil {
					return nil, err
				}
				cid := child.ID
				row.ID = &cid
				block.Rows = append(block.Rows, row)
			}
		}
		for i := 0; i < in.Extra; i++ {
			row, err := s.inlineRow(ctx, in, &entity.Record{Values: in.model.Defaults()})
			if err != nil {
				return nil, err
			}
			block.Rows = append(block.Rows, row)
		}
		out.Inlines = append(out.Inlines, block)
	}
	return out, nil
}

func (s *Site) inlineRow(ctx context.Context, in inline, rec *entity.Record) (dto.InlineRow, error) {
	row := dto.InlineRow{Fields: make([]dto.FormField, 0, len(in.fields))}
	for _, f := range in.fields {
		ff, err := s.fieldWidget(ctx, f, rec.Get(f.Name), "")
		if err != nil {
			return row, err
		}
		row.Fields = append(row.Fields, ff)
	}
	return row, nil
}

func (s *Site) formField(ctx context.Context, reg *registered, rec *entity.Record, name string) (dto.FormField, error) {
	if c, ok := reg.computed[name]; ok {
		v := c.Func(rec)
		return dto.FormField{
			Name: name, Label: c.Label, Type: "computed", Widget: WidgetReadonly,
			Value: v, Display: displayAny(v), Readonly: true, HTML: c.HTML,
		}, nil
	}
	f, _ := reg.model.Field(name)
	widget := ""
	switch {
	case reg.readonly[name]:
		widget = WidgetReadonly
	case contains(reg.ma.RawIDFields, name):
		widget = WidgetRawID
	case contains(reg.ma.FilterHorizontal, name):
		widget = WidgetFilterHorizontal
	case contains(reg.ma.FilterVertical, name):
		widget = WidgetFilterVertical
	}
	ff, err := s.fieldWidget(ctx, f, rec.Get(name), widget)
	if err != nil {
		return ff, err
	}
	ff.Readonly = widget == WidgetReadonly
	ff.PrepopulatedFrom = reg.ma.PrepopulatedFields[name]
	return ff, nil
}

// fieldWidget describe un campo editable; widget vacío = el que corresponde al tipo.
func (s *Site) fieldWidget(ctx context.Context, f *entity.Field, v any, widget string) (dto.FormField, error) {
	ff := dto.FormField{
		Name: f.Name, Label: f.Label, Type: f.Type.String(), Value: v,
		Display: displayValue(f, v), Required: f.Required, MaxLength: f.MaxLength,
	}
	if widget == "" {
		switch f.Type {
		case entity.FieldText:
			widget = WidgetTextarea
		case entity.FieldInt, entity.FieldAutoID:
			widget = WidgetNumber
		case entity.FieldBool:
			widget = WidgetCheckbox
		case entity.FieldDate:
			widget = WidgetDate
		case entity.FieldDateTime:
			widget = WidgetDateTime
		case entity.FieldImage:
			widget = WidgetImage
		case entity.FieldForeignKey:
			widget = WidgetSelect
		case entity.FieldManyToMany:
			widget = WidgetSelectMultiple
		default:
			widget = WidgetText
		}
	}
	ff.Widget = widget
	if f.IsRelation() && widget != WidgetRawID && widget != WidgetReadonly {
		choices, err := s.relatedChoices(ctx, f, v)
		if err != nil {
			return ff, err
		}
		ff.Choices = choices
	}
	return ff, nil
}

// relatedChoices opciones de un campo de relación, ordenadas por etiqueta.
func (s *Site) relatedChoices(ctx context.Context, f *entity.Field, v any) ([]dto.Choice, error) {
	st, err := s.stores.Store(f.Related)
	if err != nil {
		return nil, err
	}
	recs, err := st.Find(ctx, repository.Query{Order: []repository.OrderField{{Field: "id"}}})
	if err != nil {
		return nil, fmt.Errorf("opciones de %s: %w", f.Name, err)
	}
	selected := make(map[int64]bool)
	switch x := v.(type) {
	case int64:
		selected[x] = true
	case []int64:
		for _, id := range x {
			selected[id] = true
		}
	}
	out := make([]dto.Choice, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.Choice{Value: r.ID, Label: st.Model().String(r), Selected: selected[r.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label) })
	return out, nil
}

// formFields campos del formulario que acepta un envío (excluye solo lectura y calculados).
func (reg *registered) formFields() []*entity.Field {
	var out []*entity.Field
	for _, line := range reg.layout {
		for _, name := range line {
			if reg.readonly[name] {
				continue
			}
			if f, ok := reg.model.Field(name); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

type inlineOp struct {
	in     inline
	id     int64
	values entity.Values
	delete bool
}

// Save valida y guarda un formulario (alta si id es nil) junto con sus inlines, todo en una transacción.
// Un envío inválido devuelve *domain.ValidationError y no modifica nada.
func (s *Site) Save(ctx context.Context, model string, id *int64, sub dto.FormSubmission) (*dto.RecordResponse, error) {
	reg, err := s.admin(model)
	if err != nil {
		return nil, err
	}
	op := "update"
	if id == nil {
		op = "create"
	}

	var saved *entity.Record
	err = s.tx.Run(ctx, func(stores repository.Stores) error {
		store, err := s.store(stores, reg)
		if err != nil {
			return err
		}
		creating := id == nil
		var selfID int64
		if !creating {
			current, err := store.Get(ctx, *id)
			if err != nil {
				return err
			}
			selfID = current.ID
		}

		verr := domain.NewValidationError()
		vals := entity.Values{}
		fields := reg.formFields()
		for _, f := range fields {
			raw, present := sub.Values[f.Name]
			if !present {
				continue
			}
			v, err := f.Coerce(raw)
			if err != nil {
				verr.Add(f.Name, err.Error())
				continue
			}
			vals[f.Name] = v
		}
		if creating {
			prepopulate(reg, vals)
		}
		for _, f := range fields {
			v, present := vals[f.Name]
			if !present && !creating {
				continue
			}
			if !present {
				v = reg.model.Defaults()[f.Name]
			}
			if len(verr.Fields[f.Name]) > 0 {
				continue
			}
			if err := f.Validate(v); err != nil {
				verr.Add(f.Name, err.Error())
				continue
			}
			if err := s.checkConstraints(ctx, stores, reg.model, f, v, selfID); err != nil {
				verr.Add(f.Name, err.Error())
			}
		}

		ops := s.inlineOps(ctx, stores, reg, selfID, sub, verr)
		if verr.HasErrors() {
			return verr
		}

		now := s.now()
		touchAutoNow(reg.model, vals, now, creating)
		if creating {
			saved, err = store.Create(ctx, vals)
		} else {
			saved, err = store.Update(ctx, selfID, vals)
		}
		if err != nil {
			return duplicateAsValidation(err)
		}
		return s.applyInlines(ctx, stores, saved.ID, ops, now)
	})
	s.metrics.RecordSaved(model, op, err)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.log.Debug().Str("model", model).Str("op", op).Interface("errors", verr.Fields).Msg("formulario inválido")
		} else {
			s.log.Error().Err(err).Str("model", model).Str("op", op).Msg("error al guardar")
		}
		return nil, err
	}
	s.log.Info().Str("model", model).Str("op", op).Int64("id", saved.ID).Msg("registro guardado")
	return recordResponse(reg.model, saved), nil
}

// prepopulate deriva los campos vacíos (p. ej. slug) a partir de sus campos de origen.
func prepopulate(reg *registered, vals entity.Values) {
	for target, sources := range reg.ma.PrepopulatedFields {
		if s, _ := vals[target].(string); s != "" {
			continue
		}
		parts := make([]string, 0, len(sources))
		for _, src := range sources {
			if v, ok := vals[src].(string); ok && v != "" {
				parts = append(parts, v)
			}
		}
		f, _ := reg.model.Field(target)
		if derived := slug.Truncate(slug.Make(strings.Join(parts, " ")), f.MaxLength); derived != "" {
			vals[target] = derived
		}
	}
}

func (s *Site) inlineOps(ctx context.Context, stores repository.Stores, reg *registered, parentID int64, sub dto.FormSubmission, verr *domain.ValidationError) []inlineOp {
	var ops []inlineOp
	for _, in := range reg.inlines {
		childStore, err := stores.Store(in.model.Name)
		if err != nil {
			verr.Add(domain.NonFieldKey, err.Error())
			continue
		}
		for i, row := range sub.Inlines[in.Model] {
			prefix := fmt.Sprintf("%s-%d-", in.Model, i)
			if row.ID != 0 {
				child, err := childStore.Get(ctx, row.ID)
				if err != nil || parentID == 0 || child.Int(in.FK) != parentID {
					verr.Add(prefix+"id", "el registro no pertenece a este formulario")
					continue
				}
			}
			if row.Delete {
				if row.ID != 0 {
					ops = append(ops, inlineOp{in: in, id: row.ID, delete: true})
				}
				continue
			}
			vals := entity.Values{}
			rowErr := domain.NewValidationError()
			for _, f := range in.fields {
				raw, present := row.Values[f.Name]
				if !present {
					continue
				}
				v, err := f.Coerce(raw)
				if err != nil {
					rowErr.Add(f.Name, err.Error())
					continue
				}
				vals[f.Name] = v
			}
			if row.ID == 0 && !rowErr.HasErrors() && blank(vals) {
				continue
			}
			for _, f := range in.fields {
				v, present := vals[f.Name]
				if (!present && row.ID != 0) || len(rowErr.Fields[f.Name]) > 0 {
					continue
				}
				if !present {
					v = in.model.Defaults()[f.Name]
				}
				if err := f.Validate(v); err != nil {
					rowErr.Add(f.Name, err.Error())
					continue
				}
				if err := s.checkConstraints(ctx, stores, in.model, f, v, row.ID); err != nil {
					rowErr.Add(f.Name, err.Error())
				}
			}
			verr.Merge(prefix, rowErr)
			ops = append(ops, inlineOp{in: in, id: row.ID, values: vals})
		}
	}
	return ops
}

func (s *Site) applyInlines(ctx context.Context, stores repository.Stores, parentID int64, ops []inlineOp, now time.Time) error {
	for _, op := range ops {
		st, err := stores.Store(op.in.model.Name)
		if err != nil {
			return err
		}
		switch {
		case op.delete:
			err = st.Delete(ctx, op.id)
		case op.id != 0:
			touchAutoNow(op.in.model, op.values, now, false)
			_, err = st.Update(ctx, op.id, op.values)
		default:
			op.values[op.in.FK] = parentID
			touchAutoNow(op.in.model, op.values, now, true)
			_, err = st.Create(ctx, op.values)
		}
		if err != nil {
			return fmt.Errorf("inline %s: %w", op.in.Model, duplicateAsValidation(err))
		}
	}
	return nil
}

// checkConstraints unicidad y existencia de relaciones para un valor ya validado.
func (s *Site) checkConstraints(ctx context.Context, stores repository.Stores, m *entity.Model, f *entity.Field, v any, selfID int64) error {
	if v == nil {
		return nil
	}
	switch f.Type {
	case entity.FieldForeignKey:
		st, err := stores.Store(f.Related)
		if err != nil {
			return err
		}
		if _, err := st.Get(ctx, v.(int64)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("seleccione una opción válida; el registro %d no existe", v)
			}
			return err
		}
	case entity.FieldManyToMany:
		ids, _ := v.([]int64)
		if len(ids) == 0 {
			return nil
		}
		st, err := stores.Store(f.Related)
		if err != nil {
			return err
		}
		n, err := st.Count(ctx, repository.Query{Conditions: []repository.Condition{repository.IDsIn(ids)}})
		if err != nil {
			return err
		}
		if n != len(ids) {
			return fmt.Errorf("seleccione opciones válidas; alguno de los registros no existe")
		}
	}
	if !f.Unique || isBlank(v) {
		return nil
	}
	st, err := stores.Store(m.Name)
	if err != nil {
		return err
	}
	q := repository.Query{Conditions: []repository.Condition{repository.In(f.Name, v)}}
	if selfID != 0 {
		q = q.With(repository.NotIn("id", selfID))
	}
	n, err := st.Count(ctx, q)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("ya existe %s con este %s", strings.ToLower(m.Label), strings.ToLower(f.Label))
	}
	return nil
}

// Delete borra un registro; los dependientes se eliminan en cascada en el store.
func (s *Site) Delete(ctx context.Context, model string, id int64) error {
	reg, err := s.admin(model)
	if err != nil {
		return err
	}
	err = s.tx.Run(ctx, func(stores repository.Stores) error {
		store, err := s.store(stores, reg)
		if err != nil {
			return err
		}
		return store.Delete(ctx, id)
	})
	s.metrics.RecordSaved(model, "delete", err)
	if err != nil {
		return err
	}
	s.log.Info().Str("model", model).Int64("id", id).Msg("registro eliminado")
	return nil
}

// UploadImage guarda un archivo en el almacenamiento de media y asigna su ruta al campo de imagen.
func (s *Site) UploadImage(ctx context.Context, model string, id int64, field, filename string, r io.Reader) (*dto.RecordResponse, error) {
	reg, err := s.admin(model)
	if err != nil {
		return nil, err
	}
	f, ok := reg.model.Field(field)
	if !ok || f.Type != entity.FieldImage || reg.readonly[field] {
		verr := domain.NewValidationError()
		verr.Add(field, "el campo no admite archivos")
		return nil, verr
	}
	if s.media == nil {
		return nil, fmt.Errorf("subir %s: almacenamiento de media no configurado", field)
	}
	store, err := s.store(s.stores, reg)
	if err != nil {
		return nil, err
	}
	if _, err := store.Get(ctx, id); err != nil {
		return nil, err
	}
	path, err := s.media.Save(ctx, f.UploadTo, filename, r)
	if err != nil {
		return nil, fmt.Errorf("guardar archivo: %w", err)
	}
	if err := f.Validate(path); err != nil {
		verr := domain.NewValidationError()
		verr.Add(field, err.Error())
		return nil, verr
	}

	var saved *entity.Record
	err = s.tx.Run(ctx, func(stores repository.Stores) error {
		store, err := s.store(stores, reg)
		if err != nil {
			return err
		}
		vals := entity.Values{field: path}
		touchAutoNow(reg.model, vals, s.now(), false)
		saved, err = store.Update(ctx, id, vals)
		return err
	})
	s.metrics.RecordSaved(model, "upload", err)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("model", model).Int64("id", id).Str("path", path).Msg("imagen subida")
	return recordResponse(reg.model, saved), nil
}

func recordResponse(m *entity.Model, r *entity.Record) *dto.RecordResponse {
	vals := r.Values.Clone()
	vals["id"] = r.ID
	return &dto.RecordResponse{ID: r.ID, Label: m.String(r), Values: vals}
}

// duplicateAsValidation convierte una violación de unicidad detectada por el store en error de formulario.
func duplicateAsValidation(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		verr := domain.NewValidationError()
		verr.Add(domain.NonFieldKey, "ya existe un registro con esos valores")
		return verr
	}
	return err
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []int64:
		return len(x) == 0
	}
	return false
}

func blank(vals entity.Values) bool {
	for _, v := range vals {
		if _, isBool := v.(bool); isBool {
			continue
		}
		if !isBlank(v) {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

var (
	errDryRun      = errors.New("simulación: se descartan los cambios")
	errRowRejected = errors.New("fila rechazada")
)

// ExportFile archivo generado por una exportación.
type ExportFile struct {
	Data        []byte
	ContentType string
	Filename    string
	Rows        int
}

func (s *Site) resourceAdmin(model, format string) (*registered, Codec, error) {
	reg, err := s.admin(model)
	if err != nil {
		return nil, nil, err
	}
	if reg.resource == nil {
		return nil, nil, fmt.Errorf("%s no admite importación/exportación: %w", model, domain.ErrNotFound)
	}
	codec, ok := s.codecs[strings.ToLower(format)]
	if !ok {
		verr := domain.NewValidationError()
		verr.Add("format", fmt.Sprintf("formato %q no soportado (%s)", format, strings.Join(s.formats, ", ")))
		return nil, nil, verr
	}
	return reg, codec, nil
}

// Export serializa todos los registros del modelo ordenados por id.
func (s *Site) Export(ctx context.Context, model, format string) (*ExportFile, error) {
	reg, codec, err := s.resourceAdmin(model, format)
	if err != nil {
		return nil, err
	}
	store, err := s.store(s.stores, reg)
	if err != nil {
		return nil, err
	}
	recs, err := store.Find(ctx, repository.Query{Order: []repository.OrderField{{Field: "id"}}})
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", model, err)
	}
	ds := &Dataset{Title: reg.model.LabelPlural, Headers: make([]string, 0, len(reg.resource))}
	for _, f := range reg.resource {
		ds.Headers = append(ds.Headers, f.Name)
	}
	for _, r := range recs {
		row := make([]string, 0, len(reg.resource))
		for _, f := range reg.resource {
			row = append(row, f.Format(r.Get(f.Name)))
		}
		ds.Rows = append(ds.Rows, row)
	}
	data, err := codec.Encode(ds)
	if err != nil {
		return nil, fmt.Errorf("exportar %s como %s: %w", model, codec.Format(), err)
	}
	s.metrics.Exported(model, codec.Format(), len(recs))
	s.log.Info().Str("model", model).Str("format", codec.Format()).Int("rows", len(recs)).Msg("exportación generada")
	return &ExportFile{
		Data:        data,
		ContentType: codec.ContentType(),
		Filename:    fmt.Sprintf("%s-%s.%s", model, s.now().UTC().Format("2006-01-02"), codec.Format()),
		Rows:        len(recs),
	}, nil
}

// Import crea o actualiza registros a partir de un archivo. Cada fila es su propia transacción:
// una fila inválida se informa como (fila, campo, motivo) sin afectar a las demás.
// Con dryRun todo el lote corre en una transacción que se descarta; el informe es el mismo.
func (s *Site) Import(ctx context.Context, model, format string, r io.Reader, dryRun bool) (*dto.ImportReport, error) {
	reg, codec, err := s.resourceAdmin(model, format)
	if err != nil {
		return nil, err
	}
	ds, err := codec.Decode(r)
	if err != nil {
		verr := domain.NewValidationError()
		if errors.Is(err, ErrDecodeUnsupported) {
			verr.Add("format", err.Error())
		} else {
			verr.Add("file", fmt.Sprintf("no se pudo leer el archivo: %v", err))
		}
		return nil, verr
	}

	cols := reg.importColumns(ds.Headers)
	rep := &dto.ImportReport{BatchID: uuid.NewString(), Format: codec.Format(), DryRun: dryRun, Errors: []dto.RowError{}}
	log := s.log.With().Str("batch_id", rep.BatchID).Str("model", model).Logger()

	importOne := func(stores repository.Stores, n int, row []string) error {
		created, rowErrs, err := s.importRow(ctx, stores, reg, cols, n, row)
		switch {
		case err != nil:
			rep.Failed++
			rep.Errors = append(rep.Errors, dto.RowError{Row: n, Reason: err.Error()})
			return err
		case len(rowErrs) > 0:
			rep.Failed++
			rep.Errors = append(rep.Errors, rowErrs...)
			return errRowRejected
		case created:
			rep.Created++
		default:
			rep.Updated++
		}
		return nil
	}

	if dryRun {
		err = s.tx.Run(ctx, func(stores repository.Stores) error {
			for i, row := range ds.Rows {
				if blankRow(row) {
					continue
				}
				rep.TotalRows++
				_ = importOne(stores, i+1, row)
			}
			return errDryRun
		})
		if !errors.Is(err, errDryRun) {
			return nil, fmt.Errorf("importar %s: %w", model, err)
		}
	} else {
		for i, row := range ds.Rows {
			if blankRow(row) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rep.TotalRows++
			n := i + 1
			err := s.tx.Run(ctx, func(stores repository.Stores) error { return importOne(stores, n, row) })
			if err != nil && !errors.Is(err, errRowRejected) {
				log.Warn().Err(err).Int("row", n).Msg("fila no importada")
			}
		}
	}

	sort.SliceStable(rep.Errors, func(i, j int) bool { return rep.Errors[i].Row < rep.Errors[j].Row })
	s.metrics.ImportFinished(model, rep.Created, rep.Updated, rep.Failed, dryRun)
	log.Info().Str("format", rep.Format).Bool("dry_run", dryRun).Int("rows", rep.TotalRows).
		Int("created", rep.Created).Int("updated", rep.Updated).Int("failed", rep.Failed).Msg("importación terminada")
	return rep, nil
}

// importColumns asocia cada columna del archivo a un campo del recurso (por nombre o etiqueta).
// Columnas desconocidas y timestamps automáticos se ignoran.
func (reg *registered) importColumns(headers []string) map[int]*entity.Field {
	cols := make(map[int]*entity.Field)
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, f := range reg.resource {
			if f.AutoNow || f.AutoNowAdd {
				continue
			}
			if h == f.Name || h == strings.ToLower(f.Label) {
				cols[i] = f
				break
			}
		}
	}
	return cols
}

func (s *Site) importRow(ctx context.Context, stores repository.Stores, reg *registered, cols map[int]*entity.Field, n int, row []string) (bool, []dto.RowError, error) {
	var rowErrs []dto.RowError
	fail := func(field, reason string) {
		rowErrs = append(rowErrs, dto.RowError{Row: n, Field: field, Reason: reason})
	}

	idxs := make([]int, 0, len(cols))
	for i := range cols {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	var id int64
	vals := entity.Values{}
	for _, i := range idxs {
		f := cols[i]
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		v, err := f.Parse(cell)
		if err != nil {
			fail(f.Name, err.Error())
			continue
		}
		if f.Type == entity.FieldAutoID {
			if v != nil {
				id = v.(int64)
			}
			continue
		}
		vals[f.Name] = v
	}
	if len(rowErrs) > 0 {
		return false, rowErrs, nil
	}

	store, err := s.store(stores, reg)
	if err != nil {
		return false, nil, err
	}
	creating := true
	if id > 0 {
		if _, err := store.Get(ctx, id); err == nil {
			creating = false
		} else if !errors.Is(err, domain.ErrNotFound) {
			return false, nil, err
		}
	}

	for name, v := range vals {
		if v != nil {
			continue
		}
		f, _ := reg.model.Field(name)
		if !creating && (f.Type == entity.FieldString || f.Type == entity.FieldText || f.Type == entity.FieldSlug) {
			vals[name] = ""
			continue
		}
		delete(vals, name)
	}
	if creating {
		prepopulate(reg, vals)
	}

	selfID := int64(0)
	if !creating {
		selfID = id
	}
	defaults := reg.model.Defaults()
	for _, i := range idxs {
		f := cols[i]
		if f.IsAuto() {
			continue
		}
		v, present := vals[f.Name]
		if !present {
			if !creating {
				continue
			}
			v = defaults[f.Name]
		}
		if err := f.Validate(v); err != nil {
			fail(f.Name, err.Error())
			continue
		}
		if err := s.checkConstraints(ctx, stores, reg.model, f, v, selfID); err != nil {
			fail(f.Name, err.Error())
		}
	}
	// Campos obligatorios ausentes del archivo.
	if creating {
		for _, f := range reg.model.Fields {
			if _, mapped := vals[f.Name]; mapped || f.IsAuto() {
				continue
			}
			if err := f.Validate(defaults[f.Name]); err != nil && !hasField(cols, f.Name) {
				fail(f.Name, err.Error())
			}
		}
	}
	if len(rowErrs) > 0 {
		return false, rowErrs, nil
	}

	touchAutoNow(reg.model, vals, s.now(), creating)
	if creating {
		if id > 0 {
			vals["id"] = id
		}
		_, err = store.Create(ctx, vals)
	} else {
		_, err = store.Update(ctx, id, vals)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			fail("", "registro duplicado")
			return false, rowErrs, nil
		case errors.Is(err, domain.ErrInvalidInput):
			fail("", err.Error())
			return false, rowErrs, nil
		}
		return false, nil, err
	}
	return creating, nil, nil
}

func hasField(cols map[int]*entity.Field, name string) bool {
	for _, f := range cols {
		if f.Name == name {
			return true
		}
	}
	return false
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

// DeleteSelectedName nombre de la acción incorporada de borrado.
const DeleteSelectedName = "delete_selected"

// RunAction ejecuta una acción sobre los ids seleccionados en una sola transacción.
// Si la acción falla no se aplica ningún cambio y el resultado informa updated=0 junto con el error.
func (s *Site) RunAction(ctx context.Context, model, name string, ids []int64) (*dto.ActionResultResponse, error) {
	reg, err := s.admin(model)
	if err != nil {
		return nil, err
	}
	action, ok := reg.action(name)
	if !ok {
		verr := domain.NewValidationError()
		verr.Add("action", fmt.Sprintf("acción %q desconocida", name))
		return nil, verr
	}
	ids = entity.SortIDs(ids)
	res := &dto.ActionResultResponse{Action: name, Selected: len(ids)}
	if len(ids) == 0 {
		res.Message = domain.ErrEmptySelection.Error()
		return res, domain.ErrEmptySelection
	}

	var outcome ActionOutcome
	err = s.tx.Run(ctx, func(stores repository.Stores) error {
		store, err := s.store(stores, reg)
		if err != nil {
			return err
		}
		outcome, err = action.Run(ctx, ActionContext{Store: store, Now: s.now}, ids)
		return err
	})
	s.metrics.ActionExecuted(model, name, outcome.Matched, err)
	if err != nil {
		s.log.Error().Err(err).Str("model", model).Str("action", name).Int("selected", len(ids)).Msg("acción abortada")
		res.Message = fmt.Sprintf("la acción %q falló y no se modificó ningún elemento: %v", action.Description, err)
		return res, err
	}
	res.Matched = outcome.Matched
	res.Changed = outcome.Changed
	res.Updated = outcome.Matched
	res.Message = outcome.Message
	if res.Message == "" {
		res.Message = fmt.Sprintf("%d elementos procesados por %q", outcome.Matched, action.Description)
	}
	s.log.Info().Str("model", model).Str("action", name).Int("selected", len(ids)).
		Int("matched", outcome.Matched).Int("changed", outcome.Changed).Msg("acción ejecutada")
	return res, nil
}

// SetFieldAction acción idempotente que asigna value al campo en los registros seleccionados.
// Changed cuenta solo los registros cuyo valor cambió; Matched todos los seleccionados que existen.
func SetFieldAction(name, description, field string, value any, message func(matched int) string) Action {
	return Action{
		Name:        name,
		Description: description,
		Run: func(ctx context.Context, ac ActionContext, ids []int64) (ActionOutcome, error) {
			m := ac.Store.Model()
			f, ok := m.Field(field)
			if !ok {
				return ActionOutcome{}, fmt.Errorf("%s: campo %q inexistente en %s", name, field, m.Name)
			}
			v, err := f.Coerce(value)
			if err != nil {
				return ActionOutcome{}, fmt.Errorf("%s: %w", name, err)
			}
			changed, err := ac.Store.Count(ctx, repository.Query{Conditions: []repository.Condition{
				repository.IDsIn(ids), repository.NotIn(field, v),
			}})
			if err != nil {
				return ActionOutcome{}, err
			}
			matched, err := ac.Store.UpdateMany(ctx, ids, entity.Values{field: v})
			if err != nil {
				return ActionOutcome{}, err
			}
			out := ActionOutcome{Matched: matched, Changed: changed}
			if message != nil {
				out.Message = message(matched)
			}
			return out, nil
		},
	}
}

// DeleteSelectedAction borra los registros seleccionados que existan.
func DeleteSelectedAction(m *entity.Model) Action {
	return Action{
		Name:        DeleteSelectedName,
		Description: "Eliminar " + m.LabelPlural + " seleccionados",
		Run: func(ctx context.Context, ac ActionContext, ids []int64) (ActionOutcome, error) {
			deleted := 0
			for _, id := range ids {
				err := ac.Store.Delete(ctx, id)
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				if err != nil {
					return ActionOutcome{}, err
				}
				deleted++
			}
			return ActionOutcome{
				Matched: deleted,
				Changed: deleted,
				Message: fmt.Sprintf("%d %s eliminados correctamente", deleted, m.LabelPlural),
			}, nil
		},
	}
}

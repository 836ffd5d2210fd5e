package repository

import (
	"context"
	"time"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// RecordStore define el puerto de persistencia genérico para un modelo administrable (DIP).
// Get, Update y Delete devuelven domain.ErrNotFound si el registro no existe;
// Create y Update devuelven domain.ErrDuplicate ante una violación de unicidad.
type RecordStore interface {
	Model() *entity.Model
	Find(ctx context.Context, q Query) ([]*entity.Record, error)
	Count(ctx context.Context, q Query) (int, error)
	Get(ctx context.Context, id int64) (*entity.Record, error)
	// Create inserta; si values trae "id" se respeta.
	Create(ctx context.Context, values entity.Values) (*entity.Record, error)
	// Update modifica solo los campos presentes en values. Un M2M presente reemplaza el conjunto completo.
	Update(ctx context.Context, id int64, values entity.Values) (*entity.Record, error)
	// UpdateMany aplica values a todos los ids existentes y devuelve cuántos coincidieron.
	UpdateMany(ctx context.Context, ids []int64, values entity.Values) (int, error)
	Delete(ctx context.Context, id int64) error
	// Distinct valores distintos del campo entre los registros que cumplen q (en M2M: ids relacionados).
	Distinct(ctx context.Context, field string, q Query) ([]any, error)
	// DistinctDates fechas distintas del campo truncadas a la granularidad, ascendentes.
	DistinctDates(ctx context.Context, field string, trunc DateTrunc, q Query) ([]time.Time, error)
}

// Stores da acceso a los stores de cada modelo (ligados a un pool o a una transacción).
type Stores interface {
	Store(model string) (RecordStore, error)
}

// TxRunner ejecuta una función dentro de una transacción, pasando stores atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(stores Stores) error) error
}

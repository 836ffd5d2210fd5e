// Package memory implementa el Record Store en memoria: modo de desarrollo (STORE_DRIVER=memory)
// y base de las pruebas del motor de administración. Emula las restricciones que en PostgreSQL
// aplica el esquema: unicidad, integridad referencial y borrado en cascada.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

var (
	_ repository.Stores   = (*Database)(nil)
	_ repository.TxRunner = (*Database)(nil)
)

type table struct {
	seq  int64
	rows map[int64]entity.Values
}

type state struct {
	tables map[string]*table
}

func (s *state) clone() *state {
	out := &state{tables: make(map[string]*table, len(s.tables))}
	for name, t := range s.tables {
		rows := make(map[int64]entity.Values, len(t.rows))
		for id, v := range t.rows {
			rows[id] = v.Clone()
		}
		out.tables[name] = &table{seq: t.seq, rows: rows}
	}
	return out
}

// Database base de datos en memoria para un conjunto de modelos.
type Database struct {
	mu     sync.Mutex
	st     *state
	models map[string]*entity.Model
	order  []*entity.Model
}

// NewDatabase crea una base vacía con una tabla por modelo.
func NewDatabase(models ...*entity.Model) *Database {
	db := &Database{
		st:     &state{tables: make(map[string]*table, len(models))},
		models: make(map[string]*entity.Model, len(models)),
		order:  models,
	}
	for _, m := range models {
		db.models[m.Name] = m
		db.st.tables[m.Name] = &table{rows: make(map[int64]entity.Values)}
	}
	return db
}

// Store devuelve el store (fuera de transacción) del modelo.
func (db *Database) Store(model string) (repository.RecordStore, error) {
	return db.store(model, nil)
}

func (db *Database) store(model string, tx *state) (repository.RecordStore, error) {
	m, ok := db.models[model]
	if !ok {
		return nil, fmt.Errorf("memory: modelo desconocido %q", model)
	}
	return &RecordStore{db: db, model: m, tx: tx}, nil
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn termina sin error.
// Las transacciones se serializan.
func (db *Database) Run(ctx context.Context, fn func(stores repository.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	tx := db.st.clone()
	if err := fn(&txStores{db: db, st: tx}); err != nil {
		return err
	}
	db.st = tx
	return nil
}

type txStores struct {
	db *Database
	st *state
}

func (t *txStores) Store(model string) (repository.RecordStore, error) {
	return t.db.store(model, t.st)
}

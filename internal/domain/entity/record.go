package entity

import (
	"sort"
	"strconv"
	"time"
)

// Values valores de un registro indexados por nombre de campo.
// Tipos: int64 (id, enteros, FK), string, bool, time.Time, []int64 (M2M).
type Values map[string]any

// Clone copia superficial (los slices M2M se copian).
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if ids, ok := val.([]int64); ok {
			val = append([]int64(nil), ids...)
		}
		out[k] = val
	}
	return out
}

// Record registro genérico leído del store.
type Record struct {
	ID     int64
	Values Values
}

// String valor string del campo (vacío si falta).
func (r *Record) String(field string) string {
	s, _ := r.Values[field].(string)
	return s
}

// Int valor entero del campo.
func (r *Record) Int(field string) int64 {
	if field == "id" {
		return r.ID
	}
	n, _ := r.Values[field].(int64)
	return n
}

// Bool valor booleano del campo.
func (r *Record) Bool(field string) bool {
	b, _ := r.Values[field].(bool)
	return b
}

// Time valor fecha/hora del campo.
func (r *Record) Time(field string) time.Time {
	t, _ := r.Values[field].(time.Time)
	return t
}

// IDs valores de una relación M2M.
func (r *Record) IDs(field string) []int64 {
	ids, _ := r.Values[field].([]int64)
	return ids
}

// Get valor crudo; "id" se resuelve desde r.ID.
func (r *Record) Get(field string) any {
	if field == "id" {
		return r.ID
	}
	return r.Values[field]
}

// SortIDs ordena y elimina duplicados.
func SortIDs(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, id := range out {
		if i > 0 && id == out[n-1] {
			continue
		}
		out[n] = id
		n++
	}
	return out[:n]
}

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }

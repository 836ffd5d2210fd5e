package admin

import (
	"context"
	"errors"
	"io"
)

// Dataset tabla intermedia entre los registros y un formato de intercambio.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// ErrDecodeUnsupported lo devuelve un Codec que solo exporta (p. ej. PDF).
var ErrDecodeUnsupported = errors.New("el formato no admite importación")

// Codec puerto de serialización tabular (CSV, JSON, YAML, XML, PDF).
type Codec interface {
	Format() string
	ContentType() string
	Encode(ds *Dataset) ([]byte, error)
	Decode(r io.Reader) (*Dataset, error)
}

// MediaStorage puerto de almacenamiento de archivos subidos. Devuelve la ruta relativa guardada.
type MediaStorage interface {
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)
}

// Recorder puerto de métricas de las operaciones del panel.
type Recorder interface {
	ActionExecuted(model, action string, matched int, err error)
	RecordSaved(model, op string, err error)
	ImportFinished(model string, created, updated, failed int, dryRun bool)
	Exported(model, format string, rows int)
}

type nopRecorder struct{}

func (nopRecorder) ActionExecuted(string, string, int, error) {}
func (nopRecorder) RecordSaved(string, string, error) {}
func (nopRecorder) ImportFinished(string, int, int, int, bool) {}
func (nopRecorder) Exported(string, string, int) {}

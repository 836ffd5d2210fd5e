// Package metrics expone en formato Prometheus las operaciones del panel de administración.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "catalog_admin"

// Recorder implementa admin.Recorder con contadores de Prometheus.
type Recorder struct {
	actions     *prometheus.CounterVec
	actionRows  *prometheus.CounterVec
	saves       *prometheus.CounterVec
	importRows  *prometheus.CounterVec
	exportRows  *prometheus.CounterVec
	exportFiles *prometheus.CounterVec
}

// NewRecorder crea los contadores y los registra en reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "actions_total",
			Help: "Acciones masivas ejecutadas por modelo, acción y resultado.",
		}, []string{"model", "action", "result"}),
		actionRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "action_rows_total",
			Help: "Registros alcanzados por acciones masivas confirmadas.",
		}, []string{"model", "action"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "saves_total",
			Help: "Guardados (create, update, delete, list_edit, upload) por resultado.",
		}, []string{"model", "op", "result"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "import_rows_total",
			Help: "Filas importadas por resultado (created, updated, failed).",
		}, []string{"model", "outcome", "dry_run"}),
		exportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "export_rows_total",
			Help: "Filas exportadas por formato.",
		}, []string{"model", "format"}),
		exportFiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "exports_total",
			Help: "Archivos exportados por formato.",
		}, []string{"model", "format"}),
	}
	for _, c := range []prometheus.Collector{r.actions, r.actionRows, r.saves, r.importRows, r.exportRows, r.exportFiles} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (r *Recorder) ActionExecuted(model, action string, matched int, err error) {
	r.actions.WithLabelValues(model, action, result(err)).Inc()
	if err == nil {
		r.actionRows.WithLabelValues(model, action).Add(float64(matched))
	}
}

func (r *Recorder) RecordSaved(model, op string, err error) {
	r.saves.WithLabelValues(model, op, result(err)).Inc()
}

func (r *Recorder) ImportFinished(model string, created, updated, failed int, dryRun bool) {
	dry := strconv.FormatBool(dryRun)
	r.importRows.WithLabelValues(model, "created", dry).Add(float64(created))
	r.importRows.WithLabelValues(model, "updated", dry).Add(float64(updated))
	r.importRows.WithLabelValues(model, "failed", dry).Add(float64(failed))
}

func (r *Recorder) Exported(model, format string, rows int) {
	r.exportFiles.WithLabelValues(model, format).Inc()
	r.exportRows.WithLabelValues(model, format).Add(float64(rows))
}

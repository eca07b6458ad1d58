// Package metrics counts what the foldprep tools produce and exports the
// counters in the node-exporter textfile format. No listener is opened.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"foldprep/internal/errs"
)

const namespace = "foldprep"

// Recorder owns a private registry. A nil *Recorder records nothing.
type Recorder struct {
	reg        *prometheus.Registry
	documents  *prometheus.CounterVec
	categories *prometheus.CounterVec
	rows       prometheus.Counter
	entities   *prometheus.CounterVec
	chainIDs   prometheus.Counter
	errors     *prometheus.CounterVec
}

// New registers every foldprep counter on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_written_total",
			Help:      "Documents written, by output format",
		}, []string{"format"}),
		categories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "categories_written_total",
			Help:      "mmCIF category blocks written, by layout",
		}, []string{"layout"}), // "loop" / "single" / "derived"
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "mmCIF loop rows written",
		}),
		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_total",
			Help:      "Entity blocks assembled, by class",
		}, []string{"class"}),
		chainIDs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chain_ids_allocated_total",
			Help:      "Chain identifiers allocated",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed documents, by error code",
		}, []string{"code"}),
	}
	r.reg.MustRegister(r.documents, r.categories, r.rows, r.entities, r.chainIDs, r.errors)
	return r
}

// Registry exposes the private registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// Document counts one written document of format ("mmcif", "af3-json").
func (r *Recorder) Document(format string) {
	if r == nil {
		return
	}
	r.documents.WithLabelValues(format).Inc()
}

// Categories counts n blocks of layout.
func (r *Recorder) Categories(layout string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.categories.WithLabelValues(layout).Add(float64(n))
}

// Rows counts n loop rows.
func (r *Recorder) Rows(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.rows.Add(float64(n))
}

// Entities counts n entity blocks of class.
func (r *Recorder) Entities(class string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.entities.WithLabelValues(class).Add(float64(n))
}

// ChainIDs counts n allocated identifiers.
func (r *Recorder) ChainIDs(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.chainIDs.Add(float64(n))
}

// Error counts a failure under its errs code, "io" for output errors and
// "other" when the error carries no code.
func (r *Recorder) Error(err error) {
	if r == nil || err == nil {
		return
	}
	code := string(errs.CodeOf(err))
	if code == "" {
		code = "other"
	}
	r.errors.WithLabelValues(code).Inc()
}

// IOError counts an output failure.
func (r *Recorder) IOError() {
	if r == nil {
		return
	}
	r.errors.WithLabelValues("io").Inc()
}

// WriteTextfile writes the registry to path for the textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}

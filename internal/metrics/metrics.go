// Package metrics records generation runs as Prometheus metrics. Each
// Recorder owns its registry so watch mode can serve it and one-shot runs
// can export it as a textfile.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "psmgen"

// Recorder collects generation metrics.
type Recorder struct {
	registry *prometheus.Registry

	Runs          *prometheus.CounterVec
	Components    prometheus.Counter
	Tasks         *prometheus.CounterVec
	Duration      prometheus.Histogram
	LastSuccess   prometheus.Gauge
	LastComponent prometheus.Gauge
}

// NewRecorder creates a Recorder with every metric registered. Go runtime
// collectors are added when withRuntime is set.
func NewRecorder(withRuntime bool) *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Generation runs by result.",
		},
		[]string{"result"},
	)
	r.Components = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "components_generated_total",
			Help:      "Components whose firmware was generated.",
		},
	)
	r.Tasks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_generated_total",
			Help:      "Concurrent tasks emitted, by kind.",
		},
		[]string{"kind"},
	)
	r.Duration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of generation runs in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)
	r.LastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		},
	)
	r.LastComponent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_components",
			Help:      "Components generated by the last successful run.",
		},
	)

	r.registry.MustRegister(r.Runs, r.Components, r.Tasks, r.Duration, r.LastSuccess, r.LastComponent)
	if withRuntime {
		r.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return r
}

// ObserveComponent counts one generated component and its tasks.
func (r *Recorder) ObserveComponent(threads, commTasks, listenerTasks int) {
	r.Components.Inc()
	r.Tasks.WithLabelValues("thread").Add(float64(threads))
	r.Tasks.WithLabelValues("comm_task").Add(float64(commTasks))
	r.Tasks.WithLabelValues("listener_task").Add(float64(listenerTasks))
}

// ObserveRun records a finished run. components is only used on success.
func (r *Recorder) ObserveRun(started time.Time, components int, err error) {
	r.Duration.Observe(time.Since(started).Seconds())
	if err != nil {
		r.Runs.WithLabelValues("failure").Inc()
		return
	}
	r.Runs.WithLabelValues("success").Inc()
	r.LastSuccess.SetToCurrentTime()
	r.LastComponent.Set(float64(components))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// WriteTextfile writes the current values for a node-exporter textfile
// collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	registry          *prom.Registry
	operationDuration *prom.HistogramVec
	operationResults  *prom.CounterVec
	strategies        *prom.CounterVec
	compilerDuration  *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.operationDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "typesbuilder",
			Name:      "operation_duration_seconds",
			Help:      "Duration of plugin entry points",
			Buckets:   prom.DefBuckets,
		}, []string{"plugin", "operation"})
		pr.operationResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "typesbuilder",
			Name:      "operation_results_total",
			Help:      "Plugin entry point outcomes",
		}, []string{"plugin", "operation", "result"})
		pr.strategies = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "typesbuilder",
			Name:      "declaration_strategy_total",
			Help:      "Declaration files produced by strategy",
		}, []string{"strategy"})
		pr.compilerDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "typesbuilder",
			Name:      "compiler_duration_seconds",
			Help:      "Wall time of external compiler invocations",
			Buckets:   prom.ExponentialBuckets(0.25, 2, 8),
		}, []string{"result"})
		reg.MustRegister(pr.operationDuration, pr.operationResults, pr.strategies, pr.compilerDuration)
	})
	return pr
}

// Registry returns the registry the recorder's collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveOperationDuration(plugin, operation string, d time.Duration) {
	if p == nil || p.operationDuration == nil {
		return
	}
	p.operationDuration.WithLabelValues(plugin, operation).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncOperationResult(plugin, operation string, result ResultLabel) {
	if p == nil || p.operationResults == nil {
		return
	}
	p.operationResults.WithLabelValues(plugin, operation, string(result)).Inc()
}

func (p *PrometheusRecorder) IncStrategy(strategy string) {
	if p == nil || p.strategies == nil {
		return
	}
	p.strategies.WithLabelValues(strategy).Inc()
}

func (p *PrometheusRecorder) ObserveCompilerDuration(d time.Duration, success bool) {
	if p == nil || p.compilerDuration == nil {
		return
	}
	res := string(ResultFailed)
	if success {
		res = string(ResultSuccess)
	}
	p.compilerDuration.WithLabelValues(res).Observe(d.Seconds())
}

// WriteTextfile writes the recorder's registry to path in the Prometheus
// text exposition format, replacing the file atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

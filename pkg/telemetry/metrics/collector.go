package metrics

import (
	"sync"
	"time"

	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/featuremodel/lint"
	"mercator-hq/configurator/pkg/validation"

	"github.com/prometheus/client_golang/prometheus"
)

// OtherLabel replaces label values beyond the cardinality limit.
const OtherLabel = "other"

// DefaultMaxCardinality bounds the number of distinct model label values.
const DefaultMaxCardinality = 100

// Collector owns the Prometheus metrics of the configurator and registers
// them on a single registry.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	validationMetrics *ValidationMetrics
	candidateMetrics  *CandidateMetrics
	modelMetrics      *ModelMetrics
	historyMetrics    *HistoryMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector with the given configuration. If
// registry is nil a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "configurator",
//		Subsystem: "engine",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.ValidationDurationBuckets) == 0 {
		// Validation of a hand-built configuration runs in microseconds.
		cfg.ValidationDurationBuckets = prometheus.ExponentialBuckets(0.00001, 4, 8)
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(DefaultMaxCardinality),
	}

	c.validationMetrics = NewValidationMetrics(cfg, registry)
	c.candidateMetrics = NewCandidateMetrics(cfg, registry)
	c.modelMetrics = NewModelMetrics(cfg, registry)
	c.historyMetrics = NewHistoryMetrics(cfg, registry)

	return c
}

// RecordValidation records a completed validation run.
func (c *Collector) RecordValidation(model string, report *validation.Report, duration time.Duration) {
	if !c.config.Enabled || report == nil {
		return
	}

	c.validationMetrics.RecordRun(c.modelLabel(model), report, duration)
}

// ObserveCandidates records the size of a candidate query result. It lets
// the collector serve as an interpreter observer.
func (c *Collector) ObserveCandidates(direction string, count int) {
	if !c.config.Enabled {
		return
	}

	c.candidateMetrics.Observe(direction, count)
}

// RecordModelLoad records a model load attempt. features is ignored when
// err is non-nil.
func (c *Collector) RecordModelLoad(model string, features int, err error) {
	if !c.config.Enabled {
		return
	}

	c.modelMetrics.RecordLoad(c.modelLabel(model), features, err)
}

// RecordLint records the findings of a lint pass.
func (c *Collector) RecordLint(model string, issues *lint.IssueList) {
	if !c.config.Enabled || issues == nil {
		return
	}

	c.modelMetrics.RecordLint(c.modelLabel(model), issues)
}

// RecordHistoryStore records a history write.
func (c *Collector) RecordHistoryStore(backend string, err error) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordStore(backend, err)
}

// RecordHistoryPrune records the number of records removed by retention.
func (c *Collector) RecordHistoryPrune(removed int64) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordPrune(removed)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) modelLabel(model string) string {
	if model == "" {
		model = "unnamed"
	}
	if !c.cardinalityLimiter.Allow(model) {
		return OtherLabel
	}
	return model
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label value may be used. Known values are always
// allowed; new values are allowed until the limit is reached.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}

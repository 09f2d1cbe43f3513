package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/go-media-cms/pkg/resilience"
	promclient "github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exports CMS operation metrics to Prometheus.
type PrometheusObserver struct {
	operationDuration *promclient.HistogramVec
	operationErrors   *promclient.CounterVec
	uploadBytes       *promclient.CounterVec
	breakerState      *promclient.GaugeVec
}

var _ port.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver registers operation, upload and breaker metrics.
func NewPrometheusObserver(namespace string, reg promclient.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "cms"
	}
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}

	observer := &PrometheusObserver{
		operationDuration: promclient.NewHistogramVec(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency for media and video operations.",
			Buckets:   promclient.DefBuckets,
		}, []string{"operation"}),
		operationErrors: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Count of failed operations by error kind.",
		}, []string{"operation", "kind"}),
		uploadBytes: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_bytes_total",
			Help:      "Cumulative size of stored uploads.",
		}, []string{"category"}),
		breakerState: promclient.NewGaugeVec(promclient.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_open",
			Help:      "1 while the breaker in front of a backend is not closed.",
		}, []string{"backend"}),
	}

	var err error
	if observer.operationDuration, err = register(reg, observer.operationDuration); err != nil {
		return nil, fmt.Errorf("register operation histogram: %w", err)
	}
	if observer.operationErrors, err = register(reg, observer.operationErrors); err != nil {
		return nil, fmt.Errorf("register operation error counter: %w", err)
	}
	if observer.uploadBytes, err = register(reg, observer.uploadBytes); err != nil {
		return nil, fmt.Errorf("register uploaded bytes counter: %w", err)
	}
	if observer.breakerState, err = register(reg, observer.breakerState); err != nil {
		return nil, fmt.Errorf("register breaker gauge: %w", err)
	}
	return observer, nil
}

// register returns the already registered collector of the same type when present.
func register[C promclient.Collector](reg promclient.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are promclient.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (o *PrometheusObserver) ObserveOperation(operation string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		o.operationErrors.WithLabelValues(operation, errorKind(err)).Inc()
	}
}

func (o *PrometheusObserver) ObserveUploadBytes(category string, size int64) {
	if o == nil || size <= 0 {
		return
	}
	o.uploadBytes.WithLabelValues(category).Add(float64(size))
}

// ObserveBreaker matches resilience.CircuitBreakerConfig.OnStateChange.
func (o *PrometheusObserver) ObserveBreaker(name string, _, to resilience.CircuitBreakerState) {
	if o == nil {
		return
	}
	value := 0.0
	if to != resilience.CircuitClosed {
		value = 1
	}
	o.breakerState.WithLabelValues(name).Set(value)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrStorage):
		return "storage"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}

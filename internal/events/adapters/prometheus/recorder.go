// Package prometheus holds the instrument handles the event use case records into.
// Every instrument is built once and registered on an injected registry.
package prometheus

import (
	"time"

	"ivr-event-metrics/internal/events/core/domain"
	"ivr-event-metrics/internal/events/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	startLabels       = []string{"consumer", "flow", "brand", "node"}
	endLabels         = []string{"consumer", "flow", "brand", "node", "close_status", "derived_to"}
	serviceCallLabels = []string{"consumer", "flow", "brand", "node", "service", "result_code", "timeout"}

	// Interaction lengths run from seconds to tens of minutes.
	interactionBuckets = []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200, 1800, 3600}
	serviceCallBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}
)

type Recorder struct {
	flowStarts       *prometheus.CounterVec
	flowEnds         *prometheus.CounterVec
	flowDuration     *prometheus.HistogramVec
	serviceCalls     *prometheus.CounterVec
	serviceCallTimes *prometheus.HistogramVec

	requests        *prometheus.CounterVec
	processing      *prometheus.HistogramVec
	archiveFailures *prometheus.CounterVec
}

var _ ports.MetricsRecorderPort = (*Recorder)(nil)

// NewRecorder builds the instruments and registers them on reg.
func NewRecorder(reg prometheus.Registerer, namespace string) (*Recorder, error) {
	r := &Recorder{
		flowStarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flow_start_total",
			Help:      "Flow start events.",
		}, startLabels),
		flowEnds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flow_end_total",
			Help:      "Flow end events.",
		}, endLabels),
		flowDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flow_duration_seconds",
			Help:      "Interaction duration between interaction-start-time and interaction-end-time.",
			Buckets:   interactionBuckets,
		}, endLabels),
		serviceCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "service_call_total",
			Help:      "Downstream service calls made by flows.",
		}, serviceCallLabels),
		serviceCallTimes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "service_call_duration_seconds",
			Help:      "Downstream service call latency.",
			Buckets:   serviceCallBuckets,
		}, serviceCallLabels),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shim",
			Name:      "requests_total",
			Help:      "Processed event requests by endpoint and result.",
		}, []string{"endpoint", "result"}),
		processing: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "shim",
			Name:      "processing_duration_seconds",
			Help:      "Time from request entry to response for accepted events.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		archiveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shim",
			Name:      "archive_failures_total",
			Help:      "Accepted events that could not be archived.",
		}, []string{"endpoint"}),
	}

	for _, c := range []prometheus.Collector{
		r.flowStarts, r.flowEnds, r.flowDuration,
		r.serviceCalls, r.serviceCallTimes,
		r.requests, r.processing, r.archiveFailures,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Recorder) FlowStarted(l domain.StartLabels) {
	r.flowStarts.WithLabelValues(l.Consumer, l.Flow, l.Brand, l.Node).Inc()
}

func (r *Recorder) FlowEnded(l domain.EndLabels, durationSeconds float64) {
	values := []string{l.Consumer, l.Flow, l.Brand, l.Node, l.CloseStatus, l.DerivedTo}
	r.flowEnds.WithLabelValues(values...).Inc()
	r.flowDuration.WithLabelValues(values...).Observe(durationSeconds)
}

func (r *Recorder) ServiceCalled(l domain.ServiceCallLabels, durationSeconds float64) {
	values := []string{l.Consumer, l.Flow, l.Brand, l.Node, l.Service, l.ResultCode, l.Timeout}
	r.serviceCalls.WithLabelValues(values...).Inc()
	r.serviceCallTimes.WithLabelValues(values...).Observe(durationSeconds)
}

func (r *Recorder) RequestSucceeded(kind domain.Kind, elapsed time.Duration) {
	r.requests.WithLabelValues(string(kind), ResultSuccess).Inc()
	r.processing.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func (r *Recorder) RequestFailed(kind domain.Kind) {
	r.requests.WithLabelValues(string(kind), ResultError).Inc()
}

func (r *Recorder) ArchiveFailed(kind domain.Kind) {
	r.archiveFailures.WithLabelValues(string(kind)).Inc()
}

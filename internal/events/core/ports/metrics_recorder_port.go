package ports

import (
	"time"

	"ivr-event-metrics/internal/events/core/domain"
)

// MetricsRecorderPort is the set of instrument handles the use case writes to.
// Implementations own their synchronization.
type MetricsRecorderPort interface {
	FlowStarted(l domain.StartLabels)
	FlowEnded(l domain.EndLabels, durationSeconds float64)
	ServiceCalled(l domain.ServiceCallLabels, durationSeconds float64)

	RequestSucceeded(kind domain.Kind, elapsed time.Duration)
	RequestFailed(kind domain.Kind)
	ArchiveFailed(kind domain.Kind)
}

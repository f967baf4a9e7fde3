package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reason labels for AppointmentRejections
const (
	ReasonValidation = "validation"
	ReasonTimeWindow = "time_window"
	ReasonBlackout   = "blackout"
	ReasonCapacity   = "capacity"
)

// Collector bundles the application's prometheus metrics
type Collector struct {
	AppointmentsCreated    prometheus.Counter
	AppointmentRejections  *prometheus.CounterVec
	Logins                 *prometheus.CounterVec
	ActiveSessions         prometheus.Gauge
	NotificationsScheduled prometheus.Counter
}

var (
	globalCollector *Collector
	collectorOnce   sync.Once
)

// GetCollector returns the process-wide metrics collector, registering the
// metrics on first use
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		globalCollector = &Collector{
			AppointmentsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "pickup_appointments_created_total",
					Help: "The total number of appointments created",
				},
			),
			AppointmentRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pickup_appointment_rejections_total",
					Help: "The total number of rejected appointment requests",
				},
				[]string{"reason"},
			),
			Logins: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pickup_admin_logins_total",
					Help: "The total number of admin login attempts",
				},
				[]string{"result"},
			),
			ActiveSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "pickup_active_admin_sessions",
					Help: "The number of unexpired admin sessions",
				},
			),
			NotificationsScheduled: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "pickup_notifications_scheduled_total",
					Help: "The total number of notifications written, generated occurrences included",
				},
			),
		}
	})
	return globalCollector
}

// RecordRejection increments the rejection counter for the given reason
func RecordRejection(reason string) {
	GetCollector().AppointmentRejections.WithLabelValues(reason).Inc()
}

// RecordLogin increments the login counter with a success or failure result
func RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	GetCollector().Logins.WithLabelValues(result).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for patient registration.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	PatientsRegistered prometheus.Counter
	RegistrationErrors *prometheus.CounterVec
	PhotoCacheLookups  *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PatientsRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "patient_registration_patients_registered_total",
			Help: "Total number of patients registered",
		}),
		RegistrationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patient_registration_errors_total",
			Help: "Registration failures by reason",
		}, []string{"reason"}),
		PhotoCacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patient_registration_photo_cache_lookups_total",
			Help: "Document photo cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncrementPatientsRegistered() {
	if m == nil {
		return
	}
	m.PatientsRegistered.Inc()
}

func (m *Metrics) IncrementRegistrationError(reason string) {
	if m == nil {
		return
	}
	m.RegistrationErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementPhotoCache(result string) {
	if m == nil {
		return
	}
	m.PhotoCacheLookups.WithLabelValues(result).Inc()
}

package prometheus

import (
	"net/http"

	"imgstudio/internal/core/port"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "imgstudio"

// Metrics exports service measurements to Prometheus
type Metrics struct {
	pollTicks           promclient.Counter
	pollOutcomes        *promclient.CounterVec
	libraryItems        *promclient.CounterVec
	signedURLFailures   promclient.Counter
	ownershipViolations promclient.Counter
	storageDeleteErrors promclient.Counter
}

var _ port.Metrics = (*Metrics)(nil)

// NewMetrics registers the collectors on reg, the default registerer when nil
func NewMetrics(reg promclient.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}

	m := &Metrics{
		pollTicks: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Subsystem: "video_polling",
			Name:      "status_checks_total",
			Help:      "Video operation status checks issued.",
		}),
		pollOutcomes: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Subsystem: "video_polling",
			Name:      "outcomes_total",
			Help:      "Terminal states reached by video pollers.",
		}, []string{"state"}),
		libraryItems: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Subsystem: "library",
			Name:      "items_total",
			Help:      "Library records served or dropped while building pages.",
		}, []string{"result"}),
		signedURLFailures: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Subsystem: "library",
			Name:      "signed_url_failures_total",
			Help:      "Signed url requests that failed.",
		}),
		ownershipViolations: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Subsystem: "security",
			Name:      "ownership_violations_total",
			Help:      "Requests that targeted records of another user.",
		}),
		storageDeleteErrors: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Subsystem: "library",
			Name:      "storage_delete_failures_total",
			Help:      "Storage objects that could not be deleted during a batch delete.",
		}),
	}

	for _, c := range []promclient.Collector{
		m.pollTicks,
		m.pollOutcomes,
		m.libraryItems,
		m.signedURLFailures,
		m.ownershipViolations,
		m.storageDeleteErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler returns an http.Handler for Prometheus scraping
func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) PollTick() {
	m.pollTicks.Inc()
}

func (m *Metrics) PollOutcome(state string) {
	m.pollOutcomes.WithLabelValues(state).Inc()
}

func (m *Metrics) LibraryPage(served int, dropped int) {
	m.libraryItems.WithLabelValues("served").Add(float64(served))
	m.libraryItems.WithLabelValues("dropped").Add(float64(dropped))
}

func (m *Metrics) SignedURLFailure() {
	m.signedURLFailures.Inc()
}

func (m *Metrics) OwnershipViolation() {
	m.ownershipViolations.Inc()
}

func (m *Metrics) StorageDeleteFailure() {
	m.storageDeleteErrors.Inc()
}

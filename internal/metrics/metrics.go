package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	TimelineGenerations prometheus.Counter
	Simulations         prometheus.Counter
	SimulatedAmount     prometheus.Histogram
	PlanSaves           prometheus.Counter
	BrokenLinks         prometheus.Gauge
	RemindersSent       *prometheus.CounterVec
}

// Default is registered with the global Prometheus registry and served on /metrics.
var Default = New(prometheus.DefaultRegisterer)

// New creates and registers all Prometheus metrics on reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "futarinavi_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		TimelineGenerations: f.NewCounter(prometheus.CounterOpts{
			Name: "futarinavi_timeline_generations_total",
			Help: "Timelines generated through the API, CLI or reminder job",
		}),
		Simulations: f.NewCounter(prometheus.CounterOpts{
			Name: "futarinavi_simulations_total",
			Help: "Benefit simulations run",
		}),
		SimulatedAmount: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "futarinavi_simulated_amount_yen",
			Help:    "Total estimated amount per simulation in yen",
			Buckets: []float64{0, 100000, 300000, 600000, 1000000},
		}),
		PlanSaves: f.NewCounter(prometheus.CounterOpts{
			Name: "futarinavi_plan_saves_total",
			Help: "Plans created or updated",
		}),
		BrokenLinks: f.NewGauge(prometheus.GaugeOpts{
			Name: "futarinavi_broken_links",
			Help: "Broken links found by the last link check",
		}),
		RemindersSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "futarinavi_reminders_sent_total",
			Help: "Reminder digests delivered, by result",
		}, []string{"result"}),
	}
}

// ObserveSimulation records one simulation and its estimated total
func (m *Metrics) ObserveSimulation(total int) {
	m.Simulations.Inc()
	m.SimulatedAmount.Observe(float64(total))
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

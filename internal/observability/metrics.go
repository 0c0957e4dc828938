package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine counters, labelled by provisioning model ("ecl" or
// "local_impairment").
var (
	StagingRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provisioning_staging_runs_total",
		Help: "Number of completed staging runs.",
	}, []string{"model"})

	LoansStagedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provisioning_loans_staged_total",
		Help: "Number of loans classified across all staging runs.",
	}, []string{"model"})

	CalculationRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provisioning_calculation_runs_total",
		Help: "Number of completed provisioning calculations.",
	}, []string{"model"})
)

// MetricsHandler returns the HTTP handler serving the /metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

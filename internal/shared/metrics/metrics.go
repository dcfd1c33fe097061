package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation_error"
	OutcomeFailed     = "failed"
)

var (
	registry = prometheus.NewRegistry()

	tailorRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tailor_requests_total",
		Help: "Total tailor-resume requests by outcome",
	}, []string{"outcome"})

	uploadRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upload_requests_total",
		Help: "Total upload-resume requests by outcome",
	}, []string{"outcome"})

	stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_duration_ms",
		Help:    "Pipeline stage duration in milliseconds",
		Buckets: []float64{5, 25, 100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	}, []string{"stage"})
)

func init() {
	registry.MustRegister(tailorRequests, uploadRequests, stageDuration)
}

// IncTailor counts a finished tailor request.
func IncTailor(outcome string) {
	tailorRequests.WithLabelValues(outcome).Inc()
}

// IncUpload counts a finished upload request.
func IncUpload(outcome string) {
	uploadRequests.WithLabelValues(outcome).Inc()
}

// ObserveStageMs records how long a pipeline stage took.
func ObserveStageMs(stage string, value float64) {
	if value < 0 {
		value = 0
	}
	stageDuration.WithLabelValues(stage).Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}

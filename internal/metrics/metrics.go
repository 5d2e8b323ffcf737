package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitserver_evaluations_total",
			Help: "Total number of assessment evaluations by workflow mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	ChartsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitserver_charts_rendered_total",
			Help: "Total number of radar charts rendered by workflow mode",
		},
		[]string{"mode"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fitserver_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route", "status"},
	)
)

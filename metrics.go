package main

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quoteCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_signed",
		Help: "The total number of signed quotes issued",
	}, []string{"currency"})
	uncoverableCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotes_uncoverable",
		Help: "The total number of uncoverable outcomes returned",
	})
	authFailureCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_failures",
		Help: "The total number of rejected api keys or origins",
	})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Latency of requests in second.",
	}, []string{"path"})
)

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := prometheus.NewTimer(httpDuration.WithLabelValues(r.URL.Path))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		timer.ObserveDuration()
	})
}

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nat/todo-api/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		method := r.Method
		path := r.URL.Path

		metrics.HTTPRequestsTotal.WithLabelValues(method, path).Inc()
		metrics.HTTPRequestsInFlight.Inc()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.HTTPRequestsInFlight.Dec()
		statusClass := fmt.Sprintf("%dxx", rec.status/100)
		metrics.HTTPRequestDurationSeconds.
			WithLabelValues(method, path, statusClass).
			Observe(time.Since(start).Seconds())
	})
}

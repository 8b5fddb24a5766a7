package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	likeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karmafeed_like_toggles_total",
		Help: "Like toggles by target kind and resulting state.",
	}, []string{"target_kind", "result"})

	leaderboardDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "karmafeed_leaderboard_query_seconds",
		Help:    "Time spent aggregating the karma leaderboard.",
		Buckets: prometheus.DefBuckets,
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karmafeed_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "karmafeed_http_request_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveToggle records the outcome of one like toggle.
func ObserveToggle(kind string, liked bool, err error) {
	result := "unliked"
	switch {
	case err != nil:
		result = "error"
	case liked:
		result = "liked"
	}
	likeToggles.WithLabelValues(kind, result).Inc()
}

func ObserveLeaderboard(d time.Duration) {
	leaderboardDuration.Observe(d.Seconds())
}

func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RegisterDB exposes connection pool stats of the store.
func RegisterDB(db *sql.DB, name string) error {
	return prometheus.Register(collectors.NewDBStatsCollector(db, name))
}

func Handler() http.Handler {
	return promhttp.Handler()
}

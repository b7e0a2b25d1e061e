package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
)

var (
	daemonMetrics     *DaemonMetrics
	daemonMetricsOnce sync.Once
)

// DaemonMetrics holds the Prometheus metrics of the auto-freeze daemon.
// All metrics are prefixed with "pd_daemon_".
type DaemonMetrics struct {
	ActivityTotal *prometheus.CounterVec
	CommitsTotal  *prometheus.CounterVec
	FreezesTotal  *prometheus.CounterVec
	LastActivity  *prometheus.GaugeVec
	WatchedRepos  prometheus.Gauge
}

// NewDaemonMetrics returns the process-wide metrics, registering them on
// first use.
func NewDaemonMetrics() *DaemonMetrics {
	daemonMetricsOnce.Do(func() {
		daemonMetrics = &DaemonMetrics{
			ActivityTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pd_daemon_activity_total",
					Help: "Filesystem activity observed per repository",
				},
				[]string{"repository", "kind"},
			),
			CommitsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pd_daemon_commits_total",
					Help: "Commit events recorded per repository",
				},
				[]string{"repository"},
			),
			FreezesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pd_daemon_freezes_total",
					Help: "Automatic freezes per repository and result",
				},
				[]string{"repository", "result"}, // "ok" or "error"
			),
			LastActivity: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "pd_daemon_last_activity_timestamp_seconds",
					Help: "Unix time of the last activity per repository",
				},
				[]string{"repository"},
			),
			WatchedRepos: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "pd_daemon_watched_repositories",
					Help: "Number of repositories being watched",
				},
			),
		}
	})
	return daemonMetrics
}

// ServeMetrics exposes /metrics on addr until ctx is cancelled
func ServeMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info("Serving daemon metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

package metrics

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promcollectors "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/liftedinit/propchain/internal/metrics/collectors"
	sqlcollectors "github.com/liftedinit/propchain/internal/metrics/collectors/sql"
)

// CreateMetricsServer registers the ledger collectors, plus the PostgreSQL
// collectors when db is not nil, and serves them on addr at /metrics.
func CreateMetricsServer(source collectors.StatsSource, db *sql.DB, addr string) (*http.Server, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(promcollectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register Go collector: %w", err)
	}

	ledgerCollectors, err := collectors.DefaultRegistry.CreateCollectors(source)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger collectors: %w", err)
	}
	if err := registerAll(registry, ledgerCollectors); err != nil {
		return nil, err
	}

	if db != nil {
		sqlCollectors, err := sqlcollectors.DefaultSqlRegistry.CreateCollectors(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQL collectors: %w", err)
		}
		if err := registerAll(registry, sqlCollectors); err != nil {
			return nil, err
		}
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Starting Prometheus metrics server", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start metrics server", "error", err)
		}
	}()

	return server, nil
}

func registerAll(registry *prometheus.Registry, cs []prometheus.Collector) error {
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return nil
}

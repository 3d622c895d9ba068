package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const ExportedCountsQuery = `SELECT (SELECT COUNT(*) FROM api.blocks_raw), (SELECT COUNT(*) FROM api.transactions_raw)`

// ExportedCountsCollector reports how many blocks and transactions have been
// mirrored to PostgreSQL.
type ExportedCountsCollector struct {
	db         *sql.DB
	blockCount *prometheus.Desc
	txCount    *prometheus.Desc
}

func NewExportedCountsCollector(db *sql.DB) *ExportedCountsCollector {
	return &ExportedCountsCollector{
		db: db,
		blockCount: prometheus.NewDesc(
			prometheus.BuildFQName("propchain", "blocks", "exported_count"),
			"Blocks mirrored to PostgreSQL",
			nil,
			prometheus.Labels{"source": "postgres"},
		),
		txCount: prometheus.NewDesc(
			prometheus.BuildFQName("propchain", "transactions", "exported_count"),
			"Transactions mirrored to PostgreSQL",
			nil,
			prometheus.Labels{"source": "postgres"},
		),
	}
}

func (c *ExportedCountsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.blockCount
	ch <- c.txCount
}

func (c *ExportedCountsCollector) Collect(ch chan<- prometheus.Metric) {
	var blocks, txs int64
	err := c.db.QueryRow(ExportedCountsQuery).Scan(&blocks, &txs)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.blockCount, err)
		ch <- prometheus.NewInvalidMetric(c.txCount, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.blockCount, prometheus.GaugeValue, float64(blocks))
	ch <- prometheus.MustNewConstMetric(c.txCount, prometheus.GaugeValue, float64(txs))
}

func init() {
	RegisterCollectorFactory(func(db *sql.DB) (prometheus.Collector, error) {
		return NewExportedCountsCollector(db), nil
	})
}

package collectors

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ChainCollector reports the chain height and whether the chain still verifies.
type ChainCollector struct {
	source     StatsSource
	height     *prometheus.Desc
	chainValid *prometheus.Desc
	pending    *prometheus.Desc
}

func NewChainCollector(source StatsSource) *ChainCollector {
	return &ChainCollector{
		source: source,
		height: prometheus.NewDesc(
			prometheus.BuildFQName("propchain", "chain", "height"),
			"Number of blocks in the chain, genesis included",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
		chainValid: prometheus.NewDesc(
			prometheus.BuildFQName("propchain", "chain", "valid"),
			"1 if every block links to its predecessor, 0 otherwise",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
		pending: prometheus.NewDesc(
			prometheus.BuildFQName("propchain", "pool", "pending_transactions"),
			"Operations waiting to be mined",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *ChainCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.height
	ch <- c.chainValid
	ch <- c.pending
}

func (c *ChainCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	valid := 0.0
	if stats.ChainValid {
		valid = 1
	}

	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(stats.Height))
	ch <- prometheus.MustNewConstMetric(c.chainValid, prometheus.GaugeValue, valid)
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(stats.PendingCount))
}

func init() {
	RegisterCollectorFactory(func(source StatsSource) (prometheus.Collector, error) {
		return NewChainCollector(source), nil
	})
}

package collectors

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RegistryCollector reports wallet and property token counts.
type RegistryCollector struct {
	source  StatsSource
	wallets *prometheus.Desc
	assets  *prometheus.Desc
}

func NewRegistryCollector(source StatsSource) *RegistryCollector {
	return &RegistryCollector{
		source: source,
		wallets: prometheus.NewDesc(
			prometheus.BuildFQName("propchain", "registry", "wallets"),
			"Number of wallets",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
		assets: prometheus.NewDesc(
			prometheus.BuildFQName("propchain", "registry", "assets"),
			"Number of property tokens by sale status",
			[]string{"status"},
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *RegistryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.wallets
	ch <- c.assets
}

func (c *RegistryCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.wallets, prometheus.GaugeValue, float64(stats.Wallets))
	ch <- prometheus.MustNewConstMetric(c.assets, prometheus.GaugeValue, float64(stats.AssetsForSale), "for_sale")
	ch <- prometheus.MustNewConstMetric(c.assets, prometheus.GaugeValue, float64(stats.Assets-stats.AssetsForSale), "not_for_sale")
}

func init() {
	RegisterCollectorFactory(func(source StatsSource) (prometheus.Collector, error) {
		return NewRegistryCollector(source), nil
	})
}

package catalog

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// RegisterMetrics exposes catalog gauges that are read from the store at
// scrape time.
func RegisterMetrics(reg prometheus.Registerer, store Store, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	stats := func() Stats {
		st, err := store.Stats(context.Background())
		if err != nil {
			log.Warn("catalog stats failed", zap.Error(err))
		}
		return st
	}

	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Products currently in the catalog",
		}, func() float64 { return float64(stats().Products) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "catalog_price_entries",
			Help: "Entries in the price multiset",
		}, func() float64 { return float64(stats().PriceCount) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "catalog_median_price",
			Help: "Median current price in minor units, 0 when the catalog is empty",
		}, func() float64 { return stats().Median.Float64() }),
	)
}

package catalog

import "github.com/prometheus/client_golang/prometheus"

type QueryMetrics struct {
	Results *prometheus.HistogramVec
}

func NewQueryMetrics(reg prometheus.Registerer) *QueryMetrics {
	m := &QueryMetrics{
		Results: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_query_results",
				Help:    "Listings returned per catalog query",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"sort", "scope"},
		),
	}
	reg.MustRegister(m.Results)
	return m
}

func (m *QueryMetrics) observe(p Params, n int) {
	if m == nil {
		return
	}
	m.Results.WithLabelValues(string(p.Sort), string(p.Scope)).Observe(float64(n))
}

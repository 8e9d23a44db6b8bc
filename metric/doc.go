// Package metric exports engine metrics to Prometheus.
//
//	collector := metric.NewPrometheusCollector(prometheus.DefaultRegisterer)
//	eng, err := seqpack.New(seqpack.WithMetricsCollector(collector))
package metric

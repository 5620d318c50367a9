// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered against an explicit prometheus.Registerer so
// tests can use a private registry:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewMetrics(reg)
//	m.RecordBakedGoodCreated()
package metrics

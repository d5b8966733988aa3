// Package metrics exposes Prometheus metrics for player traffic.
package metrics

// Package metrics counts evaluations and exposes them in the Prometheus text
// format, for node_exporter's textfile collector or any scraper reading a
// file.
package metrics

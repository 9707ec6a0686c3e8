// Package metric provides Prometheus metrics for the zombienet CLI.
//
// A CLI run is short-lived, so metrics are not scraped. They are written
// to a node-exporter style textfile when the process ends (see
// Registry.WriteTextfile), which CI jobs can pick up to track leaked or
// slow teardowns across runs.
package metric

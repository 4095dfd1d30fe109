// Package metrics records post-processing metrics for docsite runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so callers never need nil checks. The Prometheus implementation
// registers its collectors on a caller-supplied registry and can dump them to a
// node_exporter textfile at the end of a run.
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... run the build with rec ...
//	_ = rec.WriteTextfile("docsite.prom")
package metrics

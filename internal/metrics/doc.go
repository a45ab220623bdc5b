// Package metrics provides observability hooks for preview rebuilds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no caller needs nil checks:
//
//	recorder := metrics.Recorder(metrics.NoopRecorder{})
//	if cfg.Preview.Metrics {
//	    recorder = metrics.NewPrometheusRecorder(registry)
//	}
//
// PrometheusRecorder registers its collectors on the registry it is given;
// HTTPHandler exposes that registry for scraping.
package metrics

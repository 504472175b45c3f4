// Package metrics provides build metrics for mdsite.
//
// Components receive a Recorder. NoopRecorder is the default and does
// nothing; PrometheusRecorder is injected when metrics are enabled in the
// configuration, and HTTPHandler exposes its registry for scraping:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics

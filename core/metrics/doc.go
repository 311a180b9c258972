// Package metrics defines the telemetry emitted after each planning run.
// Sinks such as the Prometheus and InfluxDB implementations in infra/metrics
// register themselves in the factory registry; NewPlanRecorder builds one
// sink, or a MultiSink when several are configured.
package metrics

// Package otel bridges goCred engine metrics into an OpenTelemetry
// meter via observable instruments.
package otel

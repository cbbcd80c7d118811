// Package prometheus exposes goCred engine metrics in Prometheus text
// exposition format without depending on the Prometheus client library.
package prometheus

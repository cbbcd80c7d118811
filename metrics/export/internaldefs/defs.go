package internaldefs

import (
	goCred "github.com/MrEthical07/goCred"
)

// CounterDef binds an engine counter to its stable exported name.
type CounterDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// HistogramDef binds an engine histogram to its stable exported name.
type HistogramDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// CounterDefs enumerates every exported counter. Exporters iterate this
// slice so a new MetricID only needs one entry here to reach every
// backend.
var CounterDefs = []CounterDef{
	{ID: goCred.MetricRegisterSuccess, Name: "gocred_register_success_total", Help: "Created accounts."},
	{ID: goCred.MetricRegisterDuplicate, Name: "gocred_register_duplicate_total", Help: "Registrations rejected for a taken email."},
	{ID: goCred.MetricRegisterFailure, Name: "gocred_register_failure_total", Help: "Registrations rejected for any other reason."},
	{ID: goCred.MetricLoginSuccess, Name: "gocred_login_success_total", Help: "Successful logins."},
	{ID: goCred.MetricLoginFailure, Name: "gocred_login_failure_total", Help: "Logins rejected as unauthorized."},
	{ID: goCred.MetricCredentialRehash, Name: "gocred_credential_rehash_total", Help: "Credential envelopes upgraded on login."},
	{ID: goCred.MetricCredentialDecodeError, Name: "gocred_credential_decode_error_total", Help: "Stored envelopes that failed to decode."},
	{ID: goCred.MetricResetRequest, Name: "gocred_reset_request_total", Help: "Password reset requests, known and unknown email."},
	{ID: goCred.MetricResetRequestUnknownEmail, Name: "gocred_reset_request_unknown_email_total", Help: "Password reset requests for unknown emails."},
	{ID: goCred.MetricResetSuccess, Name: "gocred_reset_success_total", Help: "Consumed reset tokens."},
	{ID: goCred.MetricResetFailure, Name: "gocred_reset_failure_total", Help: "Rejected reset attempts."},
	{ID: goCred.MetricResetReplay, Name: "gocred_reset_replay_total", Help: "Reset attempts that lost a consume race."},
	{ID: goCred.MetricProfileUpdate, Name: "gocred_profile_update_total", Help: "Profile updates."},
}

// HistogramDefs enumerates every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goCred.MetricDeriveLatency, Name: "gocred_derive_latency_seconds", Help: "Key derivation latency histogram."},
}

// HistogramBounds are the upper bounds of the engine's latency buckets,
// in seconds, as rendered in the Prometheus le label.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix holds the bound spellings legal in OpenTelemetry
// instrument names.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form
// Prometheus histograms expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}

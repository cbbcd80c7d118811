package goCred

import (
	"github.com/MrEthical07/goCred/jwt"
	"github.com/MrEthical07/goCred/password"
)

// Engine is the credential authority. It owns password hashing, bearer
// token issuance, and the reset token lifecycle; account records live in
// the caller-supplied UserStore. Build one with [Builder.Build] at process
// start and treat it as immutable. All methods are safe for concurrent
// use when the store is.
type Engine struct {
	config  Config
	roles   map[string]struct{}
	store   UserStore
	hasher  *password.Hasher
	tokens  *jwt.Manager
	audit   *auditDispatcher
	metrics *Metrics
}

// Close flushes and stops the audit dispatcher. Safe to call more than
// once.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot copies the engine's counters and histograms.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) roleAllowed(role string) bool {
	_, ok := e.roles[role]
	return ok
}

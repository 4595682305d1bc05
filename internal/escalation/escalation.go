// Package escalation implements the deterministic escalation verdict
// layered on top of the probabilistic diagnosis. Rules are pure functions
// of the final answer and the maintenance-record context; no external
// calls, no randomness.
package escalation

import (
	"fmt"
	"strings"

	"github.com/ariadx/aria/internal/domain"
)

// Reason strings appended per matched rule. Downstream tooling keys on
// these exact values.
const (
	ReasonLowConfidence  = "low diagnosis confidence"
	ReasonCriticalAnswer = "critical failure pattern detected"
	ReasonLowStock       = "low bearing stock"
	ReasonHighWorkOrders = "high open work orders"
)

// Fixed action strings keyed on the verdict.
const (
	ActionEscalate = "contact Level 2 maintenance immediately"
	ActionRoutine  = "schedule routine check"
)

// Config holds the escalation policy thresholds. They are policy
// constants, not learned values, and live here so operations can tune
// them without touching the evaluator logic.
type Config struct {
	// MinDiagnosisConfidence is the floor below which a diagnosis is too
	// uncertain to act on unescalated.
	MinDiagnosisConfidence float64 `json:"min_diagnosis_confidence"`

	// LowStockThreshold marks bearing stock levels strictly below it
	// (but at least 1) as critically low.
	LowStockThreshold int `json:"low_stock_threshold"`

	// HighWorkOrderMin and HighWorkOrderMax bound the open-work-order
	// counts treated as high load.
	HighWorkOrderMin int `json:"high_work_order_min"`
	HighWorkOrderMax int `json:"high_work_order_max"`
}

// DefaultConfig returns the thresholds derived from the maintenance
// dataset's observed patterns.
func DefaultConfig() Config {
	return Config{
		MinDiagnosisConfidence: 0.8,
		LowStockThreshold:      3,
		HighWorkOrderMin:       3,
		HighWorkOrderMax:       4,
	}
}

// Evaluate applies every rule independently and accumulates matches; the
// rules are commutative, so evaluation order only affects the order of
// reasons. Priority is HIGH exactly when any rule matched.
func Evaluate(answer domain.FinalAnswer, record domain.RecordContext, cfg Config) domain.EscalationReport {
	var reasons []string

	// Low confidence means an uncertain diagnosis: escalate.
	if answer.Confidence < cfg.MinDiagnosisConfidence {
		reasons = append(reasons, ReasonLowConfidence)
	}

	// Synthesis itself flagged urgency.
	if answer.Escalate {
		reasons = append(reasons, ReasonCriticalAnswer)
	}

	// Record-text rules only apply when a record was actually found.
	if record.Found {
		if matchesLevel(record.Data, "Bearing stock: ", 1, cfg.LowStockThreshold-1) {
			reasons = append(reasons, ReasonLowStock)
		}
		if matchesLevel(record.Data, "Open work orders: ", cfg.HighWorkOrderMin, cfg.HighWorkOrderMax) {
			reasons = append(reasons, ReasonHighWorkOrders)
		}
	}

	escalate := len(reasons) > 0
	report := domain.EscalationReport{
		Escalate: escalate,
		Reasons:  reasons,
		Priority: domain.PriorityNormal,
		Action:   ActionRoutine,
	}
	if escalate {
		report.Priority = domain.PriorityHigh
		report.Action = ActionEscalate
	}
	return report
}

// matchesLevel probes the record text for "<label><n>" with n in
// [lo, hi]. The record format is fixed, so substring matching against the
// labeled integers is exact, not heuristic.
func matchesLevel(data, label string, lo, hi int) bool {
	for n := lo; n <= hi; n++ {
		if strings.Contains(data, fmt.Sprintf("%s%d", label, n)) {
			return true
		}
	}
	return false
}

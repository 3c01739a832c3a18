// Package scoring computes the per-country readiness score and its
// sub-scores. Every function here is pure and deterministic; the arithmetic is
// part of the public methodology, so constants and formulas must stay exactly
// as documented.
package scoring

import (
	"strings"

	"sovindex/internal/indicator"
)

// Component weights. Methodology() is generated from these same constants, so
// a weight change here is automatically reflected in the published document.
const (
	WeightPolicy      = 0.4
	WeightInfra       = 0.3
	WeightLanguage    = 0.2
	WeightRiskPenalty = 0.1
)

// Policy score tuning.
const (
	policyBaseline         = 50.0
	bonusDataLocalization  = 15.0
	bonusAISystems         = 10.0
	bonusCrossBorder       = 5.0
	neutralInfraScore      = 50.0
	powerCostNeutralPoint  = 50.0
	powerCostWeight        = 0.1
	languageScoreHigh      = 70.0
	languageScoreDefault   = 55.0
)

// Confidence qualifies a sub-score by the amount of data behind it.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
)

// Recognized infra metrics.
const (
	MetricGPUCapacity = "gpu_capacity_index"
	MetricPowerCost   = "power_cost_index"
)

// clamp bounds a score to [0, 100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// PolicyScore computes the policy sub-score from raw indicator key/values.
// Canonical flag keys are preferred with legacy aliases as fallback; values
// use the permissive boolean coercion from the indicator package. The resolved
// flag map is returned alongside the score for provenance display.
//
// Scoring (bounded 0..100):
//
//	baseline 50
//	+15 if data localization is mentioned
//	+10 if AI systems are mentioned
//	+ 5 if cross-border transfer is mentioned
func PolicyScore(indicators map[string]string) (float64, map[indicator.Flag]bool) {
	flags := map[indicator.Flag]bool{
		indicator.FlagDataLocalization: indicator.Resolve(indicators, indicator.FlagDataLocalization),
		indicator.FlagAISystems:        indicator.Resolve(indicators, indicator.FlagAISystems),
		indicator.FlagCrossBorder:      indicator.Resolve(indicators, indicator.FlagCrossBorder),
	}

	score := policyBaseline
	if flags[indicator.FlagDataLocalization] {
		score += bonusDataLocalization
	}
	if flags[indicator.FlagAISystems] {
		score += bonusAISystems
	}
	if flags[indicator.FlagCrossBorder] {
		score += bonusCrossBorder
	}
	return clamp(score), flags
}

// InfraScore computes the infrastructure sub-score from metric values.
// An empty signal map yields the neutral default with low confidence. A higher
// power cost index reduces viability slightly:
//
//	adjusted = gpu_capacity_index - (power_cost_index - 50) * 0.1
func InfraScore(signals map[string]float64) (float64, Confidence) {
	if len(signals) == 0 {
		return neutralInfraScore, ConfidenceLow
	}

	base, ok := signals[MetricGPUCapacity]
	if !ok {
		base = neutralInfraScore
	}
	powerCost, ok := signals[MetricPowerCost]
	if !ok {
		powerCost = powerCostNeutralPoint
	}

	adjusted := base - (powerCost-powerCostNeutralPoint)*powerCostWeight
	return clamp(adjusted), ConfidenceMedium
}

// LanguageScore is a placeholder tied to the ISO code until richer language
// and knowledge-sovereignty signals are wired in. Case-insensitive on input.
func LanguageScore(isoCode string) float64 {
	switch strings.ToUpper(isoCode) {
	case "IN", "EU":
		return languageScoreHigh
	default:
		return languageScoreDefault
	}
}

// RiskScore is an inverse heuristic of the other components: higher component
// scores mean lower risk. Bounded 0..100.
func RiskScore(policy, infra, language float64) float64 {
	composite := WeightPolicy*policy + WeightInfra*infra + WeightLanguage*language
	return clamp(100.0 - composite)
}

// Readiness combines the four sub-scores into the composite readiness score:
//
//	readiness = 0.4*policy + 0.3*infra + 0.2*language - 0.1*risk
//
// The result is intentionally not clamped: risk is already a function of the
// other three components, and the published methodology documents this exact
// arithmetic. Changing it would break comparability with historical snapshots.
func Readiness(policy, infra, language, risk float64) float64 {
	return WeightPolicy*policy + WeightInfra*infra + WeightLanguage*language - WeightRiskPenalty*risk
}

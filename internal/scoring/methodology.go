package scoring

import "fmt"

// MethodologyDoc is the published description of how scores are computed. It
// is served verbatim by the query API so stakeholders can audit the numbers.
type MethodologyDoc struct {
	Inputs    []string           `json:"inputs"`
	Weights   map[string]float64 `json:"weights"`
	Equations map[string]string  `json:"equations"`
	Notes     []string           `json:"notes"`
}

// Methodology builds the methodology document from the same constants the
// calculator uses, so the published weights can never drift from the code.
func Methodology() MethodologyDoc {
	return MethodologyDoc{
		Inputs: []string{
			"policy_indicators (mentions_* flags from parsed texts)",
			"infra_signals (gpu_capacity_index, power_cost_index)",
			"language_signals (placeholder by ISO)",
		},
		Weights: map[string]float64{
			"policy":       WeightPolicy,
			"infra":        WeightInfra,
			"language":     WeightLanguage,
			"risk_penalty": WeightRiskPenalty,
		},
		Equations: map[string]string{
			"readiness": fmt.Sprintf("%.1f*policy + %.1f*infra + %.1f*language - %.1f*risk",
				WeightPolicy, WeightInfra, WeightLanguage, WeightRiskPenalty),
			"risk": fmt.Sprintf("100 - (%.1f*policy + %.1f*infra + %.1f*language)",
				WeightPolicy, WeightInfra, WeightLanguage),
		},
		Notes: []string{
			"Infra defaults to 50 when missing (low confidence).",
			"Language score is a placeholder until connected to real signals.",
			"Policy score increases with explicit mentions (localization, AI systems, cross-border).",
		},
	}
}

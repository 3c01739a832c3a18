// Package models holds the readiness index entities and the read-side view
// shapes served by the query API.
package models

import "time"

// Country is the root aggregate. Policies, infra signals and score snapshots
// all reference it by ID; nothing points the other way.
//
// Invariants:
//   - ISOCode is unique and normalized to uppercase
//   - created via upsert keyed on ISOCode; only Name and Region may change
type Country struct {
	ID      int64  `json:"id"`
	ISOCode string `json:"iso_code"`
	Name    string `json:"name"`
	Region  string `json:"region,omitempty"`
}

// Policy is one ingested policy document for a country. Policies are never
// updated in place; re-ingesting a source inserts a new row.
type Policy struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"-"`
	Name      string `json:"name"`
	SourceURL string `json:"source_url,omitempty"`
	Category  string `json:"category,omitempty"`
	Status    string `json:"status,omitempty"`
	RawText   string `json:"-"`
}

// Indicator is a key/value pair extracted from one policy's text. Keys come
// from the indicator package's flag vocabulary (legacy aliases included);
// values are stringified booleans.
type Indicator struct {
	ID       int64  `json:"-"`
	PolicyID int64  `json:"-"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// InfraSignal is a curated numeric metric for a country, conventionally
// bounded 0..100 though not enforced.
type InfraSignal struct {
	ID        int64   `json:"-"`
	CountryID int64   `json:"-"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
}

// Snapshot is one immutable, timestamped readiness score record. The history
// is append-only; the current score is the most recent by ComputedAt.
type Snapshot struct {
	ID            int64     `json:"-"`
	CountryID     int64     `json:"-"`
	Score         float64   `json:"score"`
	PolicyScore   float64   `json:"policy_score"`
	InfraScore    float64   `json:"infra_score"`
	LanguageScore float64   `json:"language_score"`
	RiskScore     float64   `json:"risk_score"`
	ComputedAt    time.Time `json:"computed_at"`
}

// CountrySummary is the rollup served on overview and compare views. Score
// fields are nil until the first snapshot exists.
type CountrySummary struct {
	ISOCode        string   `json:"iso_code"`
	Name           string   `json:"name"`
	ReadinessScore *float64 `json:"readiness_score"`
	PolicyScore    *float64 `json:"policy_score"`
	InfraScore     *float64 `json:"infra_score"`
	LanguageScore  *float64 `json:"language_score"`
	RiskScore      *float64 `json:"risk_score"`
}

// IndicatorView is an indicator with the provenance a reader needs: which
// policy it came from and where that policy was fetched.
type IndicatorView struct {
	PolicyName string `json:"policy_name"`
	Key        string `json:"key"`
	Value      string `json:"value"`
	SourceURL  string `json:"source_url,omitempty"`
}

// PolicyView is a policy with its nested indicators for the detail view.
type PolicyView struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	SourceURL  string          `json:"source_url,omitempty"`
	Category   string          `json:"category,omitempty"`
	Status     string          `json:"status,omitempty"`
	Indicators []IndicatorView `json:"indicators"`
}

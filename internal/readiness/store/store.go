// Package store persists the readiness index. The interface is injected into
// services so the Postgres implementation can be swapped for the in-memory one
// in tests.
package store

import (
	"context"

	"sovindex/internal/readiness/models"
)

// Store is the storage-access boundary for countries, policies, signals and
// score snapshots. Implementations return sentinel.ErrNotFound for missing
// rows; services translate that into domain errors.
type Store interface {
	// UpsertCountry inserts or updates a country keyed on its ISO code and
	// returns the stored row. Only name and region change on conflict.
	UpsertCountry(ctx context.Context, country models.Country) (models.Country, error)

	// ListCountries returns all countries in name order.
	ListCountries(ctx context.Context) ([]models.Country, error)

	// FindCountryByISO looks up a country by uppercase ISO code.
	FindCountryByISO(ctx context.Context, isoCode string) (models.Country, error)

	// ListSummaries returns every country with its most recent snapshot scores
	// (nil score fields when no snapshot exists), in name order.
	ListSummaries(ctx context.Context) ([]models.CountrySummary, error)

	// SummariesByISO is ListSummaries filtered to the given uppercase codes.
	SummariesByISO(ctx context.Context, isoCodes []string) ([]models.CountrySummary, error)

	// InsertPolicy appends a policy row and returns it with its ID set.
	// Policies are never updated; re-ingestion inserts a fresh row.
	InsertPolicy(ctx context.Context, policy models.Policy) (models.Policy, error)

	// InsertIndicators appends indicator rows for a policy.
	InsertIndicators(ctx context.Context, policyID int64, indicators []models.Indicator) error

	// PoliciesWithIndicators returns a country's policies with their nested
	// indicators, fetched as a single join and grouped in memory.
	PoliciesWithIndicators(ctx context.Context, countryID int64) ([]models.PolicyView, error)

	// IndicatorsByCountry flattens indicator key/values across all of a
	// country's policies. When the same key appears on multiple policies the
	// most recently inserted row wins.
	IndicatorsByCountry(ctx context.Context, countryID int64) (map[string]string, error)

	// InfraSignalsByCountry returns a country's metric values by name.
	InfraSignalsByCountry(ctx context.Context, countryID int64) (map[string]float64, error)

	// InsertInfraSignal appends one curated metric row.
	InsertInfraSignal(ctx context.Context, signal models.InfraSignal) error

	// AppendSnapshot appends one readiness score snapshot. The history is
	// append-only; callers never mutate or delete prior snapshots.
	AppendSnapshot(ctx context.Context, snapshot models.Snapshot) error

	// LatestSnapshot returns a country's most recent snapshot by ComputedAt.
	LatestSnapshot(ctx context.Context, countryID int64) (models.Snapshot, error)
}

// TxRunner executes fn against a transaction-scoped Store. If fn returns an
// error nothing is committed. Batch writers (the scoring run, the ingest load)
// use this to get all-or-nothing commits across the whole run.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(Store) error) error
}

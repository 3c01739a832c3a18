package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sovindex/internal/readiness/models"
	"sovindex/pkg/platform/sentinel"
)

// schemaDDL creates the index tables. Statements are idempotent so EnsureSchema
// can run on every startup.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS countries (
	id BIGSERIAL PRIMARY KEY,
	iso_code TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	region TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS policies (
	id BIGSERIAL PRIMARY KEY,
	country_id BIGINT NOT NULL REFERENCES countries(id),
	name TEXT NOT NULL,
	source_url TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	raw_text TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS policy_indicators (
	id BIGSERIAL PRIMARY KEY,
	policy_id BIGINT NOT NULL REFERENCES policies(id),
	key TEXT NOT NULL,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS infra_signals (
	id BIGSERIAL PRIMARY KEY,
	country_id BIGINT NOT NULL REFERENCES countries(id),
	metric TEXT NOT NULL,
	value DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS readiness_scores (
	id BIGSERIAL PRIMARY KEY,
	country_id BIGINT NOT NULL REFERENCES countries(id),
	score DOUBLE PRECISION NOT NULL,
	policy_score DOUBLE PRECISION NOT NULL,
	infra_score DOUBLE PRECISION NOT NULL,
	language_score DOUBLE PRECISION NOT NULL,
	risk_score DOUBLE PRECISION NOT NULL,
	computed_at TIMESTAMPTZ NOT NULL
);
`

// querier is satisfied by both *sql.DB and *sql.Tx so the same store code
// serves direct and transaction-scoped access.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres implements Store over database/sql with the lib/pq driver.
type Postgres struct {
	db querier
}

// NewPostgres constructs a Postgres-backed store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// NewPostgresTx binds a store to an open transaction.
func NewPostgresTx(tx *sql.Tx) *Postgres {
	return &Postgres{db: tx}
}

// EnsureSchema applies the table DDL. Safe to call on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Postgres) UpsertCountry(ctx context.Context, country models.Country) (models.Country, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO countries (iso_code, name, region)
		VALUES ($1, $2, $3)
		ON CONFLICT (iso_code) DO UPDATE SET name = EXCLUDED.name, region = EXCLUDED.region
		RETURNING id, iso_code, name, region;
	`, country.ISOCode, country.Name, country.Region)

	var stored models.Country
	if err := row.Scan(&stored.ID, &stored.ISOCode, &stored.Name, &stored.Region); err != nil {
		return models.Country{}, fmt.Errorf("upsert country %s: %w", country.ISOCode, err)
	}
	return stored, nil
}

func (s *Postgres) ListCountries(ctx context.Context) ([]models.Country, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, iso_code, name, region
		FROM countries
		ORDER BY name;
	`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var countries []models.Country
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.ISOCode, &c.Name, &c.Region); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (s *Postgres) FindCountryByISO(ctx context.Context, isoCode string) (models.Country, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, iso_code, name, region
		FROM countries
		WHERE iso_code = $1;
	`, isoCode)

	var c models.Country
	if err := row.Scan(&c.ID, &c.ISOCode, &c.Name, &c.Region); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Country{}, sentinel.ErrNotFound
		}
		return models.Country{}, fmt.Errorf("find country %s: %w", isoCode, err)
	}
	return c, nil
}

// summaryQuery joins each country to its most recent snapshot. The lateral
// limit keeps the scan to one snapshot row per country.
const summaryQuery = `
	SELECT c.iso_code,
	       c.name,
	       rs.score,
	       rs.policy_score,
	       rs.infra_score,
	       rs.language_score,
	       rs.risk_score
	FROM countries c
	LEFT JOIN LATERAL (
		SELECT r.score, r.policy_score, r.infra_score, r.language_score, r.risk_score
		FROM readiness_scores r
		WHERE r.country_id = c.id
		ORDER BY r.computed_at DESC
		LIMIT 1
	) rs ON true
`

func (s *Postgres) ListSummaries(ctx context.Context) ([]models.CountrySummary, error) {
	rows, err := s.db.QueryContext(ctx, summaryQuery+`ORDER BY c.name;`)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func (s *Postgres) SummariesByISO(ctx context.Context, isoCodes []string) ([]models.CountrySummary, error) {
	rows, err := s.db.QueryContext(ctx,
		summaryQuery+`WHERE c.iso_code = ANY($1) ORDER BY c.name;`,
		pq.Array(isoCodes))
	if err != nil {
		return nil, fmt.Errorf("summaries by iso: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]models.CountrySummary, error) {
	summaries := []models.CountrySummary{}
	for rows.Next() {
		var s models.CountrySummary
		if err := rows.Scan(&s.ISOCode, &s.Name,
			&s.ReadinessScore, &s.PolicyScore, &s.InfraScore, &s.LanguageScore, &s.RiskScore); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (s *Postgres) InsertPolicy(ctx context.Context, policy models.Policy) (models.Policy, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO policies (country_id, name, source_url, category, status, raw_text)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`, policy.CountryID, policy.Name, policy.SourceURL, policy.Category, policy.Status, policy.RawText)

	if err := row.Scan(&policy.ID); err != nil {
		return models.Policy{}, fmt.Errorf("insert policy %s: %w", policy.Name, err)
	}
	return policy, nil
}

func (s *Postgres) InsertIndicators(ctx context.Context, policyID int64, indicators []models.Indicator) error {
	for _, ind := range indicators {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO policy_indicators (policy_id, key, value)
			VALUES ($1, $2, $3);
		`, policyID, ind.Key, ind.Value)
		if err != nil {
			return fmt.Errorf("insert indicator %s: %w", ind.Key, err)
		}
	}
	return nil
}

func (s *Postgres) PoliciesWithIndicators(ctx context.Context, countryID int64) ([]models.PolicyView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.source_url, p.category, p.status, pi.key, pi.value
		FROM policies p
		LEFT JOIN policy_indicators pi ON pi.policy_id = p.id
		WHERE p.country_id = $1
		ORDER BY p.name, p.id, pi.key;
	`, countryID)
	if err != nil {
		return nil, fmt.Errorf("policies with indicators: %w", err)
	}
	defer rows.Close()

	var views []models.PolicyView
	byID := map[int64]int{}
	for rows.Next() {
		var (
			p   models.PolicyView
			key sql.NullString
			val sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.SourceURL, &p.Category, &p.Status, &key, &val); err != nil {
			return nil, fmt.Errorf("scan policy row: %w", err)
		}
		idx, seen := byID[p.ID]
		if !seen {
			p.Indicators = []models.IndicatorView{}
			views = append(views, p)
			idx = len(views) - 1
			byID[p.ID] = idx
		}
		if key.Valid {
			views[idx].Indicators = append(views[idx].Indicators, models.IndicatorView{
				PolicyName: views[idx].Name,
				Key:        key.String,
				Value:      val.String,
				SourceURL:  views[idx].SourceURL,
			})
		}
	}
	return views, rows.Err()
}

func (s *Postgres) IndicatorsByCountry(ctx context.Context, countryID int64) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pi.key, pi.value
		FROM policy_indicators pi
		JOIN policies p ON p.id = pi.policy_id
		WHERE p.country_id = $1
		ORDER BY pi.id;
	`, countryID)
	if err != nil {
		return nil, fmt.Errorf("indicators by country: %w", err)
	}
	defer rows.Close()

	indicators := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan indicator: %w", err)
		}
		indicators[key] = value
	}
	return indicators, rows.Err()
}

func (s *Postgres) InfraSignalsByCountry(ctx context.Context, countryID int64) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric, value
		FROM infra_signals
		WHERE country_id = $1
		ORDER BY id;
	`, countryID)
	if err != nil {
		return nil, fmt.Errorf("infra signals by country: %w", err)
	}
	defer rows.Close()

	signals := map[string]float64{}
	for rows.Next() {
		var metric string
		var value float64
		if err := rows.Scan(&metric, &value); err != nil {
			return nil, fmt.Errorf("scan infra signal: %w", err)
		}
		signals[metric] = value
	}
	return signals, rows.Err()
}

func (s *Postgres) InsertInfraSignal(ctx context.Context, signal models.InfraSignal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO infra_signals (country_id, metric, value)
		VALUES ($1, $2, $3);
	`, signal.CountryID, signal.Metric, signal.Value)
	if err != nil {
		return fmt.Errorf("insert infra signal %s: %w", signal.Metric, err)
	}
	return nil
}

func (s *Postgres) AppendSnapshot(ctx context.Context, snapshot models.Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO readiness_scores (country_id, score, policy_score, infra_score, language_score, risk_score, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, snapshot.CountryID, snapshot.Score, snapshot.PolicyScore, snapshot.InfraScore,
		snapshot.LanguageScore, snapshot.RiskScore, snapshot.ComputedAt)
	if err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}

func (s *Postgres) LatestSnapshot(ctx context.Context, countryID int64) (models.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, country_id, score, policy_score, infra_score, language_score, risk_score, computed_at
		FROM readiness_scores
		WHERE country_id = $1
		ORDER BY computed_at DESC
		LIMIT 1;
	`, countryID)

	var snap models.Snapshot
	err := row.Scan(&snap.ID, &snap.CountryID, &snap.Score, &snap.PolicyScore,
		&snap.InfraScore, &snap.LanguageScore, &snap.RiskScore, &snap.ComputedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Snapshot{}, sentinel.ErrNotFound
		}
		return models.Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return snap, nil
}

// PostgresTxRunner runs a function against a transaction-scoped store,
// committing only when it returns nil.
type PostgresTxRunner struct {
	db *sql.DB
}

// NewPostgresTxRunner constructs a TxRunner over the given database handle.
func NewPostgresTxRunner(db *sql.DB) *PostgresTxRunner {
	return &PostgresTxRunner{db: db}
}

func (r *PostgresTxRunner) RunInTx(ctx context.Context, fn func(Store) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(NewPostgresTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

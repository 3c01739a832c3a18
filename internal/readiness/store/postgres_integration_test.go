//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sovindex/internal/readiness/models"
	"sovindex/internal/readiness/store"
	"sovindex/pkg/platform/sentinel"
	"sovindex/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(store.EnsureSchema(s.ctx, s.postgres.DB))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	// Truncate in dependency order
	err := s.postgres.TruncateTables(s.ctx,
		"policy_indicators", "policies", "infra_signals", "readiness_scores", "countries")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) seedCountry(iso, name string) models.Country {
	country, err := s.store.UpsertCountry(s.ctx, models.Country{ISOCode: iso, Name: name})
	s.Require().NoError(err)
	return country
}

// TestEnsureSchemaIdempotent verifies startup DDL can run repeatedly.
func (s *PostgresStoreSuite) TestEnsureSchemaIdempotent() {
	s.Require().NoError(store.EnsureSchema(s.ctx, s.postgres.DB))
	s.Require().NoError(store.EnsureSchema(s.ctx, s.postgres.DB))
}

func (s *PostgresStoreSuite) TestUpsertCountryOnConflictUpdates() {
	first := s.seedCountry("EU", "EU")
	second := s.seedCountry("EU", "European Union")

	s.Equal(first.ID, second.ID)
	s.Equal("European Union", second.Name)

	countries, err := s.store.ListCountries(s.ctx)
	s.Require().NoError(err)
	s.Len(countries, 1)
}

func (s *PostgresStoreSuite) TestFindCountryByISONotFound() {
	_, err := s.store.FindCountryByISO(s.ctx, "XX")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestSummariesLateralJoin verifies the overview query serves the most recent
// snapshot per country and nulls for unscored countries.
func (s *PostgresStoreSuite) TestSummariesLateralJoin() {
	eu := s.seedCountry("EU", "European Union")
	s.seedCountry("US", "United States")

	older := models.Snapshot{
		CountryID: eu.ID, Score: 50, PolicyScore: 50, InfraScore: 50,
		LanguageScore: 70, RiskScore: 50,
		ComputedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := older
	newer.Score = 61.5
	newer.ComputedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.AppendSnapshot(s.ctx, older))
	s.Require().NoError(s.store.AppendSnapshot(s.ctx, newer))

	summaries, err := s.store.ListSummaries(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)

	s.Equal("EU", summaries[0].ISOCode)
	s.Require().NotNil(summaries[0].ReadinessScore)
	s.Equal(61.5, *summaries[0].ReadinessScore)

	s.Equal("US", summaries[1].ISOCode)
	s.Nil(summaries[1].ReadinessScore)
	s.Nil(summaries[1].PolicyScore)
}

func (s *PostgresStoreSuite) TestSummariesByISO() {
	s.seedCountry("EU", "European Union")
	s.seedCountry("IN", "India")
	s.seedCountry("US", "United States")

	summaries, err := s.store.SummariesByISO(s.ctx, []string{"US", "IN"})
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal("IN", summaries[0].ISOCode)
	s.Equal("US", summaries[1].ISOCode)

	empty, err := s.store.SummariesByISO(s.ctx, []string{"ZZ"})
	s.Require().NoError(err)
	s.Empty(empty)
}

// TestPoliciesWithIndicators verifies the single-join detail query groups
// indicator rows under their policies and keeps indicator-less policies.
func (s *PostgresStoreSuite) TestPoliciesWithIndicators() {
	country := s.seedCountry("EU", "European Union")
	withIndicators, err := s.store.InsertPolicy(s.ctx, models.Policy{
		CountryID: country.ID,
		Name:      "AI Act",
		SourceURL: "https://example.org/ai-act",
		Status:    "in_force",
		RawText:   "ai system obligations",
	})
	s.Require().NoError(err)
	bare, err := s.store.InsertPolicy(s.ctx, models.Policy{
		CountryID: country.ID,
		Name:      "Data Act",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.store.InsertIndicators(s.ctx, withIndicators.ID, []models.Indicator{
		{Key: "mentions_ai_systems", Value: "true"},
		{Key: "mentions_cross_border", Value: "false"},
	}))

	views, err := s.store.PoliciesWithIndicators(s.ctx, country.ID)
	s.Require().NoError(err)
	s.Require().Len(views, 2)

	s.Equal("AI Act", views[0].Name)
	s.Require().Len(views[0].Indicators, 2)
	s.Equal("AI Act", views[0].Indicators[0].PolicyName)
	s.Equal("https://example.org/ai-act", views[0].Indicators[0].SourceURL)

	s.Equal("Data Act", views[1].Name)
	s.Equal(bare.ID, views[1].ID)
	s.Empty(views[1].Indicators)
}

func (s *PostgresStoreSuite) TestIndicatorsByCountryFlattens() {
	country := s.seedCountry("EU", "European Union")
	p1, err := s.store.InsertPolicy(s.ctx, models.Policy{CountryID: country.ID, Name: "AI Act"})
	s.Require().NoError(err)
	p2, err := s.store.InsertPolicy(s.ctx, models.Policy{CountryID: country.ID, Name: "Data Act"})
	s.Require().NoError(err)

	s.Require().NoError(s.store.InsertIndicators(s.ctx, p1.ID, []models.Indicator{
		{Key: "mentions_cross_border", Value: "false"},
	}))
	s.Require().NoError(s.store.InsertIndicators(s.ctx, p2.ID, []models.Indicator{
		{Key: "mentions_cross_border", Value: "true"},
	}))

	flattened, err := s.store.IndicatorsByCountry(s.ctx, country.ID)
	s.Require().NoError(err)
	s.Equal("true", flattened["mentions_cross_border"])
}

func (s *PostgresStoreSuite) TestInfraSignalsRoundTrip() {
	country := s.seedCountry("IN", "India")
	s.Require().NoError(s.store.InsertInfraSignal(s.ctx, models.InfraSignal{
		CountryID: country.ID, Metric: "gpu_capacity_index", Value: 60,
	}))
	s.Require().NoError(s.store.InsertInfraSignal(s.ctx, models.InfraSignal{
		CountryID: country.ID, Metric: "power_cost_index", Value: 70,
	}))

	signals, err := s.store.InfraSignalsByCountry(s.ctx, country.ID)
	s.Require().NoError(err)
	s.Equal(map[string]float64{
		"gpu_capacity_index": 60,
		"power_cost_index":   70,
	}, signals)
}

func (s *PostgresStoreSuite) TestLatestSnapshot() {
	country := s.seedCountry("EU", "European Union")

	_, err := s.store.LatestSnapshot(s.ctx, country.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	computedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.AppendSnapshot(s.ctx, models.Snapshot{
		CountryID: country.ID, Score: 57.54, PolicyScore: 75, InfraScore: 58,
		LanguageScore: 70, RiskScore: 38.6, ComputedAt: computedAt,
	}))

	snap, err := s.store.LatestSnapshot(s.ctx, country.ID)
	s.Require().NoError(err)
	s.Equal(57.54, snap.Score)
	s.True(snap.ComputedAt.Equal(computedAt))
}

// TestTxRunnerRollsBack verifies a failing transaction leaves no rows behind.
func (s *PostgresStoreSuite) TestTxRunnerRollsBack() {
	runner := store.NewPostgresTxRunner(s.postgres.DB)

	errBoom := errors.New("boom")
	err := runner.RunInTx(s.ctx, func(st store.Store) error {
		_, upsertErr := st.UpsertCountry(s.ctx, models.Country{ISOCode: "EU", Name: "European Union"})
		s.Require().NoError(upsertErr)
		return errBoom
	})
	s.Require().ErrorIs(err, errBoom)

	_, err = s.store.FindCountryByISO(s.ctx, "EU")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestTxRunnerCommits() {
	runner := store.NewPostgresTxRunner(s.postgres.DB)

	err := runner.RunInTx(s.ctx, func(st store.Store) error {
		country, upsertErr := st.UpsertCountry(s.ctx, models.Country{ISOCode: "IN", Name: "India"})
		if upsertErr != nil {
			return upsertErr
		}
		return st.AppendSnapshot(s.ctx, models.Snapshot{
			CountryID: country.ID, Score: 40.6, PolicyScore: 50, InfraScore: 50,
			LanguageScore: 55, RiskScore: 54, ComputedAt: time.Now().UTC(),
		})
	})
	s.Require().NoError(err)

	country, err := s.store.FindCountryByISO(s.ctx, "IN")
	s.Require().NoError(err)
	snap, err := s.store.LatestSnapshot(s.ctx, country.ID)
	s.Require().NoError(err)
	s.Equal(40.6, snap.Score)
}

// Package runner orchestrates batch scoring: it joins each country's stored
// signals, runs the calculator, and appends one snapshot per country.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"sovindex/internal/readiness/cache"
	"sovindex/internal/readiness/models"
	"sovindex/internal/readiness/store"
	"sovindex/internal/scoring"
	"sovindex/internal/scoring/metrics"
	"sovindex/pkg/apierror"
)

// Runner executes scoring runs. All snapshots of a run commit in a single
// transaction; a failure on any country aborts the whole run so the history
// never holds a partial batch.
type Runner struct {
	logger  *slog.Logger
	tx      store.TxRunner
	metrics *metrics.Metrics
	cache   *cache.SummaryCache
	now     func() time.Time
}

// New constructs a Runner. metrics and summaryCache may be nil.
func New(tx store.TxRunner, logger *slog.Logger, m *metrics.Metrics, summaryCache *cache.SummaryCache) *Runner {
	return &Runner{
		logger:  logger,
		tx:      tx,
		metrics: m,
		cache:   summaryCache,
		now:     time.Now,
	}
}

// Run computes and persists a readiness snapshot for every stored country.
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.NewString()
	start := r.now()
	r.metrics.IncRuns()
	r.logger.InfoContext(ctx, "scoring run started", "run_id", runID)

	written := 0
	err := r.tx.RunInTx(ctx, func(st store.Store) error {
		countries, err := st.ListCountries(ctx)
		if err != nil {
			return fmt.Errorf("list countries: %w", err)
		}
		computedAt := r.now().UTC()
		for _, country := range countries {
			if err := r.scoreCountry(ctx, st, country, computedAt, runID); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		r.metrics.IncFailures()
		r.logger.ErrorContext(ctx, "scoring run aborted", "run_id", runID, "error", err.Error())
		return err
	}

	r.cache.Invalidate(ctx)
	r.metrics.AddSnapshots(written)
	r.metrics.ObserveRunDuration(r.now().Sub(start).Seconds())
	r.logger.InfoContext(ctx, "scoring run committed", "run_id", runID, "snapshots", written)
	return nil
}

func (r *Runner) scoreCountry(ctx context.Context, st store.Store, country models.Country, computedAt time.Time, runID string) error {
	indicators, err := st.IndicatorsByCountry(ctx, country.ID)
	if err != nil {
		return fmt.Errorf("indicators for %s: %w", country.ISOCode, err)
	}
	signals, err := st.InfraSignalsByCountry(ctx, country.ID)
	if err != nil {
		return fmt.Errorf("infra signals for %s: %w", country.ISOCode, err)
	}
	if err := validateSignals(country.ISOCode, signals); err != nil {
		return err
	}

	policyScore, _ := scoring.PolicyScore(indicators)
	infraScore, _ := scoring.InfraScore(signals)
	languageScore := scoring.LanguageScore(country.ISOCode)
	riskScore := scoring.RiskScore(policyScore, infraScore, languageScore)
	readiness := scoring.Readiness(policyScore, infraScore, languageScore, riskScore)

	err = st.AppendSnapshot(ctx, models.Snapshot{
		CountryID:     country.ID,
		Score:         readiness,
		PolicyScore:   policyScore,
		InfraScore:    infraScore,
		LanguageScore: languageScore,
		RiskScore:     riskScore,
		ComputedAt:    computedAt,
	})
	if err != nil {
		return fmt.Errorf("append snapshot for %s: %w", country.ISOCode, err)
	}

	r.logger.InfoContext(ctx, "country scored",
		"run_id", runID,
		"iso_code", country.ISOCode,
		"name", country.Name,
		"readiness", fmt.Sprintf("%.1f", readiness),
		"policy", fmt.Sprintf("%.1f", policyScore),
		"infra", fmt.Sprintf("%.1f", infraScore),
		"language", fmt.Sprintf("%.1f", languageScore),
		"risk", fmt.Sprintf("%.1f", riskScore),
	)
	return nil
}

// validateSignals rejects non-finite metric values. A malformed signal is
// fatal to the run rather than silently skewing a committed snapshot.
func validateSignals(isoCode string, signals map[string]float64) error {
	for metric, value := range signals {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return apierror.New(apierror.CodeValidation,
				fmt.Sprintf("malformed infra signal %s for %s", metric, isoCode))
		}
	}
	return nil
}

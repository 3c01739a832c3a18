// Package service implements the read-only query operations over the
// readiness index.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"sovindex/internal/readiness/cache"
	"sovindex/internal/readiness/models"
	"sovindex/internal/readiness/store"
	"sovindex/internal/scoring"
	"sovindex/pkg/apierror"
	"sovindex/pkg/platform/sentinel"
)

var tracer = otel.Tracer("sovindex/readiness")

// CountryDetail is the full per-country view: latest snapshot, policies with
// indicator provenance, and the scoring methodology.
type CountryDetail struct {
	ISOCode        string                 `json:"iso_code"`
	Name           string                 `json:"name"`
	ReadinessScore *float64               `json:"readiness_score"`
	PolicyScore    *float64               `json:"policy_score"`
	InfraScore     *float64               `json:"infra_score"`
	LanguageScore  *float64               `json:"language_score"`
	RiskScore      *float64               `json:"risk_score"`
	ComputedAt     *string                `json:"computed_at"`
	Policies       []models.PolicyView    `json:"policies"`
	Methodology    scoring.MethodologyDoc `json:"methodology"`
}

// Service answers the query API. It never mutates state.
type Service struct {
	store store.Store
	cache *cache.SummaryCache
}

// New constructs the query service. cache may be nil.
func New(st store.Store, summaryCache *cache.SummaryCache) *Service {
	return &Service{store: st, cache: summaryCache}
}

// ListCountries returns all countries with their latest snapshot scores in
// name order. Served from the summary cache when warm.
func (s *Service) ListCountries(ctx context.Context) ([]models.CountrySummary, error) {
	ctx, span := tracer.Start(ctx, "readiness.ListCountries")
	defer span.End()

	if summaries, ok := s.cache.Get(ctx); ok {
		return summaries, nil
	}
	summaries, err := s.store.ListSummaries(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.CodeInternal, "failed to list countries", err)
	}
	s.cache.Set(ctx, summaries)
	return summaries, nil
}

// GetCountry returns the detail view for one ISO code. The lookup is
// case-insensitive; unknown codes yield a NotFound error.
func (s *Service) GetCountry(ctx context.Context, isoCode string) (*CountryDetail, error) {
	ctx, span := tracer.Start(ctx, "readiness.GetCountry")
	defer span.End()

	iso := strings.ToUpper(strings.TrimSpace(isoCode))
	country, err := s.store.FindCountryByISO(ctx, iso)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, apierror.New(apierror.CodeNotFound, "country not found")
		}
		return nil, apierror.Wrap(apierror.CodeInternal, "failed to load country", err)
	}

	detail := &CountryDetail{
		ISOCode:     country.ISOCode,
		Name:        country.Name,
		Policies:    []models.PolicyView{},
		Methodology: scoring.Methodology(),
	}

	snap, err := s.store.LatestSnapshot(ctx, country.ID)
	switch {
	case err == nil:
		detail.ReadinessScore = &snap.Score
		detail.PolicyScore = &snap.PolicyScore
		detail.InfraScore = &snap.InfraScore
		detail.LanguageScore = &snap.LanguageScore
		detail.RiskScore = &snap.RiskScore
		computedAt := snap.ComputedAt.Format(time.RFC3339)
		detail.ComputedAt = &computedAt
	case errors.Is(err, sentinel.ErrNotFound):
		// No snapshot yet; score fields stay null.
	default:
		return nil, apierror.Wrap(apierror.CodeInternal, "failed to load latest snapshot", err)
	}

	policies, err := s.store.PoliciesWithIndicators(ctx, country.ID)
	if err != nil {
		return nil, apierror.Wrap(apierror.CodeInternal, "failed to load policies", err)
	}
	if policies != nil {
		detail.Policies = policies
	}
	return detail, nil
}

// Compare returns summaries for the requested ISO codes in name order. An
// empty input returns an empty list rather than an error; unknown codes are
// simply absent from the result.
func (s *Service) Compare(ctx context.Context, isoCodes []string) ([]models.CountrySummary, error) {
	ctx, span := tracer.Start(ctx, "readiness.Compare")
	defer span.End()

	if len(isoCodes) == 0 {
		return []models.CountrySummary{}, nil
	}
	codes := make([]string, 0, len(isoCodes))
	for _, code := range isoCodes {
		codes = append(codes, strings.ToUpper(strings.TrimSpace(code)))
	}
	summaries, err := s.store.SummariesByISO(ctx, codes)
	if err != nil {
		return nil, apierror.Wrap(apierror.CodeInternal, "failed to compare countries", err)
	}
	return summaries, nil
}

// Methodology returns the published scoring methodology.
func (s *Service) Methodology(ctx context.Context) scoring.MethodologyDoc {
	_, span := tracer.Start(ctx, "readiness.Methodology")
	defer span.End()
	return scoring.Methodology()
}

package store

import (
	"context"
	"sort"
	"sync"

	"sovindex/internal/readiness/models"
	"sovindex/pkg/platform/sentinel"
)

// InMemory is a map-backed Store used in tests and local runs without
// Postgres. It mirrors the SQL store's observable behavior, including name
// ordering and last-write-wins indicator flattening.
type InMemory struct {
	mu         sync.RWMutex
	nextID     int64
	countries  map[int64]models.Country
	policies   map[int64]models.Policy
	indicators []models.Indicator
	signals    []models.InfraSignal
	snapshots  []models.Snapshot
}

// NewInMemory constructs an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{
		countries: make(map[int64]models.Country),
		policies:  make(map[int64]models.Policy),
	}
}

func (s *InMemory) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *InMemory) UpsertCountry(_ context.Context, country models.Country) (models.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.countries {
		if existing.ISOCode == country.ISOCode {
			existing.Name = country.Name
			existing.Region = country.Region
			s.countries[id] = existing
			return existing, nil
		}
	}
	country.ID = s.id()
	s.countries[country.ID] = country
	return country, nil
}

func (s *InMemory) ListCountries(_ context.Context) ([]models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	countries := make([]models.Country, 0, len(s.countries))
	for _, c := range s.countries {
		countries = append(countries, c)
	}
	sort.Slice(countries, func(i, j int) bool { return countries[i].Name < countries[j].Name })
	return countries, nil
}

func (s *InMemory) FindCountryByISO(_ context.Context, isoCode string) (models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.countries {
		if c.ISOCode == isoCode {
			return c, nil
		}
	}
	return models.Country{}, sentinel.ErrNotFound
}

func (s *InMemory) ListSummaries(ctx context.Context) ([]models.CountrySummary, error) {
	countries, _ := s.ListCountries(ctx)
	summaries := make([]models.CountrySummary, 0, len(countries))
	for _, c := range countries {
		summaries = append(summaries, s.summary(c))
	}
	return summaries, nil
}

func (s *InMemory) SummariesByISO(ctx context.Context, isoCodes []string) ([]models.CountrySummary, error) {
	wanted := make(map[string]bool, len(isoCodes))
	for _, code := range isoCodes {
		wanted[code] = true
	}
	countries, _ := s.ListCountries(ctx)
	summaries := []models.CountrySummary{}
	for _, c := range countries {
		if wanted[c.ISOCode] {
			summaries = append(summaries, s.summary(c))
		}
	}
	return summaries, nil
}

func (s *InMemory) summary(c models.Country) models.CountrySummary {
	out := models.CountrySummary{ISOCode: c.ISOCode, Name: c.Name}
	snap, err := s.LatestSnapshot(context.Background(), c.ID)
	if err != nil {
		return out
	}
	out.ReadinessScore = &snap.Score
	out.PolicyScore = &snap.PolicyScore
	out.InfraScore = &snap.InfraScore
	out.LanguageScore = &snap.LanguageScore
	out.RiskScore = &snap.RiskScore
	return out
}

func (s *InMemory) InsertPolicy(_ context.Context, policy models.Policy) (models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	policy.ID = s.id()
	s.policies[policy.ID] = policy
	return policy, nil
}

func (s *InMemory) InsertIndicators(_ context.Context, policyID int64, indicators []models.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ind := range indicators {
		ind.ID = s.id()
		ind.PolicyID = policyID
		s.indicators = append(s.indicators, ind)
	}
	return nil
}

func (s *InMemory) PoliciesWithIndicators(_ context.Context, countryID int64) ([]models.PolicyView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var views []models.PolicyView
	for _, p := range s.policies {
		if p.CountryID != countryID {
			continue
		}
		view := models.PolicyView{
			ID:         p.ID,
			Name:       p.Name,
			SourceURL:  p.SourceURL,
			Category:   p.Category,
			Status:     p.Status,
			Indicators: []models.IndicatorView{},
		}
		for _, ind := range s.indicators {
			if ind.PolicyID == p.ID {
				view.Indicators = append(view.Indicators, models.IndicatorView{
					PolicyName: p.Name,
					Key:        ind.Key,
					Value:      ind.Value,
					SourceURL:  p.SourceURL,
				})
			}
		}
		sort.Slice(view.Indicators, func(i, j int) bool {
			return view.Indicators[i].Key < view.Indicators[j].Key
		})
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Name != views[j].Name {
			return views[i].Name < views[j].Name
		}
		return views[i].ID < views[j].ID
	})
	return views, nil
}

func (s *InMemory) IndicatorsByCountry(_ context.Context, countryID int64) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flattened := map[string]string{}
	for _, ind := range s.indicators {
		policy, ok := s.policies[ind.PolicyID]
		if !ok || policy.CountryID != countryID {
			continue
		}
		flattened[ind.Key] = ind.Value
	}
	return flattened, nil
}

func (s *InMemory) InfraSignalsByCountry(_ context.Context, countryID int64) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	signals := map[string]float64{}
	for _, sig := range s.signals {
		if sig.CountryID == countryID {
			signals[sig.Metric] = sig.Value
		}
	}
	return signals, nil
}

func (s *InMemory) InsertInfraSignal(_ context.Context, signal models.InfraSignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	signal.ID = s.id()
	s.signals = append(s.signals, signal)
	return nil
}

func (s *InMemory) AppendSnapshot(_ context.Context, snapshot models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot.ID = s.id()
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

func (s *InMemory) LatestSnapshot(_ context.Context, countryID int64) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Snapshot
	for i := range s.snapshots {
		snap := &s.snapshots[i]
		if snap.CountryID != countryID {
			continue
		}
		if latest == nil || snap.ComputedAt.After(latest.ComputedAt) {
			latest = snap
		}
	}
	if latest == nil {
		return models.Snapshot{}, sentinel.ErrNotFound
	}
	return *latest, nil
}

// RunInTx applies fn to a deep copy of the store and swaps the copy in only on
// success, giving tests the same all-or-nothing semantics as the SQL runner.
func (s *InMemory) RunInTx(_ context.Context, fn func(Store) error) error {
	staged := s.clone()
	if err := fn(staged); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = staged.nextID
	s.countries = staged.countries
	s.policies = staged.policies
	s.indicators = staged.indicators
	s.signals = staged.signals
	s.snapshots = staged.snapshots
	return nil
}

func (s *InMemory) clone() *InMemory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copyStore := &InMemory{
		nextID:     s.nextID,
		countries:  make(map[int64]models.Country, len(s.countries)),
		policies:   make(map[int64]models.Policy, len(s.policies)),
		indicators: append([]models.Indicator{}, s.indicators...),
		signals:    append([]models.InfraSignal{}, s.signals...),
		snapshots:  append([]models.Snapshot{}, s.snapshots...),
	}
	for id, c := range s.countries {
		copyStore.countries[id] = c
	}
	for id, p := range s.policies {
		copyStore.policies[id] = p
	}
	return copyStore
}

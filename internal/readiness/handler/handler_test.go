package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sovindex/internal/readiness/handler/mocks"
	"sovindex/internal/readiness/models"
	"sovindex/internal/readiness/service"
	"sovindex/internal/scoring"
	"sovindex/pkg/apierror"
	"sovindex/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mocks.go -package=mocks Service

type ReadinessHandlerSuite struct {
	suite.Suite
}

func TestReadinessHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReadinessHandlerSuite))
}

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r, mockService
}

func ptr(v float64) *float64 { return &v }

func (s *ReadinessHandlerSuite) TestHealth() {
	router, _ := newTestRouter(s.T())

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/health"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]string](s.T(), rr)
	s.Equal("ok", (*resp)["status"])
}

func (s *ReadinessHandlerSuite) TestRootListsRoutes() {
	router, _ := newTestRouter(s.T())

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	s.Contains((*resp)["try"], "/countries")
}

func (s *ReadinessHandlerSuite) TestListCountries() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().ListCountries(gomock.Any()).Return([]models.CountrySummary{
		{ISOCode: "EU", Name: "European Union", ReadinessScore: ptr(60.4)},
		{ISOCode: "US", Name: "United States"},
	}, nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/countries"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
	s.Require().Len(*resp, 2)
	s.Equal(60.4, (*resp)[0]["readiness_score"])
	// Unscored countries serialize score fields as explicit nulls.
	s.Nil((*resp)[1]["readiness_score"])
}

func (s *ReadinessHandlerSuite) TestGetCountryUnknownReturns404() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().GetCountry(gomock.Any(), "XX").
		Return(nil, apierror.New(apierror.CodeNotFound, "country not found"))

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/country/XX"))

	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	testutil.AssertErrorCode(s.T(), rr, "not_found")
}

func (s *ReadinessHandlerSuite) TestGetCountryDetail() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().GetCountry(gomock.Any(), "EU").Return(&service.CountryDetail{
		ISOCode:        "EU",
		Name:           "European Union",
		ReadinessScore: ptr(60.4),
		Policies: []models.PolicyView{{
			ID:   1,
			Name: "AI Act",
			Indicators: []models.IndicatorView{{
				PolicyName: "AI Act",
				Key:        "mentions_ai_systems",
				Value:      "true",
			}},
		}},
		Methodology: scoring.Methodology(),
	}, nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/country/EU"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	s.Equal("EU", (*resp)["iso_code"])
	policies := (*resp)["policies"].([]any)
	s.Require().Len(policies, 1)
}

func (s *ReadinessHandlerSuite) TestCompareWithoutParamsReturnsEmptyList() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().Compare(gomock.Any(), gomock.Nil()).
		Return([]models.CountrySummary{}, nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/compare"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	assert.JSONEq(s.T(), "[]", string(testutil.ReadBody(s.T(), rr)))
}

func (s *ReadinessHandlerSuite) TestCompareForwardsCodes() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().Compare(gomock.Any(), []string{"EU", "IN"}).
		Return([]models.CountrySummary{
			{ISOCode: "EU", Name: "European Union"},
			{ISOCode: "IN", Name: "India"},
		}, nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/compare?iso=EU&iso=IN"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
	s.Len(*resp, 2)
}

func (s *ReadinessHandlerSuite) TestMethodologyWeights() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().Methodology(gomock.Any()).Return(scoring.Methodology())

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/methodology"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[scoring.MethodologyDoc](s.T(), rr)
	s.Equal(map[string]float64{
		"policy":       0.4,
		"infra":        0.3,
		"language":     0.2,
		"risk_penalty": 0.1,
	}, resp.Weights)
}

func (s *ReadinessHandlerSuite) TestServiceErrorReturns500() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().ListCountries(gomock.Any()).
		Return(nil, apierror.New(apierror.CodeInternal, "failed to list countries"))

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/countries"))

	testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	testutil.AssertErrorCode(s.T(), rr, "internal")
}

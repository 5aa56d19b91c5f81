package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/service"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmissionService struct {
	outcome *entity.SubmissionOutcome
	bid     *entity.BidOutputModel
	err     error
}

func (s *fakeSubmissionService) RegisterBidder(context.Context, *entity.CreateBidderInput) (*entity.BidderOutputModel, error) {
	return nil, s.err
}

func (s *fakeSubmissionService) GetBidderById(context.Context, string) (*entity.BidderOutputModel, error) {
	return nil, s.err
}

func (s *fakeSubmissionService) Submit(context.Context, *entity.SubmitBidInput) (*entity.SubmissionOutcome, error) {
	return s.outcome, s.err
}

func (s *fakeSubmissionService) GetBidById(context.Context, string) (*entity.BidOutputModel, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.bid, nil
}

func (s *fakeSubmissionService) GetBids(context.Context, string, *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	return nil, s.err
}

func setupBidHandler(t *testing.T, submission service.Submission) *echo.Echo {
	t.Helper()
	e := echo.New()
	SetupRoutesHandlers(e, &service.Services{
		Submission: submission,
		Ranking:    &service.RankingService{},
		Insight:    &service.InsightService{},
	})

	return e
}

const validBidBody = `{
	"bidderId": "11111111-1111-1111-1111-111111111111",
	"projectId": "metro-fiber-2024",
	"bidAmount": 250000,
	"serviceRequirements": {"serviceLevel": "premium", "minimumBandwidth": 1000, "latencyMs": 5, "reliability": 99.99},
	"costs": {"setupCost": 15000, "monthlyRecurringCost": 4000, "maintenanceCost": 800, "currency": "USD"},
	"technicalSpecification": {"technology": "fiber", "implementationTimeframe": 90, "equipmentDetails": ["router", "switch", "firewall"]},
	"complianceDetails": {"regulatoryCompliance": true}
}`

func TestPostBid_Accepted(t *testing.T) {
	submission := &fakeSubmissionService{
		outcome: &entity.SubmissionOutcome{
			Accepted: true,
			Receipt:  &entity.BidReceipt{BidId: "b1", Score: 100, Feedback: "ok"},
		},
	}
	e := setupBidHandler(t, submission)

	req := httptest.NewRequest(http.MethodPost, "/api/bids/new", strings.NewReader(validBidBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response submissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Accepted)
	require.NotNil(t, response.Receipt)
	assert.Equal(t, 100, response.Receipt.Score)
}

func TestPostBid_IneligibleBidder(t *testing.T) {
	submission := &fakeSubmissionService{
		outcome: &entity.SubmissionOutcome{
			Accepted: false,
			Reasons:  []string{"Bidder NetServe Ltd is not registered."},
		},
	}
	e := setupBidHandler(t, submission)

	req := httptest.NewRequest(http.MethodPost, "/api/bids/new", strings.NewReader(validBidBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var response submissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Accepted)
	assert.Nil(t, response.Receipt)
	assert.Len(t, response.Reasons, 1)
}

func TestPostBid_RejectsInvalidServiceLevel(t *testing.T) {
	e := setupBidHandler(t, &fakeSubmissionService{})

	body := strings.Replace(validBidBody, `"premium"`, `"platinum"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/bids/new", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostBid_UnknownBidder(t *testing.T) {
	e := setupBidHandler(t, &fakeSubmissionService{err: service.ErrBidderNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/bids/new", strings.NewReader(validBidBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBid_NotFound(t *testing.T) {
	e := setupBidHandler(t, &fakeSubmissionService{err: service.ErrBidNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/bids/unknown-id", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skarbek/treasury-server-go/internal/model"
	"github.com/skarbek/treasury-server-go/internal/service"
)

func newAdminHandlerFixture() (*AdminHandler, *mockContributionRepo, *mockCampaignRepo, *mockParentRepo) {
	contribRepo := new(mockContributionRepo)
	campaignRepo := new(mockCampaignRepo)
	parentRepo := new(mockParentRepo)

	ledger := service.NewLedgerService(contribRepo, campaignRepo, parentRepo)
	h := &AdminHandler{ledger: ledger}
	return h, contribRepo, campaignRepo, parentRepo
}

func TestAdminCreateContribution(t *testing.T) {
	t.Run("ensures a pending record for the pair", func(t *testing.T) {
		h, contribRepo, campaignRepo, parentRepo := newAdminHandlerFixture()

		campaignRepo.On("FindByID", mock.Anything, "camp-1").
			Return(&model.Campaign{ID: "camp-1", TargetAmount: 50}, nil)
		parentRepo.On("FindByID", mock.Anything, "parent-1").
			Return(&model.Parent{ID: "parent-1"}, nil)
		contribRepo.On("Ensure", mock.Anything, model.EnsureContributionParams{
			CampaignID:     "camp-1",
			ParentID:       "parent-1",
			AmountExpected: 50,
		}).Return(&model.Contribution{ID: "contrib-1", Status: model.ContributionPending}, nil)

		body := bytes.NewBufferString(`{"campaignId": "camp-1", "parentId": "parent-1"}`)
		req := httptest.NewRequest(http.MethodPost, "/contributions", body)
		rec := httptest.NewRecorder()

		h.CreateContribution(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "pending")
		contribRepo.AssertExpectations(t)
	})

	t.Run("returns 400 when campaignId is missing", func(t *testing.T) {
		h, _, _, _ := newAdminHandlerFixture()

		body := bytes.NewBufferString(`{"parentId": "parent-1"}`)
		req := httptest.NewRequest(http.MethodPost, "/contributions", body)
		rec := httptest.NewRecorder()

		h.CreateContribution(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing_required")
	})

	t.Run("returns 409 for a closed campaign", func(t *testing.T) {
		h, contribRepo, campaignRepo, _ := newAdminHandlerFixture()

		campaignRepo.On("FindByID", mock.Anything, "camp-closed").
			Return(&model.Campaign{ID: "camp-closed", IsClosed: true}, nil)

		body := bytes.NewBufferString(`{"campaignId": "camp-closed", "parentId": "parent-1"}`)
		req := httptest.NewRequest(http.MethodPost, "/contributions", body)
		rec := httptest.NewRecorder()

		h.CreateContribution(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "campaign_closed")
		contribRepo.AssertNotCalled(t, "Ensure")
	})
}

func TestAdminMarkPaid(t *testing.T) {
	t.Run("marks an existing record paid", func(t *testing.T) {
		h, contribRepo, _, _ := newAdminHandlerFixture()

		contribRepo.On("MarkPaid", mock.Anything, "camp-1", "parent-1", 50.0, (*string)(nil)).
			Return(&model.Contribution{
				ID:         "contrib-1",
				Status:     model.ContributionPaid,
				AmountPaid: 50,
			}, nil)

		body := bytes.NewBufferString(`{"campaignId": "camp-1", "parentId": "parent-1", "amount": 50}`)
		req := httptest.NewRequest(http.MethodPost, "/contributions/mark-paid", body)
		rec := httptest.NewRecorder()

		h.MarkPaid(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "paid")
	})

	t.Run("returns 404 when no record exists for the pair", func(t *testing.T) {
		h, contribRepo, _, _ := newAdminHandlerFixture()

		contribRepo.On("MarkPaid", mock.Anything, "camp-1", "parent-1", 50.0, (*string)(nil)).
			Return(nil, nil)

		body := bytes.NewBufferString(`{"campaignId": "camp-1", "parentId": "parent-1", "amount": 50}`)
		req := httptest.NewRequest(http.MethodPost, "/contributions/mark-paid", body)
		rec := httptest.NewRecorder()

		h.MarkPaid(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "not_found")
	})

	t.Run("returns 400 for invalid body", func(t *testing.T) {
		h, _, _, _ := newAdminHandlerFixture()

		body := bytes.NewBufferString(`{invalid json}`)
		req := httptest.NewRequest(http.MethodPost, "/contributions/mark-paid", body)
		rec := httptest.NewRecorder()

		h.MarkPaid(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation_error")
	})
}

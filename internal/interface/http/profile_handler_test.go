package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstack/farm-api/internal/application"
	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type stubFarmers struct {
	profiles map[string]*entity.FarmerProfile
}

func (s *stubFarmers) Upsert(_ context.Context, p *entity.FarmerProfile) error {
	s.profiles[p.AccountID] = p
	return nil
}

func (s *stubFarmers) GetByAccountID(_ context.Context, accountID string) (*entity.FarmerProfile, error) {
	p, ok := s.profiles[accountID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func adminFarmerRouter(farmers repository.FarmerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProfileHandler(application.NewFarmerService(farmers), nil)
	r := gin.New()
	r.GET("/admin/farmers/:id", h.GetFarmerAdmin)
	return r
}

func TestGetFarmerAdminRedactsBankDetails(t *testing.T) {
	t.Parallel()
	farmers := &stubFarmers{profiles: map[string]*entity.FarmerProfile{
		"f1": {
			AccountID:         "f1",
			FarmName:          "Hilltop Dairy",
			Location:          "Valley Road",
			BankAccountNumber: "1234567890",
			BankRoutingCode:   "011000015",
		},
	}}
	r := adminFarmerRouter(farmers)

	req := httptest.NewRequest(http.MethodGet, "/admin/farmers/f1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Hilltop Dairy")
	assert.NotContains(t, body, "1234567890")
	assert.NotContains(t, body, "011000015")

	// The stored profile keeps its bank fields; only the view is blanked.
	assert.Equal(t, "1234567890", farmers.profiles["f1"].BankAccountNumber)
}

func TestGetFarmerAdminUnknownFarmer(t *testing.T) {
	t.Parallel()
	r := adminFarmerRouter(&stubFarmers{profiles: map[string]*entity.FarmerProfile{}})

	req := httptest.NewRequest(http.MethodGet, "/admin/farmers/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

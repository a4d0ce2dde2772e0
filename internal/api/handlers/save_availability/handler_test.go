package save_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct {
	session   domain.Session
	stylistID string
	result    *models.SaveResult
	err       error
}

func (f *fakeService) Save(_ context.Context, session domain.Session, stylistID string) (*models.SaveResult, error) {
	f.session, f.stylistID = session, stylistID
	return f.result, f.err
}

func post(svc AvailabilityService) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/stylists/{stylistId}/availability", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPost, "/stylists/st-1/availability", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), domain.Session{StylistID: "adm", Role: domain.RoleAdmin, Token: "tkn"}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Saved(t *testing.T) {
	svc := &fakeService{result: &models.SaveResult{
		StylistID:    "st-1",
		Saved:        []domain.PayloadEntry{{Date: "2025-01-11", Slots: []domain.TimeSlot{}}},
		ClearedDates: []string{"2025-01-11"},
	}}

	rec := post(svc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "st-1", svc.stylistID)
	assert.Equal(t, "tkn", svc.session.Token)

	var body models.SaveResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"2025-01-11"}, body.ClearedDates)
}

func TestHandle_NothingToSave(t *testing.T) {
	svc := &fakeService{err: &availability.Error{
		Kind:    availability.KindNoValidData,
		Message: "Select at least one time slot or mark the day as closed",
	}}

	rec := post(svc)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no_valid_data", body.Kind)
}

package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/bookings/models"
)

type stubService struct {
	err      error
	lastUnix int64
}

func (s *stubService) Cancel(_ context.Context, _ domain.Viewer, unix int64) (*models.BookingResponse, error) {
	s.lastUnix = unix
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{Unix: unix}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doDelete(svc *stubService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{unix}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req = req.WithContext(middleware.WithViewer(req.Context(), domain.Viewer{UserID: 1}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &stubService{}

	rec := doDelete(svc, "/bookings/1705053600")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1705053600), svc.lastUnix)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{bookings.ErrBookingNotFound, http.StatusBadRequest},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrCannotCancel, http.StatusConflict},
		{bookings.ErrConfigMissing, http.StatusServiceUnavailable},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := doDelete(&stubService{err: tt.err}, "/bookings/100")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandle_BadUnix(t *testing.T) {
	rec := doDelete(&stubService{}, "/bookings/abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

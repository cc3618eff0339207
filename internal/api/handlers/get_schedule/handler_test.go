package get_schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	getSchedule "github.com/m04kA/SMC-SlotScheduler/internal/usecase/get_schedule"
)

type stubUseCase struct {
	resp *getSchedule.Response
	err  error
}

func (s *stubUseCase) Execute(context.Context, *getSchedule.Request) (*getSchedule.Response, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func oneDay() *getSchedule.Response {
	occupant := &domain.Occupant{ID: 5, Name: "Ann", Surname: "Lee", Email: "ann@example.com"}
	return &getSchedule.Response{Days: []domain.DaySchedule{{
		Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Slots: []domain.SlotState{
			{Unix: 1, Time: "10:00", Status: domain.SlotBooked, Occupant: occupant},
			{Unix: 2, Time: "11:00", Status: domain.SlotAvailable},
		},
	}}}
}

func serve(t *testing.T, uc *stubUseCase, viewer *domain.Viewer) (*httptest.ResponseRecorder, []map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil)
	if viewer != nil {
		req = req.WithContext(middleware.WithViewer(req.Context(), *viewer))
	}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, req)

	var body []map[string]interface{}
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHandle_UserSeesBareID(t *testing.T) {
	rec, body := serve(t, &stubUseCase{resp: oneDay()}, &domain.Viewer{UserID: 5})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body, 1)
	assert.Equal(t, "2024-01-10", body[0]["date"])

	slots := body[0]["slots"].([]interface{})
	occupant := slots[0].(map[string]interface{})["occupant"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"_id": float64(5)}, occupant)
	assert.Nil(t, slots[1].(map[string]interface{})["occupant"])
}

func TestHandle_AdminSeesProfile(t *testing.T) {
	rec, body := serve(t, &stubUseCase{resp: oneDay()}, &domain.Viewer{UserID: 9, IsAdmin: true})

	require.Equal(t, http.StatusOK, rec.Code)
	slots := body[0]["slots"].([]interface{})
	occupant := slots[0].(map[string]interface{})["occupant"].(map[string]interface{})
	assert.Equal(t, "Ann", occupant["name"])
	assert.Equal(t, "Lee", occupant["surname"])
	assert.Equal(t, "ann@example.com", occupant["email"])
	assert.Equal(t, float64(5), occupant["_id"])
}

func TestHandle_Errors(t *testing.T) {
	rec, _ := serve(t, &stubUseCase{resp: oneDay()}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, &stubUseCase{err: getSchedule.ErrConfigMissing}, &domain.Viewer{UserID: 1})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = serve(t, &stubUseCase{err: getSchedule.ErrInternal}, &domain.Viewer{UserID: 1})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

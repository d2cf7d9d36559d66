package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/service"
)

type stubAvailabilityService struct {
	snapshot  []domain.TileStatus
	lastActed uint
}

func (s *stubAvailabilityService) Snapshot() []domain.TileStatus {
	return s.snapshot
}

func (s *stubAvailabilityService) Status(id uint) (domain.TileStatus, error) {
	for _, status := range s.snapshot {
		if status.ActivityID == id {
			return status, nil
		}
	}

	return domain.TileStatus{}, service.ErrActivityNotTracked
}

func (s *stubAvailabilityService) act(id uint, message string) (domain.StatusEvent, error) {
	status, err := s.Status(id)
	if err != nil {
		return domain.StatusEvent{}, err
	}

	s.lastActed = id

	return domain.StatusEvent{TileStatus: status, Message: message}, nil
}

func (s *stubAvailabilityService) ManualToggle(id uint) (domain.StatusEvent, error) {
	return s.act(id, "The activity has been marked as in use.")
}

func (s *stubAvailabilityService) Stop(id uint) (domain.StatusEvent, error) {
	return s.act(id, "Timer stopped. The activity is now available.")
}

func (s *stubAvailabilityService) Restart(id uint) (domain.StatusEvent, error) {
	return s.act(id, "The timer has been reset to 30 minutes.")
}

func (s *stubAvailabilityService) Subscribe() (<-chan domain.StatusEvent, func()) {
	ch := make(chan domain.StatusEvent)
	close(ch)

	return ch, func() {}
}

func newAvailabilityTestRouter(svc AvailabilityService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAvailabilityHandler(svc)
	router := gin.New()
	router.GET("/availability", handler.HandleGetAvailability)
	router.POST("/availability/:activityID/toggle", handler.HandleToggle)
	router.POST("/availability/:activityID/stop", handler.HandleStop)
	router.POST("/availability/:activityID/restart", handler.HandleRestart)

	return router
}

func TestHandleGetAvailability(t *testing.T) {
	endsAt := time.Date(2024, 3, 15, 14, 45, 0, 0, time.UTC)
	router := newAvailabilityTestRouter(&stubAvailabilityService{snapshot: []domain.TileStatus{
		{ActivityID: 1, Available: true},
		{ActivityID: 2, Available: false, EndsAt: &endsAt, NextAvailable: "14:45", Countdown: "45:00"},
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/availability", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"activity_id":1,"available":true},
		{"activity_id":2,"available":false,"ends_at":"2024-03-15T14:45:00Z","next_available":"14:45","countdown":"45:00"}
	]`, w.Body.String())
}

func TestHandleToggle(t *testing.T) {
	svc := &stubAvailabilityService{snapshot: []domain.TileStatus{{ActivityID: 1, Available: true}}}
	router := newAvailabilityTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/availability/1/toggle", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), svc.lastActed)
	assert.Contains(t, w.Body.String(), "marked as in use")
}

func TestHandleToggle_UnknownActivity(t *testing.T) {
	router := newAvailabilityTestRouter(&stubAvailabilityService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/availability/99/toggle", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleStop_InvalidID(t *testing.T) {
	router := newAvailabilityTestRouter(&stubAvailabilityService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/availability/not-a-number/stop", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRestart(t *testing.T) {
	svc := &stubAvailabilityService{snapshot: []domain.TileStatus{{ActivityID: 3, Available: false}}}
	router := newAvailabilityTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/availability/3/restart", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reset to 30 minutes")
}

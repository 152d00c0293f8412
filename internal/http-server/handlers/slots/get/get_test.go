package get

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainslot-service/api"
	"trainslot-service/pkg/response"
)

type stubGetter struct {
	slots []*api.SlotResponse
	err   error

	trainerID string
	date      string
	duration  int
}

func (s *stubGetter) GetAvailableSlots(ctx context.Context, trainerID, date string, durationMinutes int) ([]*api.SlotResponse, error) {
	s.trainerID = trainerID
	s.date = date
	s.duration = durationMinutes

	return s.slots, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetSlots(t *testing.T) {
	getter := &stubGetter{slots: []*api.SlotResponse{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "11:00", EndTime: "12:00"},
	}}

	handler := New(discardLogger(), getter)

	req := httptest.NewRequest(http.MethodGet, "/slots?trainer_id=trainer-1&date=2025-08-18&duration=60", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trainer-1", getter.trainerID)
	assert.Equal(t, "2025-08-18", getter.date)
	assert.Equal(t, 60, getter.duration)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
}

func TestGetSlotsMissingParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no trainer_id", "/slots?date=2025-08-18&duration=60"},
		{"no date", "/slots?trainer_id=trainer-1&duration=60"},
		{"no duration", "/slots?trainer_id=trainer-1&date=2025-08-18"},
		{"bad duration", "/slots?trainer_id=trainer-1&date=2025-08-18&duration=soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(discardLogger(), &stubGetter{})

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetSlotsErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("service: %w", response.ErrInvalidDuration), http.StatusBadRequest},
		{fmt.Errorf("service: %w", response.ErrMalformedDate), http.StatusBadRequest},
		{fmt.Errorf("service: %w", response.ErrStorageUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("service: boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		handler := New(discardLogger(), &stubGetter{err: tt.err})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/slots?trainer_id=trainer-1&date=2025-08-18&duration=60", nil))

		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}

func TestGetSlotsEmptyIsOK(t *testing.T) {
	handler := New(discardLogger(), &stubGetter{slots: []*api.SlotResponse{}})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/slots?trainer_id=trainer-1&date=2025-08-18&duration=60", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Slots)
}

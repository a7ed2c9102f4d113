package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"careslot/internal/delivery/dto"
	"careslot/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailabilityUsecase struct {
	dates     *dto.AvailableDatesResponse
	slots     *dto.AvailableSlotsResponse
	err       error
	gotDoctor uuid.UUID
	gotDate   string
	gotCenter *uuid.UUID
}

func (f *fakeAvailabilityUsecase) ListAvailableDates(ctx context.Context, doctorID uuid.UUID, centerID *uuid.UUID, startDate, endDate string) (*dto.AvailableDatesResponse, error) {
	f.gotDoctor = doctorID
	f.gotCenter = centerID
	return f.dates, f.err
}

func (f *fakeAvailabilityUsecase) ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, centerID *uuid.UUID) (*dto.AvailableSlotsResponse, error) {
	f.gotDoctor = doctorID
	f.gotDate = date
	f.gotCenter = centerID
	return f.slots, f.err
}

func newAvailabilityRouter(fake *fakeAvailabilityUsecase) *mux.Router {
	h := NewAvailabilityHandler(fake)
	r := mux.NewRouter()
	r.HandleFunc("/doctors/{id}/available-dates", h.GetAvailableDates).Methods(http.MethodGet)
	r.HandleFunc("/doctors/{id}/available-slots", h.GetAvailableSlots).Methods(http.MethodGet)
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetAvailableSlots(t *testing.T) {
	doctorID := uuid.New()

	t.Run("returns the resolved slot view", func(t *testing.T) {
		fake := &fakeAvailabilityUsecase{
			slots: &dto.AvailableSlotsResponse{
				Date:  "2026-09-07",
				Slots: []string{"09:00", "10:00"},
				AvailableSlots: []dto.SlotView{
					{Time: "09:00"},
					{Time: "09:30", IsBooked: true},
					{Time: "10:00"},
				},
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/available-slots?date=2026-09-07", nil)
		rec := httptest.NewRecorder()
		newAvailabilityRouter(fake).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, doctorID, fake.gotDoctor)
		assert.Equal(t, "2026-09-07", fake.gotDate)
		assert.Nil(t, fake.gotCenter)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["slots"], 2)
		assert.Len(t, data["available_slots"], 3)
	})

	t.Run("passes center filter through", func(t *testing.T) {
		centerID := uuid.New()
		fake := &fakeAvailabilityUsecase{slots: &dto.AvailableSlotsResponse{Date: "2026-09-07"}}

		req := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/available-slots?date=2026-09-07&center_id="+centerID.String(), nil)
		rec := httptest.NewRecorder()
		newAvailabilityRouter(fake).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, fake.gotCenter)
		assert.Equal(t, centerID, *fake.gotCenter)
	})

	t.Run("missing date parameter", func(t *testing.T) {
		fake := &fakeAvailabilityUsecase{}

		req := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/available-slots", nil)
		rec := httptest.NewRecorder()
		newAvailabilityRouter(fake).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid doctor id", func(t *testing.T) {
		fake := &fakeAvailabilityUsecase{}

		req := httptest.NewRequest(http.MethodGet, "/doctors/not-a-uuid/available-slots?date=2026-09-07", nil)
		rec := httptest.NewRecorder()
		newAvailabilityRouter(fake).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown doctor maps to 404", func(t *testing.T) {
		fake := &fakeAvailabilityUsecase{err: usecase.ErrDoctorNotFound}

		req := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/available-slots?date=2026-09-07", nil)
		rec := httptest.NewRecorder()
		newAvailabilityRouter(fake).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetAvailableDates(t *testing.T) {
	doctorID := uuid.New()

	t.Run("returns working dates", func(t *testing.T) {
		fake := &fakeAvailabilityUsecase{
			dates: &dto.AvailableDatesResponse{
				AvailableDates: []dto.AvailableDate{
					{Date: "2026-09-07", DayOfWeek: 1, SlotCount: 4},
				},
				WorkingDays: []int{1},
				Total:       1,
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/available-dates", nil)
		rec := httptest.NewRecorder()
		newAvailabilityRouter(fake).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		data := body["data"].(map[string]interface{})
		assert.EqualValues(t, 1, data["total"])
	})

	t.Run("invalid date range maps to 400", func(t *testing.T) {
		fake := &fakeAvailabilityUsecase{err: usecase.ErrInvalidDateFormat}

		req := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/available-dates?start_date=bad", nil)
		rec := httptest.NewRecorder()
		newAvailabilityRouter(fake).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

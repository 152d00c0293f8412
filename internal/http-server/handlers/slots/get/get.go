package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"trainslot-service/api"
	"trainslot-service/pkg/response"
	"trainslot-service/pkg/sl"
)

type SlotsGetter interface {
	GetAvailableSlots(ctx context.Context, trainerID, date string, durationMinutes int) ([]*api.SlotResponse, error)
}

type Response struct {
	response.Response
	Slots []*api.SlotResponse `json:"slots"`
}

func New(log *slog.Logger, getter SlotsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		trainerID := r.URL.Query().Get("trainer_id")
		if trainerID == "" {
			log.Error("trainer_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "trainer_id is required"))
			return
		}

		date := r.URL.Query().Get("date")
		if date == "" {
			log.Error("date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date is required"))
			return
		}

		duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
		if err != nil {
			log.Error("duration is not an integer", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "duration must be an integer number of minutes"))
			return
		}

		slots, err := getter.GetAvailableSlots(r.Context(), trainerID, date, duration)

		switch {
		case errors.Is(err, response.ErrInvalidDuration):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_DURATION), "duration must be positive"))
			return
		case errors.Is(err, response.ErrMalformedDate):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.MALFORMED_DATE), "date must be YYYY-MM-DD"))
			return
		case errors.Is(err, response.ErrMalformedTime):
			log.Error("Stored window or reservation has malformed time", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to compute slots"))
			return
		case errors.Is(err, response.ErrStorageUnavailable):
			log.Error("Storage unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(string(response.STORAGE_UNAVAILABLE), "storage unavailable, retry later"))
			return
		case err != nil:
			log.Error("Failed to get available slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get available slots"))
			return
		}

		log.Info("Slots computed",
			slog.String("trainer_id", trainerID),
			slog.String("date", date),
			slog.Int("count", len(slots)),
		)

		render.JSON(w, r, Response{
			Slots: slots,
		})
	}
}

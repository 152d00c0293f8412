package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"trainslot-service/api"
	"trainslot-service/pkg/response"
	"trainslot-service/pkg/sl"
)

type AvailabilityGetter interface {
	GetAvailability(ctx context.Context, trainerID, date string) ([]*api.AvailabilityResponse, error)
}

type Response struct {
	response.Response
	Windows []*api.AvailabilityResponse `json:"windows"`
}

func New(log *slog.Logger, getter AvailabilityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.get.New"

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

		windows, err := getter.GetAvailability(r.Context(), trainerID, date)

		switch {
		case errors.Is(err, response.ErrMalformedDate):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.MALFORMED_DATE), "date must be YYYY-MM-DD"))
			return
		case errors.Is(err, response.ErrStorageUnavailable):
			log.Error("Storage unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(string(response.STORAGE_UNAVAILABLE), "storage unavailable, retry later"))
			return
		case err != nil:
			log.Error("Failed to get availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get availability"))
			return
		}

		render.JSON(w, r, Response{
			Windows: windows,
		})
	}
}

package add

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"trainslot-service/api"
	"trainslot-service/internal/http-server/middleware/auth"
	"trainslot-service/internal/models"
	"trainslot-service/pkg/response"
	"trainslot-service/pkg/sl"
)

type AvailabilityAdder interface {
	AddAvailability(ctx context.Context, ident models.Identity, req *api.AvailabilityRequest) (*api.AvailabilityResponse, error)
}

type Request struct {
	api.AvailabilityRequest
}

type Response struct {
	response.Response
	Window api.AvailabilityResponse `json:"window,omitempty"`
}

func New(log *slog.Logger, adder AvailabilityAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.add.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ident, ok := auth.Identity(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "authentication required"))
			return
		}

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		window, err := adder.AddAvailability(r.Context(), ident, &req.AvailabilityRequest)

		switch {
		case errors.Is(err, response.ErrUnauthorized):
			log.Warn("Mutation by non-owner rejected", slog.String("subject", ident.Subject))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "not allowed to modify this trainer's availability"))
			return
		case errors.Is(err, response.ErrMalformedTime):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.MALFORMED_TIME), "start_time and end_time must be HH:MM"))
			return
		case errors.Is(err, response.ErrMalformedDate):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.MALFORMED_DATE), "date must be YYYY-MM-DD"))
			return
		case errors.Is(err, response.ErrInvalidInterval):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_INTERVAL), "start_time must be before end_time"))
			return
		case errors.Is(err, response.ErrBadRequest):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), err.Error()))
			return
		case errors.Is(err, response.ErrStorageUnavailable):
			log.Error("Storage unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(string(response.STORAGE_UNAVAILABLE), "storage unavailable, retry later"))
			return
		case err != nil:
			log.Error("Failed to add availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to add availability"))
			return
		}

		log.Info("Availability window added", slog.String("window_id", window.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Window: *window,
		})
	}
}

package set

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

type ScheduleSetter interface {
	SetWeeklyAvailability(ctx context.Context, ident models.Identity, req *api.ScheduleRequest) error
}

type Request struct {
	api.ScheduleRequest
}

func New(log *slog.Logger, setter ScheduleSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.set.New"

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

		err := setter.SetWeeklyAvailability(r.Context(), ident, &req.ScheduleRequest)

		switch {
		case errors.Is(err, response.ErrLocked):
			log.Warn("Schedule is being reconciled by another request", slog.String("trainer_id", req.TrainerID))
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "schedule is being updated, retry later"))
			return
		case errors.Is(err, response.ErrUnauthorized):
			log.Warn("Mutation by non-owner rejected", slog.String("subject", ident.Subject))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "not allowed to modify this trainer's schedule"))
			return
		case errors.Is(err, response.ErrMalformedTime):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.MALFORMED_TIME), "entry times must be HH:MM"))
			return
		case errors.Is(err, response.ErrInvalidInterval):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_INTERVAL), "entry start_time must be before end_time"))
			return
		case errors.Is(err, response.ErrBadRequest):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), err.Error()))
			return
		case errors.Is(err, response.ErrStorageUnavailable):
			// The replace may have stopped between deactivation and
			// insertion; the caller must retry to completion.
			log.Error("Schedule replace interrupted", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(string(response.STORAGE_UNAVAILABLE), "schedule replace interrupted, retry"))
			return
		case err != nil:
			log.Error("Failed to set weekly availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to set weekly availability"))
			return
		}

		log.Info("Weekly availability replaced", slog.String("trainer_id", req.TrainerID))

		render.JSON(w, r, response.Response{})
	}
}

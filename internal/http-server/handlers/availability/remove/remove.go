package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"trainslot-service/internal/http-server/middleware/auth"
	"trainslot-service/internal/models"
	"trainslot-service/pkg/response"
	"trainslot-service/pkg/sl"
)

type AvailabilityRemover interface {
	RemoveAvailability(ctx context.Context, ident models.Identity, windowID string) error
}

func New(log *slog.Logger, remover AvailabilityRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.remove.New"

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

		windowID := chi.URLParam(r, "id")
		if windowID == "" {
			log.Error("window id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "window id is required"))
			return
		}

		err := remover.RemoveAvailability(r.Context(), ident, windowID)

		switch {
		case errors.Is(err, response.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "availability window not found"))
			return
		case errors.Is(err, response.ErrUnauthorized):
			log.Warn("Mutation by non-owner rejected", slog.String("subject", ident.Subject))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "not allowed to modify this trainer's availability"))
			return
		case errors.Is(err, response.ErrStorageUnavailable):
			log.Error("Storage unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(string(response.STORAGE_UNAVAILABLE), "storage unavailable, retry later"))
			return
		case err != nil:
			log.Error("Failed to remove availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to remove availability"))
			return
		}

		log.Info("Availability window removed", slog.String("window_id", windowID))

		render.JSON(w, r, response.Response{})
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"trainslot-service/api"
	"trainslot-service/internal/config"
	"trainslot-service/internal/lock"
	"trainslot-service/internal/models"
	"trainslot-service/internal/timeutil"
	"trainslot-service/pkg/response"
)

type Service struct {
	store    Store
	locker   lock.Locker
	validate *validator.Validate
	opts     config.Slots
}

func NewService(store Store, locker lock.Locker, opts config.Slots) *Service {
	return &Service{
		store:    store,
		locker:   locker,
		validate: validator.New(),
		opts:     opts,
	}
}

// Store is the contract this core needs from the record store. Windows are
// append-mostly: inserts plus is_active patches, no physical deletes.
// Reservations are read-only here; the booking system owns them.
type Store interface {
	InsertWindow(ctx context.Context, w *models.AvailabilityWindow) (string, error)
	GetWindow(ctx context.Context, id string) (*models.AvailabilityWindow, error)
	WindowsByTrainer(ctx context.Context, trainerID string, activeOnly bool) ([]*models.AvailabilityWindow, error)
	PatchWindowActive(ctx context.Context, id string, active bool) error
	BlockingReservations(ctx context.Context, trainerID, date string) ([]*models.Reservation, error)
}

// Availability Windows

func (s *Service) AddAvailability(ctx context.Context, ident models.Identity, req *api.AvailabilityRequest) (*api.AvailabilityResponse, error) {
	const op = "service.AddAvailability"

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, response.ErrBadRequest, err)
	}

	if !ident.CanManage(req.TrainerID) {
		return nil, fmt.Errorf("%s: %w", op, response.ErrUnauthorized)
	}

	start, err := timeutil.TimeToMinutes(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: start_time: %w", op, err)
	}

	end, err := timeutil.TimeToMinutes(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: end_time: %w", op, err)
	}

	if start >= end {
		return nil, fmt.Errorf("%s: %w", op, response.ErrInvalidInterval)
	}

	window := &models.AvailabilityWindow{
		TrainerID: req.TrainerID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
		CreatedAt: time.Now().UnixMilli(),
	}

	switch models.WindowKind(req.Kind) {
	case models.WindowRecurring:
		day, ok := models.ParseDayOfWeek(req.DayOfWeek)
		if !ok {
			return nil, fmt.Errorf("%s: invalid day_of_week %q: %w", op, req.DayOfWeek, response.ErrBadRequest)
		}

		window.Kind = models.WindowRecurring
		window.DayOfWeek = &day
	case models.WindowSpecific:
		if _, err := timeutil.DayOfWeekOf(req.Date); err != nil {
			return nil, fmt.Errorf("%s: date: %w", op, err)
		}

		date := req.Date
		window.Kind = models.WindowSpecific
		window.SpecificDate = &date
	default:
		return nil, fmt.Errorf("%s: invalid kind %q: %w", op, req.Kind, response.ErrBadRequest)
	}

	id, err := s.store.InsertWindow(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	window.ID = id

	return windowToResponse(window), nil
}

// GetAvailability returns the trainer's active windows. With a non-empty
// date it returns only those applicable to that date: recurring windows for
// the date's weekday together with specific windows for the date itself.
func (s *Service) GetAvailability(ctx context.Context, trainerID, date string) ([]*api.AvailabilityResponse, error) {
	const op = "service.GetAvailability"

	windows, err := s.store.WindowsByTrainer(ctx, trainerID, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if date != "" {
		weekday, err := timeutil.DayOfWeekOf(date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		windows = applicableWindows(windows, weekday, date)
	}

	result := make([]*api.AvailabilityResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, windowToResponse(w))
	}

	return result, nil
}

// RemoveAvailability soft-deletes a window. Removing an already-inactive
// window is a no-op success. The record itself is never deleted and an
// inactive window is never reactivated; republishing means a new record.
func (s *Service) RemoveAvailability(ctx context.Context, ident models.Identity, windowID string) error {
	const op = "service.RemoveAvailability"

	window, err := s.store.GetWindow(ctx, windowID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if !ident.CanManage(window.TrainerID) {
		return fmt.Errorf("%s: %w", op, response.ErrUnauthorized)
	}

	if !window.IsActive {
		return nil
	}

	if err := s.store.PatchWindowActive(ctx, windowID, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// applicableWindows keeps windows that cover the given date. Recurring and
// specific windows are a union, not an override: a specific window for the
// date does not suppress recurring windows for its weekday.
func applicableWindows(windows []*models.AvailabilityWindow, weekday models.DayOfWeek, date string) []*models.AvailabilityWindow {
	applicable := make([]*models.AvailabilityWindow, 0, len(windows))

	for _, w := range windows {
		switch w.Kind {
		case models.WindowRecurring:
			if w.DayOfWeek != nil && *w.DayOfWeek == weekday {
				applicable = append(applicable, w)
			}
		case models.WindowSpecific:
			if w.SpecificDate != nil && *w.SpecificDate == date {
				applicable = append(applicable, w)
			}
		}
	}

	return applicable
}

func windowToResponse(w *models.AvailabilityWindow) *api.AvailabilityResponse {
	resp := &api.AvailabilityResponse{
		ID:        w.ID,
		TrainerID: w.TrainerID,
		Kind:      string(w.Kind),
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}

	if w.DayOfWeek != nil {
		resp.DayOfWeek = string(*w.DayOfWeek)
	}

	if w.SpecificDate != nil {
		resp.Date = *w.SpecificDate
	}

	return resp
}

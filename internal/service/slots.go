package service

import (
	"context"
	"fmt"
	"sort"

	"trainslot-service/api"
	"trainslot-service/internal/models"
	"trainslot-service/internal/timeutil"
	"trainslot-service/pkg/response"
)

// Candidate start times step in fixed 30-minute increments from each
// window's start, independent of the requested duration.
const slotGranularityMinutes = 30

// GetAvailableSlots computes the bookable intervals of the requested
// duration for a trainer on a date. Nothing is persisted; the result is
// recomputed on every call.
func (s *Service) GetAvailableSlots(ctx context.Context, trainerID, date string, durationMinutes int) ([]*api.SlotResponse, error) {
	const op = "service.GetAvailableSlots"

	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%s: %w", op, response.ErrInvalidDuration)
	}

	weekday, err := timeutil.DayOfWeekOf(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	windows, err := s.store.WindowsByTrainer(ctx, trainerID, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	applicable := applicableWindows(windows, weekday, date)
	if len(applicable) == 0 {
		return []*api.SlotResponse{}, nil
	}

	candidates, err := rawCandidates(applicable, durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reservations, err := s.store.BlockingReservations(ctx, trainerID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	free, err := filterConflicts(candidates, reservations)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.opts.DedupeCandidates {
		free = dedupeCandidates(free)
	}

	sort.SliceStable(free, func(i, j int) bool {
		return free[i].Start < free[j].Start
	})

	result := make([]*api.SlotResponse, 0, len(free))

	for _, c := range free {
		start, err := timeutil.MinutesToTime(c.Start)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		end, err := timeutil.MinutesToTime(c.End)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		result = append(result, &api.SlotResponse{StartTime: start, EndTime: end})
	}

	return result, nil
}

// rawCandidates enumerates candidate intervals per window and concatenates
// them. Overlapping windows can yield the same interval more than once;
// deduplication is the caller's choice.
func rawCandidates(windows []*models.AvailabilityWindow, durationMinutes int) ([]models.CandidateSlot, error) {
	var candidates []models.CandidateSlot

	for _, w := range windows {
		start, err := timeutil.TimeToMinutes(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("window %s start_time: %w", w.ID, err)
		}

		end, err := timeutil.TimeToMinutes(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("window %s end_time: %w", w.ID, err)
		}

		// A window shorter than the duration yields nothing.
		for m := start; m+durationMinutes <= end; m += slotGranularityMinutes {
			candidates = append(candidates, models.CandidateSlot{Start: m, End: m + durationMinutes})
		}
	}

	return candidates, nil
}

// filterConflicts drops every candidate overlapping a blocking reservation.
// Intervals are half-open: a candidate ending exactly when a reservation
// starts does not conflict.
func filterConflicts(candidates []models.CandidateSlot, reservations []*models.Reservation) ([]models.CandidateSlot, error) {
	blocked := make([]models.CandidateSlot, 0, len(reservations))

	for _, r := range reservations {
		if !r.Status.Blocking() {
			continue
		}

		start, err := timeutil.TimeToMinutes(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("reservation %s start_time: %w", r.ID, err)
		}

		end, err := timeutil.TimeToMinutes(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("reservation %s end_time: %w", r.ID, err)
		}

		blocked = append(blocked, models.CandidateSlot{Start: start, End: end})
	}

	kept := make([]models.CandidateSlot, 0, len(candidates))

	for _, c := range candidates {
		conflict := false

		for _, b := range blocked {
			if c.Start < b.End && c.End > b.Start {
				conflict = true
				break
			}
		}

		if !conflict {
			kept = append(kept, c)
		}
	}

	return kept, nil
}

func dedupeCandidates(candidates []models.CandidateSlot) []models.CandidateSlot {
	seen := make(map[models.CandidateSlot]struct{}, len(candidates))
	unique := make([]models.CandidateSlot, 0, len(candidates))

	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	return unique
}

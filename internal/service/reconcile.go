package service

import (
	"context"
	"fmt"
	"time"

	"trainslot-service/api"
	"trainslot-service/internal/models"
	"trainslot-service/internal/timeutil"
	"trainslot-service/pkg/response"
)

// SetWeeklyAvailability replaces the trainer's entire recurring schedule:
// every active recurring window is deactivated, then one fresh window is
// inserted per active entry. Inactive entries mean "this day is off" and
// contribute no window. Specific-date windows are untouched.
//
// The deactivate and insert loops are not one transaction. The whole
// operation is serialized per trainer through the locker; a failure between
// the loops leaves the trainer with no active recurring windows until the
// caller retries to completion.
func (s *Service) SetWeeklyAvailability(ctx context.Context, ident models.Identity, req *api.ScheduleRequest) error {
	const op = "service.SetWeeklyAvailability"

	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w: %v", op, response.ErrBadRequest, err)
	}

	if !ident.CanManage(req.TrainerID) {
		return fmt.Errorf("%s: %w", op, response.ErrUnauthorized)
	}

	// Validate everything up front so a bad entry cannot abort the replace
	// halfway through.
	inserts := make([]*models.AvailabilityWindow, 0, len(req.Entries))

	for i, entry := range req.Entries {
		if !entry.IsActive {
			continue
		}

		day, ok := models.ParseDayOfWeek(entry.DayOfWeek)
		if !ok {
			return fmt.Errorf("%s: entry %d: invalid day_of_week %q: %w", op, i, entry.DayOfWeek, response.ErrBadRequest)
		}

		start, err := timeutil.TimeToMinutes(entry.StartTime)
		if err != nil {
			return fmt.Errorf("%s: entry %d: start_time: %w", op, i, err)
		}

		end, err := timeutil.TimeToMinutes(entry.EndTime)
		if err != nil {
			return fmt.Errorf("%s: entry %d: end_time: %w", op, i, err)
		}

		if start >= end {
			return fmt.Errorf("%s: entry %d: %w", op, i, response.ErrInvalidInterval)
		}

		d := day
		inserts = append(inserts, &models.AvailabilityWindow{
			TrainerID: req.TrainerID,
			Kind:      models.WindowRecurring,
			DayOfWeek: &d,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			IsActive:  true,
		})
	}

	lockKey := fmt.Sprintf("schedule:%s", req.TrainerID)

	locked, err := s.locker.Lock(ctx, lockKey, s.opts.LockTTL)
	if err != nil {
		return fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	windows, err := s.store.WindowsByTrainer(ctx, req.TrainerID, true)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, w := range windows {
		if w.Kind != models.WindowRecurring {
			continue
		}

		if err := s.store.PatchWindowActive(ctx, w.ID, false); err != nil {
			return fmt.Errorf("%s: deactivate %s: %w", op, w.ID, err)
		}
	}

	now := time.Now().UnixMilli()

	for _, w := range inserts {
		w.CreatedAt = now

		if _, err := s.store.InsertWindow(ctx, w); err != nil {
			return fmt.Errorf("%s: insert: %w", op, err)
		}
	}

	return nil
}

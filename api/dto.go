package api

type AvailabilityRequest struct {
	TrainerID string `json:"trainer_id" validate:"required"`
	Kind      string `json:"kind" validate:"required,oneof=recurring specific"`
	DayOfWeek string `json:"day_of_week,omitempty"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type AvailabilityResponse struct {
	ID        string `json:"id"`
	TrainerID string `json:"trainer_id"`
	Kind      string `json:"kind"`
	DayOfWeek string `json:"day_of_week,omitempty"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
	CreatedAt int64  `json:"created_at"`
}

type ScheduleEntry struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

type ScheduleRequest struct {
	TrainerID string          `json:"trainer_id" validate:"required"`
	Entries   []ScheduleEntry `json:"entries" validate:"dive"`
}

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

package models

type WindowKind string

const (
	WindowRecurring WindowKind = "recurring"
	WindowSpecific  WindowKind = "specific"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

func ParseDayOfWeek(s string) (DayOfWeek, bool) {
	switch DayOfWeek(s) {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return DayOfWeek(s), true
	default:
		return "", false
	}
}

// AvailabilityWindow is a published interval of availability. Exactly one of
// DayOfWeek (recurring) or SpecificDate (specific) is set, depending on Kind.
// Windows are soft-deleted: IsActive flips to false and the record stays.
type AvailabilityWindow struct {
	ID           string     `db:"id"`
	TrainerID    string     `db:"trainer_id"`
	Kind         WindowKind `db:"kind"`
	DayOfWeek    *DayOfWeek `db:"day_of_week"`
	SpecificDate *string    `db:"specific_date"` // YYYY-MM-DD
	StartTime    string     `db:"start_time"`    // HH:MM, 24h
	EndTime      string     `db:"end_time"`      // HH:MM, 24h
	IsActive     bool       `db:"is_active"`
	CreatedAt    int64      `db:"created_at"` // epoch milliseconds
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Blocking reports whether a reservation in this status invalidates
// overlapping candidate slots.
func (s ReservationStatus) Blocking() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Reservation is a read-only input to conflict detection; bookings are
// created and mutated elsewhere.
type Reservation struct {
	ID        string            `db:"id"`
	TrainerID string            `db:"trainer_id"`
	Date      string            `db:"date"` // YYYY-MM-DD
	StartTime string            `db:"start_time"`
	EndTime   string            `db:"end_time"`
	Status    ReservationStatus `db:"status"`
}

// CandidateSlot is a computed bookable interval in minutes since midnight,
// half-open [Start, End). Never persisted.
type CandidateSlot struct {
	Start int
	End   int
}

type Role string

const (
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Identity is the caller as resolved by the identity provider (JWT claims).
type Identity struct {
	Subject string
	Role    Role
}

// CanManage reports whether the identity may mutate records owned by the
// given trainer.
func (i Identity) CanManage(trainerID string) bool {
	return i.Role == RoleAdmin || i.Subject == trainerID
}

package allocation

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInvalidAllocation = errors.New("invalid allocation percentage")
)

// Assignment is one project's claim on a user's capacity. Only assignments
// belonging to active projects are expected here; the caller filters by
// project status before consulting the tracker.
type Assignment struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	Percentage int
}

var slots = map[int]bool{25: true, 50: true, 75: true, 100: true}

// ValidSlot reports whether a percentage is one of the assignable slots.
// The tracker itself admits any positive percentage up to capacity; the
// write path restricts new assignments to these slots.
func ValidSlot(p int) bool {
	return slots[p]
}

// Available returns the user's remaining capacity, never negative even if
// historical data oversubscribed them.
func Available(existing []Assignment) int {
	total := 0
	for _, a := range existing {
		total += a.Percentage
	}
	if total >= 100 {
		return 0
	}
	return 100 - total
}

// Admit decides whether a new assignment fits the remaining capacity.
func Admit(existing []Assignment, proposed int) error {
	if proposed <= 0 || proposed > 100 {
		return ErrInvalidAllocation
	}
	if proposed > Available(existing) {
		return ErrCapacityExceeded
	}
	return nil
}

// AdmitEdit validates changing an existing assignment's percentage. The
// assignment's own prior value is excluded from the sum first, otherwise a
// no-op edit of a fully allocated user would always be rejected.
func AdmitEdit(existing []Assignment, assignmentID uuid.UUID, proposed int) error {
	rest := make([]Assignment, 0, len(existing))
	for _, a := range existing {
		if a.ID == assignmentID {
			continue
		}
		rest = append(rest, a)
	}
	return Admit(rest, proposed)
}

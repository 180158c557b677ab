package rating

import (
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Ordinal maps levels onto low=1, medium=2, high=3 so that "at least medium"
// style comparisons work. Unknown levels map to 0.
func (l Level) Ordinal() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	default:
		return 0
	}
}

// Points returns the weighted score contribution of an approved rating:
// high=5, medium=3, low=1.
func (l Level) Points() int {
	switch l {
	case LevelHigh:
		return 5
	case LevelMedium:
		return 3
	case LevelLow:
		return 1
	default:
		return 0
	}
}

func (l Level) Valid() bool {
	return l.Ordinal() > 0
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status ends an approval cycle. A rejected
// rating can still be re-submitted, which upserts the same row back to
// pending.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// EmployeeRating is one self-assessment row. SubskillID nil means the rating
// covers the whole skill; at most one row exists per (user, skill, subskill).
type EmployeeRating struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	SkillID         uuid.UUID
	SubskillID      *uuid.UUID
	Rating          Level
	Status          Status
	SelfComment     string
	ApproverComment string
	ApprovedBy      *uuid.UUID
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r EmployeeRating) SkillLevel() bool {
	return r.SubskillID == nil
}

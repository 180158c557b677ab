package project

import (
	"time"

	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusActive           Status = "active"
	StatusCompleted        Status = "completed"
	StatusRejected         Status = "rejected"
	StatusOnHold           Status = "on_hold"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAwaitingApproval, StatusActive, StatusCompleted, StatusRejected, StatusOnHold:
		return true
	default:
		return false
	}
}

// CanTransition encodes the forward-moving status machine:
// awaiting_approval goes to active or rejected, active goes to completed or
// on_hold, on_hold resumes to active. Completed and rejected are terminal.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusAwaitingApproval:
		return to == StatusActive || to == StatusRejected
	case StatusActive:
		return to == StatusCompleted || to == StatusOnHold
	case StatusOnHold:
		return to == StatusActive
	default:
		return false
	}
}

type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	Status      Status
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedBy   uuid.UUID
	ApprovedBy  *uuid.UUID
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RequiredSkill defines the bar the project demands for one skill or
// subskill. SubskillID nil means the whole skill.
type RequiredSkill struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	SkillID        uuid.UUID
	SubskillID     *uuid.UUID
	RequiredRating rating.Level
}

type Assignment struct {
	ID                   uuid.UUID
	ProjectID            uuid.UUID
	UserID               uuid.UUID
	AllocationPercentage int
	AssignedBy           uuid.UUID
	CreatedAt            time.Time
}

// SkillValidation marks a rating as proven in practice on a project,
// independent of the rating's approval status.
type SkillValidation struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	SkillID     uuid.UUID
	SubskillID  *uuid.UUID
	ValidatedBy uuid.UUID
	Notes       string
	CreatedAt   time.Time
}

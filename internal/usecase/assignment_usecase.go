package usecase

import (
	"context"
	"errors"
	"fmt"

	"skill-matrix/internal/domain/allocation"
	"skill-matrix/internal/domain/project"
	"skill-matrix/internal/pkg/metrics"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrCapacityExceeded     = allocation.ErrCapacityExceeded
	ErrInvalidAllocation    = allocation.ErrInvalidAllocation
	ErrProjectNotAssignable = errors.New("project not assignable")
	ErrAssignmentNotFound   = errors.New("assignment not found")
)

type AssignInput struct {
	ProjectID            uuid.UUID
	UserID               uuid.UUID
	AllocationPercentage int
}

// UserCapacity is the resource-insight view of one user.
type UserCapacity struct {
	UserID            uuid.UUID
	TotalAllocation   int
	AvailableCapacity int
	Assignments       []allocation.Assignment
}

type AssignmentUsecase interface {
	Assign(ctx context.Context, assignerID uuid.UUID, in AssignInput) (project.Assignment, error)
	UpdateAllocation(ctx context.Context, assignmentID uuid.UUID, percentage int) error
	Unassign(ctx context.Context, assignmentID uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]project.Assignment, error)
	Capacity(ctx context.Context, userID uuid.UUID) (UserCapacity, error)
}

type Assignment struct {
	assignments   repository.AssignmentRepository
	projects      repository.ProjectRepository
	notifications repository.NotificationRepository
}

func NewAssignmentUsecase(
	assignments repository.AssignmentRepository,
	projects repository.ProjectRepository,
	notifications repository.NotificationRepository,
) *Assignment {
	return &Assignment{assignments: assignments, projects: projects, notifications: notifications}
}

// Assign admits a new allocation against the user's remaining capacity. The
// decision runs inside the repository transaction with the user's active
// assignment rows locked, so two racing requests cannot both pass.
func (u *Assignment) Assign(ctx context.Context, assignerID uuid.UUID, in AssignInput) (project.Assignment, error) {
	if in.ProjectID == uuid.Nil || in.UserID == uuid.Nil {
		return project.Assignment{}, ErrInvalidInput
	}
	if !allocation.ValidSlot(in.AllocationPercentage) {
		return project.Assignment{}, ErrInvalidAllocation
	}

	p, err := u.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return project.Assignment{}, ErrNotFound
		}
		return project.Assignment{}, ErrInternal
	}
	if p.Status != project.StatusActive && p.Status != project.StatusAwaitingApproval {
		return project.Assignment{}, ErrProjectNotAssignable
	}

	a := project.Assignment{
		ID:                   uuid.New(),
		ProjectID:            in.ProjectID,
		UserID:               in.UserID,
		AllocationPercentage: in.AllocationPercentage,
		AssignedBy:           assignerID,
	}

	err = u.assignments.CreateGuarded(ctx, a, func(existing []allocation.Assignment) error {
		return allocation.Admit(existing, in.AllocationPercentage)
	})
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrCapacityExceeded):
			metrics.IncrementAssignmentAdmission("capacity_exceeded")
			return project.Assignment{}, err
		case errors.Is(err, allocation.ErrInvalidAllocation):
			metrics.IncrementAssignmentAdmission("invalid")
			return project.Assignment{}, err
		case isUniqueViolation(err):
			return project.Assignment{}, ErrInvalidInput
		case isForeignKeyViolation(err):
			return project.Assignment{}, ErrNotFound
		default:
			return project.Assignment{}, ErrInternal
		}
	}

	metrics.IncrementAssignmentAdmission("admitted")

	// Best effort: the assignment stands even when the notification write fails.
	_ = u.notifications.Create(ctx, repository.Notification{
		ID:      uuid.New(),
		UserID:  in.UserID,
		Type:    "project_assigned",
		Title:   "Assigned to project",
		Message: fmt.Sprintf("%s (%d%% allocation)", p.Name, in.AllocationPercentage),
	})

	ws.NotifyChanged("project_assignments", a.ID.String(), ws.OpInsert)
	return a, nil
}

func (u *Assignment) UpdateAllocation(ctx context.Context, assignmentID uuid.UUID, percentage int) error {
	if assignmentID == uuid.Nil {
		return ErrInvalidInput
	}
	if !allocation.ValidSlot(percentage) {
		return ErrInvalidAllocation
	}

	err := u.assignments.UpdateAllocationGuarded(ctx, assignmentID, percentage, func(existing []allocation.Assignment) error {
		return allocation.AdmitEdit(existing, assignmentID, percentage)
	})
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrCapacityExceeded), errors.Is(err, allocation.ErrInvalidAllocation):
			return err
		case errors.Is(err, repository.ErrAssignmentNotFound):
			return ErrAssignmentNotFound
		default:
			return ErrInternal
		}
	}

	ws.NotifyChanged("project_assignments", assignmentID.String(), ws.OpUpdate)
	return nil
}

func (u *Assignment) Unassign(ctx context.Context, assignmentID uuid.UUID) error {
	if assignmentID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.assignments.Delete(ctx, assignmentID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return ErrAssignmentNotFound
		}
		return ErrInternal
	}

	ws.NotifyChanged("project_assignments", assignmentID.String(), ws.OpDelete)
	return nil
}

func (u *Assignment) ListByProject(ctx context.Context, projectID uuid.UUID) ([]project.Assignment, error) {
	items, err := u.assignments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Assignment) Capacity(ctx context.Context, userID uuid.UUID) (UserCapacity, error) {
	if userID == uuid.Nil {
		return UserCapacity{}, ErrInvalidInput
	}

	existing, err := u.assignments.ListActiveByUser(ctx, userID)
	if err != nil {
		return UserCapacity{}, ErrInternal
	}

	total := 0
	for _, a := range existing {
		total += a.Percentage
	}

	return UserCapacity{
		UserID:            userID,
		TotalAllocation:   total,
		AvailableCapacity: allocation.Available(existing),
		Assignments:       existing,
	}, nil
}

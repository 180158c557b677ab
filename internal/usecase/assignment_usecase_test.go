package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/domain/allocation"
	"skill-matrix/internal/domain/project"

	"github.com/google/uuid"
)

func activeProject(id uuid.UUID) *mockProjectRepo {
	return &mockProjectRepo{projects: map[uuid.UUID]project.Project{
		id: {ID: id, Status: project.StatusActive},
	}}
}

func TestAssignmentUsecase_Assign_InvalidSlot(t *testing.T) {
	projectID := uuid.New()
	uc := NewAssignmentUsecase(&mockAssignmentRepo{}, activeProject(projectID), &mockNotificationRepo{})

	_, err := uc.Assign(context.Background(), uuid.New(), AssignInput{
		ProjectID:            projectID,
		UserID:               uuid.New(),
		AllocationPercentage: 30,
	})
	if !errors.Is(err, ErrInvalidAllocation) {
		t.Fatalf("expected ErrInvalidAllocation for 30, got %v", err)
	}
}

func TestAssignmentUsecase_Assign_CapacityExceeded(t *testing.T) {
	projectID := uuid.New()
	assignments := &mockAssignmentRepo{active: []allocation.Assignment{
		{ID: uuid.New(), ProjectID: uuid.New(), Percentage: 50},
		{ID: uuid.New(), ProjectID: uuid.New(), Percentage: 25},
	}}
	uc := NewAssignmentUsecase(assignments, activeProject(projectID), &mockNotificationRepo{})

	_, err := uc.Assign(context.Background(), uuid.New(), AssignInput{
		ProjectID:            projectID,
		UserID:               uuid.New(),
		AllocationPercentage: 50,
	})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if assignments.created != nil {
		t.Fatalf("no row may be written when admission fails")
	}
}

func TestAssignmentUsecase_Assign_FillsRemainingCapacity(t *testing.T) {
	projectID := uuid.New()
	assignments := &mockAssignmentRepo{active: []allocation.Assignment{
		{ID: uuid.New(), ProjectID: uuid.New(), Percentage: 75},
	}}
	notifications := &mockNotificationRepo{}
	uc := NewAssignmentUsecase(assignments, activeProject(projectID), notifications)

	assignee := uuid.New()
	a, err := uc.Assign(context.Background(), uuid.New(), AssignInput{
		ProjectID:            projectID,
		UserID:               assignee,
		AllocationPercentage: 25,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if assignments.created == nil || assignments.created.ID != a.ID {
		t.Fatalf("expected guarded insert")
	}
	if len(notifications.created) != 1 || notifications.created[0].UserID != assignee {
		t.Fatalf("expected the assignee to be notified")
	}
}

func TestAssignmentUsecase_Assign_CompletedProjectRefused(t *testing.T) {
	projectID := uuid.New()
	projects := &mockProjectRepo{projects: map[uuid.UUID]project.Project{
		projectID: {ID: projectID, Status: project.StatusCompleted},
	}}
	uc := NewAssignmentUsecase(&mockAssignmentRepo{}, projects, &mockNotificationRepo{})

	_, err := uc.Assign(context.Background(), uuid.New(), AssignInput{
		ProjectID:            projectID,
		UserID:               uuid.New(),
		AllocationPercentage: 25,
	})
	if !errors.Is(err, ErrProjectNotAssignable) {
		t.Fatalf("expected ErrProjectNotAssignable, got %v", err)
	}
}

func TestAssignmentUsecase_UpdateAllocation_ExcludesOwnShare(t *testing.T) {
	assignmentID := uuid.New()
	// Fully booked, but 50 of it is the assignment being edited.
	assignments := &mockAssignmentRepo{active: []allocation.Assignment{
		{ID: assignmentID, ProjectID: uuid.New(), Percentage: 50},
		{ID: uuid.New(), ProjectID: uuid.New(), Percentage: 50},
	}}
	uc := NewAssignmentUsecase(assignments, &mockProjectRepo{}, &mockNotificationRepo{})

	if err := uc.UpdateAllocation(context.Background(), assignmentID, 50); err != nil {
		t.Fatalf("no-op edit must pass: %v", err)
	}
	if err := uc.UpdateAllocation(context.Background(), assignmentID, 75); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded raising beyond capacity, got %v", err)
	}
}

func TestAssignmentUsecase_Capacity(t *testing.T) {
	userID := uuid.New()
	assignments := &mockAssignmentRepo{active: []allocation.Assignment{
		{ID: uuid.New(), ProjectID: uuid.New(), Percentage: 25},
		{ID: uuid.New(), ProjectID: uuid.New(), Percentage: 50},
	}}
	uc := NewAssignmentUsecase(assignments, &mockProjectRepo{}, &mockNotificationRepo{})

	cap, err := uc.Capacity(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cap.TotalAllocation != 75 || cap.AvailableCapacity != 25 {
		t.Fatalf("got total=%d available=%d", cap.TotalAllocation, cap.AvailableCapacity)
	}
}

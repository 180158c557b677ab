package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/domain/project"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/domain/taxonomy"

	"github.com/google/uuid"
)

func TestProjectUsecase_Create_RequiresSkill(t *testing.T) {
	uc := NewProjectUsecase(&mockProjectRepo{}, &mockAssignmentRepo{}, &mockTaxonomyRepo{skillExists: true}, &mockNotificationRepo{}, nil)
	_, err := uc.Create(context.Background(), uuid.New(), CreateProjectInput{Name: "Platform rebuild"})
	if !errors.Is(err, ErrNoRequiredSkills) {
		t.Fatalf("expected ErrNoRequiredSkills, got %v", err)
	}
}

func TestProjectUsecase_Create_StartsAwaitingApproval(t *testing.T) {
	projects := &mockProjectRepo{}
	uc := NewProjectUsecase(projects, &mockAssignmentRepo{}, &mockTaxonomyRepo{skillExists: true}, &mockNotificationRepo{}, nil)

	p, err := uc.Create(context.Background(), uuid.New(), CreateProjectInput{
		Name: "Platform rebuild",
		RequiredSkills: []RequiredSkillInput{
			{SkillID: uuid.New(), RequiredRating: rating.LevelMedium},
		},
		Assignments: []InitialAssignmentInput{
			{UserID: uuid.New(), AllocationPercentage: 50},
		},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Status != project.StatusAwaitingApproval {
		t.Fatalf("expected awaiting_approval, got %s", p.Status)
	}
	if projects.created == nil {
		t.Fatalf("expected repository create")
	}
}

func TestProjectUsecase_Create_UnknownSkill(t *testing.T) {
	uc := NewProjectUsecase(&mockProjectRepo{}, &mockAssignmentRepo{}, &mockTaxonomyRepo{skillExists: false}, &mockNotificationRepo{}, nil)
	_, err := uc.Create(context.Background(), uuid.New(), CreateProjectInput{
		Name: "Platform rebuild",
		RequiredSkills: []RequiredSkillInput{
			{SkillID: uuid.New(), RequiredRating: rating.LevelHigh},
		},
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestProjectUsecase_Create_InvalidDateRange(t *testing.T) {
	uc := NewProjectUsecase(&mockProjectRepo{}, &mockAssignmentRepo{}, &mockTaxonomyRepo{skillExists: true}, &mockNotificationRepo{}, nil)
	start := time.Now()
	end := start.Add(-24 * time.Hour)
	_, err := uc.Create(context.Background(), uuid.New(), CreateProjectInput{
		Name:      "Platform rebuild",
		StartDate: &start,
		EndDate:   &end,
		RequiredSkills: []RequiredSkillInput{
			{SkillID: uuid.New(), RequiredRating: rating.LevelLow},
		},
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestProjectUsecase_Transition_ApprovalNotifiesCreator(t *testing.T) {
	projectID := uuid.New()
	creator := uuid.New()
	projects := &mockProjectRepo{projects: map[uuid.UUID]project.Project{
		projectID: {ID: projectID, Name: "Platform rebuild", Status: project.StatusAwaitingApproval, CreatedBy: creator},
	}}
	notifications := &mockNotificationRepo{}
	uc := NewProjectUsecase(projects, &mockAssignmentRepo{}, &mockTaxonomyRepo{}, notifications, nil)

	if err := uc.Transition(context.Background(), projectID, project.StatusActive, uuid.New()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if projects.statusTo == nil || *projects.statusTo != project.StatusActive {
		t.Fatalf("expected status update to active")
	}
	if len(notifications.created) != 1 || notifications.created[0].UserID != creator {
		t.Fatalf("expected approval notification for creator")
	}
}

func TestProjectUsecase_Transition_Invalid(t *testing.T) {
	projectID := uuid.New()
	projects := &mockProjectRepo{projects: map[uuid.UUID]project.Project{
		projectID: {ID: projectID, Status: project.StatusCompleted},
	}}
	uc := NewProjectUsecase(projects, &mockAssignmentRepo{}, &mockTaxonomyRepo{}, &mockNotificationRepo{}, nil)

	err := uc.Transition(context.Background(), projectID, project.StatusActive, uuid.New())
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("completed is terminal, got %v", err)
	}
}

func TestProjectUsecase_Get_NotFound(t *testing.T) {
	uc := NewProjectUsecase(&mockProjectRepo{projects: map[uuid.UUID]project.Project{}}, &mockAssignmentRepo{}, &mockTaxonomyRepo{}, &mockNotificationRepo{}, nil)
	_, err := uc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectUsecase_AddRequiredSkill_PersistsAndValidatesSubskill(t *testing.T) {
	projectID := uuid.New()
	skillID := uuid.New()
	subskillID := uuid.New()
	projects := &mockProjectRepo{projects: map[uuid.UUID]project.Project{
		projectID: {ID: projectID, Status: project.StatusActive},
	}}
	taxonomyRepo := &mockTaxonomyRepo{skillExists: true, subskills: []taxonomy.Subskill{
		{ID: subskillID, SkillID: skillID, Name: "Query tuning"},
	}}
	uc := NewProjectUsecase(projects, &mockAssignmentRepo{}, taxonomyRepo, &mockNotificationRepo{}, nil)

	rs, err := uc.AddRequiredSkill(context.Background(), projectID, RequiredSkillInput{
		SkillID:        skillID,
		SubskillID:     &subskillID,
		RequiredRating: rating.LevelHigh,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if projects.addedReq == nil || projects.addedReq.ID != rs.ID {
		t.Fatalf("expected repository write")
	}
	if projects.addedReq.SubskillID == nil || *projects.addedReq.SubskillID != subskillID {
		t.Fatalf("expected subskill to be stored")
	}
}

func TestProjectUsecase_AddRequiredSkill_SubskillOfOtherSkill(t *testing.T) {
	projectID := uuid.New()
	subskillID := uuid.New()
	projects := &mockProjectRepo{projects: map[uuid.UUID]project.Project{
		projectID: {ID: projectID, Status: project.StatusActive},
	}}
	taxonomyRepo := &mockTaxonomyRepo{skillExists: true, subskills: []taxonomy.Subskill{
		{ID: uuid.New(), SkillID: uuid.New(), Name: "Indexing"},
	}}
	uc := NewProjectUsecase(projects, &mockAssignmentRepo{}, taxonomyRepo, &mockNotificationRepo{}, nil)

	_, err := uc.AddRequiredSkill(context.Background(), projectID, RequiredSkillInput{
		SkillID:        uuid.New(),
		SubskillID:     &subskillID,
		RequiredRating: rating.LevelMedium,
	})
	if !errors.Is(err, ErrSubskillNotFound) {
		t.Fatalf("expected ErrSubskillNotFound, got %v", err)
	}
	if projects.addedReq != nil {
		t.Fatalf("nothing may be written for an unknown subskill")
	}
}

func TestProjectUsecase_RemoveRequiredSkill_KeepsLastRequirement(t *testing.T) {
	projectID := uuid.New()
	reqID := uuid.New()
	projects := &mockProjectRepo{reqs: []project.RequiredSkill{
		{ID: reqID, ProjectID: projectID, SkillID: uuid.New(), RequiredRating: rating.LevelLow},
	}}
	uc := NewProjectUsecase(projects, &mockAssignmentRepo{}, &mockTaxonomyRepo{}, &mockNotificationRepo{}, nil)

	err := uc.RemoveRequiredSkill(context.Background(), projectID, reqID)
	if !errors.Is(err, ErrNoRequiredSkills) {
		t.Fatalf("removing the last requirement must be refused, got %v", err)
	}
	if projects.removedReq != nil {
		t.Fatalf("last requirement may not be deleted")
	}
}

func TestProjectUsecase_RemoveRequiredSkill_Removes(t *testing.T) {
	projectID := uuid.New()
	reqID := uuid.New()
	projects := &mockProjectRepo{reqs: []project.RequiredSkill{
		{ID: reqID, ProjectID: projectID, SkillID: uuid.New(), RequiredRating: rating.LevelLow},
		{ID: uuid.New(), ProjectID: projectID, SkillID: uuid.New(), RequiredRating: rating.LevelHigh},
	}}
	uc := NewProjectUsecase(projects, &mockAssignmentRepo{}, &mockTaxonomyRepo{}, &mockNotificationRepo{}, nil)

	if err := uc.RemoveRequiredSkill(context.Background(), projectID, reqID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if projects.removedReq == nil || *projects.removedReq != reqID {
		t.Fatalf("expected repository delete of %s", reqID)
	}
}

func TestProjectUsecase_RemoveRequiredSkill_UnknownRequirement(t *testing.T) {
	projects := &mockProjectRepo{reqs: []project.RequiredSkill{
		{ID: uuid.New(), ProjectID: uuid.New(), SkillID: uuid.New(), RequiredRating: rating.LevelLow},
	}}
	uc := NewProjectUsecase(projects, &mockAssignmentRepo{}, &mockTaxonomyRepo{}, &mockNotificationRepo{}, nil)

	err := uc.RemoveRequiredSkill(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

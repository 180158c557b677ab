package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-matrix/internal/domain/allocation"
	"skill-matrix/internal/domain/project"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidDateRange        = errors.New("end date before start date")
	ErrSubskillNotFound        = errors.New("subskill not found")
)

type RequiredSkillInput struct {
	SkillID        uuid.UUID
	SubskillID     *uuid.UUID
	RequiredRating rating.Level
}

type InitialAssignmentInput struct {
	UserID               uuid.UUID
	AllocationPercentage int
}

type CreateProjectInput struct {
	Name           string
	Description    string
	StartDate      *time.Time
	EndDate        *time.Time
	RequiredSkills []RequiredSkillInput
	Assignments    []InitialAssignmentInput
}

type UpdateProjectInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

type ValidationInput struct {
	UserID     uuid.UUID
	SkillID    uuid.UUID
	SubskillID *uuid.UUID
	Notes      string
}

// ProjectDetail bundles a project with its staffing view.
type ProjectDetail struct {
	Project        project.Project
	RequiredSkills []project.RequiredSkill
	Assignments    []project.Assignment
	Validations    []project.SkillValidation
}

type ProjectUsecase interface {
	Create(ctx context.Context, creatorID uuid.UUID, in CreateProjectInput) (project.Project, error)
	Get(ctx context.Context, id uuid.UUID) (ProjectDetail, error)
	List(ctx context.Context, status *project.Status) ([]project.Project, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (project.Project, error)
	Transition(ctx context.Context, id uuid.UUID, to project.Status, actorID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddRequiredSkill(ctx context.Context, projectID uuid.UUID, in RequiredSkillInput) (project.RequiredSkill, error)
	RemoveRequiredSkill(ctx context.Context, projectID, requiredSkillID uuid.UUID) error
	AddValidation(ctx context.Context, projectID, validatorID uuid.UUID, in ValidationInput) error
}

type ProjectService struct {
	projects      repository.ProjectRepository
	assignments   repository.AssignmentRepository
	taxonomy      repository.TaxonomyRepository
	notifications repository.NotificationRepository
	cache         *cache.Redis
}

func NewProjectUsecase(
	projects repository.ProjectRepository,
	assignments repository.AssignmentRepository,
	taxonomy repository.TaxonomyRepository,
	notifications repository.NotificationRepository,
	rc *cache.Redis,
) *ProjectService {
	return &ProjectService{projects: projects, assignments: assignments, taxonomy: taxonomy, notifications: notifications, cache: rc}
}

// Create stores a new project in awaiting_approval together with its required
// skills and any initial assignments. Assignments on a not-yet-active project
// do not count toward anyone's allocation until approval flips it to active.
func (u *ProjectService) Create(ctx context.Context, creatorID uuid.UUID, in CreateProjectInput) (project.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || creatorID == uuid.Nil {
		return project.Project{}, ErrInvalidInput
	}
	if len(in.RequiredSkills) == 0 {
		return project.Project{}, ErrNoRequiredSkills
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return project.Project{}, ErrInvalidDateRange
	}

	for _, rs := range in.RequiredSkills {
		if err := u.checkRequirement(ctx, rs); err != nil {
			return project.Project{}, err
		}
	}
	for _, a := range in.Assignments {
		if a.UserID == uuid.Nil {
			return project.Project{}, ErrInvalidInput
		}
		if !allocation.ValidSlot(a.AllocationPercentage) {
			return project.Project{}, ErrInvalidAllocation
		}
	}

	p := project.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Status:      project.StatusAwaitingApproval,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedBy:   creatorID,
	}

	reqs := make([]project.RequiredSkill, 0, len(in.RequiredSkills))
	for _, rs := range in.RequiredSkills {
		reqs = append(reqs, project.RequiredSkill{
			ID:             uuid.New(),
			ProjectID:      p.ID,
			SkillID:        rs.SkillID,
			SubskillID:     rs.SubskillID,
			RequiredRating: rs.RequiredRating,
		})
	}
	assigns := make([]project.Assignment, 0, len(in.Assignments))
	for _, a := range in.Assignments {
		assigns = append(assigns, project.Assignment{
			ID:                   uuid.New(),
			ProjectID:            p.ID,
			UserID:               a.UserID,
			AllocationPercentage: a.AllocationPercentage,
			AssignedBy:           creatorID,
		})
	}

	if err := u.projects.Create(ctx, p, reqs, assigns); err != nil {
		if isForeignKeyViolation(err) {
			return project.Project{}, ErrInvalidInput
		}
		return project.Project{}, ErrInternal
	}

	ws.NotifyChanged("projects", p.ID.String(), ws.OpInsert)
	return p, nil
}

func (u *ProjectService) Get(ctx context.Context, id uuid.UUID) (ProjectDetail, error) {
	p, err := u.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ProjectDetail{}, ErrProjectNotFound
		}
		return ProjectDetail{}, ErrInternal
	}

	reqs, err := u.projects.RequiredSkills(ctx, id)
	if err != nil {
		return ProjectDetail{}, ErrInternal
	}
	assigns, err := u.assignments.ListByProject(ctx, id)
	if err != nil {
		return ProjectDetail{}, ErrInternal
	}
	validations, err := u.projects.Validations(ctx, id)
	if err != nil {
		return ProjectDetail{}, ErrInternal
	}

	return ProjectDetail{Project: p, RequiredSkills: reqs, Assignments: assigns, Validations: validations}, nil
}

func (u *ProjectService) List(ctx context.Context, status *project.Status) ([]project.Project, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidInput
	}
	items, err := u.projects.List(ctx, status)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *ProjectService) Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (project.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return project.Project{}, ErrInvalidInput
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return project.Project{}, ErrInvalidDateRange
	}

	p, err := u.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, ErrInternal
	}

	p.Name = name
	p.Description = strings.TrimSpace(in.Description)
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate

	if err := u.projects.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, ErrInternal
	}

	ws.NotifyChanged("projects", p.ID.String(), ws.OpUpdate)
	return p, nil
}

// Transition moves the project along its status machine. The repository
// re-checks the source status inside the UPDATE predicate, so a concurrent
// transition that won first turns this one into ErrInvalidStatusTransition.
func (u *ProjectService) Transition(ctx context.Context, id uuid.UUID, to project.Status, actorID uuid.UUID) error {
	if !to.Valid() {
		return ErrInvalidInput
	}

	p, err := u.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	if !p.Status.CanTransition(to) {
		return ErrInvalidStatusTransition
	}

	if err := u.projects.UpdateStatus(ctx, id, p.Status, to, actorID); err != nil {
		if errors.Is(err, repository.ErrInvalidTransition) {
			return ErrInvalidStatusTransition
		}
		return ErrInternal
	}

	u.notifyTransition(ctx, p, to)
	ws.NotifyChanged("projects", id.String(), ws.OpUpdate)
	return nil
}

func (u *ProjectService) notifyTransition(ctx context.Context, p project.Project, to project.Status) {
	var title, kind string
	switch to {
	case project.StatusActive:
		if p.Status == project.StatusAwaitingApproval {
			kind, title = "project_approved", "Project approved"
		} else {
			kind, title = "project_resumed", "Project resumed"
		}
	case project.StatusRejected:
		kind, title = "project_rejected", "Project rejected"
	case project.StatusCompleted:
		kind, title = "project_completed", "Project completed"
	case project.StatusOnHold:
		kind, title = "project_on_hold", "Project put on hold"
	default:
		return
	}

	// Best effort: a failed notification never undoes the transition.
	_ = u.notifications.Create(ctx, repository.Notification{
		ID:      uuid.New(),
		UserID:  p.CreatedBy,
		Type:    kind,
		Title:   title,
		Message: p.Name,
	})
}

func (u *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	ws.NotifyChanged("projects", id.String(), ws.OpDelete)
	return nil
}

// checkRequirement verifies a requirement points at real taxonomy rows: the
// skill must exist, and a subskill requirement must name a subskill of that
// same skill.
func (u *ProjectService) checkRequirement(ctx context.Context, rs RequiredSkillInput) error {
	if rs.SkillID == uuid.Nil || !rs.RequiredRating.Valid() {
		return ErrInvalidInput
	}
	ok, err := u.taxonomy.SkillExists(ctx, rs.SkillID)
	if err != nil {
		return ErrInternal
	}
	if !ok {
		return ErrSkillNotFound
	}
	if rs.SubskillID == nil {
		return nil
	}

	subskills, err := u.taxonomy.SubskillsBySkillIDs(ctx, []uuid.UUID{rs.SkillID})
	if err != nil {
		return ErrInternal
	}
	for _, s := range subskills {
		if s.ID == *rs.SubskillID {
			return nil
		}
	}
	return ErrSubskillNotFound
}

// AddRequiredSkill extends an existing project's requirement set. Cached
// suggestions for the project are stale afterwards and get dropped.
func (u *ProjectService) AddRequiredSkill(ctx context.Context, projectID uuid.UUID, in RequiredSkillInput) (project.RequiredSkill, error) {
	if projectID == uuid.Nil {
		return project.RequiredSkill{}, ErrInvalidInput
	}
	if err := u.checkRequirement(ctx, in); err != nil {
		return project.RequiredSkill{}, err
	}
	if _, err := u.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return project.RequiredSkill{}, ErrProjectNotFound
		}
		return project.RequiredSkill{}, ErrInternal
	}

	rs := project.RequiredSkill{
		ID:             uuid.New(),
		ProjectID:      projectID,
		SkillID:        in.SkillID,
		SubskillID:     in.SubskillID,
		RequiredRating: in.RequiredRating,
	}
	if err := u.projects.AddRequiredSkill(ctx, rs); err != nil {
		if isForeignKeyViolation(err) {
			return project.RequiredSkill{}, ErrInvalidInput
		}
		return project.RequiredSkill{}, ErrInternal
	}

	_ = u.cache.Delete(ctx, cache.KeySuggestions(projectID.String()))
	ws.NotifyChanged("project_required_skills", rs.ID.String(), ws.OpInsert)
	return rs, nil
}

func (u *ProjectService) RemoveRequiredSkill(ctx context.Context, projectID, requiredSkillID uuid.UUID) error {
	if projectID == uuid.Nil || requiredSkillID == uuid.Nil {
		return ErrInvalidInput
	}

	// A project needs at least one requirement to stay matchable.
	reqs, err := u.projects.RequiredSkills(ctx, projectID)
	if err != nil {
		return ErrInternal
	}
	found := false
	for _, rs := range reqs {
		if rs.ID == requiredSkillID {
			found = true
		}
	}
	if !found {
		return ErrProjectNotFound
	}
	if len(reqs) == 1 {
		return ErrNoRequiredSkills
	}

	if err := u.projects.RemoveRequiredSkill(ctx, requiredSkillID); err != nil {
		return ErrInternal
	}

	_ = u.cache.Delete(ctx, cache.KeySuggestions(projectID.String()))
	ws.NotifyChanged("project_required_skills", requiredSkillID.String(), ws.OpDelete)
	return nil
}

// AddValidation records that a team member demonstrated a skill on this
// project. Validator identity comes from the session, not the payload.
func (u *ProjectService) AddValidation(ctx context.Context, projectID, validatorID uuid.UUID, in ValidationInput) error {
	if projectID == uuid.Nil || validatorID == uuid.Nil || in.UserID == uuid.Nil || in.SkillID == uuid.Nil {
		return ErrInvalidInput
	}

	if _, err := u.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}

	v := project.SkillValidation{
		ID:          uuid.New(),
		ProjectID:   projectID,
		UserID:      in.UserID,
		SkillID:     in.SkillID,
		SubskillID:  in.SubskillID,
		ValidatedBy: validatorID,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := u.projects.AddValidation(ctx, v); err != nil {
		if isForeignKeyViolation(err) {
			return ErrInvalidInput
		}
		return ErrInternal
	}

	ws.NotifyChanged("project_skill_validations", v.ID.String(), ws.OpInsert)
	return nil
}

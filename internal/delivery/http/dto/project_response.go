package dto

import (
	"time"

	"skill-matrix/internal/domain/project"
	"skill-matrix/internal/usecase"

	"github.com/google/uuid"
)

type ProjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	ApprovedBy  *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type RequiredSkillResponse struct {
	ID             uuid.UUID  `json:"id"`
	SkillID        uuid.UUID  `json:"skill_id"`
	SubskillID     *uuid.UUID `json:"subskill_id"`
	RequiredRating string     `json:"required_rating"`
}

type AssignmentResponse struct {
	ID                   uuid.UUID `json:"id"`
	ProjectID            uuid.UUID `json:"project_id"`
	UserID               uuid.UUID `json:"user_id"`
	AllocationPercentage int       `json:"allocation_percentage"`
	AssignedBy           uuid.UUID `json:"assigned_by"`
	CreatedAt            time.Time `json:"created_at"`
}

type SkillValidationResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	SkillID     uuid.UUID  `json:"skill_id"`
	SubskillID  *uuid.UUID `json:"subskill_id"`
	ValidatedBy uuid.UUID  `json:"validated_by"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	RequiredSkills []RequiredSkillResponse   `json:"required_skills"`
	Assignments    []AssignmentResponse      `json:"assignments"`
	Validations    []SkillValidationResponse `json:"validations"`
}

func FromProject(p project.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedBy:   p.CreatedBy,
		ApprovedBy:  p.ApprovedBy,
		ApprovedAt:  p.ApprovedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromProjects(items []project.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProject(p))
	}
	return out
}

func FromAssignment(a project.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                   a.ID,
		ProjectID:            a.ProjectID,
		UserID:               a.UserID,
		AllocationPercentage: a.AllocationPercentage,
		AssignedBy:           a.AssignedBy,
		CreatedAt:            a.CreatedAt,
	}
}

func FromRequiredSkill(rs project.RequiredSkill) RequiredSkillResponse {
	return RequiredSkillResponse{
		ID:             rs.ID,
		SkillID:        rs.SkillID,
		SubskillID:     rs.SubskillID,
		RequiredRating: string(rs.RequiredRating),
	}
}

func FromProjectDetail(d usecase.ProjectDetail) ProjectDetailResponse {
	reqs := make([]RequiredSkillResponse, 0, len(d.RequiredSkills))
	for _, rs := range d.RequiredSkills {
		reqs = append(reqs, FromRequiredSkill(rs))
	}

	assigns := make([]AssignmentResponse, 0, len(d.Assignments))
	for _, a := range d.Assignments {
		assigns = append(assigns, FromAssignment(a))
	}

	validations := make([]SkillValidationResponse, 0, len(d.Validations))
	for _, v := range d.Validations {
		validations = append(validations, SkillValidationResponse{
			ID:          v.ID,
			UserID:      v.UserID,
			SkillID:     v.SkillID,
			SubskillID:  v.SubskillID,
			ValidatedBy: v.ValidatedBy,
			Notes:       v.Notes,
			CreatedAt:   v.CreatedAt,
		})
	}

	return ProjectDetailResponse{
		ProjectResponse: FromProject(d.Project),
		RequiredSkills:  reqs,
		Assignments:     assigns,
		Validations:     validations,
	}
}

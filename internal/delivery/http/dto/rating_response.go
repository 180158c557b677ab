package dto

import (
	"time"

	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

type RatingResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	SkillID         uuid.UUID  `json:"skill_id"`
	SubskillID      *uuid.UUID `json:"subskill_id"`
	Rating          string     `json:"rating"`
	Status          string     `json:"status"`
	SelfComment     string     `json:"self_comment,omitempty"`
	ApproverComment string     `json:"approver_comment,omitempty"`
	ApprovedBy      *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromRating(r rating.EmployeeRating) RatingResponse {
	return RatingResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		SkillID:         r.SkillID,
		SubskillID:      r.SubskillID,
		Rating:          string(r.Rating),
		Status:          string(r.Status),
		SelfComment:     r.SelfComment,
		ApproverComment: r.ApproverComment,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromRatings(items []rating.EmployeeRating) []RatingResponse {
	out := make([]RatingResponse, 0, len(items))
	for _, r := range items {
		out = append(out, FromRating(r))
	}
	return out
}

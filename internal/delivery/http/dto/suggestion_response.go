package dto

import (
	"skill-matrix/internal/usecase"

	"github.com/google/uuid"
)

type RequirementResultResponse struct {
	SkillID        uuid.UUID  `json:"skill_id"`
	SubskillID     *uuid.UUID `json:"subskill_id"`
	RequiredRating string     `json:"required_rating"`
	UserRating     string     `json:"user_rating,omitempty"`
	Satisfied      bool       `json:"satisfied"`
}

type SuggestionResponse struct {
	UserID          uuid.UUID                   `json:"user_id"`
	FullName        string                      `json:"full_name"`
	Email           string                      `json:"email"`
	MatchPercentage int                         `json:"match_percentage"`
	Details         []RequirementResultResponse `json:"details"`
}

func FromSuggestions(items []usecase.Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(items))
	for _, s := range items {
		details := make([]RequirementResultResponse, 0, len(s.Details))
		for _, d := range s.Details {
			details = append(details, RequirementResultResponse{
				SkillID:        d.SkillID,
				SubskillID:     d.SubskillID,
				RequiredRating: string(d.RequiredRating),
				UserRating:     string(d.Rating),
				Satisfied:      d.Satisfied,
			})
		}
		out = append(out, SuggestionResponse{
			UserID:          s.UserID,
			FullName:        s.FullName,
			Email:           s.Email,
			MatchPercentage: s.MatchPercentage,
			Details:         details,
		})
	}
	return out
}

package dto

import (
	"skill-matrix/internal/usecase"

	"github.com/google/uuid"
)

type RatingCountsResponse struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type CategoryProgressResponse struct {
	CategoryID         uuid.UUID            `json:"category_id"`
	CategoryName       string               `json:"category_name"`
	TotalItems         int                  `json:"total_items"`
	RatedItems         int                  `json:"rated_items"`
	ProgressPercentage int                  `json:"progress_percentage"`
	RatingCounts       RatingCountsResponse `json:"rating_counts"`
	ApprovedCount      int                  `json:"approved_count"`
	PendingCount       int                  `json:"pending_count"`
	RejectedCount      int                  `json:"rejected_count"`
	Score              int                  `json:"score"`
	Level              string               `json:"level"`
}

func FromCategoryProgress(cp usecase.CategoryProgress) CategoryProgressResponse {
	return CategoryProgressResponse{
		CategoryID:         cp.CategoryID,
		CategoryName:       cp.CategoryName,
		TotalItems:         cp.TotalItems,
		RatedItems:         cp.RatedItems,
		ProgressPercentage: cp.ProgressPercentage,
		RatingCounts: RatingCountsResponse{
			High:   cp.RatingCounts.High,
			Medium: cp.RatingCounts.Medium,
			Low:    cp.RatingCounts.Low,
		},
		ApprovedCount: cp.ApprovedCount,
		PendingCount:  cp.PendingCount,
		RejectedCount: cp.RejectedCount,
		Score:         cp.Score,
		Level:         string(cp.Level),
	}
}

func FromCategoryProgressList(items []usecase.CategoryProgress) []CategoryProgressResponse {
	out := make([]CategoryProgressResponse, 0, len(items))
	for _, cp := range items {
		out = append(out, FromCategoryProgress(cp))
	}
	return out
}

package progress

import (
	"skill-matrix/internal/domain/rating"
)

type ProficiencyLevel string

const (
	LevelBeginner ProficiencyLevel = "beginner"
	LevelModerate ProficiencyLevel = "moderate"
	LevelExpert   ProficiencyLevel = "expert"
)

type RatingCounts struct {
	High   int
	Medium int
	Low    int
}

// Summary is a user's standing within one category.
type Summary struct {
	TotalItems         int
	RatedItems         int
	ProgressPercentage int
	RatingCounts       RatingCounts
	ApprovedCount      int
	PendingCount       int
	RejectedCount      int
	Score              int
	Level              ProficiencyLevel
}

// Aggregate computes category progress from the category's leaf item count
// and the user's ratings restricted to that category. Only approved ratings
// contribute to level counts and to the weighted score; drafts are invisible.
func Aggregate(totalItems int, ratings []rating.EmployeeRating) Summary {
	s := Summary{TotalItems: totalItems}

	for _, r := range ratings {
		switch r.Status {
		case rating.StatusApproved:
			s.ApprovedCount++
			switch r.Rating {
			case rating.LevelHigh:
				s.RatingCounts.High++
			case rating.LevelMedium:
				s.RatingCounts.Medium++
			case rating.LevelLow:
				s.RatingCounts.Low++
			}
		case rating.StatusPending:
			s.PendingCount++
		case rating.StatusRejected:
			s.RejectedCount++
		}
	}

	s.RatedItems = s.ApprovedCount
	if totalItems > 0 {
		s.ProgressPercentage = roundPercent(s.RatedItems, totalItems)
	}

	s.Score = score(s.RatingCounts)
	s.Level = classify(s.Score)
	return s
}

// score weighs approved ratings high=5, medium=3, low=1 against the maximum
// of all-high, as a 0-100 value. No approved ratings scores 0.
func score(c RatingCounts) int {
	rated := c.High + c.Medium + c.Low
	if rated == 0 {
		return 0
	}
	points := c.High*rating.LevelHigh.Points() +
		c.Medium*rating.LevelMedium.Points() +
		c.Low*rating.LevelLow.Points()
	return roundPercent(points, rated*rating.LevelHigh.Points())
}

func classify(score int) ProficiencyLevel {
	switch {
	case score >= 80:
		return LevelExpert
	case score >= 40:
		return LevelModerate
	default:
		return LevelBeginner
	}
}

func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (total * 2)
}

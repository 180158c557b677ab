package progress

import (
	"testing"

	"skill-matrix/internal/domain/rating"
)

func approved(level rating.Level) rating.EmployeeRating {
	return rating.EmployeeRating{Rating: level, Status: rating.StatusApproved}
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(0, nil)
	if s.ProgressPercentage != 0 || s.Score != 0 {
		t.Fatalf("expected zeroes, got %+v", s)
	}
	if s.Level != LevelBeginner {
		t.Fatalf("expected beginner, got %s", s.Level)
	}
}

func TestAggregate_NoApprovedRatings(t *testing.T) {
	s := Aggregate(4, []rating.EmployeeRating{
		{Rating: rating.LevelHigh, Status: rating.StatusPending},
		{Rating: rating.LevelHigh, Status: rating.StatusRejected},
		{Rating: rating.LevelHigh, Status: rating.StatusDraft},
	})
	if s.ApprovedCount != 0 || s.PendingCount != 1 || s.RejectedCount != 1 {
		t.Fatalf("unexpected status counts: %+v", s)
	}
	if s.ProgressPercentage != 0 || s.Score != 0 || s.Level != LevelBeginner {
		t.Fatalf("expected zero progress and beginner, got %+v", s)
	}
}

func TestAggregate_AllHighIsExpert(t *testing.T) {
	ratings := []rating.EmployeeRating{
		approved(rating.LevelHigh),
		approved(rating.LevelHigh),
		approved(rating.LevelHigh),
	}
	s := Aggregate(3, ratings)
	if s.ProgressPercentage != 100 {
		t.Fatalf("expected 100%% progress, got %d", s.ProgressPercentage)
	}
	if s.Score != 100 || s.Level != LevelExpert {
		t.Fatalf("expected score 100 expert, got score=%d level=%s", s.Score, s.Level)
	}
}

func TestAggregate_WeightedScore(t *testing.T) {
	cases := []struct {
		name      string
		ratings   []rating.EmployeeRating
		wantScore int
		wantLevel ProficiencyLevel
	}{
		{
			// 5+3+1 = 9 of 15 -> 60.
			name:      "mixed_is_moderate",
			ratings:   []rating.EmployeeRating{approved(rating.LevelHigh), approved(rating.LevelMedium), approved(rating.LevelLow)},
			wantScore: 60,
			wantLevel: LevelModerate,
		},
		{
			// 1 of 5 -> 20.
			name:      "all_low_is_beginner",
			ratings:   []rating.EmployeeRating{approved(rating.LevelLow)},
			wantScore: 20,
			wantLevel: LevelBeginner,
		},
		{
			// 3 of 5 -> 60.
			name:      "all_medium_is_moderate",
			ratings:   []rating.EmployeeRating{approved(rating.LevelMedium)},
			wantScore: 60,
			wantLevel: LevelModerate,
		},
		{
			// 13 of 15 -> 86.67 rounds to 87.
			name:      "two_high_one_medium_is_expert",
			ratings:   []rating.EmployeeRating{approved(rating.LevelHigh), approved(rating.LevelHigh), approved(rating.LevelMedium)},
			wantScore: 87,
			wantLevel: LevelExpert,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Aggregate(len(tc.ratings), tc.ratings)
			if s.Score != tc.wantScore {
				t.Fatalf("expected score %d, got %d", tc.wantScore, s.Score)
			}
			if s.Level != tc.wantLevel {
				t.Fatalf("expected level %s, got %s", tc.wantLevel, s.Level)
			}
		})
	}
}

func TestAggregate_ProgressCountsApprovedOnly(t *testing.T) {
	ratings := []rating.EmployeeRating{
		approved(rating.LevelMedium),
		{Rating: rating.LevelHigh, Status: rating.StatusPending},
		{Rating: rating.LevelLow, Status: rating.StatusRejected},
	}
	s := Aggregate(3, ratings)
	if s.RatedItems != 1 {
		t.Fatalf("expected 1 rated item, got %d", s.RatedItems)
	}
	if s.ProgressPercentage != 33 {
		t.Fatalf("expected 33%% progress, got %d", s.ProgressPercentage)
	}
	if s.RatingCounts != (RatingCounts{Medium: 1}) {
		t.Fatalf("pending/rejected leaked into level counts: %+v", s.RatingCounts)
	}
}

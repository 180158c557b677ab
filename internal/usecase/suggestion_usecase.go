package usecase

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/domain/matching"
	"skill-matrix/internal/domain/project"
	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/pkg/metrics"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

var ErrNoRequiredSkills = errors.New("project has no required skills")

// Suggestion is one ranked candidate for a project's staffing.
type Suggestion struct {
	UserID          uuid.UUID
	FullName        string
	Email           string
	MatchPercentage int
	Details         []matching.RequirementResult
}

type SuggestionUsecase interface {
	SuggestForProject(ctx context.Context, projectID uuid.UUID) ([]Suggestion, error)
	SuggestForRequirements(ctx context.Context, reqs []matching.Requirement) ([]Suggestion, error)
}

type Suggest struct {
	projects repository.ProjectRepository
	ratings  repository.RatingRepository
	users    user.Repository
	cache    *cache.Redis
}

func NewSuggestionUsecase(
	projects repository.ProjectRepository,
	ratings repository.RatingRepository,
	users user.Repository,
	rc *cache.Redis,
) *Suggest {
	return &Suggest{projects: projects, ratings: ratings, users: users, cache: rc}
}

func (u *Suggest) SuggestForProject(ctx context.Context, projectID uuid.UUID) ([]Suggestion, error) {
	if projectID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	key := cache.KeySuggestions(projectID.String())
	var cached []Suggestion
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	reqRows, err := u.projects.RequiredSkills(ctx, projectID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(reqRows) == 0 {
		return nil, ErrNoRequiredSkills
	}

	out, err := u.SuggestForRequirements(ctx, toRequirements(reqRows))
	if err != nil {
		return nil, err
	}

	_ = u.cache.SetJSON(ctx, key, out, 0)
	return out, nil
}

func (u *Suggest) SuggestForRequirements(ctx context.Context, reqs []matching.Requirement) ([]Suggestion, error) {
	if len(reqs) == 0 {
		return nil, ErrNoRequiredSkills
	}
	defer func(start time.Time) {
		metrics.RecordSuggestionCompute(time.Since(start))
	}(time.Now())

	scope := repository.ApprovedScope{}
	for _, r := range reqs {
		scope.SkillIDs = append(scope.SkillIDs, r.SkillID)
		if r.SubskillID != nil {
			scope.SubskillIDs = append(scope.SubskillIDs, *r.SubskillID)
		}
	}

	ratings, err := u.ratings.FindApprovedForScope(ctx, scope)
	if err != nil {
		return nil, ErrInternal
	}

	ranked, err := matching.Rank(reqs, ratings)
	if err != nil {
		if errors.Is(err, matching.ErrNoRequirements) {
			return nil, ErrNoRequiredSkills
		}
		return nil, ErrInternal
	}

	out := make([]Suggestion, 0, len(ranked))
	for _, c := range ranked {
		s := Suggestion{
			UserID:          c.UserID,
			MatchPercentage: c.MatchPercentage,
			Details:         c.Details,
		}
		if p, err := u.users.GetByID(ctx, c.UserID); err == nil {
			s.FullName = p.FullName
			s.Email = p.Email
		}
		out = append(out, s)
	}
	return out, nil
}

func toRequirements(rows []project.RequiredSkill) []matching.Requirement {
	out := make([]matching.Requirement, 0, len(rows))
	for _, r := range rows {
		out = append(out, matching.Requirement{
			SkillID:        r.SkillID,
			SubskillID:     r.SubskillID,
			RequiredRating: r.RequiredRating,
		})
	}
	return out
}

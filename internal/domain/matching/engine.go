package matching

import (
	"errors"
	"sort"
	"strings"

	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

var ErrNoRequirements = errors.New("no required skills")

// Requirement is one (skill, subskill, minimum level) demand of a project.
// SubskillID nil means the requirement applies to the skill as a whole.
type Requirement struct {
	SkillID        uuid.UUID
	SubskillID     *uuid.UUID
	RequiredRating rating.Level
}

// ApprovedRating is a candidate's approved self-assessment. SubskillID nil is
// a skill-level rating, which subsumes every subskill requirement under that
// skill.
type ApprovedRating struct {
	UserID     uuid.UUID
	SkillID    uuid.UUID
	SubskillID *uuid.UUID
	Rating     rating.Level
}

// RequirementResult is the per-requirement pass/fail detail for one
// candidate. Rating holds the strongest applicable rating the candidate has,
// or the empty level if none.
type RequirementResult struct {
	SkillID        uuid.UUID
	SubskillID     *uuid.UUID
	RequiredRating rating.Level
	Rating         rating.Level
	Satisfied      bool
}

type Candidate struct {
	UserID          uuid.UUID
	MatchPercentage int
	Details         []RequirementResult
}

// Rank computes per-candidate match percentages against the required skills.
// Candidates with zero satisfied requirements are dropped; the result is
// sorted by percentage descending, ties broken by user id ascending so the
// output is deterministic.
func Rank(reqs []Requirement, ratings []ApprovedRating) ([]Candidate, error) {
	if len(reqs) == 0 {
		return nil, ErrNoRequirements
	}

	byUser := make(map[uuid.UUID][]ApprovedRating)
	for _, r := range ratings {
		if r.UserID == uuid.Nil || !r.Rating.Valid() {
			continue
		}
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	out := make([]Candidate, 0, len(byUser))
	for userID, userRatings := range byUser {
		c := evaluate(userID, reqs, userRatings)
		if c.matched == 0 {
			continue
		}
		out = append(out, Candidate{
			UserID:          userID,
			MatchPercentage: roundPercent(c.matched, len(reqs)),
			Details:         c.details,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchPercentage != out[j].MatchPercentage {
			return out[i].MatchPercentage > out[j].MatchPercentage
		}
		return strings.Compare(out[i].UserID.String(), out[j].UserID.String()) < 0
	})

	return out, nil
}

// Satisfies reports whether a single rating meets a requirement: either an
// exact subskill match, or a skill-level rating for the requirement's skill,
// in both cases at or above the required ordinal.
func Satisfies(r ApprovedRating, req Requirement) bool {
	if r.Rating.Ordinal() < req.RequiredRating.Ordinal() {
		return false
	}
	if r.SkillID != req.SkillID {
		return false
	}
	if r.SubskillID == nil {
		return true
	}
	return req.SubskillID != nil && *r.SubskillID == *req.SubskillID
}

type evaluation struct {
	matched int
	details []RequirementResult
}

func evaluate(userID uuid.UUID, reqs []Requirement, ratings []ApprovedRating) evaluation {
	ev := evaluation{details: make([]RequirementResult, 0, len(reqs))}

	for _, req := range reqs {
		res := RequirementResult{
			SkillID:        req.SkillID,
			SubskillID:     req.SubskillID,
			RequiredRating: req.RequiredRating,
		}

		for _, r := range ratings {
			if !applicable(r, req) {
				continue
			}
			if r.Rating.Ordinal() > res.Rating.Ordinal() {
				res.Rating = r.Rating
			}
			if Satisfies(r, req) {
				res.Satisfied = true
			}
		}

		if res.Satisfied {
			ev.matched++
		}
		ev.details = append(ev.details, res)
	}

	return ev
}

// applicable reports whether a rating can be held against a requirement at
// all, regardless of level.
func applicable(r ApprovedRating, req Requirement) bool {
	if r.SkillID != req.SkillID {
		return false
	}
	if r.SubskillID == nil {
		return true
	}
	return req.SubskillID != nil && *r.SubskillID == *req.SubskillID
}

// roundPercent is round-half-up on the exact ratio: 2 of 3 is 67, not 66.
func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (total * 2)
}

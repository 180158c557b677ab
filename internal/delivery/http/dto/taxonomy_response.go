package dto

import (
	"time"

	"skill-matrix/internal/domain/taxonomy"

	"github.com/google/uuid"
)

type SubskillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

type SkillResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Subskills   []SubskillResponse `json:"subskills"`
}

type CategoryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Skills      []SkillResponse `json:"skills"`
}

// TaxonomyTree nests the flat taxonomy into the category > skill > subskill
// shape clients render.
func TaxonomyTree(t taxonomy.Taxonomy) []CategoryResponse {
	subsBySkill := make(map[uuid.UUID][]SubskillResponse, len(t.Skills))
	for _, ss := range t.Subskills {
		subsBySkill[ss.SkillID] = append(subsBySkill[ss.SkillID], SubskillResponse{
			ID:          ss.ID,
			Name:        ss.Name,
			Description: ss.Description,
		})
	}

	skillsByCategory := make(map[uuid.UUID][]SkillResponse, len(t.Categories))
	for _, s := range t.Skills {
		subs := subsBySkill[s.ID]
		if subs == nil {
			subs = []SubskillResponse{}
		}
		skillsByCategory[s.CategoryID] = append(skillsByCategory[s.CategoryID], SkillResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Subskills:   subs,
		})
	}

	out := make([]CategoryResponse, 0, len(t.Categories))
	for _, c := range t.Categories {
		skills := skillsByCategory[c.ID]
		if skills == nil {
			skills = []SkillResponse{}
		}
		out = append(out, CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Color:       c.Color,
			CreatedAt:   c.CreatedAt,
			Skills:      skills,
		})
	}
	return out
}

package taxonomy

import (
	"time"

	"github.com/google/uuid"
)

type SkillCategory struct {
	ID          uuid.UUID
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
}

type Skill struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// Subskill is the leaf unit of rating.
type Subskill struct {
	ID          uuid.UUID
	SkillID     uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// Taxonomy holds the flat category/skill/subskill collections joined by
// foreign key, each ordered by name.
type Taxonomy struct {
	Categories []SkillCategory
	Skills     []Skill
	Subskills  []Subskill
}

// LeafCount returns the number of rateable items under a category: every
// subskill, plus every skill that has no subskills.
func (t Taxonomy) LeafCount(categoryID uuid.UUID) int {
	subsBySkill := make(map[uuid.UUID]int, len(t.Skills))
	for _, ss := range t.Subskills {
		subsBySkill[ss.SkillID]++
	}

	total := 0
	for _, s := range t.Skills {
		if s.CategoryID != categoryID {
			continue
		}
		if n := subsBySkill[s.ID]; n > 0 {
			total += n
		} else {
			total++
		}
	}
	return total
}

// SkillIDs returns the ids of all skills under a category.
func (t Taxonomy) SkillIDs(categoryID uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0)
	for _, s := range t.Skills {
		if s.CategoryID == categoryID {
			out = append(out, s.ID)
		}
	}
	return out
}

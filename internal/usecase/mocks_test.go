package usecase

import (
	"context"

	"skill-matrix/internal/domain/allocation"
	"skill-matrix/internal/domain/matching"
	"skill-matrix/internal/domain/project"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/domain/taxonomy"
	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type mockTaxonomyRepo struct {
	taxonomy    taxonomy.Taxonomy
	skillExists bool
	subskills   []taxonomy.Subskill
	err         error
}

func (m *mockTaxonomyRepo) LoadTaxonomy(context.Context) (taxonomy.Taxonomy, error) {
	return m.taxonomy, m.err
}
func (m *mockTaxonomyRepo) CreateCategory(context.Context, taxonomy.SkillCategory) error {
	return m.err
}
func (m *mockTaxonomyRepo) UpdateCategory(context.Context, taxonomy.SkillCategory) error {
	return m.err
}
func (m *mockTaxonomyRepo) DeleteCategory(context.Context, uuid.UUID) error   { return m.err }
func (m *mockTaxonomyRepo) CreateSkill(context.Context, taxonomy.Skill) error { return m.err }
func (m *mockTaxonomyRepo) DeleteSkill(context.Context, uuid.UUID) error      { return m.err }
func (m *mockTaxonomyRepo) SkillExists(context.Context, uuid.UUID) (bool, error) {
	return m.skillExists, m.err
}
func (m *mockTaxonomyRepo) CreateSubskill(context.Context, taxonomy.Subskill) error { return m.err }
func (m *mockTaxonomyRepo) DeleteSubskill(context.Context, uuid.UUID) error         { return m.err }
func (m *mockTaxonomyRepo) SubskillsBySkillIDs(context.Context, []uuid.UUID) ([]taxonomy.Subskill, error) {
	return m.subskills, m.err
}

type mockRatingRepo struct {
	byID      map[uuid.UUID]rating.EmployeeRating
	byUser    []rating.EmployeeRating
	pending   []rating.EmployeeRating
	byStatus  map[rating.Status][]rating.EmployeeRating
	approved  []matching.ApprovedRating
	upserted  *rating.EmployeeRating
	setStatus []rating.Status
	err       error
}

func (m *mockRatingRepo) Upsert(_ context.Context, r rating.EmployeeRating) (rating.EmployeeRating, error) {
	if m.err != nil {
		return rating.EmployeeRating{}, m.err
	}
	m.upserted = &r
	return r, nil
}

func (m *mockRatingRepo) FindByID(_ context.Context, id uuid.UUID) (rating.EmployeeRating, error) {
	if m.err != nil {
		return rating.EmployeeRating{}, m.err
	}
	r, ok := m.byID[id]
	if !ok {
		return rating.EmployeeRating{}, repository.ErrRatingNotFound
	}
	return r, nil
}

func (m *mockRatingRepo) FindByUser(context.Context, uuid.UUID) ([]rating.EmployeeRating, error) {
	return m.byUser, m.err
}

func (m *mockRatingRepo) FindByUserAndSkills(context.Context, uuid.UUID, []uuid.UUID) ([]rating.EmployeeRating, error) {
	return m.byUser, m.err
}

func (m *mockRatingRepo) FindByStatus(_ context.Context, status rating.Status) ([]rating.EmployeeRating, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.byStatus != nil {
		return m.byStatus[status], nil
	}
	return m.pending, nil
}

func (m *mockRatingRepo) SetStatus(_ context.Context, id uuid.UUID, status rating.Status, _ uuid.UUID, _ string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[id]; !ok {
		return repository.ErrRatingNotFound
	}
	m.setStatus = append(m.setStatus, status)
	return nil
}

func (m *mockRatingRepo) Submit(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.byID[id]
	if !ok || r.UserID != userID || r.Status != rating.StatusDraft {
		return repository.ErrRatingNotFound
	}
	return nil
}

func (m *mockRatingRepo) FindApprovedForScope(context.Context, repository.ApprovedScope) ([]matching.ApprovedRating, error) {
	return m.approved, m.err
}

type mockNotificationRepo struct {
	created []repository.Notification
	err     error
}

func (m *mockNotificationRepo) Create(_ context.Context, n repository.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(context.Context, uuid.UUID, bool) ([]repository.Notification, error) {
	return m.created, m.err
}

func (m *mockNotificationRepo) MarkRead(context.Context, uuid.UUID, uuid.UUID) error { return m.err }
func (m *mockNotificationRepo) MarkAllRead(context.Context, uuid.UUID) error         { return m.err }

type mockGamificationRepo struct {
	points       int
	achievements []string
	err          error
}

func (m *mockGamificationRepo) Get(_ context.Context, userID uuid.UUID) (repository.Gamification, error) {
	return repository.Gamification{UserID: userID, TotalPoints: m.points, Level: m.points/50 + 1}, m.err
}

func (m *mockGamificationRepo) AddPoints(_ context.Context, userID uuid.UUID, points int) (repository.Gamification, error) {
	if m.err != nil {
		return repository.Gamification{}, m.err
	}
	m.points += points
	return repository.Gamification{UserID: userID, TotalPoints: m.points}, nil
}

func (m *mockGamificationRepo) Achievements(context.Context, uuid.UUID) ([]repository.Achievement, error) {
	return nil, m.err
}

func (m *mockGamificationRepo) GrantAchievement(_ context.Context, _ uuid.UUID, name string) error {
	if m.err != nil {
		return m.err
	}
	m.achievements = append(m.achievements, name)
	return nil
}

type mockProjectRepo struct {
	projects   map[uuid.UUID]project.Project
	reqs       []project.RequiredSkill
	created    *project.Project
	statusTo   *project.Status
	addedReq   *project.RequiredSkill
	removedReq *uuid.UUID
	err        error
}

func (m *mockProjectRepo) Create(_ context.Context, p project.Project, _ []project.RequiredSkill, _ []project.Assignment) error {
	if m.err != nil {
		return m.err
	}
	m.created = &p
	return nil
}

func (m *mockProjectRepo) FindByID(_ context.Context, id uuid.UUID) (project.Project, error) {
	if m.err != nil {
		return project.Project{}, m.err
	}
	p, ok := m.projects[id]
	if !ok {
		return project.Project{}, repository.ErrProjectNotFound
	}
	return p, nil
}

func (m *mockProjectRepo) List(context.Context, *project.Status) ([]project.Project, error) {
	out := make([]project.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, m.err
}

func (m *mockProjectRepo) Update(context.Context, project.Project) error { return m.err }

func (m *mockProjectRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _, to project.Status, _ uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.statusTo = &to
	return nil
}

func (m *mockProjectRepo) Delete(context.Context, uuid.UUID) error { return m.err }

func (m *mockProjectRepo) RequiredSkills(context.Context, uuid.UUID) ([]project.RequiredSkill, error) {
	return m.reqs, m.err
}

func (m *mockProjectRepo) AddRequiredSkill(_ context.Context, rs project.RequiredSkill) error {
	if m.err != nil {
		return m.err
	}
	m.addedReq = &rs
	return nil
}

func (m *mockProjectRepo) RemoveRequiredSkill(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.removedReq = &id
	return nil
}
func (m *mockProjectRepo) AddValidation(context.Context, project.SkillValidation) error {
	return m.err
}
func (m *mockProjectRepo) Validations(context.Context, uuid.UUID) ([]project.SkillValidation, error) {
	return nil, m.err
}

type mockAssignmentRepo struct {
	active   []allocation.Assignment
	byProj   []project.Assignment
	created  *project.Assignment
	updated  *int
	admitErr error
	err      error
}

func (m *mockAssignmentRepo) ListByProject(context.Context, uuid.UUID) ([]project.Assignment, error) {
	return m.byProj, m.err
}

func (m *mockAssignmentRepo) ListActiveByUser(context.Context, uuid.UUID) ([]allocation.Assignment, error) {
	return m.active, m.err
}

func (m *mockAssignmentRepo) CreateGuarded(_ context.Context, a project.Assignment, admit repository.AdmitFunc) error {
	if m.err != nil {
		return m.err
	}
	if err := admit(m.active); err != nil {
		m.admitErr = err
		return err
	}
	m.created = &a
	return nil
}

func (m *mockAssignmentRepo) UpdateAllocationGuarded(_ context.Context, _ uuid.UUID, percentage int, admit repository.AdmitFunc) error {
	if m.err != nil {
		return m.err
	}
	if err := admit(m.active); err != nil {
		m.admitErr = err
		return err
	}
	m.updated = &percentage
	return nil
}

func (m *mockAssignmentRepo) Delete(context.Context, uuid.UUID) error { return m.err }

type mockUserRepo struct {
	byID map[uuid.UUID]user.Profile
	err  error
}

func (m *mockUserRepo) Create(_ context.Context, p user.Profile) error {
	if m.err != nil {
		return m.err
	}
	if m.byID == nil {
		m.byID = map[uuid.UUID]user.Profile{}
	}
	m.byID[p.ID] = p
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.Profile, error) {
	if m.err != nil {
		return user.Profile{}, m.err
	}
	p, ok := m.byID[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.Profile, error) {
	for _, p := range m.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, p := range m.byID {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) List(context.Context) ([]user.Profile, error) {
	out := make([]user.Profile, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, m.err
}

func (m *mockUserRepo) Update(_ context.Context, p user.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.byID[p.ID] = p
	return nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role user.Role) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	p.Role = role
	m.byID[id] = p
	return nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	p.PasswordHash = hash
	m.byID[id] = p
	return nil
}

func (m *mockUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	p.IsActive = active
	m.byID[id] = p
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[id]; !ok {
		return user.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

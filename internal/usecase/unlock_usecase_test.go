package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"careerquest/internal/repository"

	"github.com/google/uuid"
)

type ledgerKey struct {
	user  uuid.UUID
	skill uuid.UUID
}

type mockSkillCatalog struct {
	skills map[uuid.UUID]repository.Skill
}

func (m mockSkillCatalog) ListCategories(context.Context) ([]repository.SkillCategory, error) {
	return nil, nil
}
func (m mockSkillCatalog) ListSkills(context.Context, repository.SkillFilter) ([]repository.Skill, error) {
	return nil, nil
}
func (m mockSkillCatalog) GetSkillByID(_ context.Context, id uuid.UUID) (repository.Skill, error) {
	s, ok := m.skills[id]
	if !ok {
		return repository.Skill{}, repository.ErrSkillMissing
	}
	return s, nil
}

type mockLedger struct {
	rows   map[ledgerKey]repository.UserSkill
	grants []repository.GrantRecord

	failGrantFor uuid.UUID
}

func newMockLedger() *mockLedger {
	return &mockLedger{rows: map[ledgerKey]repository.UserSkill{}}
}

func (m *mockLedger) FindByUserID(_ context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	out := []repository.UserSkill{}
	for k, v := range m.rows {
		if k.user == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockLedger) FindByUserAndSkill(_ context.Context, userID, skillID uuid.UUID) (repository.UserSkill, error) {
	row, ok := m.rows[ledgerKey{userID, skillID}]
	if !ok {
		return repository.UserSkill{}, repository.ErrUserSkillNotFound
	}
	return row, nil
}

func (m *mockLedger) ApplyGrant(_ context.Context, rec repository.GrantRecord) error {
	if rec.SkillID == m.failGrantFor {
		return errors.New("storage down")
	}

	key := ledgerKey{rec.UserID, rec.SkillID}
	row, ok := m.rows[key]
	if !ok {
		now := time.Now()
		row = repository.UserSkill{ID: uuid.New(), UserID: rec.UserID, SkillID: rec.SkillID, UnlockedAt: &now}
	}
	row.Level = rec.Level
	row.ExperiencePoints = rec.ExperiencePoints
	m.rows[key] = row
	m.grants = append(m.grants, rec)
	return nil
}

func (m *mockLedger) Upsert(_ context.Context, userID, skillID uuid.UUID, level, xp int) error {
	key := ledgerKey{userID, skillID}
	row, ok := m.rows[key]
	if !ok {
		now := time.Now()
		row = repository.UserSkill{ID: uuid.New(), UserID: userID, SkillID: skillID, UnlockedAt: &now}
	}
	row.Level = level
	row.ExperiencePoints = xp
	m.rows[key] = row
	return nil
}

func (m *mockLedger) Delete(_ context.Context, userID, skillID uuid.UUID) error {
	key := ledgerKey{userID, skillID}
	if _, ok := m.rows[key]; !ok {
		return repository.ErrUserSkillNotFound
	}
	delete(m.rows, key)
	return nil
}

type mockJobOwnership struct {
	owners map[uuid.UUID]uuid.UUID
}

func (m mockJobOwnership) FindByUserID(context.Context, uuid.UUID) ([]repository.JobExperience, error) {
	return nil, nil
}
func (m mockJobOwnership) FindOwned(_ context.Context, id, userID uuid.UUID) (repository.JobExperience, error) {
	owner, ok := m.owners[id]
	if !ok || owner != userID {
		return repository.JobExperience{}, repository.ErrJobExperienceNotFound
	}
	return repository.JobExperience{ID: id, UserID: userID}, nil
}
func (m mockJobOwnership) Create(_ context.Context, je repository.JobExperience) (repository.JobExperience, error) {
	return je, nil
}
func (m mockJobOwnership) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (m mockJobOwnership) ListUnlocks(context.Context, uuid.UUID) ([]repository.SkillUnlock, error) {
	return nil, nil
}

func intPtr(v int) *int { return &v }

func TestUnlockSkills_DefaultsAndProvenance(t *testing.T) {
	userID, jobID, skillID := uuid.New(), uuid.New(), uuid.New()
	ledger := newMockLedger()
	uc := NewUnlockUsecase(
		mockJobOwnership{owners: map[uuid.UUID]uuid.UUID{jobID: userID}},
		mockSkillCatalog{skills: map[uuid.UUID]repository.Skill{skillID: {ID: skillID, MaxLevel: 10}}},
		ledger,
		nil,
	)

	applied, err := uc.UnlockSkills(context.Background(), userID, jobID, []SkillGrant{{SkillID: skillID}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(applied) != 1 {
		t.Fatalf("expected 1 applied grant, got %d", len(applied))
	}
	if applied[0].Level != 1 || applied[0].ExperiencePoints != 100 {
		t.Fatalf("expected defaults 1/100, got %d/%d", applied[0].Level, applied[0].ExperiencePoints)
	}
	if len(ledger.grants) != 1 {
		t.Fatalf("expected 1 provenance row, got %d", len(ledger.grants))
	}
	if g := ledger.grants[0]; g.LevelGranted != 1 || g.ExperienceGranted != 100 || g.JobExperienceID != jobID {
		t.Fatalf("unexpected provenance record: %+v", g)
	}
}

func TestUnlockSkills_LevelMonotonicXPAdditive(t *testing.T) {
	userID, jobID, skillID := uuid.New(), uuid.New(), uuid.New()
	ledger := newMockLedger()
	ledger.rows[ledgerKey{userID, skillID}] = repository.UserSkill{
		UserID: userID, SkillID: skillID, Level: 3, ExperiencePoints: 150,
	}
	uc := NewUnlockUsecase(
		mockJobOwnership{owners: map[uuid.UUID]uuid.UUID{jobID: userID}},
		mockSkillCatalog{skills: map[uuid.UUID]repository.Skill{skillID: {ID: skillID, MaxLevel: 10}}},
		ledger,
		nil,
	)

	applied, err := uc.UnlockSkills(context.Background(), userID, jobID, []SkillGrant{
		{SkillID: skillID, Level: intPtr(1), ExperiencePoints: intPtr(50)},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if applied[0].Level != 3 {
		t.Fatalf("level regressed: got %d, want 3", applied[0].Level)
	}
	if applied[0].ExperiencePoints != 200 {
		t.Fatalf("xp not additive: got %d, want 200", applied[0].ExperiencePoints)
	}
	// Provenance keeps the granted values, not the merged ones.
	if g := ledger.grants[0]; g.LevelGranted != 1 || g.ExperienceGranted != 50 {
		t.Fatalf("provenance should record granted values, got %+v", g)
	}
}

func TestUnlockSkills_ClampsToMaxLevel(t *testing.T) {
	userID, jobID, skillID := uuid.New(), uuid.New(), uuid.New()
	ledger := newMockLedger()
	uc := NewUnlockUsecase(
		mockJobOwnership{owners: map[uuid.UUID]uuid.UUID{jobID: userID}},
		mockSkillCatalog{skills: map[uuid.UUID]repository.Skill{skillID: {ID: skillID, MaxLevel: 5}}},
		ledger,
		nil,
	)

	applied, err := uc.UnlockSkills(context.Background(), userID, jobID, []SkillGrant{
		{SkillID: skillID, Level: intPtr(42)},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if applied[0].Level != 5 || applied[0].LevelGranted != 5 {
		t.Fatalf("expected clamp to 5, got level=%d granted=%d", applied[0].Level, applied[0].LevelGranted)
	}
}

func TestUnlockSkills_SkipsUnknownSkills(t *testing.T) {
	userID, jobID, knownID := uuid.New(), uuid.New(), uuid.New()
	ledger := newMockLedger()
	uc := NewUnlockUsecase(
		mockJobOwnership{owners: map[uuid.UUID]uuid.UUID{jobID: userID}},
		mockSkillCatalog{skills: map[uuid.UUID]repository.Skill{knownID: {ID: knownID, MaxLevel: 10}}},
		ledger,
		nil,
	)

	applied, err := uc.UnlockSkills(context.Background(), userID, jobID, []SkillGrant{
		{SkillID: uuid.New()},
		{SkillID: knownID},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(applied) != 1 || applied[0].SkillID != knownID {
		t.Fatalf("expected only the known skill applied, got %+v", applied)
	}
	if len(ledger.grants) != 1 {
		t.Fatalf("expected 1 provenance row, got %d", len(ledger.grants))
	}
}

func TestUnlockSkills_JobNotOwned(t *testing.T) {
	userID, jobID, skillID := uuid.New(), uuid.New(), uuid.New()
	uc := NewUnlockUsecase(
		mockJobOwnership{owners: map[uuid.UUID]uuid.UUID{jobID: uuid.New()}},
		mockSkillCatalog{skills: map[uuid.UUID]repository.Skill{skillID: {ID: skillID, MaxLevel: 10}}},
		newMockLedger(),
		nil,
	)

	_, err := uc.UnlockSkills(context.Background(), userID, jobID, []SkillGrant{{SkillID: skillID}})
	if !errors.Is(err, ErrJobExperienceNotFound) {
		t.Fatalf("expected ErrJobExperienceNotFound, got %v", err)
	}
}

func TestUnlockSkills_EmptyBatch(t *testing.T) {
	uc := NewUnlockUsecase(mockJobOwnership{}, mockSkillCatalog{}, newMockLedger(), nil)
	_, err := uc.UnlockSkills(context.Background(), uuid.New(), uuid.New(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUnlockSkills_EarlierGrantsSurviveLaterFailure(t *testing.T) {
	userID, jobID := uuid.New(), uuid.New()
	okID, badID := uuid.New(), uuid.New()
	ledger := newMockLedger()
	ledger.failGrantFor = badID
	uc := NewUnlockUsecase(
		mockJobOwnership{owners: map[uuid.UUID]uuid.UUID{jobID: userID}},
		mockSkillCatalog{skills: map[uuid.UUID]repository.Skill{
			okID:  {ID: okID, MaxLevel: 10},
			badID: {ID: badID, MaxLevel: 10},
		}},
		ledger,
		nil,
	)

	applied, err := uc.UnlockSkills(context.Background(), userID, jobID, []SkillGrant{
		{SkillID: okID},
		{SkillID: badID},
	})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if len(applied) != 1 || applied[0].SkillID != okID {
		t.Fatalf("earlier grant should be reported, got %+v", applied)
	}
	if _, ok := ledger.rows[ledgerKey{userID, okID}]; !ok {
		t.Fatalf("earlier grant should persist")
	}
}

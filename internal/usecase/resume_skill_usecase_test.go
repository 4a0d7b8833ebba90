package usecase

import (
	"context"
	"errors"
	"testing"

	"careerquest/internal/repository"

	"github.com/google/uuid"
)

type mockResumeRepo struct {
	owners map[uuid.UUID]uuid.UUID
}

func (m mockResumeRepo) FindByUserID(context.Context, uuid.UUID) ([]repository.Resume, error) {
	return nil, nil
}
func (m mockResumeRepo) FindOwned(_ context.Context, id, userID uuid.UUID) (repository.Resume, error) {
	owner, ok := m.owners[id]
	if !ok || owner != userID {
		return repository.Resume{}, repository.ErrResumeNotFound
	}
	return repository.Resume{ID: id, UserID: userID}, nil
}
func (m mockResumeRepo) Create(_ context.Context, rs repository.Resume) (repository.Resume, error) {
	return rs, nil
}
func (m mockResumeRepo) Update(_ context.Context, rs repository.Resume) (repository.Resume, error) {
	return rs, nil
}
func (m mockResumeRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type resumeSkillKey struct {
	resume uuid.UUID
	skill  uuid.UUID
}

type mockResumeSkillStore struct {
	pairs map[resumeSkillKey]bool
}

func newMockResumeSkillStore() *mockResumeSkillStore {
	return &mockResumeSkillStore{pairs: map[resumeSkillKey]bool{}}
}

func (m *mockResumeSkillStore) ListByResume(_ context.Context, resumeID, _ uuid.UUID) ([]repository.ResumeSkill, error) {
	out := []repository.ResumeSkill{}
	for k := range m.pairs {
		if k.resume == resumeID {
			out = append(out, repository.ResumeSkill{SkillID: k.skill})
		}
	}
	return out, nil
}

func (m *mockResumeSkillStore) Add(_ context.Context, resumeID, skillID uuid.UUID) error {
	key := resumeSkillKey{resumeID, skillID}
	if m.pairs[key] {
		return repository.ErrResumeSkillExists
	}
	m.pairs[key] = true
	return nil
}

func (m *mockResumeSkillStore) Remove(_ context.Context, resumeID, skillID uuid.UUID) error {
	key := resumeSkillKey{resumeID, skillID}
	if !m.pairs[key] {
		return repository.ErrResumeSkillNotFound
	}
	delete(m.pairs, key)
	return nil
}

func TestAddSkillToResume_RequiresUnlockedSkill(t *testing.T) {
	userID, resumeID, skillID := uuid.New(), uuid.New(), uuid.New()
	uc := NewResumeSkillUsecase(
		mockResumeRepo{owners: map[uuid.UUID]uuid.UUID{resumeID: userID}},
		newMockResumeSkillStore(),
		newMockLedger(),
		nil,
	)

	err := uc.AddSkillToResume(context.Background(), userID, resumeID, skillID)
	if !errors.Is(err, ErrSkillNotUnlocked) {
		t.Fatalf("expected ErrSkillNotUnlocked, got %v", err)
	}
}

func TestAddSkillToResume_Duplicate(t *testing.T) {
	userID, resumeID, skillID := uuid.New(), uuid.New(), uuid.New()
	ledger := newMockLedger()
	ledger.rows[ledgerKey{userID, skillID}] = repository.UserSkill{UserID: userID, SkillID: skillID, Level: 1}
	store := newMockResumeSkillStore()
	uc := NewResumeSkillUsecase(
		mockResumeRepo{owners: map[uuid.UUID]uuid.UUID{resumeID: userID}},
		store,
		ledger,
		nil,
	)

	if err := uc.AddSkillToResume(context.Background(), userID, resumeID, skillID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	err := uc.AddSkillToResume(context.Background(), userID, resumeID, skillID)
	if !errors.Is(err, ErrSkillAlreadyListed) {
		t.Fatalf("expected ErrSkillAlreadyListed, got %v", err)
	}
}

func TestAddSkillToResume_OwnershipConflatedToNotFound(t *testing.T) {
	userID, resumeID := uuid.New(), uuid.New()
	uc := NewResumeSkillUsecase(
		mockResumeRepo{owners: map[uuid.UUID]uuid.UUID{resumeID: uuid.New()}},
		newMockResumeSkillStore(),
		newMockLedger(),
		nil,
	)

	err := uc.AddSkillToResume(context.Background(), userID, resumeID, uuid.New())
	if !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
}

func TestRemoveSkillFromResume_LedgerUntouched(t *testing.T) {
	userID, resumeID, skillID := uuid.New(), uuid.New(), uuid.New()
	ledger := newMockLedger()
	ledger.rows[ledgerKey{userID, skillID}] = repository.UserSkill{UserID: userID, SkillID: skillID, Level: 4}
	store := newMockResumeSkillStore()
	store.pairs[resumeSkillKey{resumeID, skillID}] = true
	uc := NewResumeSkillUsecase(
		mockResumeRepo{owners: map[uuid.UUID]uuid.UUID{resumeID: userID}},
		store,
		ledger,
		nil,
	)

	if err := uc.RemoveSkillFromResume(context.Background(), userID, resumeID, skillID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(store.pairs) != 0 {
		t.Fatalf("association should be removed")
	}
	if _, ok := ledger.rows[ledgerKey{userID, skillID}]; !ok {
		t.Fatalf("ledger row must survive association removal")
	}
}

func TestRemoveSkillFromResume_NotInResume(t *testing.T) {
	userID, resumeID := uuid.New(), uuid.New()
	uc := NewResumeSkillUsecase(
		mockResumeRepo{owners: map[uuid.UUID]uuid.UUID{resumeID: userID}},
		newMockResumeSkillStore(),
		newMockLedger(),
		nil,
	)

	err := uc.RemoveSkillFromResume(context.Background(), userID, resumeID, uuid.New())
	if !errors.Is(err, ErrSkillNotInResume) {
		t.Fatalf("expected ErrSkillNotInResume, got %v", err)
	}
}

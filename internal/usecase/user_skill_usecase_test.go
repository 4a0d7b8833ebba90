package usecase

import (
	"context"
	"errors"
	"testing"

	"careerquest/internal/repository"

	"github.com/google/uuid"
)

type mockTreeRepo struct {
	nodes []repository.UserSkillTreeNode
}

func (m mockTreeRepo) ListNodes(context.Context) ([]repository.SkillTreeNode, error) {
	return nil, nil
}
func (m mockTreeRepo) ListNodesForUser(context.Context, uuid.UUID) ([]repository.UserSkillTreeNode, error) {
	return m.nodes, nil
}

func TestSetSkillProgress_ClampsToMaxLevel(t *testing.T) {
	userID, skillID := uuid.New(), uuid.New()
	ledger := newMockLedger()
	uc := NewUserSkillUsecase(
		ledger,
		mockSkillCatalog{skills: map[uuid.UUID]repository.Skill{skillID: {ID: skillID, MaxLevel: 10}}},
		mockTreeRepo{},
		nil,
	)

	updated, err := uc.SetSkillProgress(context.Background(), userID, skillID, SetSkillProgressInput{
		Level: intPtr(42),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Level != 10 {
		t.Fatalf("expected clamp to 10, got %d", updated.Level)
	}
}

func TestSetSkillProgress_PartialUpdateKeepsOtherField(t *testing.T) {
	userID, skillID := uuid.New(), uuid.New()
	ledger := newMockLedger()
	ledger.rows[ledgerKey{userID, skillID}] = repository.UserSkill{
		UserID: userID, SkillID: skillID, Level: 5, ExperiencePoints: 300,
	}
	uc := NewUserSkillUsecase(
		ledger,
		mockSkillCatalog{skills: map[uuid.UUID]repository.Skill{skillID: {ID: skillID, MaxLevel: 10}}},
		mockTreeRepo{},
		nil,
	)

	updated, err := uc.SetSkillProgress(context.Background(), userID, skillID, SetSkillProgressInput{
		ExperiencePoints: intPtr(450),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Level != 5 {
		t.Fatalf("level should be untouched, got %d", updated.Level)
	}
	if updated.ExperiencePoints != 450 {
		t.Fatalf("xp should be replaced on direct set, got %d", updated.ExperiencePoints)
	}
}

func TestSetSkillProgress_UnknownSkill(t *testing.T) {
	uc := NewUserSkillUsecase(newMockLedger(), mockSkillCatalog{}, mockTreeRepo{}, nil)
	_, err := uc.SetSkillProgress(context.Background(), uuid.New(), uuid.New(), SetSkillProgressInput{Level: intPtr(1)})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestSetSkillProgress_NegativeInput(t *testing.T) {
	uc := NewUserSkillUsecase(newMockLedger(), mockSkillCatalog{}, mockTreeRepo{}, nil)
	_, err := uc.SetSkillProgress(context.Background(), uuid.New(), uuid.New(), SetSkillProgressInput{Level: intPtr(-1)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRemoveUserSkill_NotFound(t *testing.T) {
	uc := NewUserSkillUsecase(newMockLedger(), mockSkillCatalog{}, mockTreeRepo{}, nil)
	err := uc.RemoveUserSkill(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrUserSkillNotFound) {
		t.Fatalf("expected ErrUserSkillNotFound, got %v", err)
	}
}

func TestListUserTree_LockedNodesZeroed(t *testing.T) {
	skillID := uuid.New()
	uc := NewUserSkillUsecase(newMockLedger(), mockSkillCatalog{}, mockTreeRepo{
		nodes: []repository.UserSkillTreeNode{
			{
				SkillTreeNode: repository.SkillTreeNode{NodeID: uuid.New(), SkillID: skillID, Tier: 1, SkillName: "SQL"},
				UserLevel:     0, UserExperience: 0, Unlocked: false,
			},
		},
	}, nil)

	nodes, err := uc.ListUserTree(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	if nodes[0].Unlocked || nodes[0].UserLevel != 0 {
		t.Fatalf("locked node should come back level 0, got %+v", nodes[0])
	}
}

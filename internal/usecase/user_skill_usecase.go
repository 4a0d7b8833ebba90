package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"careerquest/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrUserSkillNotFound = errors.New("user skill not found")
)

type UserSkillItem struct {
	ID               uuid.UUID
	SkillID          uuid.UUID
	Level            int
	ExperiencePoints int
	UnlockedAt       *time.Time
	LastUpdated      time.Time

	SkillName     string
	Description   string
	SkillType     string
	MaxLevel      int
	Icon          string
	CategoryName  string
	CategoryColor string
}

type UserSkillTreeNodeItem struct {
	SkillTreeNodeItem
	UserLevel      int
	UserExperience int
	Unlocked       bool
}

// SetSkillProgressInput carries the direct set path: absent fields keep the
// current value, a fresh row defaults both to zero.
type SetSkillProgressInput struct {
	Level            *int
	ExperiencePoints *int
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error)
	ListUserTree(ctx context.Context, userID uuid.UUID) ([]UserSkillTreeNodeItem, error)
	SetSkillProgress(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, in SetSkillProgressInput) (UserSkillItem, error)
	RemoveUserSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error
}

type UserSkillProgress struct {
	ledger repository.UserSkillRepository
	skills repository.SkillRepository
	tree   repository.SkillTreeRepository
	logger *log.Logger
}

func NewUserSkillUsecase(
	ledger repository.UserSkillRepository,
	skills repository.SkillRepository,
	tree repository.SkillTreeRepository,
	logger *log.Logger,
) *UserSkillProgress {
	if logger == nil {
		logger = log.Default()
	}
	return &UserSkillProgress{ledger: ledger, skills: skills, tree: tree, logger: logger}
}

func (u *UserSkillProgress) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error) {
	items, err := u.ledger.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Printf("list user skills failed | user=%s err=%v", userID, err)
		return nil, ErrInternal
	}

	out := make([]UserSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, userSkillItemFrom(it))
	}
	return out, nil
}

func (u *UserSkillProgress) ListUserTree(ctx context.Context, userID uuid.UUID) ([]UserSkillTreeNodeItem, error) {
	nodes, err := u.tree.ListNodesForUser(ctx, userID)
	if err != nil {
		u.logger.Printf("list user tree failed | user=%s err=%v", userID, err)
		return nil, ErrInternal
	}

	out := make([]UserSkillTreeNodeItem, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, UserSkillTreeNodeItem{
			SkillTreeNodeItem: SkillTreeNodeItem{
				NodeID:        n.NodeID,
				SkillID:       n.SkillID,
				ParentSkillID: n.ParentSkillID,
				PositionX:     n.PositionX,
				PositionY:     n.PositionY,
				Tier:          n.Tier,
				SkillName:     n.SkillName,
				Description:   n.Description,
				SkillType:     n.SkillType,
				MaxLevel:      n.MaxLevel,
				Icon:          n.Icon,
				CategoryName:  n.CategoryName,
				CategoryColor: n.CategoryColor,
			},
			UserLevel:      n.UserLevel,
			UserExperience: n.UserExperience,
			Unlocked:       n.Unlocked,
		})
	}
	return out, nil
}

func (u *UserSkillProgress) SetSkillProgress(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, in SetSkillProgressInput) (UserSkillItem, error) {
	if skillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}
	if in.Level != nil && *in.Level < 0 {
		return UserSkillItem{}, ErrInvalidInput
	}
	if in.ExperiencePoints != nil && *in.ExperiencePoints < 0 {
		return UserSkillItem{}, ErrInvalidInput
	}

	skill, err := u.skills.GetSkillByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillMissing) {
			return UserSkillItem{}, ErrSkillNotFound
		}
		u.logger.Printf("set skill progress lookup failed | user=%s skill=%s err=%v", userID, skillID, err)
		return UserSkillItem{}, ErrInternal
	}

	level := 0
	xp := 0
	existing, err := u.ledger.FindByUserAndSkill(ctx, userID, skillID)
	switch {
	case err == nil:
		level = existing.Level
		xp = existing.ExperiencePoints
	case errors.Is(err, repository.ErrUserSkillNotFound):
		// fresh row, zero defaults
	default:
		u.logger.Printf("set skill progress read failed | user=%s skill=%s err=%v", userID, skillID, err)
		return UserSkillItem{}, ErrInternal
	}

	if in.Level != nil {
		level = clampLevel(*in.Level, skill.MaxLevel)
	}
	if in.ExperiencePoints != nil {
		xp = *in.ExperiencePoints
	}

	if err := u.ledger.Upsert(ctx, userID, skillID, level, xp); err != nil {
		u.logger.Printf("set skill progress write failed | user=%s skill=%s err=%v", userID, skillID, err)
		return UserSkillItem{}, ErrInternal
	}

	updated, err := u.ledger.FindByUserAndSkill(ctx, userID, skillID)
	if err != nil {
		u.logger.Printf("set skill progress reread failed | user=%s skill=%s err=%v", userID, skillID, err)
		return UserSkillItem{}, ErrInternal
	}
	return userSkillItemFrom(updated), nil
}

func (u *UserSkillProgress) RemoveUserSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error {
	if err := u.ledger.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		u.logger.Printf("remove user skill failed | user=%s skill=%s err=%v", userID, skillID, err)
		return ErrInternal
	}
	return nil
}

func clampLevel(level, maxLevel int) int {
	if level < 0 {
		return 0
	}
	if maxLevel > 0 && level > maxLevel {
		return maxLevel
	}
	return level
}

func userSkillItemFrom(us repository.UserSkill) UserSkillItem {
	return UserSkillItem{
		ID:               us.ID,
		SkillID:          us.SkillID,
		Level:            us.Level,
		ExperiencePoints: us.ExperiencePoints,
		UnlockedAt:       us.UnlockedAt,
		LastUpdated:      us.LastUpdated,
		SkillName:        us.SkillName,
		Description:      us.Description,
		SkillType:        us.SkillType,
		MaxLevel:         us.MaxLevel,
		Icon:             us.Icon,
		CategoryName:     us.CategoryName,
		CategoryColor:    us.CategoryColor,
	}
}

package usecase

import (
	"context"
	"time"

	"careerquest/internal/repository"

	"github.com/google/uuid"
)

const (
	cacheKeySkillCategories = "catalog:categories"
	cacheKeySkillTree       = "catalog:tree"

	catalogCacheTTL = 10 * time.Minute
)

type SkillItem struct {
	ID            uuid.UUID
	CategoryID    *uuid.UUID
	Name          string
	Description   string
	SkillType     string
	MaxLevel      int
	Icon          string
	CategoryName  string
	CategoryColor string
}

type SkillCategoryItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
	Color       string
}

type SkillTreeNodeItem struct {
	NodeID        uuid.UUID
	SkillID       uuid.UUID
	ParentSkillID *uuid.UUID
	PositionX     int
	PositionY     int
	Tier          int
	SkillName     string
	Description   string
	SkillType     string
	MaxLevel      int
	Icon          string
	CategoryName  string
	CategoryColor string
}

type SkillListFilter struct {
	CategoryID *uuid.UUID
	SkillType  string
}

// CatalogCache is satisfied by the redis wrapper; a nil cache means every
// read goes straight to the store.
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type SkillUsecase interface {
	ListCategories(ctx context.Context) ([]SkillCategoryItem, error)
	ListSkills(ctx context.Context, f SkillListFilter) ([]SkillItem, error)
	ListTree(ctx context.Context) ([]SkillTreeNodeItem, error)
}

type Skill struct {
	skills repository.SkillRepository
	tree   repository.SkillTreeRepository
	cache  CatalogCache
}

func NewSkillUsecase(skills repository.SkillRepository, tree repository.SkillTreeRepository, cache CatalogCache) *Skill {
	return &Skill{skills: skills, tree: tree, cache: cache}
}

func (u *Skill) ListCategories(ctx context.Context) ([]SkillCategoryItem, error) {
	if u.cache != nil {
		var cached []SkillCategoryItem
		if ok, err := u.cache.GetJSON(ctx, cacheKeySkillCategories, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := u.skills.ListCategories(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillCategoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillCategoryItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Icon:        it.Icon,
			Color:       it.Color,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKeySkillCategories, out, catalogCacheTTL)
	}
	return out, nil
}

func (u *Skill) ListSkills(ctx context.Context, f SkillListFilter) ([]SkillItem, error) {
	if f.SkillType != "" && f.SkillType != "hard" && f.SkillType != "soft" {
		return nil, ErrInvalidInput
	}

	items, err := u.skills.ListSkills(ctx, repository.SkillFilter{
		CategoryID: f.CategoryID,
		SkillType:  f.SkillType,
	})
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{
			ID:            it.ID,
			CategoryID:    it.CategoryID,
			Name:          it.Name,
			Description:   it.Description,
			SkillType:     it.SkillType,
			MaxLevel:      it.MaxLevel,
			Icon:          it.Icon,
			CategoryName:  it.CategoryName,
			CategoryColor: it.CategoryColor,
		})
	}
	return out, nil
}

func (u *Skill) ListTree(ctx context.Context) ([]SkillTreeNodeItem, error) {
	if u.cache != nil {
		var cached []SkillTreeNodeItem
		if ok, err := u.cache.GetJSON(ctx, cacheKeySkillTree, &cached); err == nil && ok {
			return cached, nil
		}
	}

	nodes, err := u.tree.ListNodes(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillTreeNodeItem, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, SkillTreeNodeItem{
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
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKeySkillTree, out, catalogCacheTTL)
	}
	return out, nil
}

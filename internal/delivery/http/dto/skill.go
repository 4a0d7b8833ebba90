package dto

import (
	"time"

	"github.com/google/uuid"
)

type SkillCategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
}

type SkillResponse struct {
	ID            uuid.UUID  `json:"id"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	SkillType     string     `json:"skill_type"`
	MaxLevel      int        `json:"max_level"`
	Icon          string     `json:"icon,omitempty"`
	CategoryName  string     `json:"category_name,omitempty"`
	CategoryColor string     `json:"category_color,omitempty"`
}

type SkillTreeNodeResponse struct {
	NodeID        uuid.UUID  `json:"node_id"`
	SkillID       uuid.UUID  `json:"skill_id"`
	ParentSkillID *uuid.UUID `json:"parent_skill_id,omitempty"`
	PositionX     int        `json:"position_x"`
	PositionY     int        `json:"position_y"`
	Tier          int        `json:"tier"`
	SkillName     string     `json:"skill_name"`
	Description   string     `json:"description,omitempty"`
	SkillType     string     `json:"skill_type"`
	MaxLevel      int        `json:"max_level"`
	Icon          string     `json:"icon,omitempty"`
	CategoryName  string     `json:"category_name,omitempty"`
	CategoryColor string     `json:"category_color,omitempty"`
}

type UserSkillTreeNodeResponse struct {
	SkillTreeNodeResponse
	UserLevel      int  `json:"user_level"`
	UserExperience int  `json:"user_experience"`
	Unlocked       bool `json:"unlocked"`
}

type UserSkillResponse struct {
	ID               uuid.UUID  `json:"id"`
	SkillID          uuid.UUID  `json:"skill_id"`
	SkillName        string     `json:"skill_name"`
	Description      string     `json:"description,omitempty"`
	SkillType        string     `json:"skill_type"`
	MaxLevel         int        `json:"max_level"`
	Icon             string     `json:"icon,omitempty"`
	CategoryName     string     `json:"category_name,omitempty"`
	CategoryColor    string     `json:"category_color,omitempty"`
	Level            int        `json:"level"`
	ExperiencePoints int        `json:"experience_points"`
	UnlockedAt       *time.Time `json:"unlocked_at,omitempty"`
	LastUpdated      time.Time  `json:"last_updated"`
}

type AppliedGrantResponse struct {
	SkillID           uuid.UUID `json:"skill_id"`
	LevelGranted      int       `json:"level_granted"`
	ExperienceGranted int       `json:"experience_granted"`
	Level             int       `json:"level"`
	ExperiencePoints  int       `json:"experience_points"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type ResumeResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ResumeSkillResponse struct {
	SkillID        uuid.UUID `json:"skill_id"`
	SkillName      string    `json:"skill_name"`
	Description    string    `json:"description,omitempty"`
	SkillType      string    `json:"skill_type"`
	MaxLevel       int       `json:"max_level"`
	Icon           string    `json:"icon,omitempty"`
	CategoryName   string    `json:"category_name,omitempty"`
	CategoryColor  string    `json:"category_color,omitempty"`
	UserLevel      int       `json:"user_level"`
	UserExperience int       `json:"user_experience"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type JobExperienceResponse struct {
	ID           uuid.UUID  `json:"id"`
	Company      string     `json:"company"`
	Position     string     `json:"position"`
	Description  string     `json:"description,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	SkillsGained string     `json:"skills_gained,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type SkillUnlockResponse struct {
	ID                uuid.UUID `json:"id"`
	SkillID           uuid.UUID `json:"skill_id"`
	SkillName         string    `json:"skill_name"`
	LevelGranted      int       `json:"level_granted"`
	ExperienceGranted int       `json:"experience_points_granted"`
	CreatedAt         time.Time `json:"created_at"`
}

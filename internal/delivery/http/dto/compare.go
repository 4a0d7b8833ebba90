package dto

import "github.com/google/uuid"

type CompareSideResponse struct {
	Resume         ResumeResponse          `json:"resume"`
	Skills         []ResumeSkillResponse   `json:"skills"`
	Jobs           []JobExperienceResponse `json:"jobs"`
	SelectedSkills []uuid.UUID             `json:"selected_skills"`
	SelectedJobs   []uuid.UUID             `json:"selected_jobs"`
}

type CompareSessionResponse struct {
	SessionID    uuid.UUID           `json:"session_id"`
	Left         CompareSideResponse `json:"left"`
	Right        CompareSideResponse `json:"right"`
	CopyInFlight bool                `json:"copy_in_flight"`
}

type CopyResultResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemType string    `json:"item_type"`
	Copied   bool      `json:"copied"`
	Skipped  bool      `json:"skipped"`
	Message  string    `json:"message,omitempty"`
}

type CopyAllResponse struct {
	Session CompareSessionResponse `json:"session"`
	Results []CopyResultResponse   `json:"results"`
}

type DropResponse struct {
	Session CompareSessionResponse `json:"session"`
	Moved   bool                   `json:"moved"`
}

package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"careerquest/internal/repository"

	"github.com/google/uuid"
)

type JobExperienceItem struct {
	ID           uuid.UUID
	Company      string
	Position     string
	Description  string
	StartDate    *time.Time
	EndDate      *time.Time
	SkillsGained string
	CreatedAt    time.Time
}

type SkillUnlockItem struct {
	ID                uuid.UUID
	SkillID           uuid.UUID
	SkillName         string
	LevelGranted      int
	ExperienceGranted int
	CreatedAt         time.Time
}

type AddJobExperienceInput struct {
	Company      string
	Position     string
	Description  string
	StartDate    *time.Time
	EndDate      *time.Time
	SkillsGained string
}

type JobExperienceUsecase interface {
	ListJobExperiences(ctx context.Context, userID uuid.UUID) ([]JobExperienceItem, error)
	AddJobExperience(ctx context.Context, userID uuid.UUID, in AddJobExperienceInput) (JobExperienceItem, error)
	DeleteJobExperience(ctx context.Context, userID uuid.UUID, jobExperienceID uuid.UUID) error
	ListUnlockHistory(ctx context.Context, userID uuid.UUID, jobExperienceID uuid.UUID) ([]SkillUnlockItem, error)
}

type JobExperiences struct {
	jobs   repository.JobExperienceRepository
	logger *log.Logger
}

func NewJobExperienceUsecase(jobs repository.JobExperienceRepository, logger *log.Logger) *JobExperiences {
	if logger == nil {
		logger = log.Default()
	}
	return &JobExperiences{jobs: jobs, logger: logger}
}

func (u *JobExperiences) ListJobExperiences(ctx context.Context, userID uuid.UUID) ([]JobExperienceItem, error) {
	items, err := u.jobs.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Printf("list job experiences failed | user=%s err=%v", userID, err)
		return nil, ErrInternal
	}

	out := make([]JobExperienceItem, 0, len(items))
	for _, it := range items {
		out = append(out, jobExperienceItemFrom(it))
	}
	return out, nil
}

func (u *JobExperiences) AddJobExperience(ctx context.Context, userID uuid.UUID, in AddJobExperienceInput) (JobExperienceItem, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Position = strings.TrimSpace(in.Position)
	if in.Company == "" || in.Position == "" {
		return JobExperienceItem{}, ErrInvalidInput
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return JobExperienceItem{}, ErrInvalidInput
	}

	created, err := u.jobs.Create(ctx, repository.JobExperience{
		UserID:       userID,
		Company:      in.Company,
		Position:     in.Position,
		Description:  strings.TrimSpace(in.Description),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		SkillsGained: strings.TrimSpace(in.SkillsGained),
	})
	if err != nil {
		u.logger.Printf("create job experience failed | user=%s err=%v", userID, err)
		return JobExperienceItem{}, ErrInternal
	}
	return jobExperienceItemFrom(created), nil
}

// DeleteJobExperience removes the job everywhere. Provenance rows cascade
// with it; the ledger keeps whatever the job granted.
func (u *JobExperiences) DeleteJobExperience(ctx context.Context, userID uuid.UUID, jobExperienceID uuid.UUID) error {
	if err := u.jobs.Delete(ctx, jobExperienceID, userID); err != nil {
		if errors.Is(err, repository.ErrJobExperienceNotFound) {
			return ErrJobExperienceNotFound
		}
		u.logger.Printf("delete job experience failed | user=%s job=%s err=%v", userID, jobExperienceID, err)
		return ErrInternal
	}
	return nil
}

func (u *JobExperiences) ListUnlockHistory(ctx context.Context, userID uuid.UUID, jobExperienceID uuid.UUID) ([]SkillUnlockItem, error) {
	if _, err := u.jobs.FindOwned(ctx, jobExperienceID, userID); err != nil {
		if errors.Is(err, repository.ErrJobExperienceNotFound) {
			return nil, ErrJobExperienceNotFound
		}
		u.logger.Printf("unlock history ownership check failed | user=%s job=%s err=%v", userID, jobExperienceID, err)
		return nil, ErrInternal
	}

	unlocks, err := u.jobs.ListUnlocks(ctx, jobExperienceID)
	if err != nil {
		u.logger.Printf("list unlock history failed | user=%s job=%s err=%v", userID, jobExperienceID, err)
		return nil, ErrInternal
	}

	out := make([]SkillUnlockItem, 0, len(unlocks))
	for _, su := range unlocks {
		out = append(out, SkillUnlockItem{
			ID:                su.ID,
			SkillID:           su.SkillID,
			SkillName:         su.SkillName,
			LevelGranted:      su.LevelGranted,
			ExperienceGranted: su.ExperienceGranted,
			CreatedAt:         su.CreatedAt,
		})
	}
	return out, nil
}

func jobExperienceItemFrom(je repository.JobExperience) JobExperienceItem {
	return JobExperienceItem{
		ID:           je.ID,
		Company:      je.Company,
		Position:     je.Position,
		Description:  je.Description,
		StartDate:    je.StartDate,
		EndDate:      je.EndDate,
		SkillsGained: je.SkillsGained,
		CreatedAt:    je.CreatedAt,
	}
}

package usecase

import (
	"context"
	"errors"
	"log"

	"careerquest/internal/repository"

	"github.com/google/uuid"
)

var ErrJobExperienceNotFound = errors.New("job experience not found")

const (
	defaultGrantLevel      = 1
	defaultGrantExperience = 100
)

// SkillGrant is one entry in an unlock batch. Absent level/XP fall back to
// the grant defaults.
type SkillGrant struct {
	SkillID          uuid.UUID
	Level            *int
	ExperiencePoints *int
}

// AppliedGrant reports what a grant actually did: granted values as clamped,
// plus the resulting ledger state.
type AppliedGrant struct {
	SkillID           uuid.UUID
	LevelGranted      int
	ExperienceGranted int
	Level             int
	ExperiencePoints  int
}

type UnlockUsecase interface {
	UnlockSkills(ctx context.Context, userID uuid.UUID, jobExperienceID uuid.UUID, grants []SkillGrant) ([]AppliedGrant, error)
}

type Unlock struct {
	jobs   repository.JobExperienceRepository
	skills repository.SkillRepository
	ledger repository.UserSkillRepository
	logger *log.Logger
}

func NewUnlockUsecase(
	jobs repository.JobExperienceRepository,
	skills repository.SkillRepository,
	ledger repository.UserSkillRepository,
	logger *log.Logger,
) *Unlock {
	if logger == nil {
		logger = log.Default()
	}
	return &Unlock{jobs: jobs, skills: skills, ledger: ledger, logger: logger}
}

// UnlockSkills applies a batch of grants against one owned job experience.
// Grants naming unknown skills are dropped silently; each surviving grant is
// its own atomic unit, so a failure partway through never rolls back the
// grants already applied. Ledger level only moves up on this path, XP is
// additive, and every applied grant leaves a provenance row.
func (u *Unlock) UnlockSkills(ctx context.Context, userID uuid.UUID, jobExperienceID uuid.UUID, grants []SkillGrant) ([]AppliedGrant, error) {
	if jobExperienceID == uuid.Nil || len(grants) == 0 {
		return nil, ErrInvalidInput
	}

	if _, err := u.jobs.FindOwned(ctx, jobExperienceID, userID); err != nil {
		if errors.Is(err, repository.ErrJobExperienceNotFound) {
			return nil, ErrJobExperienceNotFound
		}
		u.logger.Printf("unlock ownership check failed | user=%s job=%s err=%v", userID, jobExperienceID, err)
		return nil, ErrInternal
	}

	applied := make([]AppliedGrant, 0, len(grants))
	for _, g := range grants {
		skill, err := u.skills.GetSkillByID(ctx, g.SkillID)
		if err != nil {
			if errors.Is(err, repository.ErrSkillMissing) {
				continue
			}
			u.logger.Printf("unlock skill lookup failed | user=%s skill=%s err=%v", userID, g.SkillID, err)
			return applied, ErrInternal
		}

		levelGranted := defaultGrantLevel
		if g.Level != nil {
			levelGranted = *g.Level
		}
		levelGranted = clampLevel(levelGranted, skill.MaxLevel)

		xpGranted := defaultGrantExperience
		if g.ExperiencePoints != nil {
			xpGranted = *g.ExperiencePoints
		}
		if xpGranted < 0 {
			xpGranted = 0
		}

		newLevel := levelGranted
		newXP := xpGranted
		existing, err := u.ledger.FindByUserAndSkill(ctx, userID, g.SkillID)
		switch {
		case err == nil:
			if existing.Level > newLevel {
				newLevel = existing.Level
			}
			newXP = existing.ExperiencePoints + xpGranted
		case errors.Is(err, repository.ErrUserSkillNotFound):
			// first unlock for this skill
		default:
			u.logger.Printf("unlock ledger read failed | user=%s skill=%s err=%v", userID, g.SkillID, err)
			return applied, ErrInternal
		}

		rec := repository.GrantRecord{
			UserID:            userID,
			SkillID:           g.SkillID,
			JobExperienceID:   jobExperienceID,
			Level:             newLevel,
			ExperiencePoints:  newXP,
			LevelGranted:      levelGranted,
			ExperienceGranted: xpGranted,
		}
		if err := u.ledger.ApplyGrant(ctx, rec); err != nil {
			u.logger.Printf("unlock grant write failed | user=%s skill=%s err=%v", userID, g.SkillID, err)
			return applied, ErrInternal
		}

		applied = append(applied, AppliedGrant{
			SkillID:           g.SkillID,
			LevelGranted:      levelGranted,
			ExperienceGranted: xpGranted,
			Level:             newLevel,
			ExperiencePoints:  newXP,
		})
	}

	return applied, nil
}

package usecase

import (
	"context"
	"errors"
	"log"

	"careerquest/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotUnlocked   = errors.New("skill not unlocked")
	ErrSkillAlreadyListed = errors.New("skill already in resume")
	ErrSkillNotInResume   = errors.New("skill not in resume")
)

// ResumeSkillItem reflects the owner's live ledger values, never a snapshot
// taken when the association was created.
type ResumeSkillItem struct {
	SkillID        uuid.UUID
	SkillName      string
	Description    string
	SkillType      string
	MaxLevel       int
	Icon           string
	CategoryName   string
	CategoryColor  string
	UserLevel      int
	UserExperience int
}

type ResumeSkillUsecase interface {
	ListResumeSkills(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID) ([]ResumeSkillItem, error)
	AddSkillToResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID, skillID uuid.UUID) error
	RemoveSkillFromResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID, skillID uuid.UUID) error
}

type ResumeSkills struct {
	resumes      repository.ResumeRepository
	resumeSkills repository.ResumeSkillRepository
	ledger       repository.UserSkillRepository
	logger       *log.Logger
}

func NewResumeSkillUsecase(
	resumes repository.ResumeRepository,
	resumeSkills repository.ResumeSkillRepository,
	ledger repository.UserSkillRepository,
	logger *log.Logger,
) *ResumeSkills {
	if logger == nil {
		logger = log.Default()
	}
	return &ResumeSkills{resumes: resumes, resumeSkills: resumeSkills, ledger: ledger, logger: logger}
}

func (u *ResumeSkills) ListResumeSkills(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID) ([]ResumeSkillItem, error) {
	if _, err := u.resumes.FindOwned(ctx, resumeID, userID); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return nil, ErrResumeNotFound
		}
		u.logger.Printf("resume skills ownership check failed | user=%s resume=%s err=%v", userID, resumeID, err)
		return nil, ErrInternal
	}

	items, err := u.resumeSkills.ListByResume(ctx, resumeID, userID)
	if err != nil {
		u.logger.Printf("list resume skills failed | user=%s resume=%s err=%v", userID, resumeID, err)
		return nil, ErrInternal
	}

	out := make([]ResumeSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, ResumeSkillItem{
			SkillID:        it.SkillID,
			SkillName:      it.SkillName,
			Description:    it.Description,
			SkillType:      it.SkillType,
			MaxLevel:       it.MaxLevel,
			Icon:           it.Icon,
			CategoryName:   it.CategoryName,
			CategoryColor:  it.CategoryColor,
			UserLevel:      it.UserLevel,
			UserExperience: it.UserExperience,
		})
	}
	return out, nil
}

// AddSkillToResume requires the skill to already be in the caller's ledger.
// A skill that was never unlocked reads the same as one that does not exist.
func (u *ResumeSkills) AddSkillToResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID, skillID uuid.UUID) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}

	if _, err := u.resumes.FindOwned(ctx, resumeID, userID); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ErrResumeNotFound
		}
		u.logger.Printf("add resume skill ownership check failed | user=%s resume=%s err=%v", userID, resumeID, err)
		return ErrInternal
	}

	if _, err := u.ledger.FindByUserAndSkill(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrSkillNotUnlocked
		}
		u.logger.Printf("add resume skill ledger check failed | user=%s skill=%s err=%v", userID, skillID, err)
		return ErrInternal
	}

	if err := u.resumeSkills.Add(ctx, resumeID, skillID); err != nil {
		if errors.Is(err, repository.ErrResumeSkillExists) {
			return ErrSkillAlreadyListed
		}
		u.logger.Printf("add resume skill failed | user=%s resume=%s skill=%s err=%v", userID, resumeID, skillID, err)
		return ErrInternal
	}
	return nil
}

// RemoveSkillFromResume only unlinks; the ledger row is untouched.
func (u *ResumeSkills) RemoveSkillFromResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID, skillID uuid.UUID) error {
	if _, err := u.resumes.FindOwned(ctx, resumeID, userID); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ErrResumeNotFound
		}
		u.logger.Printf("remove resume skill ownership check failed | user=%s resume=%s err=%v", userID, resumeID, err)
		return ErrInternal
	}

	if err := u.resumeSkills.Remove(ctx, resumeID, skillID); err != nil {
		if errors.Is(err, repository.ErrResumeSkillNotFound) {
			return ErrSkillNotInResume
		}
		u.logger.Printf("remove resume skill failed | user=%s resume=%s skill=%s err=%v", userID, resumeID, skillID, err)
		return ErrInternal
	}
	return nil
}

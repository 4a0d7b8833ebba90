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

var ErrResumeNotFound = errors.New("resume not found")

type ResumeItem struct {
	ID        uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateResumeInput struct {
	Title   string
	Content string
}

// UpdateResumeInput is a partial update: nil fields keep their stored value.
type UpdateResumeInput struct {
	Title   *string
	Content *string
}

type ResumeUsecase interface {
	ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeItem, error)
	GetResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID) (ResumeItem, error)
	CreateResume(ctx context.Context, userID uuid.UUID, in CreateResumeInput) (ResumeItem, error)
	UpdateResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID, in UpdateResumeInput) (ResumeItem, error)
	DeleteResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID) error
}

type Resumes struct {
	resumes repository.ResumeRepository
	logger  *log.Logger
}

func NewResumeUsecase(resumes repository.ResumeRepository, logger *log.Logger) *Resumes {
	if logger == nil {
		logger = log.Default()
	}
	return &Resumes{resumes: resumes, logger: logger}
}

func (u *Resumes) ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeItem, error) {
	items, err := u.resumes.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Printf("list resumes failed | user=%s err=%v", userID, err)
		return nil, ErrInternal
	}

	out := make([]ResumeItem, 0, len(items))
	for _, it := range items {
		out = append(out, resumeItemFrom(it))
	}
	return out, nil
}

func (u *Resumes) GetResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID) (ResumeItem, error) {
	rs, err := u.resumes.FindOwned(ctx, resumeID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ResumeItem{}, ErrResumeNotFound
		}
		u.logger.Printf("get resume failed | user=%s resume=%s err=%v", userID, resumeID, err)
		return ResumeItem{}, ErrInternal
	}
	return resumeItemFrom(rs), nil
}

func (u *Resumes) CreateResume(ctx context.Context, userID uuid.UUID, in CreateResumeInput) (ResumeItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ResumeItem{}, ErrInvalidInput
	}

	created, err := u.resumes.Create(ctx, repository.Resume{
		UserID:  userID,
		Title:   in.Title,
		Content: in.Content,
	})
	if err != nil {
		u.logger.Printf("create resume failed | user=%s err=%v", userID, err)
		return ResumeItem{}, ErrInternal
	}
	return resumeItemFrom(created), nil
}

func (u *Resumes) UpdateResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID, in UpdateResumeInput) (ResumeItem, error) {
	if in.Title == nil && in.Content == nil {
		return ResumeItem{}, ErrInvalidInput
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return ResumeItem{}, ErrInvalidInput
	}

	existing, err := u.resumes.FindOwned(ctx, resumeID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ResumeItem{}, ErrResumeNotFound
		}
		u.logger.Printf("update resume read failed | user=%s resume=%s err=%v", userID, resumeID, err)
		return ResumeItem{}, ErrInternal
	}

	if in.Title != nil {
		existing.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		existing.Content = *in.Content
	}

	updated, err := u.resumes.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ResumeItem{}, ErrResumeNotFound
		}
		u.logger.Printf("update resume write failed | user=%s resume=%s err=%v", userID, resumeID, err)
		return ResumeItem{}, ErrInternal
	}
	return resumeItemFrom(updated), nil
}

func (u *Resumes) DeleteResume(ctx context.Context, userID uuid.UUID, resumeID uuid.UUID) error {
	if err := u.resumes.Delete(ctx, resumeID, userID); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ErrResumeNotFound
		}
		u.logger.Printf("delete resume failed | user=%s resume=%s err=%v", userID, resumeID, err)
		return ErrInternal
	}
	return nil
}

func resumeItemFrom(rs repository.Resume) ResumeItem {
	return ResumeItem{
		ID:        rs.ID,
		Title:     rs.Title,
		Content:   rs.Content,
		CreatedAt: rs.CreatedAt,
		UpdatedAt: rs.UpdatedAt,
	}
}

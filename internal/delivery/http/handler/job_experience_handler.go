package handler

import (
	"errors"
	"time"

	"careerquest/internal/delivery/http/dto"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/pkg/response"
	"careerquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobExperienceHandler struct {
	jobs    usecase.JobExperienceUsecase
	unlocks usecase.UnlockUsecase
}

type addJobExperienceRequest struct {
	Company      string `json:"company"`
	Position     string `json:"position"`
	Description  string `json:"description"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	SkillsGained string `json:"skills_gained"`
}

type skillGrantRequest struct {
	SkillID          uuid.UUID `json:"skill_id"`
	Level            *int      `json:"level"`
	ExperiencePoints *int      `json:"experience_points"`
}

type unlockSkillsRequest struct {
	Skills []skillGrantRequest `json:"skills"`
}

func NewJobExperienceHandler(jobs usecase.JobExperienceUsecase, unlocks usecase.UnlockUsecase) *JobExperienceHandler {
	return &JobExperienceHandler{jobs: jobs, unlocks: unlocks}
}

func (h *JobExperienceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills/user/jobs")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Delete("/:jobId", h.Delete)
	grp.Get("/:jobId/unlocks", h.UnlockHistory)
	grp.Post("/:jobId/unlock", h.Unlock)
}

func (h *JobExperienceHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.jobs.ListJobExperiences(c.Context(), userID)
	if err != nil {
		return mapJobExperienceUsecaseError(err)
	}

	res := make([]dto.JobExperienceResponse, 0, len(items))
	for _, it := range items {
		res = append(res, jobExperienceResponseFrom(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *JobExperienceHandler) Add(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addJobExperienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid start date", nil, err)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid end date", nil, err)
	}

	created, err := h.jobs.AddJobExperience(c.Context(), userID, usecase.AddJobExperienceInput{
		Company:      req.Company,
		Position:     req.Position,
		Description:  req.Description,
		StartDate:    startDate,
		EndDate:      endDate,
		SkillsGained: req.SkillsGained,
	})
	if err != nil {
		return mapJobExperienceUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "job experience added", jobExperienceResponseFrom(created))
}

func (h *JobExperienceHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	if err := h.jobs.DeleteJobExperience(c.Context(), userID, jobID); err != nil {
		return mapJobExperienceUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "job experience deleted", nil)
}

func (h *JobExperienceHandler) UnlockHistory(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	unlocks, err := h.jobs.ListUnlockHistory(c.Context(), userID, jobID)
	if err != nil {
		return mapJobExperienceUsecaseError(err)
	}

	res := make([]dto.SkillUnlockResponse, 0, len(unlocks))
	for _, su := range unlocks {
		res = append(res, dto.SkillUnlockResponse{
			ID:                su.ID,
			SkillID:           su.SkillID,
			SkillName:         su.SkillName,
			LevelGranted:      su.LevelGranted,
			ExperienceGranted: su.ExperienceGranted,
			CreatedAt:         su.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *JobExperienceHandler) Unlock(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req unlockSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	grants := make([]usecase.SkillGrant, 0, len(req.Skills))
	for _, g := range req.Skills {
		grants = append(grants, usecase.SkillGrant{
			SkillID:          g.SkillID,
			Level:            g.Level,
			ExperiencePoints: g.ExperiencePoints,
		})
	}

	applied, err := h.unlocks.UnlockSkills(c.Context(), userID, jobID, grants)
	if err != nil {
		return mapJobExperienceUsecaseError(err)
	}

	res := make([]dto.AppliedGrantResponse, 0, len(applied))
	for _, a := range applied {
		res = append(res, dto.AppliedGrantResponse{
			SkillID:           a.SkillID,
			LevelGranted:      a.LevelGranted,
			ExperienceGranted: a.ExperienceGranted,
			Level:             a.Level,
			ExperiencePoints:  a.ExperiencePoints,
		})
	}
	return response.Success(c, fiber.StatusOK, "skills unlocked", res)
}

func jobExperienceResponseFrom(it usecase.JobExperienceItem) dto.JobExperienceResponse {
	return dto.JobExperienceResponse{
		ID:           it.ID,
		Company:      it.Company,
		Position:     it.Position,
		Description:  it.Description,
		StartDate:    it.StartDate,
		EndDate:      it.EndDate,
		SkillsGained: it.SkillsGained,
		CreatedAt:    it.CreatedAt,
	}
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func mapJobExperienceUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrJobExperienceNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job experience not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

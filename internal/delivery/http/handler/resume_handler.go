package handler

import (
	"errors"

	"careerquest/internal/delivery/http/dto"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/pkg/response"
	"careerquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ResumeHandler struct {
	resumes usecase.ResumeUsecase
	skills  usecase.ResumeSkillUsecase
}

type createResumeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateResumeRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func NewResumeHandler(resumes usecase.ResumeUsecase, skills usecase.ResumeSkillUsecase) *ResumeHandler {
	return &ResumeHandler{resumes: resumes, skills: skills}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/resumes")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	grp.Get("/:id/skills", h.ListSkills)
	grp.Post("/:id/skills/:skillId", h.AddSkill)
	grp.Delete("/:id/skills/:skillId", h.RemoveSkill)
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.resumes.ListResumes(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	res := make([]dto.ResumeResponse, 0, len(items))
	for _, it := range items {
		res = append(res, resumeResponseFrom(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}

	item, err := h.resumes.GetResume(c.Context(), userID, resumeID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, resumeResponseFrom(item))
}

func (h *ResumeHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.resumes.CreateResume(c.Context(), userID, usecase.CreateResumeInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "resume created", resumeResponseFrom(created))
}

func (h *ResumeHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}

	var req updateResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.resumes.UpdateResume(c.Context(), userID, resumeID, usecase.UpdateResumeInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "resume updated", resumeResponseFrom(updated))
}

func (h *ResumeHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}

	if err := h.resumes.DeleteResume(c.Context(), userID, resumeID); err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "resume deleted", nil)
}

func (h *ResumeHandler) ListSkills(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}

	items, err := h.skills.ListResumeSkills(c.Context(), userID, resumeID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	res := make([]dto.ResumeSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, resumeSkillResponseFrom(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ResumeHandler) AddSkill(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	if err := h.skills.AddSkillToResume(c.Context(), userID, resumeID, skillID); err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "skill added to resume", nil)
}

func (h *ResumeHandler) RemoveSkill(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	if err := h.skills.RemoveSkillFromResume(c.Context(), userID, resumeID, skillID); err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "skill removed from resume", nil)
}

func resumeResponseFrom(it usecase.ResumeItem) dto.ResumeResponse {
	return dto.ResumeResponse{
		ID:        it.ID,
		Title:     it.Title,
		Content:   it.Content,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func resumeSkillResponseFrom(it usecase.ResumeSkillItem) dto.ResumeSkillResponse {
	return dto.ResumeSkillResponse{
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
	}
}

func mapResumeUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotUnlocked):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not in your unlocked set", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyListed):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already in resume", nil, err)
	case errors.Is(err, usecase.ErrSkillNotInResume):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not in resume", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

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

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type setSkillProgressRequest struct {
	Level            *int `json:"level"`
	ExperiencePoints *int `json:"experience_points"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills/user")
	grp.Get("/", h.List)
	grp.Get("/tree", h.Tree)
	grp.Post("/:skillId", h.Set)
	grp.Delete("/:skillId", h.Delete)
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListUserSkills(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	res := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, userSkillResponseFrom(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserSkillHandler) Tree(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	nodes, err := h.uc.ListUserTree(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	res := make([]dto.UserSkillTreeNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, dto.UserSkillTreeNodeResponse{
			SkillTreeNodeResponse: skillTreeNodeResponseFrom(n.SkillTreeNodeItem),
			UserLevel:             n.UserLevel,
			UserExperience:        n.UserExperience,
			Unlocked:              n.Unlocked,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserSkillHandler) Set(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	var req setSkillProgressRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.SetSkillProgress(c.Context(), userID, skillID, usecase.SetSkillProgressInput{
		Level:            req.Level,
		ExperiencePoints: req.ExperiencePoints,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, userSkillResponseFrom(updated))
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	if err := h.uc.RemoveUserSkill(c.Context(), userID, skillID); err != nil {
		return mapUserSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "skill removed", nil)
}

func userSkillResponseFrom(it usecase.UserSkillItem) dto.UserSkillResponse {
	return dto.UserSkillResponse{
		ID:               it.ID,
		SkillID:          it.SkillID,
		SkillName:        it.SkillName,
		Description:      it.Description,
		SkillType:        it.SkillType,
		MaxLevel:         it.MaxLevel,
		Icon:             it.Icon,
		CategoryName:     it.CategoryName,
		CategoryColor:    it.CategoryColor,
		Level:            it.Level,
		ExperiencePoints: it.ExperiencePoints,
		UnlockedAt:       it.UnlockedAt,
		LastUpdated:      it.LastUpdated,
	}
}

func mapUserSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not unlocked", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

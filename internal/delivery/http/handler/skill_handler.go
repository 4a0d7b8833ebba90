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

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Get("/categories", h.ListCategories)
	grp.Get("/tree", h.Tree)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	var filter usecase.SkillListFilter

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid category id", nil, err)
		}
		filter.CategoryID = &id
	}
	filter.SkillType = c.Query("skill_type")

	items, err := h.uc.ListSkills(c.Context(), filter)
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	res := make([]dto.SkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, skillResponseFrom(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) ListCategories(c fiber.Ctx) error {
	items, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	res := make([]dto.SkillCategoryResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.SkillCategoryResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Icon:        it.Icon,
			Color:       it.Color,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Tree(c fiber.Ctx) error {
	nodes, err := h.uc.ListTree(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	res := make([]dto.SkillTreeNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, skillTreeNodeResponseFrom(n))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func skillResponseFrom(it usecase.SkillItem) dto.SkillResponse {
	return dto.SkillResponse{
		ID:            it.ID,
		CategoryID:    it.CategoryID,
		Name:          it.Name,
		Description:   it.Description,
		SkillType:     it.SkillType,
		MaxLevel:      it.MaxLevel,
		Icon:          it.Icon,
		CategoryName:  it.CategoryName,
		CategoryColor: it.CategoryColor,
	}
}

func skillTreeNodeResponseFrom(n usecase.SkillTreeNodeItem) dto.SkillTreeNodeResponse {
	return dto.SkillTreeNodeResponse{
		NodeID:        n.NodeID,
		SkillID:       n.SkillID,
		ParentSkillID: n.ParentSkillID,
		PositionX:     n.PositionX,
		PositionY:     n.PositionY,
		Tier:          n.Tier,
		SkillName:     n.SkillName,
		Description:   n.Description,
		SkillType:     n.SkillType,
		MaxLevel:      n.MaxLevel,
		Icon:          n.Icon,
		CategoryName:  n.CategoryName,
		CategoryColor: n.CategoryColor,
	}
}

func mapSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid filter", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package handler

import (
	"errors"

	"careerquest/internal/compare"
	"careerquest/internal/delivery/http/dto"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/pkg/response"
	"careerquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompareHandler struct {
	engine *compare.Engine
}

type createCompareSessionRequest struct {
	Resume1ID uuid.UUID `json:"resume1_id"`
	Resume2ID uuid.UUID `json:"resume2_id"`
}

type toggleSelectRequest struct {
	Side     string    `json:"side"`
	ItemType string    `json:"item_type"`
	ItemID   uuid.UUID `json:"item_id"`
}

type copyAllRequest struct {
	FromSide string `json:"from_side"`
}

type dropItemRequest struct {
	ItemID     uuid.UUID `json:"item_id"`
	ItemType   string    `json:"item_type"`
	OriginSide string    `json:"origin_side"`
	ToSide     string    `json:"to_side"`
	Payload    string    `json:"payload"`
}

type deleteItemRequest struct {
	Side     string    `json:"side"`
	ItemType string    `json:"item_type"`
	ItemID   uuid.UUID `json:"item_id"`
}

func NewCompareHandler(engine *compare.Engine) *CompareHandler {
	return &CompareHandler{engine: engine}
}

func (h *CompareHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/compare/sessions")
	grp.Post("/", h.Create)
	grp.Get("/:sid", h.Get)
	grp.Delete("/:sid", h.Close)
	grp.Post("/:sid/select", h.Select)
	grp.Post("/:sid/copy-all", h.CopyAll)
	grp.Post("/:sid/drop", h.Drop)
	grp.Delete("/:sid/items", h.DeleteItem)
}

func (h *CompareHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createCompareSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.engine.CreateSession(c.Context(), userID, req.Resume1ID, req.Resume2ID)
	if err != nil {
		return mapCompareError(err)
	}

	return response.Success(c, fiber.StatusCreated, "compare session created", compareSessionResponseFrom(view))
}

func (h *CompareHandler) Get(c fiber.Ctx) error {
	userID, sid, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	view, err := h.engine.GetSession(c.Context(), userID, sid)
	if err != nil {
		return mapCompareError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, compareSessionResponseFrom(view))
}

func (h *CompareHandler) Close(c fiber.Ctx) error {
	userID, sid, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	if err := h.engine.CloseSession(userID, sid); err != nil {
		return mapCompareError(err)
	}
	return response.Success(c, fiber.StatusOK, "compare session closed", nil)
}

func (h *CompareHandler) Select(c fiber.Ctx) error {
	userID, sid, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	var req toggleSelectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.engine.ToggleSelect(c.Context(), userID, sid,
		compare.Side(req.Side), compare.ItemType(req.ItemType), req.ItemID)
	if err != nil {
		return mapCompareError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, compareSessionResponseFrom(view))
}

func (h *CompareHandler) CopyAll(c fiber.Ctx) error {
	userID, sid, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	var req copyAllRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, results, err := h.engine.CopyAllSelected(c.Context(), userID, sid, compare.Side(req.FromSide))
	if err != nil {
		return mapCompareError(err)
	}

	res := dto.CopyAllResponse{
		Session: compareSessionResponseFrom(view),
		Results: make([]dto.CopyResultResponse, 0, len(results)),
	}
	for _, r := range results {
		res.Results = append(res.Results, dto.CopyResultResponse{
			ItemID:   r.ItemID,
			ItemType: string(r.ItemType),
			Copied:   r.Copied,
			Skipped:  r.Skipped,
			Message:  r.Message,
		})
	}
	return response.Success(c, fiber.StatusOK, "selected items copied", res)
}

func (h *CompareHandler) Drop(c fiber.Ctx) error {
	userID, sid, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	var req dropItemRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, moved, err := h.engine.DropItem(c.Context(), userID, sid, compare.DropInput{
		ItemID:     req.ItemID,
		ItemType:   compare.ItemType(req.ItemType),
		OriginSide: compare.Side(req.OriginSide),
		ToSide:     compare.Side(req.ToSide),
		Payload:    req.Payload,
	})
	if err != nil {
		return mapCompareError(err)
	}

	msg := "item moved"
	if !moved {
		msg = "nothing to do"
	}
	return response.Success(c, fiber.StatusOK, msg, dto.DropResponse{
		Session: compareSessionResponseFrom(view),
		Moved:   moved,
	})
}

func (h *CompareHandler) DeleteItem(c fiber.Ctx) error {
	userID, sid, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	var req deleteItemRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.engine.DeleteItem(c.Context(), userID, sid,
		compare.Side(req.Side), compare.ItemType(req.ItemType), req.ItemID)
	if err != nil {
		return mapCompareError(err)
	}

	// Skills leave one resume; jobs are gone everywhere.
	msg := "skill removed from this resume only"
	if compare.ItemType(req.ItemType) == compare.ItemJob {
		msg = "job experience deleted from all resumes"
	}
	return response.Success(c, fiber.StatusOK, msg, compareSessionResponseFrom(view))
}

func (h *CompareHandler) sessionParams(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sid, err := uuid.Parse(c.Params("sid"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid session id", nil, err)
	}
	return userID, sid, nil
}

func compareSessionResponseFrom(view compare.SessionView) dto.CompareSessionResponse {
	return dto.CompareSessionResponse{
		SessionID:    view.SessionID,
		Left:         compareSideResponseFrom(view.Left),
		Right:        compareSideResponseFrom(view.Right),
		CopyInFlight: view.CopyInFlight,
	}
}

func compareSideResponseFrom(side compare.SideView) dto.CompareSideResponse {
	out := dto.CompareSideResponse{
		Resume:         resumeResponseFrom(side.Resume),
		Skills:         make([]dto.ResumeSkillResponse, 0, len(side.Skills)),
		Jobs:           make([]dto.JobExperienceResponse, 0, len(side.Jobs)),
		SelectedSkills: side.SelectedSkills,
		SelectedJobs:   side.SelectedJobs,
	}
	if out.SelectedSkills == nil {
		out.SelectedSkills = []uuid.UUID{}
	}
	if out.SelectedJobs == nil {
		out.SelectedJobs = []uuid.UUID{}
	}
	for _, sk := range side.Skills {
		out.Skills = append(out.Skills, resumeSkillResponseFrom(sk))
	}
	for _, jb := range side.Jobs {
		out.Jobs = append(out.Jobs, jobExperienceResponseFrom(jb))
	}
	return out
}

func mapCompareError(err error) error {
	switch {
	case errors.Is(err, compare.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Compare session not found", nil, err)
	case errors.Is(err, compare.ErrCopyInFlight):
		return middleware.NewAppError(fiber.StatusConflict, "A copy is already in progress", nil, err)
	case errors.Is(err, compare.ErrUnusablePayload):
		return middleware.NewAppError(fiber.StatusBadRequest, "Drag payload could not be read", nil, err)
	case errors.Is(err, compare.ErrAlreadyOnTarget):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already on the target resume", nil, err)
	case errors.Is(err, compare.ErrNotOnSource):
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill is no longer on the source resume", nil, err)
	case errors.Is(err, compare.ErrItemNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Item not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrJobExperienceNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job experience not found", nil, err)
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

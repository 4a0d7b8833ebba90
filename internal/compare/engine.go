package compare

import (
	"context"
	"errors"
	"log"

	"careerquest/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrAlreadyOnTarget = errors.New("skill already on the target resume")
	ErrNotOnSource     = errors.New("skill is not on the source resume")
	ErrItemNotFound    = errors.New("item not found")
)

const defaultCopyConcurrency = 4

// Notifier pushes change events to connected clients. Nil disables it.
type Notifier interface {
	ResumesUpdated(userID uuid.UUID)
}

type SideView struct {
	Resume         usecase.ResumeItem
	Skills         []usecase.ResumeSkillItem
	Jobs           []usecase.JobExperienceItem
	SelectedSkills []uuid.UUID
	SelectedJobs   []uuid.UUID
}

type SessionView struct {
	SessionID    uuid.UUID
	Left         SideView
	Right        SideView
	CopyInFlight bool
}

type CopyResult struct {
	ItemID   uuid.UUID
	ItemType ItemType
	Copied   bool
	Skipped  bool
	Message  string
}

type DropInput struct {
	ItemID     uuid.UUID
	ItemType   ItemType
	OriginSide Side
	ToSide     Side
	// Payload is the serialized fallback used when the structured fields
	// did not survive the drag.
	Payload string
}

type Engine struct {
	sessions     *Store
	resumes      usecase.ResumeUsecase
	resumeSkills usecase.ResumeSkillUsecase
	jobs         usecase.JobExperienceUsecase
	notifier     Notifier
	logger       *log.Logger
	copyLimit    int
}

func NewEngine(
	sessions *Store,
	resumes usecase.ResumeUsecase,
	resumeSkills usecase.ResumeSkillUsecase,
	jobs usecase.JobExperienceUsecase,
	notifier Notifier,
	logger *log.Logger,
) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		sessions:     sessions,
		resumes:      resumes,
		resumeSkills: resumeSkills,
		jobs:         jobs,
		notifier:     notifier,
		logger:       logger,
		copyLimit:    defaultCopyConcurrency,
	}
}

func (e *Engine) CreateSession(ctx context.Context, userID, leftResumeID, rightResumeID uuid.UUID) (SessionView, error) {
	if leftResumeID == uuid.Nil || rightResumeID == uuid.Nil || leftResumeID == rightResumeID {
		return SessionView{}, usecase.ErrInvalidInput
	}

	// Both sides must belong to the caller before a session exists.
	if _, err := e.resumes.GetResume(ctx, userID, leftResumeID); err != nil {
		return SessionView{}, err
	}
	if _, err := e.resumes.GetResume(ctx, userID, rightResumeID); err != nil {
		return SessionView{}, err
	}

	s := e.sessions.Create(userID, leftResumeID, rightResumeID)
	return e.buildView(ctx, s)
}

func (e *Engine) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (SessionView, error) {
	s, err := e.session(userID, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	return e.buildView(ctx, s)
}

func (e *Engine) CloseSession(userID, sessionID uuid.UUID) error {
	s, err := e.session(userID, sessionID)
	if err != nil {
		return err
	}
	e.sessions.Delete(s.ID)
	return nil
}

func (e *Engine) ToggleSelect(ctx context.Context, userID, sessionID uuid.UUID, side Side, itemType ItemType, itemID uuid.UUID) (SessionView, error) {
	if !side.Valid() || !itemType.Valid() || itemID == uuid.Nil {
		return SessionView{}, usecase.ErrInvalidInput
	}

	s, err := e.session(userID, sessionID)
	if err != nil {
		return SessionView{}, err
	}

	s.Toggle(side, itemType, itemID)
	return e.buildView(ctx, s)
}

// CopyAllSelected pushes every selected item on fromSide to the opposite
// resume. Skills already on the target are skipped, jobs are always
// deep-copied. Items run concurrently with per-item result capture; one
// failure never stops its siblings. Only one batch per session at a time.
func (e *Engine) CopyAllSelected(ctx context.Context, userID, sessionID uuid.UUID, fromSide Side) (SessionView, []CopyResult, error) {
	if !fromSide.Valid() {
		return SessionView{}, nil, usecase.ErrInvalidInput
	}

	s, err := e.session(userID, sessionID)
	if err != nil {
		return SessionView{}, nil, err
	}

	if !s.beginCopy() {
		return SessionView{}, nil, ErrCopyInFlight
	}
	defer s.endCopy()

	skillIDs, jobIDs := s.Selected(fromSide)
	if len(skillIDs) == 0 && len(jobIDs) == 0 {
		return SessionView{}, nil, usecase.ErrInvalidInput
	}

	jobsByID, err := e.jobIndex(ctx, userID)
	if err != nil {
		return SessionView{}, nil, err
	}

	targetResumeID := s.ResumeID(fromSide.Opposite())
	results := make([]CopyResult, len(skillIDs)+len(jobIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.copyLimit)

	for i, skillID := range skillIDs {
		i, skillID := i, skillID
		g.Go(func() error {
			results[i] = e.copySkill(gctx, userID, targetResumeID, skillID)
			return nil
		})
	}
	for i, jobID := range jobIDs {
		i, jobID := len(skillIDs)+i, jobID
		g.Go(func() error {
			results[i] = e.copyJob(gctx, userID, jobID, jobsByID)
			return nil
		})
	}

	// Goroutines record their own outcome, so Wait only synchronizes.
	_ = g.Wait()

	s.ClearSelections(fromSide)
	e.notifyOwner(userID)

	view, err := e.buildView(ctx, s)
	if err != nil {
		return SessionView{}, results, err
	}
	return view, results, nil
}

// DropItem handles a single drag release. A drop back onto the origin side
// is a silent no-op; a drop whose payload cannot be recovered fails loudly.
func (e *Engine) DropItem(ctx context.Context, userID, sessionID uuid.UUID, in DropInput) (SessionView, bool, error) {
	s, err := e.session(userID, sessionID)
	if err != nil {
		return SessionView{}, false, err
	}

	payload := DragPayload{ItemID: in.ItemID, ItemType: in.ItemType, OriginSide: in.OriginSide}
	if !payload.Complete() {
		payload, err = ParseFallback(in.Payload)
		if err != nil {
			return SessionView{}, false, ErrUnusablePayload
		}
	}

	if !in.ToSide.Valid() {
		return SessionView{}, false, usecase.ErrInvalidInput
	}
	if payload.OriginSide == in.ToSide {
		view, err := e.buildView(ctx, s)
		return view, false, err
	}

	switch payload.ItemType {
	case ItemSkill:
		if err := e.dropSkill(ctx, userID, s, payload, in.ToSide); err != nil {
			return SessionView{}, false, err
		}
	case ItemJob:
		if err := e.dropJob(ctx, userID, payload.ItemID); err != nil {
			return SessionView{}, false, err
		}
	default:
		return SessionView{}, false, ErrUnusablePayload
	}

	e.notifyOwner(userID)

	view, err := e.buildView(ctx, s)
	if err != nil {
		return SessionView{}, true, err
	}
	return view, true, nil
}

// DeleteItem removes an item through the session. Skills come off the one
// resume and stay in the ledger; jobs are deleted globally and their
// provenance cascades away.
func (e *Engine) DeleteItem(ctx context.Context, userID, sessionID uuid.UUID, side Side, itemType ItemType, itemID uuid.UUID) (SessionView, error) {
	if !side.Valid() || !itemType.Valid() || itemID == uuid.Nil {
		return SessionView{}, usecase.ErrInvalidInput
	}

	s, err := e.session(userID, sessionID)
	if err != nil {
		return SessionView{}, err
	}

	switch itemType {
	case ItemSkill:
		if err := e.resumeSkills.RemoveSkillFromResume(ctx, userID, s.ResumeID(side), itemID); err != nil {
			return SessionView{}, err
		}
	case ItemJob:
		if err := e.jobs.DeleteJobExperience(ctx, userID, itemID); err != nil {
			return SessionView{}, err
		}
	}

	s.Deselect(itemType, itemID)
	e.notifyOwner(userID)

	return e.buildView(ctx, s)
}

func (e *Engine) session(userID, sessionID uuid.UUID) (*Session, error) {
	s, ok := e.sessions.Get(sessionID)
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (e *Engine) copySkill(ctx context.Context, userID, targetResumeID, skillID uuid.UUID) CopyResult {
	res := CopyResult{ItemID: skillID, ItemType: ItemSkill}

	err := e.resumeSkills.AddSkillToResume(ctx, userID, targetResumeID, skillID)
	switch {
	case err == nil:
		res.Copied = true
	case errors.Is(err, usecase.ErrSkillAlreadyListed):
		res.Skipped = true
		res.Message = "already on target resume"
	default:
		res.Message = "copy failed"
		e.logger.Printf("copy skill failed | user=%s skill=%s err=%v", userID, skillID, err)
	}
	return res
}

func (e *Engine) copyJob(ctx context.Context, userID, jobID uuid.UUID, jobsByID map[uuid.UUID]usecase.JobExperienceItem) CopyResult {
	res := CopyResult{ItemID: jobID, ItemType: ItemJob}

	src, ok := jobsByID[jobID]
	if !ok {
		res.Message = "job no longer exists"
		return res
	}

	if _, err := e.jobs.AddJobExperience(ctx, userID, deepCopyJobInput(src)); err != nil {
		res.Message = "copy failed"
		e.logger.Printf("copy job failed | user=%s job=%s err=%v", userID, jobID, err)
		return res
	}
	res.Copied = true
	return res
}

func (e *Engine) dropSkill(ctx context.Context, userID uuid.UUID, s *Session, payload DragPayload, toSide Side) error {
	targetResumeID := s.ResumeID(toSide)
	sourceResumeID := s.ResumeID(payload.OriginSide)

	targetSkills, err := e.resumeSkills.ListResumeSkills(ctx, userID, targetResumeID)
	if err != nil {
		return err
	}
	for _, sk := range targetSkills {
		if sk.SkillID == payload.ItemID {
			return ErrAlreadyOnTarget
		}
	}

	// Stale payload guard: the dragged skill must still be on its origin.
	sourceSkills, err := e.resumeSkills.ListResumeSkills(ctx, userID, sourceResumeID)
	if err != nil {
		return err
	}
	found := false
	for _, sk := range sourceSkills {
		if sk.SkillID == payload.ItemID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotOnSource
	}

	if err := e.resumeSkills.AddSkillToResume(ctx, userID, targetResumeID, payload.ItemID); err != nil {
		if errors.Is(err, usecase.ErrSkillAlreadyListed) {
			return ErrAlreadyOnTarget
		}
		return err
	}
	return nil
}

func (e *Engine) dropJob(ctx context.Context, userID, jobID uuid.UUID) error {
	jobsByID, err := e.jobIndex(ctx, userID)
	if err != nil {
		return err
	}
	src, ok := jobsByID[jobID]
	if !ok {
		return ErrItemNotFound
	}

	_, err = e.jobs.AddJobExperience(ctx, userID, deepCopyJobInput(src))
	return err
}

func (e *Engine) jobIndex(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]usecase.JobExperienceItem, error) {
	items, err := e.jobs.ListJobExperiences(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]usecase.JobExperienceItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (e *Engine) buildView(ctx context.Context, s *Session) (SessionView, error) {
	var left, right SideView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		left, err = e.sideView(gctx, s, SideLeft)
		return err
	})
	g.Go(func() error {
		var err error
		right, err = e.sideView(gctx, s, SideRight)
		return err
	})
	if err := g.Wait(); err != nil {
		return SessionView{}, err
	}

	return SessionView{
		SessionID:    s.ID,
		Left:         left,
		Right:        right,
		CopyInFlight: s.CopyInFlight(),
	}, nil
}

func (e *Engine) sideView(ctx context.Context, s *Session, side Side) (SideView, error) {
	resumeID := s.ResumeID(side)

	resume, err := e.resumes.GetResume(ctx, s.UserID, resumeID)
	if err != nil {
		return SideView{}, err
	}
	skills, err := e.resumeSkills.ListResumeSkills(ctx, s.UserID, resumeID)
	if err != nil {
		return SideView{}, err
	}
	// Jobs are user-scoped, so both sides show the same list.
	jobs, err := e.jobs.ListJobExperiences(ctx, s.UserID)
	if err != nil {
		return SideView{}, err
	}

	selSkills, selJobs := s.Selected(side)
	return SideView{
		Resume:         resume,
		Skills:         skills,
		Jobs:           jobs,
		SelectedSkills: selSkills,
		SelectedJobs:   selJobs,
	}, nil
}

func (e *Engine) notifyOwner(userID uuid.UUID) {
	if e.notifier != nil {
		e.notifier.ResumesUpdated(userID)
	}
}

func deepCopyJobInput(src usecase.JobExperienceItem) usecase.AddJobExperienceInput {
	in := usecase.AddJobExperienceInput{
		Company:      src.Company,
		Position:     src.Position,
		Description:  src.Description,
		SkillsGained: src.SkillsGained,
	}
	if src.StartDate != nil {
		sd := *src.StartDate
		in.StartDate = &sd
	}
	if src.EndDate != nil {
		ed := *src.EndDate
		in.EndDate = &ed
	}
	return in
}

package compare

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"careerquest/internal/usecase"

	"github.com/google/uuid"
)

// fakeBackend is an in-memory stand-in for the resume, resume-skill and job
// usecases. The mutex matters: copy-all hits it from concurrent goroutines.
type fakeBackend struct {
	mu sync.Mutex

	userID  uuid.UUID
	resumes map[uuid.UUID]usecase.ResumeItem
	skills  map[uuid.UUID]map[uuid.UUID]bool
	jobs    []usecase.JobExperienceItem
}

func newFakeBackend(userID uuid.UUID) *fakeBackend {
	return &fakeBackend{
		userID:  userID,
		resumes: map[uuid.UUID]usecase.ResumeItem{},
		skills:  map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (f *fakeBackend) addResume() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.resumes[id] = usecase.ResumeItem{ID: id, Title: "resume"}
	f.skills[id] = map[uuid.UUID]bool{}
	return id
}

func (f *fakeBackend) putSkill(resumeID, skillID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skills[resumeID][skillID] = true
}

func (f *fakeBackend) addJob(company string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.jobs = append(f.jobs, usecase.JobExperienceItem{ID: id, Company: company, Position: "engineer"})
	return id
}

func (f *fakeBackend) ListResumes(context.Context, uuid.UUID) ([]usecase.ResumeItem, error) {
	return nil, nil
}

func (f *fakeBackend) GetResume(_ context.Context, userID, resumeID uuid.UUID) (usecase.ResumeItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rs, ok := f.resumes[resumeID]
	if !ok || userID != f.userID {
		return usecase.ResumeItem{}, usecase.ErrResumeNotFound
	}
	return rs, nil
}

func (f *fakeBackend) CreateResume(context.Context, uuid.UUID, usecase.CreateResumeInput) (usecase.ResumeItem, error) {
	return usecase.ResumeItem{}, nil
}

func (f *fakeBackend) UpdateResume(context.Context, uuid.UUID, uuid.UUID, usecase.UpdateResumeInput) (usecase.ResumeItem, error) {
	return usecase.ResumeItem{}, nil
}

func (f *fakeBackend) DeleteResume(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (f *fakeBackend) ListResumeSkills(_ context.Context, _ uuid.UUID, resumeID uuid.UUID) ([]usecase.ResumeSkillItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.skills[resumeID]
	if !ok {
		return nil, usecase.ErrResumeNotFound
	}
	out := []usecase.ResumeSkillItem{}
	for id := range set {
		out = append(out, usecase.ResumeSkillItem{SkillID: id})
	}
	return out, nil
}

func (f *fakeBackend) AddSkillToResume(_ context.Context, _ uuid.UUID, resumeID, skillID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.skills[resumeID]
	if !ok {
		return usecase.ErrResumeNotFound
	}
	if set[skillID] {
		return usecase.ErrSkillAlreadyListed
	}
	set[skillID] = true
	return nil
}

func (f *fakeBackend) RemoveSkillFromResume(_ context.Context, _ uuid.UUID, resumeID, skillID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.skills[resumeID]
	if !ok {
		return usecase.ErrResumeNotFound
	}
	if !set[skillID] {
		return usecase.ErrSkillNotInResume
	}
	delete(set, skillID)
	return nil
}

func (f *fakeBackend) ListJobExperiences(context.Context, uuid.UUID) ([]usecase.JobExperienceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]usecase.JobExperienceItem, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

func (f *fakeBackend) AddJobExperience(_ context.Context, _ uuid.UUID, in usecase.AddJobExperienceInput) (usecase.JobExperienceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := usecase.JobExperienceItem{
		ID:        uuid.New(),
		Company:   in.Company,
		Position:  in.Position,
		CreatedAt: time.Now(),
	}
	f.jobs = append(f.jobs, item)
	return item, nil
}

func (f *fakeBackend) DeleteJobExperience(_ context.Context, _ uuid.UUID, jobID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, jb := range f.jobs {
		if jb.ID == jobID {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return usecase.ErrJobExperienceNotFound
}

func (f *fakeBackend) ListUnlockHistory(context.Context, uuid.UUID, uuid.UUID) ([]usecase.SkillUnlockItem, error) {
	return nil, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *recordingNotifier) ResumesUpdated(uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
}

func newTestEngine(t *testing.T) (*Engine, *fakeBackend, *recordingNotifier, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	backend := newFakeBackend(userID)
	notifier := &recordingNotifier{}
	engine := NewEngine(NewStore(time.Hour), backend, backend, backend, notifier, nil)
	return engine, backend, notifier, userID
}

func TestCopyAllSelected_UnionsSkillsOnTarget(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	skillA, skillB, skillC := uuid.New(), uuid.New(), uuid.New()
	backend.putSkill(left, skillA)
	backend.putSkill(left, skillB)
	backend.putSkill(right, skillC)

	view, err := engine.CreateSession(context.Background(), userID, left, right)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	sid := view.SessionID
	if _, err := engine.ToggleSelect(context.Background(), userID, sid, SideLeft, ItemSkill, skillA); err != nil {
		t.Fatalf("select A: %v", err)
	}
	if _, err := engine.ToggleSelect(context.Background(), userID, sid, SideLeft, ItemSkill, skillB); err != nil {
		t.Fatalf("select B: %v", err)
	}

	after, results, err := engine.CopyAllSelected(context.Background(), userID, sid, SideLeft)
	if err != nil {
		t.Fatalf("copy-all: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Copied {
			t.Fatalf("expected copy, got %+v", r)
		}
	}
	if len(after.Right.Skills) != 3 {
		t.Fatalf("target should hold the union, got %d skills", len(after.Right.Skills))
	}
	if len(after.Left.SelectedSkills) != 0 {
		t.Fatalf("selections should clear after copy-all")
	}
}

func TestCopyAllSelected_SwallowsDuplicates(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	shared := uuid.New()
	backend.putSkill(left, shared)
	backend.putSkill(right, shared)

	view, _ := engine.CreateSession(context.Background(), userID, left, right)
	_, _ = engine.ToggleSelect(context.Background(), userID, view.SessionID, SideLeft, ItemSkill, shared)

	after, results, err := engine.CopyAllSelected(context.Background(), userID, view.SessionID, SideLeft)
	if err != nil {
		t.Fatalf("copy-all: %v", err)
	}
	if len(results) != 1 || !results[0].Skipped {
		t.Fatalf("duplicate should be reported skipped, got %+v", results)
	}
	if len(after.Right.Skills) != 1 {
		t.Fatalf("target should be unchanged, got %d skills", len(after.Right.Skills))
	}
}

func TestCopyAllSelected_DeepCopiesJobs(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	jobID := backend.addJob("Acme")

	view, _ := engine.CreateSession(context.Background(), userID, left, right)
	_, _ = engine.ToggleSelect(context.Background(), userID, view.SessionID, SideLeft, ItemJob, jobID)

	_, results, err := engine.CopyAllSelected(context.Background(), userID, view.SessionID, SideLeft)
	if err != nil {
		t.Fatalf("copy-all: %v", err)
	}
	if len(results) != 1 || !results[0].Copied {
		t.Fatalf("job should be copied, got %+v", results)
	}

	jobs, _ := backend.ListJobExperiences(context.Background(), userID)
	if len(jobs) != 2 {
		t.Fatalf("expected a new job row, got %d", len(jobs))
	}
	if jobs[0].ID == jobs[1].ID {
		t.Fatalf("copy must be a new entity, not a shared reference")
	}
	if jobs[0].Company != jobs[1].Company {
		t.Fatalf("copy should carry the source fields")
	}
}

func TestCopyAllSelected_InFlightGuard(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	skillID := uuid.New()
	backend.putSkill(left, skillID)

	view, _ := engine.CreateSession(context.Background(), userID, left, right)
	_, _ = engine.ToggleSelect(context.Background(), userID, view.SessionID, SideLeft, ItemSkill, skillID)

	s, _ := engine.sessions.Get(view.SessionID)
	if !s.beginCopy() {
		t.Fatalf("setup: beginCopy failed")
	}

	_, _, err := engine.CopyAllSelected(context.Background(), userID, view.SessionID, SideLeft)
	if !errors.Is(err, ErrCopyInFlight) {
		t.Fatalf("expected ErrCopyInFlight, got %v", err)
	}
}

func TestDropItem_SameSideIsNoOp(t *testing.T) {
	engine, backend, notifier, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	skillID := uuid.New()
	backend.putSkill(left, skillID)

	view, _ := engine.CreateSession(context.Background(), userID, left, right)

	after, moved, err := engine.DropItem(context.Background(), userID, view.SessionID, DropInput{
		ItemID:     skillID,
		ItemType:   ItemSkill,
		OriginSide: SideLeft,
		ToSide:     SideLeft,
	})
	if err != nil {
		t.Fatalf("same-side drop must not fail: %v", err)
	}
	if moved {
		t.Fatalf("same-side drop must be a no-op")
	}
	if len(after.Right.Skills) != 0 {
		t.Fatalf("nothing should be copied")
	}
	if notifier.calls != 0 {
		t.Fatalf("no-op should not broadcast")
	}
}

func TestDropItem_FallbackPayload(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	skillID := uuid.New()
	backend.putSkill(left, skillID)

	view, _ := engine.CreateSession(context.Background(), userID, left, right)

	after, moved, err := engine.DropItem(context.Background(), userID, view.SessionID, DropInput{
		ToSide:  SideRight,
		Payload: "skill:" + skillID.String() + ":left",
	})
	if err != nil {
		t.Fatalf("fallback payload should work: %v", err)
	}
	if !moved || len(after.Right.Skills) != 1 {
		t.Fatalf("skill should land on the target")
	}
}

func TestDropItem_UnusablePayloadFailsLoudly(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()

	view, _ := engine.CreateSession(context.Background(), userID, left, right)

	_, _, err := engine.DropItem(context.Background(), userID, view.SessionID, DropInput{
		ToSide:  SideRight,
		Payload: "garbage",
	})
	if !errors.Is(err, ErrUnusablePayload) {
		t.Fatalf("expected ErrUnusablePayload, got %v", err)
	}
}

func TestDropItem_AlreadyOnTarget(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	skillID := uuid.New()
	backend.putSkill(left, skillID)
	backend.putSkill(right, skillID)

	view, _ := engine.CreateSession(context.Background(), userID, left, right)

	_, _, err := engine.DropItem(context.Background(), userID, view.SessionID, DropInput{
		ItemID:     skillID,
		ItemType:   ItemSkill,
		OriginSide: SideLeft,
		ToSide:     SideRight,
	})
	if !errors.Is(err, ErrAlreadyOnTarget) {
		t.Fatalf("expected ErrAlreadyOnTarget, got %v", err)
	}
}

func TestDropItem_StalePayloadNotOnSource(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()

	view, _ := engine.CreateSession(context.Background(), userID, left, right)

	_, _, err := engine.DropItem(context.Background(), userID, view.SessionID, DropInput{
		ItemID:     uuid.New(),
		ItemType:   ItemSkill,
		OriginSide: SideLeft,
		ToSide:     SideRight,
	})
	if !errors.Is(err, ErrNotOnSource) {
		t.Fatalf("expected ErrNotOnSource, got %v", err)
	}
}

func TestDeleteItem_SkillIsScopedToOneResume(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	skillID := uuid.New()
	backend.putSkill(left, skillID)
	backend.putSkill(right, skillID)

	view, _ := engine.CreateSession(context.Background(), userID, left, right)

	after, err := engine.DeleteItem(context.Background(), userID, view.SessionID, SideLeft, ItemSkill, skillID)
	if err != nil {
		t.Fatalf("delete skill: %v", err)
	}
	if len(after.Left.Skills) != 0 {
		t.Fatalf("skill should leave the chosen resume")
	}
	if len(after.Right.Skills) != 1 {
		t.Fatalf("the other resume must keep its association")
	}
}

func TestDeleteItem_JobIsGlobal(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()
	jobID := backend.addJob("Acme")

	view, _ := engine.CreateSession(context.Background(), userID, left, right)

	after, err := engine.DeleteItem(context.Background(), userID, view.SessionID, SideLeft, ItemJob, jobID)
	if err != nil {
		t.Fatalf("delete job: %v", err)
	}
	if len(after.Left.Jobs) != 0 || len(after.Right.Jobs) != 0 {
		t.Fatalf("job delete is global, both sides must lose it")
	}
}

func TestGetSession_WrongUser(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	left, right := backend.addResume(), backend.addResume()

	view, _ := engine.CreateSession(context.Background(), userID, left, right)

	_, err := engine.GetSession(context.Background(), uuid.New(), view.SessionID)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("foreign session must read as not found, got %v", err)
	}
}

func TestCreateSession_RejectsSameResumeTwice(t *testing.T) {
	engine, backend, _, userID := newTestEngine(t)
	resumeID := backend.addResume()

	_, err := engine.CreateSession(context.Background(), userID, resumeID, resumeID)
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

package compare

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionToggle(t *testing.T) {
	s := newSession(uuid.New(), uuid.New(), uuid.New(), time.Now().Add(time.Hour))
	skillID := uuid.New()

	if !s.Toggle(SideLeft, ItemSkill, skillID) {
		t.Fatalf("first toggle should select")
	}
	skills, jobs := s.Selected(SideLeft)
	if len(skills) != 1 || len(jobs) != 0 {
		t.Fatalf("expected 1 selected skill, got %d skills %d jobs", len(skills), len(jobs))
	}

	if s.Toggle(SideLeft, ItemSkill, skillID) {
		t.Fatalf("second toggle should deselect")
	}
	skills, _ = s.Selected(SideLeft)
	if len(skills) != 0 {
		t.Fatalf("expected empty selection after second toggle")
	}
}

func TestSessionSelectionsAreSideScoped(t *testing.T) {
	s := newSession(uuid.New(), uuid.New(), uuid.New(), time.Now().Add(time.Hour))
	jobID := uuid.New()

	s.Toggle(SideRight, ItemJob, jobID)

	_, leftJobs := s.Selected(SideLeft)
	if len(leftJobs) != 0 {
		t.Fatalf("left side should not see right side's selection")
	}
	_, rightJobs := s.Selected(SideRight)
	if len(rightJobs) != 1 {
		t.Fatalf("right side selection missing")
	}
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Now()
	st.now = func() time.Time { return now }

	s := st.Create(uuid.New(), uuid.New(), uuid.New())
	if _, ok := st.Get(s.ID); !ok {
		t.Fatalf("fresh session should resolve")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := st.Get(s.ID); ok {
		t.Fatalf("expired session should not resolve")
	}
}

func TestStoreGetExtendsTTL(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Now()
	st.now = func() time.Time { return now }

	s := st.Create(uuid.New(), uuid.New(), uuid.New())

	now = now.Add(45 * time.Second)
	if _, ok := st.Get(s.ID); !ok {
		t.Fatalf("session should still be live")
	}

	// The earlier Get pushed expiry forward, so this is within TTL again.
	now = now.Add(45 * time.Second)
	if _, ok := st.Get(s.ID); !ok {
		t.Fatalf("touched session should survive past the original deadline")
	}
}

func TestStoreSweep(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Now()
	st.now = func() time.Time { return now }

	st.Create(uuid.New(), uuid.New(), uuid.New())
	st.Create(uuid.New(), uuid.New(), uuid.New())

	now = now.Add(2 * time.Minute)
	if removed := st.Sweep(); removed != 2 {
		t.Fatalf("expected 2 swept, got %d", removed)
	}
}

func TestSessionCopyGuard(t *testing.T) {
	s := newSession(uuid.New(), uuid.New(), uuid.New(), time.Now().Add(time.Hour))

	if !s.beginCopy() {
		t.Fatalf("first beginCopy should succeed")
	}
	if s.beginCopy() {
		t.Fatalf("second beginCopy should be rejected while in flight")
	}
	s.endCopy()
	if !s.beginCopy() {
		t.Fatalf("beginCopy should succeed after endCopy")
	}
}

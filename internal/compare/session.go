package compare

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("compare session not found")
	ErrCopyInFlight    = errors.New("a copy batch is already running for this session")
)

const defaultSessionTTL = 30 * time.Minute

// Session holds only orchestration state: which items are selected per side
// and whether a copy batch is running. Entity data is always re-read.
type Session struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	LeftResumeID  uuid.UUID
	RightResumeID uuid.UUID

	mu             sync.Mutex
	selectedSkills map[Side]map[uuid.UUID]struct{}
	selectedJobs   map[Side]map[uuid.UUID]struct{}
	copyInFlight   bool
	expiresAt      time.Time
}

func newSession(userID, leftResumeID, rightResumeID uuid.UUID, expiresAt time.Time) *Session {
	return &Session{
		ID:            uuid.New(),
		UserID:        userID,
		LeftResumeID:  leftResumeID,
		RightResumeID: rightResumeID,
		selectedSkills: map[Side]map[uuid.UUID]struct{}{
			SideLeft:  {},
			SideRight: {},
		},
		selectedJobs: map[Side]map[uuid.UUID]struct{}{
			SideLeft:  {},
			SideRight: {},
		},
		expiresAt: expiresAt,
	}
}

func (s *Session) ResumeID(side Side) uuid.UUID {
	if side == SideLeft {
		return s.LeftResumeID
	}
	return s.RightResumeID
}

// Toggle flips the item's membership in the side's selection set and reports
// whether it is selected afterwards.
func (s *Session) Toggle(side Side, itemType ItemType, itemID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.selectedSkills[side]
	if itemType == ItemJob {
		set = s.selectedJobs[side]
	}

	if _, ok := set[itemID]; ok {
		delete(set, itemID)
		return false
	}
	set[itemID] = struct{}{}
	return true
}

func (s *Session) Selected(side Side) (skills []uuid.UUID, jobs []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.selectedSkills[side] {
		skills = append(skills, id)
	}
	for id := range s.selectedJobs[side] {
		jobs = append(jobs, id)
	}
	return skills, jobs
}

func (s *Session) ClearSelections(side Side) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSkills[side] = map[uuid.UUID]struct{}{}
	s.selectedJobs[side] = map[uuid.UUID]struct{}{}
}

// Deselect drops an item from both sides, used after the item is deleted.
func (s *Session) Deselect(itemType ItemType, itemID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets := s.selectedSkills
	if itemType == ItemJob {
		sets = s.selectedJobs
	}
	delete(sets[SideLeft], itemID)
	delete(sets[SideRight], itemID)
}

func (s *Session) beginCopy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copyInFlight {
		return false
	}
	s.copyInFlight = true
	return true
}

func (s *Session) endCopy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copyInFlight = false
}

func (s *Session) CopyInFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyInFlight
}

// Store keeps sessions in memory and sweeps expired ones on a fixed cadence.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// StartSweeper runs the expiry sweep until Stop is called.
func (st *Store) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-st.done:
				return
			case <-ticker.C:
				st.Sweep()
			}
		}
	}()
}

func (st *Store) Stop() {
	st.stopOnce.Do(func() {
		close(st.done)
	})
}

func (st *Store) Create(userID, leftResumeID, rightResumeID uuid.UUID) *Session {
	s := newSession(userID, leftResumeID, rightResumeID, st.now().Add(st.ttl))

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// Get returns a live session and pushes its expiry forward.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if st.now().After(s.expiresAt) {
		delete(st.sessions, id)
		return nil, false
	}
	s.expiresAt = st.now().Add(st.ttl)
	return s, true
}

func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	now := st.now()
	for id, s := range st.sessions {
		if now.After(s.expiresAt) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

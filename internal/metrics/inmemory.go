package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AuthFailures         map[string]uint64
	OwnershipDenied      map[string]uint64
	LoginFailures        uint64
	RateLimited          uint64
	UsersRegistered      uint64
	SkillsCreated        uint64
	SkillsUpdated        uint64
	SkillsDeleted        uint64
	CommentsCreated      uint64
	CommentsUpdated      uint64
	CommentsDeleted      uint64
	StatsCacheHits       uint64
	StatsCacheMisses     uint64
	StatsDurationCount   uint64
	StatsDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory. It backs the /metrics endpoint.
type InMemoryRecorder struct {
	mu              sync.Mutex
	authFailures    map[string]uint64
	ownershipDenied map[string]uint64

	loginFailures        uint64
	rateLimited          uint64
	usersRegistered      uint64
	skillsCreated        uint64
	skillsUpdated        uint64
	skillsDeleted        uint64
	commentsCreated      uint64
	commentsUpdated      uint64
	commentsDeleted      uint64
	statsCacheHits       uint64
	statsCacheMisses     uint64
	statsDurationCount   uint64
	statsDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		authFailures:    make(map[string]uint64),
		ownershipDenied: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	authFailures := copyCounts(m.authFailures)
	ownershipDenied := copyCounts(m.ownershipDenied)
	m.mu.Unlock()

	return Snapshot{
		AuthFailures:         authFailures,
		OwnershipDenied:      ownershipDenied,
		LoginFailures:        atomic.LoadUint64(&m.loginFailures),
		RateLimited:          atomic.LoadUint64(&m.rateLimited),
		UsersRegistered:      atomic.LoadUint64(&m.usersRegistered),
		SkillsCreated:        atomic.LoadUint64(&m.skillsCreated),
		SkillsUpdated:        atomic.LoadUint64(&m.skillsUpdated),
		SkillsDeleted:        atomic.LoadUint64(&m.skillsDeleted),
		CommentsCreated:      atomic.LoadUint64(&m.commentsCreated),
		CommentsUpdated:      atomic.LoadUint64(&m.commentsUpdated),
		CommentsDeleted:      atomic.LoadUint64(&m.commentsDeleted),
		StatsCacheHits:       atomic.LoadUint64(&m.statsCacheHits),
		StatsCacheMisses:     atomic.LoadUint64(&m.statsCacheMisses),
		StatsDurationCount:   atomic.LoadUint64(&m.statsDurationCount),
		StatsDurationTotalNs: atomic.LoadInt64(&m.statsDurationTotalNs),
	}
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// IncAuthFailure counts a rejected request by gate reason.
func (m *InMemoryRecorder) IncAuthFailure(reason string) {
	m.mu.Lock()
	m.authFailures[reason]++
	m.mu.Unlock()
}

// IncOwnershipDenied counts a mutation refused to a non-owner.
func (m *InMemoryRecorder) IncOwnershipDenied(resource string) {
	m.mu.Lock()
	m.ownershipDenied[resource]++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncLoginFailure()   { atomic.AddUint64(&m.loginFailures, 1) }
func (m *InMemoryRecorder) IncRateLimited()    { atomic.AddUint64(&m.rateLimited, 1) }
func (m *InMemoryRecorder) IncUserRegistered() { atomic.AddUint64(&m.usersRegistered, 1) }
func (m *InMemoryRecorder) IncSkillCreated()   { atomic.AddUint64(&m.skillsCreated, 1) }
func (m *InMemoryRecorder) IncSkillUpdated()   { atomic.AddUint64(&m.skillsUpdated, 1) }
func (m *InMemoryRecorder) IncSkillDeleted()   { atomic.AddUint64(&m.skillsDeleted, 1) }
func (m *InMemoryRecorder) IncCommentCreated() { atomic.AddUint64(&m.commentsCreated, 1) }
func (m *InMemoryRecorder) IncCommentUpdated() { atomic.AddUint64(&m.commentsUpdated, 1) }
func (m *InMemoryRecorder) IncCommentDeleted() { atomic.AddUint64(&m.commentsDeleted, 1) }
func (m *InMemoryRecorder) IncStatsCacheHit()  { atomic.AddUint64(&m.statsCacheHits, 1) }
func (m *InMemoryRecorder) IncStatsCacheMiss() { atomic.AddUint64(&m.statsCacheMisses, 1) }

// ObserveStatsDuration records how long a stats computation took.
func (m *InMemoryRecorder) ObserveStatsDuration(duration time.Duration) {
	atomic.AddUint64(&m.statsDurationCount, 1)
	atomic.AddInt64(&m.statsDurationTotalNs, duration.Nanoseconds())
}

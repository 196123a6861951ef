package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
)

type memEvents struct {
	mu      sync.Mutex
	nextID  uint
	rows    map[uint]entities.EventProposal
	history []entities.ApprovalRecord
	failFor map[uint]error
}

func newMemEvents(rows ...entities.EventProposal) *memEvents {
	m := &memEvents{rows: map[uint]entities.EventProposal{}, failFor: map[uint]error{}}
	for _, r := range rows {
		m.rows[r.ID] = r
		if r.ID > m.nextID {
			m.nextID = r.ID
		}
	}
	return m
}

func (m *memEvents) Create(_ context.Context, e *entities.EventProposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	m.rows[e.ID] = *e
	return nil
}

func (m *memEvents) FindByID(_ context.Context, id uint) (*entities.EventProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	return &row, nil
}

func (m *memEvents) Update(_ context.Context, e *entities.EventProposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[e.ID]; !ok {
		return domain.ErrProposalNotFound
	}
	m.rows[e.ID] = *e
	return nil
}

func (m *memEvents) ListByApproval(_ context.Context, status domain.ApprovalStatus, clubID *uint) ([]entities.EventProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.EventProposal
	for _, r := range m.rows {
		if r.ApprovalStatus != status {
			continue
		}
		if clubID != nil && r.ClubID != *clubID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memEvents) FindConflicting(_ context.Context, venueID uint, start, end time.Time, exclude *uint) ([]entities.EventProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conflicting(venueID, entities.Window{Start: start, End: end}, exclude), nil
}

func (m *memEvents) conflicting(venueID uint, w entities.Window, exclude *uint) []entities.EventProposal {
	var out []entities.EventProposal
	for _, r := range m.rows {
		if r.BlocksVenue(venueID, w, exclude) {
			out = append(out, r)
		}
	}
	return out
}

func (m *memEvents) FindDeadlineExpired(_ context.Context, cutoff time.Time) ([]entities.EventProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.EventProposal
	for _, r := range m.rows {
		if r.Active && r.IdeaSubmissionDeadline != nil && !r.IdeaSubmissionDeadline.After(cutoff) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memEvents) CloseExpired(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failFor[id]; err != nil {
		return false, err
	}
	row, ok := m.rows[id]
	if !ok || !row.Active {
		return false, nil
	}
	row.Active = false
	row.Status = domain.StatusCompleted
	m.rows[id] = row
	return true, nil
}

func (m *memEvents) AppendHistory(_ context.Context, rec *entities.ApprovalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = uint(len(m.history) + 1)
	m.history = append(m.history, *rec)
	return nil
}

func (m *memEvents) History(_ context.Context, eventID uint) ([]entities.ApprovalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.ApprovalRecord
	for _, h := range m.history {
		if h.EventID == eventID {
			out = append(out, h)
		}
	}
	return out, nil
}

type memVenues struct {
	mu     sync.Mutex
	rows   map[uint]entities.Venue
	events *memEvents
}

func newMemVenues(events *memEvents, venues ...entities.Venue) *memVenues {
	m := &memVenues{rows: map[uint]entities.Venue{}, events: events}
	for _, v := range venues {
		m.rows[v.ID] = v
	}
	return m
}

func (m *memVenues) Create(_ context.Context, v *entities.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Name == v.Name {
			return domain.ErrDuplicateVenue
		}
	}
	v.ID = uint(len(m.rows) + 1)
	m.rows[v.ID] = *v
	return nil
}

func (m *memVenues) FindByID(_ context.Context, id uint) (*entities.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrVenueNotFound
	}
	return &v, nil
}

func (m *memVenues) ListActive(_ context.Context) ([]entities.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Venue
	for _, v := range m.rows {
		if v.Active {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindAvailable returns candidates in id order; ordering is the service's job.
func (m *memVenues) FindAvailable(_ context.Context, required int, start, end time.Time, exclude *uint) ([]entities.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := entities.Window{Start: start, End: end}
	var out []entities.Venue
	for _, v := range m.rows {
		if !v.Active || v.Capacity < required {
			continue
		}
		if m.events != nil {
			m.events.mu.Lock()
			busy := len(m.events.conflicting(v.ID, w, exclude)) > 0
			m.events.mu.Unlock()
			if busy {
				continue
			}
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memVenues) Update(_ context.Context, v *entities.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[v.ID]; !ok {
		return domain.ErrVenueNotFound
	}
	m.rows[v.ID] = *v
	return nil
}

func (m *memVenues) Deactivate(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.rows[id]
	if !ok {
		return domain.ErrVenueNotFound
	}
	v.Active = false
	m.rows[id] = v
	return nil
}

func (m *memVenues) UpsertByName(ctx context.Context, v *entities.Venue) error {
	m.mu.Lock()
	for id, existing := range m.rows {
		if existing.Name == v.Name {
			v.ID = id
			m.rows[id] = *v
			m.mu.Unlock()
			return nil
		}
	}
	m.mu.Unlock()
	return m.Create(ctx, v)
}

type memTopics struct {
	mu   sync.Mutex
	rows map[uint]entities.Topic
}

func newMemTopics(topics ...entities.Topic) *memTopics {
	m := &memTopics{rows: map[uint]entities.Topic{}}
	for _, t := range topics {
		m.rows[t.ID] = t
	}
	return m
}

func (m *memTopics) FindDeadlineExpired(_ context.Context, cutoff time.Time) ([]entities.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Topic
	for _, t := range m.rows {
		if t.Active && t.Deadline != nil && !t.Deadline.After(cutoff) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memTopics) CloseExpired(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok || !t.Active {
		return false, nil
	}
	t.Active = false
	t.Status = domain.TopicClosed
	m.rows[id] = t
	return true, nil
}

type memClubs map[uint]entities.Club

func (m memClubs) FindClub(_ context.Context, id uint) (*entities.Club, error) {
	c, ok := m[id]
	if !ok {
		return nil, domain.ErrClubNotFound
	}
	return &c, nil
}

type memUsers map[uint]domain.Role

func (m memUsers) FindRole(_ context.Context, id uint) (domain.Role, error) {
	r, ok := m[id]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return r, nil
}

// mutexLocker serializes every critical section behind one mutex.
type mutexLocker struct {
	mu    sync.Mutex
	calls []uint
	plain int
}

func (l *mutexLocker) WithVenueLock(ctx context.Context, venueID uint, fn func(ctx context.Context) error) error {
	if venueID == 0 {
		return domain.ErrVenueNotFound
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, venueID)
	return fn(ctx)
}

func (l *mutexLocker) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.plain++
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entities.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg entities.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) all() []entities.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entities.Notification(nil), n.sent...)
}

// keyTranslator echoes the message key.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string { return key }

type posterStub struct {
	url     string
	err     error
	got     string
	removed []string
}

func (p *posterStub) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	p.got = filename
	return p.url, nil
}

func (p *posterStub) Remove(_ context.Context, url string) error {
	p.removed = append(p.removed, url)
	return nil
}

type countingMetrics struct {
	mu        sync.Mutex
	approvals map[string]int
	sweeps    map[string]int
	queried   []int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{approvals: map[string]int{}, sweeps: map[string]int{}}
}

func (m *countingMetrics) AvailabilityQueried(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queried = append(m.queried, n)
}

func (m *countingMetrics) ApprovalFinished(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals[outcome]++
}

func (m *countingMetrics) SweepItem(kind, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweeps[kind+":"+result]++
}

func (m *countingMetrics) SweepFinished(time.Duration) {}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }

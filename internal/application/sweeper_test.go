package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
)

func topic(id uint, deadline *time.Time, active bool) entities.Topic {
	return entities.Topic{ID: id, ClubID: 1, PostedBy: 20 + id, Title: "Topic", Deadline: deadline, Active: active, Status: domain.TopicOpen}
}

func ideaEvent(id uint, deadline *time.Time, status domain.EventStatus, approval domain.ApprovalStatus) entities.EventProposal {
	return entities.EventProposal{
		ID:                     id,
		ClubID:                 1,
		OrganizerID:            30 + id,
		Title:                  "Idea",
		IdeaSubmissionDeadline: deadline,
		Status:                 status,
		ApprovalStatus:         approval,
		Active:                 true,
	}
}

type sweepFixture struct {
	svc      *SweepService
	events   *memEvents
	topics   *memTopics
	notifier *recordingNotifier
	metrics  *countingMetrics
}

func newSweepFixture(events *memEvents, topics *memTopics) *sweepFixture {
	f := &sweepFixture{events: events, topics: topics, notifier: &recordingNotifier{}, metrics: newCountingMetrics()}
	f.svc = NewSweepService(SweepDeps{
		Events:      events,
		Topics:      topics,
		Notifier:    f.notifier,
		Translator:  keyTranslator{},
		Clock:       fixedClock{now: *hm(8, 0)},
		Metrics:     f.metrics,
		ItemTimeout: time.Second,
	})
	return f
}

func TestSweep_GraceWindow(t *testing.T) {
	topics := newMemTopics(
		topic(1, hm(6, 59), true),
		topic(2, hm(7, 0), true),
		topic(3, hm(7, 1), true),
		topic(4, hm(1, 0), false),
		topic(5, nil, true),
	)
	f := newSweepFixture(newMemEvents(), topics)

	report, err := f.svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.TopicsClosed)
	assert.Equal(t, domain.TopicClosed, topics.rows[1].Status)
	assert.False(t, topics.rows[2].Active)
	assert.True(t, topics.rows[3].Active, "view-only topic must survive")
	assert.True(t, topics.rows[5].Active)

	sent := f.notifier.all()
	require.Len(t, sent, 2)
	assert.Equal(t, uint(21), sent[0].UserID)
	assert.Equal(t, domain.EntityProblem, sent[0].RelatedEntityType)
	assert.Equal(t, "notification.topic_expired.title", sent[0].Title)
}

func TestSweep_Events(t *testing.T) {
	events := newMemEvents(
		ideaEvent(1, hm(6, 0), domain.StatusDraft, domain.ApprovalNone),
		ideaEvent(2, hm(6, 0), domain.StatusPublished, domain.ApprovalApproved),
		ideaEvent(3, hm(6, 0), domain.StatusSubmitted, domain.ApprovalApproved),
		ideaEvent(4, hm(6, 0), domain.StatusCompleted, domain.ApprovalNone),
		ideaEvent(5, hm(7, 30), domain.StatusSubmitted, domain.ApprovalPending),
		ideaEvent(6, hm(5, 0), domain.StatusSubmitted, domain.ApprovalRejected),
	)
	f := newSweepFixture(events, newMemTopics())

	report, err := f.svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.EventsClosed)
	assert.Equal(t, 3, report.EventsSkipped)
	assert.Equal(t, 0, report.Failures)

	assert.Equal(t, domain.StatusCompleted, events.rows[1].Status)
	assert.False(t, events.rows[1].Active)
	assert.False(t, events.rows[6].Active)
	assert.Equal(t, domain.StatusPublished, events.rows[2].Status)
	assert.True(t, events.rows[2].Active)
	assert.True(t, events.rows[5].Active)

	sent := f.notifier.all()
	require.Len(t, sent, 2)
	assert.Equal(t, uint(31), sent[0].UserID)
	assert.Equal(t, "notification.event_expired.message", sent[0].Message)
	assert.Equal(t, 3, f.metrics.sweeps["event:skipped"])
}

func TestSweep_Idempotent(t *testing.T) {
	events := newMemEvents(ideaEvent(1, hm(6, 0), domain.StatusDraft, domain.ApprovalNone))
	topics := newMemTopics(topic(1, hm(6, 0), true))
	f := newSweepFixture(events, topics)
	ctx := context.Background()

	first, err := f.svc.Sweep(ctx)
	require.NoError(t, err)
	second, err := f.svc.Sweep(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, first.TopicsClosed)
	assert.Equal(t, 1, first.EventsClosed)
	assert.Zero(t, second.TopicsClosed)
	assert.Zero(t, second.EventsClosed)
	assert.Len(t, f.notifier.all(), 2)
}

func TestSweep_ConcurrentPassesNotifyOnce(t *testing.T) {
	events := newMemEvents(ideaEvent(1, hm(6, 0), domain.StatusDraft, domain.ApprovalNone))
	f := newSweepFixture(events, newMemTopics(topic(1, hm(6, 0), true)))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = f.svc.Sweep(context.Background())
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	assert.Len(t, f.notifier.all(), 2)
}

func TestSweep_ItemFailureIsIsolated(t *testing.T) {
	events := newMemEvents(
		ideaEvent(1, hm(6, 0), domain.StatusDraft, domain.ApprovalNone),
		ideaEvent(2, hm(6, 0), domain.StatusDraft, domain.ApprovalNone),
	)
	events.failFor[1] = errBoom
	f := newSweepFixture(events, newMemTopics())

	report, err := f.svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, 1, report.EventsClosed)
	assert.True(t, events.rows[1].Active)
	assert.False(t, events.rows[2].Active)
	assert.Equal(t, 1, f.metrics.sweeps["event:failed"])
}

func TestSweep_NotificationFailureStillCloses(t *testing.T) {
	events := newMemEvents(ideaEvent(1, hm(6, 0), domain.StatusDraft, domain.ApprovalNone))
	f := newSweepFixture(events, newMemTopics())
	f.notifier.err = errBoom

	report, err := f.svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.EventsClosed)
	assert.False(t, events.rows[1].Active)
}

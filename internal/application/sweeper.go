package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
	"clubvenue/internal/ports/output"
)

var _ input.SweepUseCase = (*SweepService)(nil)

const defaultItemTimeout = 10 * time.Second

// SweepDeps groups the collaborators of SweepService.
type SweepDeps struct {
	Events      output.EventRepository
	Topics      output.TopicRepository
	Notifier    output.Notifier
	Translator  output.Translator
	Clock       output.Clock
	Metrics     output.Metrics
	Locale      string
	ItemTimeout time.Duration
}

// SweepService closes topics and proposals whose deadline grace has elapsed.
// Every write is conditional on the item still being active, so overlapping or
// repeated passes close and notify each item at most once.
type SweepService struct {
	SweepDeps
}

func NewSweepService(deps SweepDeps) *SweepService {
	if deps.Metrics == nil {
		deps.Metrics = NopMetrics{}
	}
	if deps.ItemTimeout <= 0 {
		deps.ItemTimeout = defaultItemTimeout
	}
	if deps.Locale == "" {
		deps.Locale = "en"
	}
	return &SweepService{SweepDeps: deps}
}

func (s *SweepService) Sweep(ctx context.Context) (input.SweepReport, error) {
	started := time.Now()
	now := s.Clock.Now()
	cutoff := now.Add(-entities.DeadlineGrace)

	var report input.SweepReport
	var errs []error

	if err := s.sweepTopics(ctx, now, cutoff, &report); err != nil {
		errs = append(errs, err)
	}
	if err := s.sweepEvents(ctx, now, cutoff, &report); err != nil {
		errs = append(errs, err)
	}

	s.Metrics.SweepFinished(time.Since(started))
	if report.TopicsClosed > 0 || report.EventsClosed > 0 || report.Failures > 0 {
		log.Printf("🧹 Sweep done: %d topics closed, %d events closed, %d skipped, %d failures",
			report.TopicsClosed, report.EventsClosed, report.EventsSkipped, report.Failures)
	}
	return report, errors.Join(errs...)
}

func (s *SweepService) sweepTopics(ctx context.Context, now, cutoff time.Time, report *input.SweepReport) error {
	topics, err := s.Topics.FindDeadlineExpired(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Sweep: failed to list expired topics: %v", err)
		return fmt.Errorf("list expired topics: %w", err)
	}
	for _, topic := range topics {
		if !topic.Active || !entities.DeadlineElapsed(topic.Deadline, now) {
			continue
		}
		closed, err := s.closeTopic(ctx, topic)
		switch {
		case err != nil:
			report.Failures++
			s.Metrics.SweepItem("topic", "failed")
			log.Printf("❌ Sweep: topic %d: %v", topic.ID, err)
		case closed:
			report.TopicsClosed++
			s.Metrics.SweepItem("topic", "closed")
		default:
			s.Metrics.SweepItem("topic", "unchanged")
		}
	}
	return nil
}

func (s *SweepService) closeTopic(ctx context.Context, topic entities.Topic) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.ItemTimeout)
	defer cancel()

	changed, err := s.Topics.CloseExpired(ctx, topic.ID)
	if err != nil || !changed {
		return false, err
	}
	s.notify(ctx, entities.Notification{
		UserID:            topic.PostedBy,
		Title:             s.Translator.T(s.Locale, "notification.topic_expired.title", nil),
		Message:           s.Translator.T(s.Locale, "notification.topic_expired.message", map[string]any{"Title": topic.Title}),
		Kind:              domain.NotificationSystem,
		RelatedEntityID:   topic.ID,
		RelatedEntityType: domain.EntityProblem,
	})
	return true, nil
}

func (s *SweepService) sweepEvents(ctx context.Context, now, cutoff time.Time, report *input.SweepReport) error {
	events, err := s.Events.FindDeadlineExpired(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Sweep: failed to list expired proposals: %v", err)
		return fmt.Errorf("list expired proposals: %w", err)
	}
	for _, event := range events {
		if !event.Active || !entities.DeadlineElapsed(event.IdeaSubmissionDeadline, now) {
			continue
		}
		if event.SweepExempt() {
			report.EventsSkipped++
			s.Metrics.SweepItem("event", "skipped")
			continue
		}
		closed, err := s.closeEvent(ctx, event)
		switch {
		case err != nil:
			report.Failures++
			s.Metrics.SweepItem("event", "failed")
			log.Printf("❌ Sweep: proposal %d: %v", event.ID, err)
		case closed:
			report.EventsClosed++
			s.Metrics.SweepItem("event", "closed")
		default:
			s.Metrics.SweepItem("event", "unchanged")
		}
	}
	return nil
}

func (s *SweepService) closeEvent(ctx context.Context, event entities.EventProposal) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.ItemTimeout)
	defer cancel()

	changed, err := s.Events.CloseExpired(ctx, event.ID)
	if err != nil || !changed {
		return false, err
	}
	s.notify(ctx, entities.Notification{
		UserID:            event.OrganizerID,
		Title:             s.Translator.T(s.Locale, "notification.event_expired.title", nil),
		Message:           s.Translator.T(s.Locale, "notification.event_expired.message", map[string]any{"Title": event.Title}),
		Kind:              domain.NotificationSystem,
		RelatedEntityID:   event.ID,
		RelatedEntityType: domain.EntityEvent,
	})
	return true, nil
}

func (s *SweepService) notify(ctx context.Context, n entities.Notification) {
	if s.Notifier == nil || n.UserID == 0 {
		return
	}
	if err := s.Notifier.Notify(ctx, n); err != nil {
		log.Printf("⚠️ Sweep: notification to user %d failed: %v", n.UserID, err)
	}
}

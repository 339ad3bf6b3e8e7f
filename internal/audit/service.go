package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendwise/expense-tracker/internal/core/events"
)

// Service persists audit records. It sits behind the event bus so that
// report generation never waits on, or fails because of, audit writes.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) HandleReportGenerated(ctx context.Context, event events.Event) error {
	reportEvent, ok := event.(*events.ReportGeneratedEvent)
	if !ok {
		s.logger.Error("invalid event type for report generated handler", "event_type", event.EventType())
		return fmt.Errorf("expected ReportGeneratedEvent, got %T", event)
	}

	l := &Log{
		Actor:      reportEvent.Actor,
		Action:     ActionGenerateReport,
		TargetUser: reportEvent.TargetUser,
		Detail:     reportEvent.Detail,
		CreatedAt:  reportEvent.OccurredAt(),
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to persist audit log",
			"error", err,
			"actor", reportEvent.Actor,
			"event_id", reportEvent.EventID())
		return err
	}

	return nil
}

func (s *Service) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeReportGenerated, s.HandleReportGenerated)

	s.logger.Info("audit event handlers registered",
		"handlers", []string{events.EventTypeReportGenerated})
}

func (s *Service) GetRecent(limit int) ([]*Log, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	logs, err := s.repo.GetRecent(limit)
	if err != nil {
		s.logger.Error("failed to list audit logs", "error", err)
		return nil, err
	}
	return logs, nil
}

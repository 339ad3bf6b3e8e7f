package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeReportGenerated = "report.generated"

// ReportGeneratedEvent is published every time a report is produced. The
// audit recorder subscribes to it; report generation never waits on it.
type ReportGeneratedEvent struct {
	BaseEvent
	Actor      string
	TargetUser string
	ReportKind string
	Detail     string
}

func NewReportGeneratedEvent(actor, targetUser, reportKind, detail string) *ReportGeneratedEvent {
	return &ReportGeneratedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeReportGenerated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"actor":       actor,
				"target_user": targetUser,
				"report_kind": reportKind,
				"detail":      detail,
			},
		},
		Actor:      actor,
		TargetUser: targetUser,
		ReportKind: reportKind,
		Detail:     detail,
	}
}

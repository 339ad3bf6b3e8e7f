package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spendwise/expense-tracker/internal/audit"
	"github.com/spendwise/expense-tracker/internal/core/events"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Suite")
}

// Mock repository for testing
type mockAuditRepository struct {
	logs        []*audit.Log
	createError error
	recentError error
}

func (m *mockAuditRepository) Create(l *audit.Log) error {
	if m.createError != nil {
		return m.createError
	}
	l.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockAuditRepository) GetRecent(limit int) ([]*audit.Log, error) {
	if m.recentError != nil {
		return nil, m.recentError
	}
	if limit > len(m.logs) {
		limit = len(m.logs)
	}
	return m.logs[:limit], nil
}

var _ = Describe("AuditService", func() {
	var (
		service  *audit.Service
		mockRepo *mockAuditRepository
		bus      *events.EventBus
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = &mockAuditRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = audit.NewService(mockRepo, logger)
		bus = events.NewEventBus(logger)
		service.RegisterEventHandlers(bus)
	})

	Describe("HandleReportGenerated", func() {
		It("should persist a log entry from the event", func() {
			event := events.NewReportGeneratedEvent("root", "alice", "quick summary", "quick summary for alice (2024-01-01 to 2024-01-31)")

			err := bus.PublishSync(ctx, event)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.logs).To(HaveLen(1))
			Expect(mockRepo.logs[0].Actor).To(Equal("root"))
			Expect(mockRepo.logs[0].Action).To(Equal(audit.ActionGenerateReport))
			Expect(mockRepo.logs[0].TargetUser).To(Equal("alice"))
			Expect(mockRepo.logs[0].Detail).To(ContainSubstring("quick summary"))
			Expect(mockRepo.logs[0].CreatedAt).To(BeTemporally("==", event.OccurredAt()))
		})

		It("should reject events of the wrong concrete type", func() {
			wrong := events.BaseEvent{Type: events.EventTypeReportGenerated}

			err := service.HandleReportGenerated(ctx, wrong)

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.logs).To(BeEmpty())
		})

		It("should surface repository failures to the bus", func() {
			mockRepo.createError = errors.New("disk full")
			event := events.NewReportGeneratedEvent("root", "alice", "quick summary", "detail")

			err := bus.PublishSync(ctx, event)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetRecent", func() {
		BeforeEach(func() {
			for i := 0; i < 5; i++ {
				event := events.NewReportGeneratedEvent("root", "alice", "quick summary", "detail")
				Expect(bus.PublishSync(ctx, event)).To(Succeed())
			}
		})

		It("should honor the requested limit", func() {
			logs, err := service.GetRecent(3)

			Expect(err).ToNot(HaveOccurred())
			Expect(logs).To(HaveLen(3))
		})

		It("should fall back to the default limit for invalid values", func() {
			logs, err := service.GetRecent(-1)

			Expect(err).ToNot(HaveOccurred())
			Expect(logs).To(HaveLen(5))
		})

		It("should propagate repository failures", func() {
			mockRepo.recentError = errors.New("connection reset")

			_, err := service.GetRecent(10)

			Expect(err).To(HaveOccurred())
		})
	})
})

package report_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spendwise/expense-tracker/internal/report"
	"github.com/spendwise/expense-tracker/internal/user"
)

// Mock user directory for testing
type mockUserDirectory struct {
	users       map[string]*user.User
	lookupError error
}

func newMockUserDirectory() *mockUserDirectory {
	return &mockUserDirectory{users: make(map[string]*user.User)}
}

func (m *mockUserDirectory) addUser(username, role string) {
	m.users[username] = &user.User{
		Username: username,
		Role:     role,
		IsActive: true,
	}
}

func (m *mockUserDirectory) GetByUsername(username string) (*user.User, error) {
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	u, exists := m.users[username]
	if !exists {
		return nil, user.ErrNotFound
	}
	return u, nil
}

var _ = Describe("AccessValidator", func() {
	var (
		directory *mockUserDirectory
		validator *report.AccessValidator
	)

	BeforeEach(func() {
		directory = newMockUserDirectory()
		directory.addUser("alice", user.RoleUser)
		directory.addUser("bob", user.RoleUser)
		directory.addUser("root", user.RoleAdmin)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		validator = report.NewAccessValidator(directory, logger)
	})

	Context("when the target is the requester or empty", func() {
		It("should grant self access for an empty target", func() {
			decision, err := validator.ResolveTarget("alice", "")

			Expect(err).ToNot(HaveOccurred())
			Expect(decision.Policy).To(Equal(report.PolicySelf))
			Expect(decision.TargetUsername).To(Equal("alice"))
		})

		It("should grant self access when target equals requester", func() {
			decision, err := validator.ResolveTarget("alice", "alice")

			Expect(err).ToNot(HaveOccurred())
			Expect(decision.Policy).To(Equal(report.PolicySelf))
		})
	})

	Context("when a regular user targets someone else", func() {
		It("should deny the request", func() {
			_, err := validator.ResolveTarget("alice", "bob")

			Expect(err).To(MatchError(report.ErrOwnReportsOnly))
		})

		It("should deny without revealing whether the target exists", func() {
			_, err := validator.ResolveTarget("alice", "nobody")

			Expect(err).To(MatchError(report.ErrOwnReportsOnly))
		})
	})

	Context("when an admin targets another user", func() {
		It("should grant the override and name the target", func() {
			decision, err := validator.ResolveTarget("root", "bob")

			Expect(err).ToNot(HaveOccurred())
			Expect(decision.Policy).To(Equal(report.PolicyAdminOverride))
			Expect(decision.TargetUsername).To(Equal("bob"))
		})

		It("should report a missing target as not found", func() {
			_, err := validator.ResolveTarget("root", "nobody")

			Expect(err).To(MatchError(report.ErrTargetUserNotFound))
		})
	})

	Context("when the requester is unknown", func() {
		It("should reject the request as unauthorized", func() {
			_, err := validator.ResolveTarget("ghost", "alice")

			Expect(err).To(MatchError(report.ErrInvalidRequestingUser))
		})
	})

	Context("when the directory fails", func() {
		It("should propagate the lookup error unchanged", func() {
			lookupErr := errors.New("connection refused")
			directory.lookupError = lookupErr

			_, err := validator.ResolveTarget("alice", "")

			Expect(err).To(MatchError(lookupErr))
		})
	})
})

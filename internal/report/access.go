package report

import (
	"log/slog"

	"github.com/spendwise/expense-tracker/internal"
	"github.com/spendwise/expense-tracker/internal/user"
)

// AccessPolicy is the decision reached once per request and threaded
// through the composer, instead of re-checking roles ad hoc.
type AccessPolicy string

const (
	PolicySelf          AccessPolicy = "self"
	PolicyAdminOverride AccessPolicy = "admin_override"
)

// AccessDecision names whose data the report may target and under which
// policy the access was granted.
type AccessDecision struct {
	Policy         AccessPolicy
	TargetUsername string
}

// UserDirectory is the identity lookup the validator depends on.
type UserDirectory interface {
	GetByUsername(username string) (*user.User, error)
}

var (
	ErrInvalidRequestingUser = internal.NewUnauthorizedError("invalid requesting user", internal.ErrCodeRequestingUser)
	ErrOwnReportsOnly        = internal.NewForbiddenError("can only access own reports", internal.ErrCodeReportAccess)
	ErrTargetUserNotFound    = internal.NewNotFoundError("target user not found", internal.ErrCodeTargetUserMissing)
)

// AccessValidator resolves which user's data a report may target.
type AccessValidator struct {
	users  UserDirectory
	logger *slog.Logger
}

func NewAccessValidator(users UserDirectory, logger *slog.Logger) *AccessValidator {
	return &AccessValidator{
		users:  users,
		logger: logger,
	}
}

// ResolveTarget applies the self-or-admin policy. An empty target, or a
// target equal to the requester, is a self view and needs no second lookup.
// Admins may target any existing user; everyone else only themselves.
func (v *AccessValidator) ResolveTarget(requestingUsername, targetUsername string) (AccessDecision, error) {
	requester, err := v.users.GetByUsername(requestingUsername)
	if err != nil {
		if err == user.ErrNotFound {
			v.logger.Warn("report access denied: unknown requesting user", "requesting_username", requestingUsername)
			return AccessDecision{}, ErrInvalidRequestingUser
		}
		return AccessDecision{}, err
	}

	if targetUsername == "" || targetUsername == requestingUsername {
		return AccessDecision{Policy: PolicySelf, TargetUsername: requestingUsername}, nil
	}

	if !requester.IsAdmin() {
		v.logger.Warn("report access denied: non-admin cross-user request",
			"requesting_username", requestingUsername,
			"target_username", targetUsername)
		return AccessDecision{}, ErrOwnReportsOnly
	}

	target, err := v.users.GetByUsername(targetUsername)
	if err != nil {
		if err == user.ErrNotFound {
			return AccessDecision{}, ErrTargetUserNotFound
		}
		return AccessDecision{}, err
	}

	return AccessDecision{Policy: PolicyAdminOverride, TargetUsername: target.Username}, nil
}

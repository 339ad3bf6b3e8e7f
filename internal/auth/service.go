package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise/expense-tracker/internal"
	"github.com/spendwise/expense-tracker/internal/user"
)

// Service authenticates credentials and issues token pairs.
type Service struct {
	users          user.Repository
	tokenGenerator TokenGeneratorAPI
	logger         *slog.Logger
}

func NewService(users user.Repository, tokenGen TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		users:          users,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !u.IsActiveUser() {
		s.logger.Warn("login rejected: inactive account", "username", u.Username)
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: bad password", "username", u.Username)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	return s.issueTokens(u.Username)
}

func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	u, err := s.users.GetByUsername(claims.Username)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !u.IsActiveUser() {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(u.Username)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokenGenerator.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) issueTokens(username string) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(username)
	if err != nil {
		s.logger.Error("failed to generate access token", "error", err, "username", username)
		return AuthTokens{}, internal.NewInternalError("failed to generate token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(username)
	if err != nil {
		s.logger.Error("failed to generate refresh token", "error", err, "username", username)
		return AuthTokens{}, internal.NewInternalError("failed to generate token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/logger"
	"venuebook-backend/internal/repository"
	"venuebook-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, string, error) {
	logger.EnterMethod("AuthService.Signup", "email", email, "role", role)

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, "", "", domain.ValidationError("name and email are required")
	}
	if len(password) < 8 {
		return nil, "", "", domain.ValidationError("password must be at least 8 characters")
	}
	switch role {
	case domain.RoleUser, domain.RoleVenueOwner:
	case "":
		role = domain.RoleUser
	default:
		// Admin accounts are provisioned out of band, never via signup.
		return nil, "", "", domain.ValidationError("invalid role %q", role)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", domain.ConflictError("an account with this email already exists")
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("AuthService.Signup", err)
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	logger.ExitMethod("AuthService.Signup", "user_id", user.ID)
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	logger.EnterMethod("AuthService.Login", "email", email)

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, "", "", domain.AuthenticationError("invalid email or password")
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", domain.AuthenticationError("invalid email or password")
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	logger.ExitMethod("AuthService.Login", "user_id", user.ID)
	return user, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token. The user is
// re-read so a role change takes effect on the next rotation.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", domain.AuthenticationError("invalid refresh token")
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", domain.AuthenticationError("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", domain.AuthenticationError("invalid refresh token")
	}
	return s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
}

func (s *authService) RegisterDeviceToken(ctx context.Context, userID int32, deviceToken string) error {
	deviceToken = strings.TrimSpace(deviceToken)
	if deviceToken == "" {
		return domain.ValidationError("device token is required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.DeviceToken = &deviceToken
	return s.userRepo.Update(ctx, user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

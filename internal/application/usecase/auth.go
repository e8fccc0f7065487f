package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/infrastructure/security"
	"github.com/waste3d/coursehub/internal/logger"
)

type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, username, email string) error
}

type TokenStore interface {
	SaveRefresh(ctx context.Context, userID string, refreshToken string, ttl time.Duration) error
	// ConsumeRefresh возвращает владельца и удаляет токен одной операцией
	ConsumeRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
}

type AuthUseCase struct {
	userRepo     UserStore
	tokenCache   TokenStore
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
	log          *logger.Logger
}

func NewAuthUseCase(
	ur UserStore,
	tc TokenStore,
	h *security.PasswordHasher,
	tm *security.TokenManager,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		tokenCache:   tc,
		hasher:       h,
		tokenManager: tm,
		log:          log,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Email:    strings.ToLower(email),
		Password: hash,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// Login возвращает access и refresh токены
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (string, string, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", "", domain.ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return "", "", domain.ErrInvalidCredentials
	}
	return uc.issue(ctx, user.ID.String())
}

// Refresh ротирует refresh токен: старый можно использовать только один раз
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := uc.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", "", domain.ErrInvalidCredentials
	}
	stored, err := uc.tokenCache.ConsumeRefresh(ctx, refreshToken)
	if err != nil || stored != userID {
		return "", "", domain.ErrInvalidCredentials
	}
	return uc.issue(ctx, userID)
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenCache.DeleteRefresh(ctx, refreshToken)
}

// Authenticate проверяет access токен, возвращает ID пользователя
func (uc *AuthUseCase) Authenticate(accessToken string) (string, error) {
	userID, err := uc.tokenManager.ValidateAccessToken(accessToken)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return userID, nil
}

func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.userRepo.GetByID(ctx, uid)
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID, username, email string) (*domain.User, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.userRepo.UpdateProfile(ctx, uid, username, strings.ToLower(email)); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, uid)
}

func (uc *AuthUseCase) issue(ctx context.Context, userID string) (string, string, error) {
	access, refresh, err := uc.tokenManager.Generate(userID)
	if err != nil {
		return "", "", err
	}
	if err := uc.tokenCache.SaveRefresh(ctx, userID, refresh, security.RefreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

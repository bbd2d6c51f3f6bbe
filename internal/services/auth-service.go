package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/service"
	"spa-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponseDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.AuthUserDTO, error)
}

type authService struct {
	userRepo repositories.UserRepositoryInterface
	jwt      service.JWTService
	logger   *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, jwt service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &authService{userRepo: userRepo, jwt: jwt, logger: logger}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, существует ли логин.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrForbidden
	}
	if !utils.CheckPasswordHash(payload.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildLoginResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponseDTO, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if !user.Active {
		return nil, apperrors.ErrForbidden
	}

	return s.buildLoginResponse(user)
}

func (s *authService) Me(ctx context.Context, userID uint64) (*dto.AuthUserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := toAuthUserDTO(user)
	return &out, nil
}

func (s *authService) buildLoginResponse(user *entities.User) (*dto.LoginResponseDTO, error) {
	access, refresh, err := s.jwt.GenerateTokens(user.ID, user.Role)
	if err != nil {
		s.logger.Error("не удалось выпустить токены", zap.Uint64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponseDTO{
		User:         toAuthUserDTO(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func toAuthUserDTO(user *entities.User) dto.AuthUserDTO {
	return dto.AuthUserDTO{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}
}

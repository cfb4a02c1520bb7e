package service

import (
	"errors"
	"fmt"

	"netracare-go/internal/auth"
	"netracare-go/internal/model"
	"netracare-go/internal/repository"

	"github.com/sirupsen/logrus"
)

// Ошибки аутентификации
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService регистрация, вход и выпуск токенов доступа
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   *logrus.Logger
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Signup регистрирует нового пользователя и выпускает токен
func (s *AuthService) Signup(req *SignupRequest) (*AuthResponse, error) {
	// Проверяем уникальность email
	_, err := s.userRepo.GetByEmail(req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Age:          req.Age,
		Sex:          req.Sex,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("Пользователь зарегистрирован")

	return s.issueToken(user)
}

// Login проверяет учетные данные и выпускает токен
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GetUser возвращает профиль пользователя
func (s *AuthService) GetUser(userID uint) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// issueToken выпускает токен доступа для пользователя
func (s *AuthService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        userToResponse(user),
	}, nil
}

package handler

import (
	"errors"
	"net/http"

	"netracare-go/internal/repository"
	"netracare-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler обрабатывает HTTP запросы регистрации и входа
type AuthHandler struct {
	authService *service.AuthService
	logger      *logrus.Logger
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(authService *service.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(api *gin.RouterGroup, authenticated *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
	}

	authenticated.GET("/auth/me", h.Me)
}

// Signup обрабатывает запрос на регистрацию пользователя
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка валидации запроса регистрации: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса: " + err.Error()})
		return
	}

	response, err := h.authService.Signup(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email уже зарегистрирован"})
			return
		}
		h.logger.Errorf("Ошибка регистрации пользователя: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось зарегистрировать пользователя"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login обрабатывает запрос на вход
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса: " + err.Error()})
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный email или пароль"})
			return
		}
		h.logger.Errorf("Ошибка входа: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось выполнить вход"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me возвращает профиль текущего пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	userID := currentUserID(c)

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		h.logger.Errorf("Ошибка получения профиля: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить профиль"})
		return
	}

	c.JSON(http.StatusOK, user)
}

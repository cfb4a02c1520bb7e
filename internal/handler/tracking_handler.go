package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"netracare-go/internal/client"
	"netracare-go/internal/database"
	"netracare-go/internal/repository"
	"netracare-go/internal/service"
	"netracare-go/internal/tracking"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// максимальный размер кадра в multipart запросе
const maxFrameSize = 8 << 20

// TrackingHandler обрабатывает HTTP запросы трекинга глаз
type TrackingHandler struct {
	trackingService *service.TrackingService
	healthClient    *client.FaceMeshAPIClient
	logger          *logrus.Logger
}

// NewTrackingHandler создает новый экземпляр TrackingHandler
func NewTrackingHandler(trackingService *service.TrackingService, healthClient *client.FaceMeshAPIClient, logger *logrus.Logger) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
		healthClient:    healthClient,
		logger:          logger,
	}
}

// RegisterRoutes регистрирует маршруты трекинга
func (h *TrackingHandler) RegisterRoutes(api *gin.RouterGroup, authenticated *gin.RouterGroup) {
	api.GET("/health", h.CheckHealth)

	sessions := authenticated.Group("/tracking/sessions")
	{
		sessions.POST("", h.StartSession)
		sessions.GET("", h.ListSessions)
		sessions.POST("/:id/frames", h.ProcessFrame)
		sessions.GET("/:id/statistics", h.GetStatistics)
		sessions.POST("/:id/reset", h.ResetSession)
		sessions.POST("/:id/finalize", h.FinalizeSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
	}

	authenticated.POST("/fatigue/analyze", h.AnalyzeFatigue)
}

// StartSession создает новую сессию трекинга
func (h *TrackingHandler) StartSession(c *gin.Context) {
	var req service.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса: " + err.Error()})
		return
	}

	response := h.trackingService.StartSession(currentUserID(c), &req)
	c.JSON(http.StatusCreated, response)
}

// ProcessFrame обрабатывает один кадр сессии трекинга
func (h *TrackingHandler) ProcessFrame(c *gin.Context) {
	sessionID := c.Param("id")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		h.logger.Errorf("Ошибка получения файла изображения: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл изображения обязателен"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxFrameSize))
	if err != nil {
		h.logger.Errorf("Ошибка чтения файла изображения: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось прочитать файл изображения"})
		return
	}

	response, err := h.trackingService.ProcessFrame(sessionID, currentUserID(c), header.Filename, imageData)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия не найдена"})
			return
		}
		h.logger.Errorf("Ошибка обработки кадра: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обработать кадр"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetStatistics возвращает текущую статистику активной сессии
func (h *TrackingHandler) GetStatistics(c *gin.Context) {
	sessionID := c.Param("id")

	stats, err := h.trackingService.Statistics(sessionID, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия не найдена"})
			return
		}
		if errors.Is(err, tracking.ErrEmptySession) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Нет данных трекинга в сессии"})
			return
		}
		h.logger.Errorf("Ошибка вычисления статистики: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось вычислить статистику"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ResetSession сбрасывает состояние активной сессии
func (h *TrackingHandler) ResetSession(c *gin.Context) {
	sessionID := c.Param("id")

	if err := h.trackingService.ResetSession(sessionID, currentUserID(c)); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия не найдена"})
			return
		}
		h.logger.Errorf("Ошибка сброса сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сбросить сессию"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Сессия сброшена"})
}

// FinalizeSession завершает сессию и сохраняет статистику
func (h *TrackingHandler) FinalizeSession(c *gin.Context) {
	sessionID := c.Param("id")

	response, err := h.trackingService.FinalizeSession(sessionID, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия не найдена"})
			return
		}
		if errors.Is(err, tracking.ErrEmptySession) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Нет данных трекинга в сессии"})
			return
		}
		h.logger.Errorf("Ошибка завершения сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось завершить сессию"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListSessions возвращает сохраненные сессии пользователя
func (h *TrackingHandler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	response, err := h.trackingService.ListSessions(currentUserID(c), limit, offset)
	if err != nil {
		h.logger.Errorf("Ошибка получения списка сессий: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить список сессий"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSession возвращает сохраненную сессию по ID
func (h *TrackingHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	response, err := h.trackingService.GetSession(sessionID, currentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия не найдена"})
			return
		}
		h.logger.Errorf("Ошибка получения сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить сессию"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteSession удаляет сохраненную сессию
func (h *TrackingHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")

	if err := h.trackingService.DeleteSession(sessionID, currentUserID(c)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Сессия не найдена"})
			return
		}
		h.logger.Errorf("Ошибка удаления сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить сессию"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Сессия удалена"})
}

// AnalyzeFatigue классифицирует усталость по одному кадру
func (h *TrackingHandler) AnalyzeFatigue(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл изображения обязателен"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxFrameSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось прочитать файл изображения"})
		return
	}

	response, err := h.trackingService.AnalyzeFatigue(header.Filename, imageData)
	if err != nil {
		h.logger.Errorf("Ошибка классификации усталости: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Сервис классификации усталости недоступен"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// CheckHealth проверяет состояние сервера и его зависимостей
func (h *TrackingHandler) CheckHealth(c *gin.Context) {
	status := gin.H{
		"status":   "healthy",
		"database": "ok",
		"facemesh": "ok",
	}
	httpStatus := http.StatusOK

	if err := database.HealthCheck(); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		httpStatus = http.StatusServiceUnavailable
	}

	if _, err := h.healthClient.CheckHealth(); err != nil {
		status["status"] = "degraded"
		status["facemesh"] = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, status)
}

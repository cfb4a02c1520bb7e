package handler

import (
	"net/http"
	"strconv"

	"netracare-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// VisionHandler обрабатывает HTTP запросы тестов зрения
type VisionHandler struct {
	visionService *service.VisionService
	logger        *logrus.Logger
}

// NewVisionHandler создает новый экземпляр VisionHandler
func NewVisionHandler(visionService *service.VisionService, logger *logrus.Logger) *VisionHandler {
	return &VisionHandler{
		visionService: visionService,
		logger:        logger,
	}
}

// RegisterRoutes регистрирует маршруты тестов зрения
func (h *VisionHandler) RegisterRoutes(authenticated *gin.RouterGroup) {
	colour := authenticated.Group("/colour-vision")
	{
		colour.GET("/plates", h.ListPlates)
		colour.POST("/submit", h.SubmitColourVision)
		colour.GET("/results", h.ListColourVisionResults)
	}

	acuity := authenticated.Group("/visual-acuity")
	{
		acuity.POST("/submit", h.SubmitVisualAcuity)
		acuity.GET("/results", h.ListVisualAcuityResults)
	}
}

// ListPlates возвращает метаданные таблиц Ишихары
func (h *VisionHandler) ListPlates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plates": h.visionService.Plates()})
}

// SubmitColourVision принимает ответы теста цветового зрения
func (h *VisionHandler) SubmitColourVision(c *gin.Context) {
	var req service.ColourVisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса: " + err.Error()})
		return
	}

	response, err := h.visionService.SubmitColourVision(currentUserID(c), &req)
	if err != nil {
		h.logger.Errorf("Ошибка проверки теста цветового зрения: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListColourVisionResults возвращает историю тестов цветового зрения
func (h *VisionHandler) ListColourVisionResults(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	results, err := h.visionService.ListColourVision(currentUserID(c), limit, offset)
	if err != nil {
		h.logger.Errorf("Ошибка получения результатов теста цветового зрения: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить результаты"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SubmitVisualAcuity принимает результаты теста остроты зрения
func (h *VisionHandler) SubmitVisualAcuity(c *gin.Context) {
	var req service.VisualAcuityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса: " + err.Error()})
		return
	}

	response, err := h.visionService.SubmitVisualAcuity(currentUserID(c), &req)
	if err != nil {
		h.logger.Errorf("Ошибка вычисления остроты зрения: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListVisualAcuityResults возвращает историю тестов остроты зрения
func (h *VisionHandler) ListVisualAcuityResults(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	results, err := h.visionService.ListVisualAcuity(currentUserID(c), limit, offset)
	if err != nil {
		h.logger.Errorf("Ошибка получения результатов теста остроты зрения: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить результаты"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

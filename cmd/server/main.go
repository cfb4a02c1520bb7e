package main

import (
	"fmt"
	"net/http"
	"time"

	"netracare-go/internal/auth"
	"netracare-go/internal/client"
	"netracare-go/internal/config"
	"netracare-go/internal/database"
	"netracare-go/internal/handler"
	"netracare-go/internal/repository"
	"netracare-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Инициализируем логгер
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.Info("Запуск NetraCare API Server")

	// Загружаем конфигурацию из переменных окружения
	cfg := config.LoadConfig()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Инициализируем базу данных
	logger.Infof("Подключение к базе данных: %s", cfg.DSNForLog())
	if err := database.Connect(cfg); err != nil {
		logger.Fatalf("Ошибка подключения к базе данных: %v", err)
	}

	// Выполняем миграции
	logger.Info("Выполнение миграций базы данных...")
	if err := database.Migrate(); err != nil {
		logger.Fatalf("Ошибка выполнения миграций: %v", err)
	}

	// Проверяем здоровье базы данных
	if err := database.HealthCheck(); err != nil {
		logger.Fatalf("База данных недоступна: %v", err)
	}

	logger.Info("База данных успешно подключена и готова к работе")

	// Инициализируем репозитории
	userRepo := repository.NewUserRepository(database.DB)
	sessionRepo := repository.NewSessionRepository(database.DB)
	resultRepo := repository.NewResultRepository(database.DB)

	// Клиент Python face mesh сервиса
	faceMeshClient := client.NewFaceMeshAPIClient(
		cfg.FaceMeshAPI.BaseURL,
		time.Duration(cfg.FaceMeshAPI.Timeout)*time.Second,
		logger,
	)

	// Инициализируем сервисы
	tokenManager := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTLMinutes)
	authService := service.NewAuthService(userRepo, tokenManager, logger)
	trackingService := service.NewTrackingService(sessionRepo, faceMeshClient, cfg, logger)
	visionService := service.NewVisionService(resultRepo, logger)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, logger)
	trackingHandler := handler.NewTrackingHandler(trackingService, faceMeshClient, logger)
	visionHandler := handler.NewVisionHandler(visionService, logger)

	// Настраиваем Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Добавляем middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(handler.CORSMiddleware())

	// Регистрируем маршруты
	api := router.Group("/api/v1")
	authenticated := api.Group("")
	authenticated.Use(handler.AuthMiddleware(tokenManager))

	authHandler.RegisterRoutes(api, authenticated)
	trackingHandler.RegisterRoutes(api, authenticated)
	visionHandler.RegisterRoutes(authenticated)

	// Добавляем базовый маршрут для проверки
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "NetraCare API Server",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// Запускаем сервер
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Сервер запущен на %s", serverAddr)
	logger.Infof("API доступно по адресу: http://localhost:%d/api/v1", cfg.Server.Port)

	if err := router.Run(serverAddr); err != nil {
		logger.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

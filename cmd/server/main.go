package main

import (
	"fmt"
	"net/http"

	"edge-gdt-validator/internal/client"
	"edge-gdt-validator/internal/config"
	"edge-gdt-validator/internal/database"
	"edge-gdt-validator/internal/handler"
	"edge-gdt-validator/internal/repository"
	"edge-gdt-validator/internal/service"
	"edge-gdt-validator/internal/spec"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	// Инициализируем логгер
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Запуск Edge GD&T Validation Server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

// run поднимает базу данных и HTTP сервер; соединение с базой закрывается при любом выходе
func run(cfg *config.Config, logger *logrus.Logger) error {
	// Инициализируем базу данных
	logger.Infof("Подключение к базе данных (%s)...", cfg.Database.Driver)
	if err := database.Connect(cfg); err != nil {
		return fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Errorf("Ошибка закрытия базы данных: %v", err)
		}
	}()

	logger.Info("Выполнение миграций базы данных...")
	if err := database.Migrate(); err != nil {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	if err := database.HealthCheck(); err != nil {
		return fmt.Errorf("база данных недоступна: %w", err)
	}

	// Каталог спецификаций: встроенные шаблоны и файл, если задан
	catalog := spec.DefaultCatalog()
	if cfg.Validation.CatalogPath != "" {
		n, err := catalog.LoadCatalog(cfg.Validation.CatalogPath)
		if err != nil {
			return fmt.Errorf("ошибка загрузки каталога спецификаций %s: %w", cfg.Validation.CatalogPath, err)
		}
		logger.Infof("Загружено %d спецификаций из %s", n, cfg.Validation.CatalogPath)
	}

	// Инициализируем сервисы
	var gauge service.MeasurementSource
	if cfg.GaugeAPI.BaseURL != "" {
		gauge = client.NewGaugeClient(cfg.GaugeAPI.BaseURL, cfg.GaugeTimeout(), logger)
	}
	validationRepo := repository.NewValidationRepository(database.DB)
	validationService := service.NewValidationService(catalog, validationRepo, gauge, cfg.Validation.Parallelism, logger)
	validationHandler := handler.NewValidationHandler(validationService, logger)

	// Настраиваем Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	validationHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Edge GD&T Validation Server",
			"version": service.Version,
			"status":  "running",
		})
	})

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("API доступно по адресу: http://%s/api/v1", serverAddr)

	if err := router.Run(serverAddr); err != nil {
		return fmt.Errorf("ошибка запуска сервера: %w", err)
	}
	return nil
}

// corsMiddleware добавляет заголовки CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

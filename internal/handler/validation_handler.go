package handler

import (
	"errors"
	"net/http"
	"strconv"

	"edge-gdt-validator/internal/repository"
	"edge-gdt-validator/internal/service"
	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ValidationHandler обрабатывает HTTP запросы проверки кромок
type ValidationHandler struct {
	validationService *service.ValidationService
	logger            *logrus.Logger
}

// NewValidationHandler создает новый экземпляр ValidationHandler
func NewValidationHandler(validationService *service.ValidationService, logger *logrus.Logger) *ValidationHandler {
	return &ValidationHandler{
		validationService: validationService,
		logger:            logger,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *ValidationHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/validations", h.Validate)
		api.POST("/validations/simulate", h.Simulate)
		api.POST("/validations/gauge", h.ValidateFromGauge)
		api.GET("/validations", h.ListReports)
		api.GET("/validations/:id", h.GetReport)
		api.GET("/validations/:id/summary", h.GetSummary)
		api.DELETE("/validations/:id", h.DeleteReport)
		api.GET("/specifications", h.ListSpecifications)
		api.GET("/specifications/:id", h.GetSpecification)
		api.GET("/health", h.CheckHealth)
	}
}

// Validate проверяет переданные измерения
// @Summary Проверка кромок по измерениям
// @Description Проверяет фаски, перпендикулярность и отливы по спецификации и сохраняет отчет
// @Tags validations
// @Accept json
// @Produce json
// @Param request body models.ValidateRequest true "Спецификация и измерения"
// @Success 201 {object} models.EdgeValidationReport
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /validations [post]
func (h *ValidationHandler) Validate(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Неверный запрос на проверку: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.validationService.Validate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// Simulate проверяет симулированные измерения
// @Summary Проверка по симулированным измерениям
// @Tags validations
// @Accept json
// @Produce json
// @Param request body models.SimulateRequest true "Спецификация, зерно и уровень шума"
// @Success 201 {object} models.EdgeValidationReport
// @Failure 400 {object} gin.H
// @Router /validations/simulate [post]
func (h *ValidationHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NoiseFactor < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "noise_factor must not be negative"})
		return
	}

	report, err := h.validationService.Simulate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ValidateFromGauge проверяет изделие по измерениям стенда
func (h *ValidationHandler) ValidateFromGauge(c *gin.Context) {
	var req models.GaugeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.validationService.ValidateFromGauge(c.Request.Context(), req.SpecificationID, req.PartID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ListReports возвращает список отчетов с пагинацией
func (h *ValidationHandler) ListReports(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > 100 {
		size = 10
	}

	reports, total, err := h.validationService.ListReports(c.Request.Context(), c.Query("specification_id"), page, size)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ReportListResponse{
		Reports: reports,
		Total:   total,
		Page:    page,
		Size:    size,
	})
}

// GetReport возвращает отчет по ID
func (h *ValidationHandler) GetReport(c *gin.Context) {
	report, err := h.validationService.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetSummary возвращает текстовую сводку отчета
func (h *ValidationHandler) GetSummary(c *gin.Context) {
	summary, err := h.validationService.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.String(http.StatusOK, summary)
}

// DeleteReport удаляет отчет по ID
func (h *ValidationHandler) DeleteReport(c *gin.Context) {
	if err := h.validationService.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report deleted"})
}

// ListSpecifications возвращает спецификации каталога
func (h *ValidationHandler) ListSpecifications(c *gin.Context) {
	specs := h.validationService.ListSpecifications()
	c.JSON(http.StatusOK, gin.H{"specifications": specs, "total": len(specs)})
}

// GetSpecification возвращает спецификацию по ID
func (h *ValidationHandler) GetSpecification(c *gin.Context) {
	s, err := h.validationService.GetSpecification(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// CheckHealth проверяет состояние сервиса
func (h *ValidationHandler) CheckHealth(c *gin.Context) {
	health := h.validationService.CheckHealth(c.Request.Context())
	if health.Status == "unhealthy" {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}

// writeError переводит ошибку сервиса в HTTP статус
func (h *ValidationHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, spec.ErrUnknownSpecification), errors.Is(err, repository.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGaugeUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("Ошибка обработки запроса %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

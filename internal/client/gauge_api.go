package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"edge-gdt-validator/pkg/models"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// GaugeClient клиент API измерительного стенда
type GaugeClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewGaugeClient создает новый клиент измерительного стенда
func NewGaugeClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *GaugeClient {
	return &GaugeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchMeasurements получает набор измерений изделия
func (c *GaugeClient) FetchMeasurements(ctx context.Context, partID string) (*models.MeasurementSet, error) {
	if partID == "" {
		return nil, fmt.Errorf("part id is required")
	}

	endpoint := fmt.Sprintf("%s/parts/%s/measurements", c.baseURL, url.PathEscape(partID))
	c.logger.Debugf("Запрос измерений изделия %s: %s", partID, endpoint)

	var set models.MeasurementSet
	if err := c.getJSON(ctx, endpoint, &set); err != nil {
		return nil, fmt.Errorf("fetch measurements for part %s: %w", partID, err)
	}
	if set.PartID == "" {
		set.PartID = partID
	}

	c.logger.WithFields(logrus.Fields{
		"part_id": partID,
		"chamfer": len(set.ChamferMeasurements),
		"edges":   len(set.EdgePoints),
		"drip":    len(set.DripMeasurements),
	}).Info("Получены измерения со стенда")
	return &set, nil
}

// CheckHealth проверяет состояние измерительного стенда
func (c *GaugeClient) CheckHealth(ctx context.Context) (*models.HealthResponse, error) {
	c.logger.Debug("Проверка здоровья измерительного стенда")

	var health models.HealthResponse
	if err := c.getJSON(ctx, c.baseURL+"/health", &health); err != nil {
		return nil, fmt.Errorf("gauge health: %w", err)
	}
	return &health, nil
}

func (c *GaugeClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gauge API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

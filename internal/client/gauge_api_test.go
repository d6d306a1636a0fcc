package client

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"edge-gdt-validator/pkg/models"

	"github.com/h2non/gock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gaugeURL = "http://gauge.local"

func newTestClient() *GaugeClient {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c := NewGaugeClient(gaugeURL+"/", 2*time.Second, logger)
	gock.InterceptClient(c.httpClient)
	return c
}

func TestFetchMeasurements(t *testing.T) {
	defer gock.Off()

	gock.New(gaugeURL).
		Get("/parts/P-100/measurements").
		MatchHeader("Accept", "application/json").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"chamfer_measurements": map[string]any{
				"front": map[string]any{"depth_mm": 8.1, "angle_degrees": 45.2, "roughness_ra": 3.0},
			},
			"edge_points": map[string]any{
				"left": []map[string]any{{"x": 0, "y": 0, "z": 0}, {"x": 0, "y": 0, "z": 30}},
			},
			"drip_measurements": map[string]any{
				"rear": map[string]any{"overhang": 31.0},
			},
		})

	set, err := newTestClient().FetchMeasurements(context.Background(), "P-100")
	require.NoError(t, err)

	assert.Equal(t, "P-100", set.PartID)
	front := set.ChamferMeasurements[models.Anterior]
	assert.Equal(t, 8.1, front.DepthMM)
	require.True(t, front.HasRoughness())
	assert.Equal(t, 3.0, *front.RoughnessRa)
	assert.Len(t, set.EdgePoints[models.Port], 2)
	overhang, ok := set.DripMeasurements[models.Posterior].Get(models.DripOverhang)
	assert.True(t, ok)
	assert.Equal(t, 31.0, overhang)
	assert.True(t, gock.IsDone())
}

func TestFetchMeasurementsErrors(t *testing.T) {
	defer gock.Off()

	t.Run("status", func(t *testing.T) {
		gock.New(gaugeURL).Get("/parts/P-404/measurements").Reply(http.StatusNotFound).BodyString("no such part")
		_, err := newTestClient().FetchMeasurements(context.Background(), "P-404")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "no such part")
	})
	t.Run("malformed-json", func(t *testing.T) {
		gock.New(gaugeURL).Get("/parts/P-1/measurements").Reply(http.StatusOK).BodyString("{not json")
		_, err := newTestClient().FetchMeasurements(context.Background(), "P-1")
		assert.ErrorContains(t, err, "decode response")
	})
	t.Run("empty-part", func(t *testing.T) {
		_, err := newTestClient().FetchMeasurements(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestCheckHealth(t *testing.T) {
	defer gock.Off()

	gock.New(gaugeURL).Get("/health").Reply(http.StatusOK).JSON(map[string]string{"status": "ok", "version": "2.1"})

	health, err := newTestClient().CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "2.1", health.Version)
}

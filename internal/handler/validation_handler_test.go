package handler

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"edge-gdt-validator/internal/database"
	"edge-gdt-validator/internal/repository"
	"edge-gdt-validator/internal/service"
	"edge-gdt-validator/internal/spec"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "gdt.db")))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := service.NewValidationService(spec.DefaultCatalog(), repository.NewValidationRepository(db), nil, 4, logger)
	router := gin.New()
	NewValidationHandler(svc, logger).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type reportBody struct {
	ID              string `json:"id"`
	SpecificationID string `json:"specification_id"`
	OverallStatus   string `json:"overall_status"`
	TotalChecks     int    `json:"total_checks"`
	FailedChecks    int    `json:"failed_checks"`
}

func TestValidationLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/validations/simulate",
		`{"specification_id":"C8-STD-001","seed":3,"with_drip":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created reportBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "pass", created.OverallStatus)
	assert.Equal(t, 33, created.TotalChecks)

	w = doRequest(router, http.MethodGet, "/api/v1/validations/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched reportBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	w = doRequest(router, http.MethodGet, "/api/v1/validations/"+created.ID+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), "Overall Status: PASS")

	w = doRequest(router, http.MethodGet, "/api/v1/validations?specification_id=C8-STD-001&size=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Reports []reportBody `json:"reports"`
		Total   int64        `json:"total"`
		Size    int          `json:"size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 5, list.Size)
	require.Len(t, list.Reports, 1)
	assert.Equal(t, created.ID, list.Reports[0].ID)

	w = doRequest(router, http.MethodDelete, "/api/v1/validations/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/validations/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateMeasurements(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"specification_id": "C8-STD-001",
		"part_id": "P-42",
		"chamfer_measurements": {
			"front": {"depth_mm": 9.1, "angle_degrees": 45.0, "roughness_ra": 3.2}
		},
		"edge_points": {
			"left": [{"x": 0, "y": 0, "z": 0}, {"x": 0, "y": 0, "z": 30}]
		}
	}`
	w := doRequest(router, http.MethodPost, "/api/v1/validations", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var report reportBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "fail", report.OverallStatus)
	assert.Equal(t, 5, report.TotalChecks)
	assert.Equal(t, 1, report.FailedChecks)
}

func TestValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing-specification", http.MethodPost, "/api/v1/validations", `{"chamfer_measurements":{}}`, http.StatusBadRequest},
		{"malformed-json", http.MethodPost, "/api/v1/validations", `{`, http.StatusBadRequest},
		{"unknown-specification", http.MethodPost, "/api/v1/validations", `{"specification_id":"NOPE"}`, http.StatusNotFound},
		{"negative-noise", http.MethodPost, "/api/v1/validations/simulate", `{"specification_id":"C8-STD-001","noise_factor":-1}`, http.StatusBadRequest},
		{"gauge-not-configured", http.MethodPost, "/api/v1/validations/gauge", `{"specification_id":"C8-STD-001","part_id":"P-1"}`, http.StatusServiceUnavailable},
		{"gauge-missing-part", http.MethodPost, "/api/v1/validations/gauge", `{"specification_id":"C8-STD-001"}`, http.StatusBadRequest},
		{"unknown-report", http.MethodGet, "/api/v1/validations/does-not-exist", "", http.StatusNotFound},
		{"unknown-report-summary", http.MethodGet, "/api/v1/validations/does-not-exist/summary", "", http.StatusNotFound},
		{"delete-unknown-report", http.MethodDelete, "/api/v1/validations/does-not-exist", "", http.StatusNotFound},
		{"unknown-specification-get", http.MethodGet, "/api/v1/specifications/NOPE", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestSpecificationsAndHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/specifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 6, list.Total)

	w = doRequest(router, http.MethodGet, "/api/v1/specifications/C8-STD-001", "")
	require.Equal(t, http.StatusOK, w.Code)
	var s struct {
		ID      string `json:"specification_id"`
		Chamfer struct {
			DepthMM float64 `json:"depth_mm"`
			WidthMM float64 `json:"width_mm"`
		} `json:"chamfer"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, "C8-STD-001", s.ID)
	assert.Equal(t, 8.0, s.Chamfer.DepthMM)
	assert.InDelta(t, 6.627, s.Chamfer.WidthMM, 1e-3)

	w = doRequest(router, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

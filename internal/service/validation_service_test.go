package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"edge-gdt-validator/internal/database"
	"edge-gdt-validator/internal/gdt"
	"edge-gdt-validator/internal/model"
	"edge-gdt-validator/internal/repository"
	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"

	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceTime = time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC)

type fakeGauge struct {
	set       *models.MeasurementSet
	err       error
	healthErr error
	calls     int
}

func (g *fakeGauge) FetchMeasurements(_ context.Context, partID string) (*models.MeasurementSet, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	set := *g.set
	set.PartID = partID
	return &set, nil
}

func (g *fakeGauge) CheckHealth(context.Context) (*models.HealthResponse, error) {
	if g.healthErr != nil {
		return nil, g.healthErr
	}
	return &models.HealthResponse{Status: "ok"}, nil
}

func newTestService(t *testing.T, gauge MeasurementSource) *ValidationService {
	t.Helper()

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

	svc := NewValidationService(spec.DefaultCatalog(), repository.NewValidationRepository(db), gauge, 2, logger)
	svc.now = func() time.Time { return serviceTime }
	return svc
}

func TestSimulateAndReload(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	report, err := svc.Simulate(ctx, models.SimulateRequest{SpecificationID: spec.C8StandardID, Seed: 7, WithDrip: true})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "SIM-7", report.PartID)
	assert.Equal(t, 33, report.TotalChecks)
	assert.Equal(t, models.StatusPass, report.OverallStatus())

	stored, err := svc.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report, stored)

	summary, err := svc.Summary(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, gdt.FormatSummary(report), summary)
}

func TestValidateManualMeasurements(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	ra := 3.9
	req := models.ValidateRequest{
		SpecificationID: spec.C8StandardID,
		MeasurementSet: models.MeasurementSet{
			PartID: "P-1",
			ChamferMeasurements: map[models.Orientation]models.ChamferMeasurement{
				models.Anterior:  {DepthMM: 9.1, AngleDegrees: 45, RoughnessRa: &ra},
				models.Posterior: {DepthMM: 8.0, AngleDegrees: 45},
			},
		},
	}

	report, err := svc.Validate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFail, report.OverallStatus())
	assert.Equal(t, 7, report.TotalChecks)

	stored, err := svc.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ChamferResults, stored.ChamferResults)
	assert.Equal(t, report.ProfileConsistency, stored.ProfileConsistency)
	assert.Equal(t, models.StatusFail, stored.OverallStatus())
}

func TestValidateUnknownSpecification(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Validate(context.Background(), models.ValidateRequest{SpecificationID: "NOPE"})
	assert.True(t, errors.Is(err, spec.ErrUnknownSpecification))

	_, err = svc.Simulate(context.Background(), models.SimulateRequest{SpecificationID: "NOPE"})
	assert.ErrorIs(t, err, spec.ErrUnknownSpecification)
}

func TestValidateFromGauge(t *testing.T) {
	ctx := context.Background()

	t.Run("not-configured", func(t *testing.T) {
		svc := newTestService(t, nil)
		_, err := svc.ValidateFromGauge(ctx, spec.C8StandardID, "P-9")
		assert.ErrorIs(t, err, ErrGaugeUnavailable)
	})

	t.Run("fetch-and-validate", func(t *testing.T) {
		gauge := &fakeGauge{set: &models.MeasurementSet{
			ChamferMeasurements: map[models.Orientation]models.ChamferMeasurement{
				models.Port: {DepthMM: 8.2, AngleDegrees: 45.1},
			},
		}}
		svc := newTestService(t, gauge)

		report, err := svc.ValidateFromGauge(ctx, spec.C8StandardID, "P-9")
		require.NoError(t, err)
		assert.Equal(t, "P-9", report.PartID)
		assert.Equal(t, 4, report.TotalChecks)
		assert.Equal(t, 1, gauge.calls)
	})

	t.Run("unknown-specification-skips-gauge", func(t *testing.T) {
		gauge := &fakeGauge{set: &models.MeasurementSet{}}
		svc := newTestService(t, gauge)
		_, err := svc.ValidateFromGauge(ctx, "NOPE", "P-9")
		assert.ErrorIs(t, err, spec.ErrUnknownSpecification)
		assert.Zero(t, gauge.calls)
	})

	t.Run("gauge-error", func(t *testing.T) {
		boom := errors.New("connection refused")
		svc := newTestService(t, &fakeGauge{err: boom})
		_, err := svc.ValidateFromGauge(ctx, spec.C8StandardID, "P-9")
		assert.ErrorIs(t, err, boom)
	})
}

func TestListAndDeleteReports(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	var ids []string
	for seed := uint64(1); seed <= 3; seed++ {
		report, err := svc.Simulate(ctx, models.SimulateRequest{SpecificationID: spec.C8StandardID, Seed: seed})
		require.NoError(t, err)
		ids = append(ids, report.ID)
	}
	_, err := svc.Simulate(ctx, models.SimulateRequest{SpecificationID: spec.OgeeID, Seed: 1})
	require.NoError(t, err)

	all, total, err := svc.ListReports(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)

	page, total, err := svc.ListReports(ctx, spec.C8StandardID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)
	for _, r := range page {
		assert.Equal(t, spec.C8StandardID, r.SpecificationID)
		assert.NotEmpty(t, r.ChamferResults)
	}

	require.NoError(t, svc.DeleteReport(ctx, ids[0]))
	_, err = svc.GetReport(ctx, ids[0])
	assert.ErrorIs(t, err, repository.ErrReportNotFound)
	assert.ErrorIs(t, svc.DeleteReport(ctx, ids[0]), repository.ErrReportNotFound)

	_, total, err = svc.ListReports(ctx, spec.C8StandardID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestCheckHealth(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "healthy", newTestService(t, nil).CheckHealth(ctx).Status)
	assert.Equal(t, "healthy", newTestService(t, &fakeGauge{}).CheckHealth(ctx).Status)

	degraded := newTestService(t, &fakeGauge{healthErr: errors.New("timeout")}).CheckHealth(ctx)
	assert.Equal(t, "degraded", degraded.Status)
	assert.Equal(t, Version, degraded.Version)
}

func TestSpecifications(t *testing.T) {
	svc := newTestService(t, nil)

	assert.Len(t, svc.ListSpecifications(), 6)
	s, err := svc.GetSpecification(spec.C8StandardID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, s.Chamfer.DepthMM())
}

type failingRepository struct {
	repository.ValidationRepository
	err error
}

func (r failingRepository) Create(context.Context, *model.ValidationRun) error {
	return r.err
}

func TestSimulatePersistenceFailureSkipsRunMetrics(t *testing.T) {
	svc := newTestService(t, nil)
	svc.repo = failingRepository{err: errors.New("disk full")}

	runs := validationRunsTotal.WithLabelValues(model.SourceSimulated, models.StatusPass.String())
	passed := checkResultsTotal.WithLabelValues(models.StatusPass.String())
	runsBefore := testutil.ToFloat64(runs)
	passedBefore := testutil.ToFloat64(passed)
	errorsBefore := testutil.ToFloat64(persistenceErrorsTotal)

	report, err := svc.Simulate(context.Background(), models.SimulateRequest{SpecificationID: spec.C8StandardID, Seed: 7, WithDrip: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Nil(t, report)

	assert.Equal(t, runsBefore, testutil.ToFloat64(runs))
	assert.Equal(t, passedBefore, testutil.ToFloat64(passed))
	assert.Equal(t, errorsBefore+1, testutil.ToFloat64(persistenceErrorsTotal))
}

func TestSimulateRecordsRunMetrics(t *testing.T) {
	svc := newTestService(t, nil)

	runs := validationRunsTotal.WithLabelValues(model.SourceSimulated, models.StatusPass.String())
	runsBefore := testutil.ToFloat64(runs)

	_, err := svc.Simulate(context.Background(), models.SimulateRequest{SpecificationID: spec.C8StandardID, Seed: 7, WithDrip: true})
	require.NoError(t, err)
	assert.Equal(t, runsBefore+1, testutil.ToFloat64(runs))
}

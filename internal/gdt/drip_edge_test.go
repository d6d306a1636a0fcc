package gdt

import (
	"testing"

	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestDripEdgeValidator(t *testing.T) {
	v := NewDripEdgeValidator(spec.DefaultDripEdgeSpecification(), spec.DefaultGDnTSpecification())

	t.Run("overhang-three-tiers", func(t *testing.T) {
		assert.Equal(t, models.StatusPass, v.ValidateOverhangDistance(models.Anterior, 31.5).Status)
		assert.Equal(t, models.StatusPass, v.ValidateOverhangDistance(models.Anterior, 32).Status)
		assert.Equal(t, models.StatusWarn, v.ValidateOverhangDistance(models.Anterior, 33).Status)
		assert.Equal(t, models.StatusWarn, v.ValidateOverhangDistance(models.Anterior, 34).Status)
		assert.Equal(t, models.StatusFail, v.ValidateOverhangDistance(models.Anterior, 35).Status)
		assert.Equal(t, models.StatusFail, v.ValidateOverhangDistance(models.Anterior, 20).Status)
	})
	t.Run("groove-position-binary", func(t *testing.T) {
		pass := v.ValidateGroovePosition(models.Anterior, 20.5)
		assert.Equal(t, models.StatusPass, pass.Status)
		assert.Equal(t, 1.0, pass.Tolerance)

		far := v.ValidateGroovePosition(models.Anterior, 40)
		assert.Equal(t, models.StatusWarn, far.Status, "groove position has no fail tier")
		assert.NotEmpty(t, far.Recommendations)
	})
	t.Run("groove-position-uses-position-tolerance", func(t *testing.T) {
		gdt := spec.DefaultGDnTSpecification()
		gdt.PositionToleranceMM = 0.25
		strict := NewDripEdgeValidator(spec.DefaultDripEdgeSpecification(), gdt)
		assert.Equal(t, models.StatusWarn, strict.ValidateGroovePosition(models.Anterior, 20.5).Status)
	})
	t.Run("groove-dimensions-independent", func(t *testing.T) {
		width, depth := v.ValidateGrooveDimensions(models.Starboard, 8.25, 7.0)
		assert.Equal(t, models.StatusPass, width.Status)
		assert.Equal(t, models.StatusWarn, depth.Status, "groove dimensions have no fail tier")
		assert.Equal(t, "Drip Groove Width - right", width.CheckName)
		assert.Equal(t, "Drip Groove Depth - right", depth.CheckName)
		assert.Equal(t, 8.0, width.NominalValue)
		assert.Equal(t, 5.0, depth.NominalValue)
	})
}

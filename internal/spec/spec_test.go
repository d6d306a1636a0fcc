package spec

import (
	"errors"
	"math"
	"testing"

	"edge-gdt-validator/pkg/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChamferSpecificationWidth(t *testing.T) {
	t.Run("c8-width-follows-formula", func(t *testing.T) {
		c, err := NewChamferSpecification(8.0, 45.0, 0.5, 3.2)
		require.NoError(t, err)
		expected := 2 * 8.0 * math.Tan(22.5*math.Pi/180)
		assert.InDelta(t, expected, c.WidthMM(), 1e-12)
		assert.InDelta(t, 6.627, c.WidthMM(), 1e-3)
	})
	t.Run("default-is-c8", func(t *testing.T) {
		c := DefaultChamferSpecification()
		assert.Equal(t, 8.0, c.DepthMM())
		assert.Equal(t, 45.0, c.AngleDegrees())
		assert.Equal(t, 0.5, c.ToleranceMM())
		assert.Equal(t, 3.2, c.SurfaceRoughnessRa())
		assert.InDelta(t, ChamferWidth(8, 45), c.WidthMM(), 1e-12)
	})
	t.Run("with-depth-rederives-width", func(t *testing.T) {
		c := DefaultChamferSpecification()
		deeper, err := c.WithDepth(10)
		require.NoError(t, err)
		assert.InDelta(t, ChamferWidth(10, 45), deeper.WidthMM(), 1e-12)
		assert.Equal(t, 8.0, c.DepthMM(), "receiver must stay unchanged")
	})
	t.Run("with-angle-rederives-width", func(t *testing.T) {
		c := DefaultChamferSpecification()
		steeper, err := c.WithAngle(90)
		require.NoError(t, err)
		assert.InDelta(t, 16.0, steeper.WidthMM(), 1e-9)
	})
	t.Run("leg-length", func(t *testing.T) {
		c := DefaultChamferSpecification()
		assert.InDelta(t, 8.0/math.Cos(22.5*math.Pi/180), c.LegLength(), 1e-12)
	})
	t.Run("reject-negative-depth", func(t *testing.T) {
		_, err := NewChamferSpecification(-1, 45, 0.5, 3.2)
		assert.True(t, errors.Is(err, ErrNegativeValue))
	})
	t.Run("reject-negative-tolerance", func(t *testing.T) {
		_, err := NewChamferSpecification(8, 45, -0.1, 3.2)
		assert.True(t, errors.Is(err, ErrNegativeValue))
	})
	t.Run("reject-angle-out-of-range", func(t *testing.T) {
		_, err := NewChamferSpecification(8, 180, 0.5, 3.2)
		assert.True(t, errors.Is(err, ErrInvalidAngle))
	})
	t.Run("json-ignores-supplied-width", func(t *testing.T) {
		var c ChamferSpecification
		err := json.Unmarshal([]byte(`{"depth_mm": 5, "angle_degrees": 90, "width_mm": 123, "tolerance_mm": 0.2, "surface_roughness_ra": 1.6}`), &c)
		require.NoError(t, err)
		assert.InDelta(t, 10.0, c.WidthMM(), 1e-9)
	})
}

func TestGDnTSpecificationValidate(t *testing.T) {
	assert.NoError(t, DefaultGDnTSpecification().Validate())

	g := DefaultGDnTSpecification()
	g.PositionToleranceMM = -1
	err := g.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeValue))
	assert.Contains(t, err.Error(), "position_tolerance_mm")
}

func TestBuilder(t *testing.T) {
	t.Run("c8-template", func(t *testing.T) {
		s := C8ChamferSpec()
		assert.Equal(t, C8StandardID, s.ID)
		assert.Len(t, s.EdgeTreatments, 4)
		assert.Len(t, s.DripEdges, 4)
		for _, o := range models.AllOrientations() {
			assert.Equal(t, ProfileC8Chamfer, s.EdgeTreatments[o].Type)
			assert.True(t, s.EdgeTreatments[o].IsChamfer())
			d, ok := s.DripEdge(o)
			require.True(t, ok)
			assert.Equal(t, 30.0, d.OverhangMM)
			assert.Equal(t, 5.0, d.GrooveDepthMM)
			assert.Equal(t, 20.0, d.DistanceFromEdgeMM)
		}
		assert.Equal(t, FinishBrushed, s.SurfaceTreatment.Finish)
	})
	t.Run("partial-drip-edges", func(t *testing.T) {
		s, err := NewBuilder("CUSTOM-001", "Custom Kitchen Countertop").
			WithC8Chamfer(0.3).
			WithEdgeProfile(models.Anterior, ProfileC8Chamfer, ProfileGeometry{}).
			WithEdgeProfile(models.Posterior, ProfileHalfRound, ProfileGeometry{RadiusMM: 12}).
			WithDripEdge(models.Anterior, WithOverhang(25)).
			WithDripEdge(models.Starboard, WithOverhang(25)).
			Build()
		require.NoError(t, err)
		assert.Equal(t, 0.3, s.Chamfer.ToleranceMM())
		assert.Equal(t, 12.0, s.EdgeTreatments[models.Posterior].RadiusMM)
		_, ok := s.DripEdge(models.Port)
		assert.False(t, ok)
		_, ok = s.DripEdge(models.Starboard)
		assert.True(t, ok)
	})
	t.Run("first-error-wins", func(t *testing.T) {
		_, err := NewBuilder("BAD-001", "bad").
			WithCustomChamfer(-8, 45).
			WithEdgeProfile(models.Anterior, ProfileType("unknown"), ProfileGeometry{}).
			Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNegativeValue))
	})
	t.Run("unknown-profile", func(t *testing.T) {
		_, err := NewBuilder("BAD-002", "bad").
			WithAllEdges(ProfileType("zigzag"), ProfileGeometry{}).
			Build()
		assert.Error(t, err)
	})
	t.Run("built-spec-is-detached", func(t *testing.T) {
		b := NewBuilder("DET-001", "detached").WithAllDripEdges()
		first, err := b.Build()
		require.NoError(t, err)
		b.WithDripEdge(models.Anterior, WithOverhang(99))
		assert.Equal(t, 30.0, first.DripEdges[models.Anterior].OverhangMM)
	})
	t.Run("varied", func(t *testing.T) {
		s, err := VariedEdgeSpec(ProfileC8Chamfer, ProfileHalfRound, ProfileCove, ProfileOgee)
		require.NoError(t, err)
		assert.Equal(t, ProfileCove, s.EdgeTreatments[models.Port].Type)
		assert.Equal(t, 8.0, s.EdgeTreatments[models.Port].RadiusMM)
		assert.Len(t, s.EdgeTreatments[models.Starboard].Segments, 2)
	})
}

func TestProfileDefaults(t *testing.T) {
	for _, profileType := range ProfileTypes() {
		p, err := NewProfileGeometry(profileType, ProfileGeometry{})
		require.NoError(t, err, profileType)
		assert.Positive(t, p.ToolDiameterMM, profileType)
		assert.Positive(t, p.SegmentsCount, profileType)
	}

	pencil, err := NewProfileGeometry(ProfilePencil, ProfileGeometry{})
	require.NoError(t, err)
	assert.Equal(t, 18000, pencil.SpindleSpeedRPM)

	waterfall, err := NewProfileGeometry(ProfileWaterfall, ProfileGeometry{})
	require.NoError(t, err)
	assert.Equal(t, 1.5, waterfall.FeedRateMMin)
}

func TestCatalog(t *testing.T) {
	t.Run("default-templates", func(t *testing.T) {
		c := DefaultCatalog()
		s, err := c.Get(C8StandardID)
		require.NoError(t, err)
		assert.Equal(t, C8StandardID, s.ID)
		assert.Len(t, c.List(), 6)

		_, err = c.Get("missing")
		assert.True(t, errors.Is(err, ErrUnknownSpecification))
	})
	t.Run("load-yaml", func(t *testing.T) {
		c := NewCatalog()
		n, err := c.LoadCatalogYAML([]byte(`
specifications:
  - id: CUSTOM-002
    description: Vanity top
    revision: B
    chamfer:
      depth_mm: 5
      angle_degrees: 45
      tolerance_mm: 0.3
    gdt:
      perpendicularity_tolerance_mm: 0.2
      position_tolerance_mm: 0.8
    edges:
      front:
        profile_type: c5_chamfer
    drip_edges:
      front:
        overhang_mm: 22
`))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		s, err := c.Get("CUSTOM-002")
		require.NoError(t, err)
		assert.Equal(t, "B", s.Revision)
		assert.Equal(t, 5.0, s.Chamfer.DepthMM())
		assert.Equal(t, DefaultSurfaceRoughnessRa, s.Chamfer.SurfaceRoughnessRa())
		assert.Equal(t, 0.2, s.GDnT.PerpendicularityToleranceMM)
		assert.Equal(t, 0.05, s.GDnT.FlatnessToleranceMM, "unset tolerances keep defaults")
		assert.Equal(t, ProfileC5Chamfer, s.EdgeTreatments[models.Anterior].Type)
		d, ok := s.DripEdge(models.Anterior)
		require.True(t, ok)
		assert.Equal(t, 22.0, d.OverhangMM)
		assert.Equal(t, 8.0, d.GrooveWidthMM)
	})
	t.Run("reject-negative-in-yaml", func(t *testing.T) {
		c := NewCatalog()
		_, err := c.LoadCatalogYAML([]byte(`
specifications:
  - id: NEG-001
    gdt:
      flatness_tolerance_mm: -0.05
`))
		require.Error(t, err)
		assert.Empty(t, c.List())

		_, err = c.LoadCatalogYAML([]byte(`
specifications:
  - id: NEG-002
    drip_edges:
      left:
        overhang_mm: -3
`))
		require.Error(t, err)
		assert.Empty(t, c.List())
	})
	t.Run("drip-only-override", func(t *testing.T) {
		c := NewCatalog()
		_, err := c.LoadCatalogYAML([]byte(`
specifications:
  - id: DRIP-001
    drip_edges: {right: {groove_width_mm: 9}}
`))
		require.NoError(t, err)

		s, err := c.Get("DRIP-001")
		require.NoError(t, err)
		d, ok := s.DripEdge(models.Starboard)
		require.True(t, ok)
		assert.Equal(t, 9.0, d.GrooveWidthMM)
		assert.Equal(t, 30.0, d.OverhangMM)
		assert.Equal(t, 5.0, d.GrooveDepthMM)
		assert.Equal(t, 20.0, d.DistanceFromEdgeMM)
		assert.Equal(t, "aluminum", d.Material)

		_, ok = s.DripEdge(models.Anterior)
		assert.False(t, ok)
		assert.Equal(t, DefaultGDnTSpecification(), s.GDnT, "absent gdt section keeps defaults")
	})
	t.Run("reject-unknown-orientation", func(t *testing.T) {
		c := NewCatalog()
		_, err := c.LoadCatalogYAML([]byte(`
specifications:
  - id: ORI-001
    drip_edges:
      top: {}
`))
		assert.Error(t, err)
	})
}

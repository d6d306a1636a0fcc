package spec

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"edge-gdt-validator/pkg/models"

	"gopkg.in/yaml.v3"
)

// ErrUnknownSpecification спецификация с таким ID не зарегистрирована
var ErrUnknownSpecification = errors.New("unknown specification")

// Catalog реестр спецификаций по ID
type Catalog struct {
	mu    sync.RWMutex
	specs map[string]*ManufacturingProcessSpec
}

// NewCatalog создает пустой реестр
func NewCatalog() *Catalog {
	return &Catalog{specs: make(map[string]*ManufacturingProcessSpec)}
}

// DefaultCatalog создает реестр со встроенными шаблонами
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Register(C8ChamferSpec())
	c.Register(RoundedEdgeSpec(10))
	c.Register(FullBullnoseSpec(20))
	c.Register(OgeeEdgeSpec())
	c.Register(WaterfallEdgeSpec())
	if varied, err := VariedEdgeSpec(ProfileC8Chamfer, ProfileHalfRound, ProfileCove, ProfileOgee); err == nil {
		c.Register(varied)
	}
	return c
}

// Register добавляет или заменяет спецификацию
func (c *Catalog) Register(s *ManufacturingProcessSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specs[s.ID] = s
}

// Get возвращает спецификацию по ID
func (c *Catalog) Get(id string) (*ManufacturingProcessSpec, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.specs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpecification, id)
	}
	return s, nil
}

// List возвращает спецификации, отсортированные по ID
func (c *Catalog) List() []*ManufacturingProcessSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*ManufacturingProcessSpec, 0, len(c.specs))
	for _, s := range c.specs {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// catalogFile формат YAML-файла с дополнительными спецификациями
type catalogFile struct {
	Specifications []catalogEntry `yaml:"specifications"`
}

type catalogEntry struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Revision    string `yaml:"revision"`

	Chamfer *struct {
		DepthMM            float64 `yaml:"depth_mm"`
		AngleDegrees       float64 `yaml:"angle_degrees"`
		ToleranceMM        float64 `yaml:"tolerance_mm"`
		SurfaceRoughnessRa float64 `yaml:"surface_roughness_ra"`
	} `yaml:"chamfer"`

	// Kind == 0 означает, что секция в файле отсутствует
	GDnT yaml.Node `yaml:"gdt"`

	Surface *struct {
		Direction string `yaml:"direction"`
		Grit      int    `yaml:"grit"`
	} `yaml:"brushed_surface"`

	Edges     map[models.Orientation]ProfileGeometry `yaml:"edges"`
	DripEdges map[models.Orientation]yaml.Node       `yaml:"drip_edges"`
}

// LoadCatalog читает YAML-файл и регистрирует описанные в нем спецификации
func (c *Catalog) LoadCatalog(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read specification catalog: %w", err)
	}
	return c.LoadCatalogYAML(data)
}

// LoadCatalogYAML разбирает YAML-содержимое каталога
func (c *Catalog) LoadCatalogYAML(data []byte) (int, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse specification catalog: %w", err)
	}

	built := make([]*ManufacturingProcessSpec, 0, len(file.Specifications))
	for i, entry := range file.Specifications {
		s, err := entry.build()
		if err != nil {
			return 0, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		built = append(built, s)
	}

	for _, s := range built {
		c.Register(s)
	}
	return len(built), nil
}

func (e catalogEntry) build() (*ManufacturingProcessSpec, error) {
	b := NewBuilder(e.ID, e.Description)
	if e.Revision != "" {
		b.WithRevision(e.Revision)
	}
	if e.Chamfer != nil {
		roughness := e.Chamfer.SurfaceRoughnessRa
		if roughness == 0 {
			roughness = DefaultSurfaceRoughnessRa
		}
		b.WithChamfer(e.Chamfer.DepthMM, e.Chamfer.AngleDegrees, e.Chamfer.ToleranceMM, roughness)
	}
	if e.GDnT.Kind != 0 {
		gdt := DefaultGDnTSpecification()
		if err := e.GDnT.Decode(&gdt); err != nil {
			return nil, fmt.Errorf("gdt: %w", err)
		}
		b.WithGDnT(gdt)
	}
	if e.Surface != nil {
		b.WithBrushedSurface(e.Surface.Direction, e.Surface.Grit)
	}
	for _, o := range models.AllOrientations() {
		if profile, ok := e.Edges[o]; ok {
			b.WithEdgeProfile(o, profile.Type, profile)
		}
	}
	for o := range e.Edges {
		if !o.IsValid() {
			return nil, fmt.Errorf("edges: unknown orientation %q", o)
		}
	}
	for o, node := range e.DripEdges {
		if !o.IsValid() {
			return nil, fmt.Errorf("drip_edges: unknown orientation %q", o)
		}
		// Незаданные поля берутся из отлива по умолчанию
		drip := DefaultDripEdgeSpecification()
		if node.Kind != 0 {
			if err := node.Decode(&drip); err != nil {
				return nil, fmt.Errorf("drip_edges.%s: %w", o, err)
			}
		}
		b.WithDripEdge(o, func(d *DripEdgeSpecification) { *d = drip })
	}
	return b.Build()
}

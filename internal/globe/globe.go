package globe

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/annel0/mmo-globe/internal/logging"
)

var (
	ErrChunkNotLoaded   = errors.New("chunk not loaded")
	ErrMisalignedOrigin = errors.New("chunk origin is not aligned to chunk resolution")
)

// Globe реализованный глобус: параметры, генератор и построенные чанки.
// Хранилище чанков безопасно для конкурентного чтения.
type Globe struct {
	mu     sync.RWMutex
	spec   Spec
	gen    *Generator
	chunks map[GridPoint2]*Chunk
	logger *logging.Logger
}

// NewGlobe создает глобус без построенных чанков
func NewGlobe(spec Spec) (*Globe, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Globe{
		spec:   spec,
		gen:    NewGenerator(spec),
		chunks: make(map[GridPoint2]*Chunk, spec.ChunkCount()),
		logger: logging.GetGlobeLogger(),
	}, nil
}

// NewExampleGlobe создает глобус ExampleSpec со всеми чанками
func NewExampleGlobe() *Globe {
	g, err := NewGlobe(ExampleSpec())
	if err != nil {
		panic(err)
	}
	g.BuildAllChunks()
	return g
}

// Spec возвращает параметры глобуса
func (g *Globe) Spec() Spec {
	return g.spec
}

// Resolution размеры панели
func (g *Globe) Resolution() RootResolution {
	return g.spec.Resolution()
}

// BuildAllChunks строит все чанки всех панелей
func (g *Globe) BuildAllChunks() {
	g.buildChunks(g.spec.ChunkOrigins())
	g.logger.Info("Построено %d чанков (root_resolution=%s, chunk_resolution=%d)",
		g.ChunkCount(), g.Resolution(), g.spec.ChunkResolution)
}

// buildChunks строит чанки по списку начал; ошибочные начала пропускаются
func (g *Globe) buildChunks(origins iter.Seq[GridPoint2]) int {
	built := 0
	for origin := range origins {
		if _, err := g.BuildChunk(origin); err != nil {
			g.logger.Error("❌ Не удалось построить чанк %s: %v", origin, err)
			continue
		}
		built++
	}
	return built
}

// BuildChunk генерирует чанк с началом origin, заменяя существующий
func (g *Globe) BuildChunk(origin GridPoint2) (*Chunk, error) {
	if err := CheckBounds(origin.WithZ(0), g.Resolution()); err != nil {
		return nil, err
	}
	if g.spec.ChunkOriginFor(origin) != origin {
		return nil, fmt.Errorf("%w: %s", ErrMisalignedOrigin, origin)
	}

	chunk := NewChunk(origin, g.spec.ChunkResolution)
	g.gen.Fill(chunk)

	g.mu.Lock()
	g.chunks[origin] = chunk
	g.mu.Unlock()

	g.logger.Trace("Чанк %s построен", origin)
	return chunk, nil
}

// Chunk возвращает построенный чанк по началу
func (g *Globe) Chunk(origin GridPoint2) (*Chunk, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	chunk, ok := g.chunks[origin]
	return chunk, ok
}

// ChunkCount количество построенных чанков
func (g *Globe) ChunkCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.chunks)
}

// CellAt возвращает клетку в точке p. Если чанк самой точки не построен,
// клетка ищется через остальные представления той же точки.
func (g *Globe) CellAt(p GridPoint2) (Cell, error) {
	res := g.Resolution()
	if err := CheckBounds(p.WithZ(0), res); err != nil {
		return Cell{}, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for eq := range EquivalentPoints(p.WithZ(0), res).All() {
		q := eq.Point2()
		chunk, ok := g.chunks[g.spec.ChunkOriginFor(q)]
		if !ok {
			continue
		}
		if cell, ok := chunk.Cell(q); ok {
			return cell, nil
		}
	}
	return Cell{}, fmt.Errorf("%w: %s", ErrChunkNotLoaded, p)
}

// SeamMismatches считает классы эквивалентности, представления которых
// хранят разные высоты в построенных чанках
func (g *Globe) SeamMismatches() int {
	res := g.Resolution()

	g.mu.RLock()
	defer g.mu.RUnlock()

	heights := make(map[GridPoint3]float64)
	mismatched := make(map[GridPoint3]struct{})
	for _, chunk := range g.chunks {
		for p := range chunk.Points {
			if Classify(p.WithZ(0), res) == Interior {
				continue
			}
			cell, _ := chunk.Cell(p)
			key := Canonical(p.WithZ(0), res)
			if h, seen := heights[key]; seen && h != cell.Height {
				mismatched[key] = struct{}{}
				continue
			}
			heights[key] = cell.Height
		}
	}

	if len(mismatched) > 0 {
		g.logger.Warn("Обнаружено %d несшитых точек на швах", len(mismatched))
	}
	return len(mismatched)
}

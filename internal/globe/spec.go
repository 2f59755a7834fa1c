package globe

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidSpec параметры глобуса не согласованы
var ErrInvalidSpec = errors.New("invalid globe spec")

// Spec параметры глобуса. RootResolution и ChunkResolution задают
// полную ширину панели и чанка в клетках, а не показатель степени.
type Spec struct {
	Seed            int64     `json:"seed" yaml:"seed"`
	Radius          float64   `json:"radius" yaml:"radius"`
	RootResolution  GridCoord `json:"root_resolution" yaml:"root_resolution"`
	ChunkResolution GridCoord `json:"chunk_resolution" yaml:"chunk_resolution"`
}

// ExampleSpec небольшой глобус для отладки и тестов
func ExampleSpec() Spec {
	return Spec{
		Seed:            12,
		Radius:          1.0,
		RootResolution:  16,
		ChunkResolution: 4,
	}
}

// Validate проверяет, что разрешение чанка делит разрешение панели
func (s Spec) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidSpec, s.Radius)
	}
	if s.RootResolution == 0 {
		return fmt.Errorf("%w: root resolution must be positive", ErrInvalidSpec)
	}
	if s.RootResolution > MaxRootResolution {
		return fmt.Errorf("%w: root resolution %d exceeds %d", ErrInvalidSpec, s.RootResolution, MaxRootResolution)
	}
	if s.ChunkResolution == 0 {
		return fmt.Errorf("%w: chunk resolution must be positive", ErrInvalidSpec)
	}
	if s.RootResolution%s.ChunkResolution != 0 {
		return fmt.Errorf("%w: chunk resolution %d does not divide root resolution %d",
			ErrInvalidSpec, s.ChunkResolution, s.RootResolution)
	}
	return nil
}

// Resolution размеры панели [x, 2x]
func (s Spec) Resolution() RootResolution {
	return NewRootResolution(s.RootResolution)
}

// ChunksPerRoot количество чанков вдоль осей x и y одной панели
func (s Spec) ChunksPerRoot() (GridCoord, GridCoord) {
	res := s.Resolution()
	return res.X() / s.ChunkResolution, res.Y() / s.ChunkResolution
}

// ChunkCount общее число чанков на глобусе
func (s Spec) ChunkCount() int {
	nx, ny := s.ChunksPerRoot()
	return int(nx*ny) * RootCount
}

// ChunkOrigins перебирает начала всех чанков всех панелей
func (s Spec) ChunkOrigins() iter.Seq[GridPoint2] {
	return func(yield func(GridPoint2) bool) {
		res := s.Resolution()
		for root := Root(0); root < RootCount; root++ {
			for y := GridCoord(0); y < res.Y(); y += s.ChunkResolution {
				for x := GridCoord(0); x < res.X(); x += s.ChunkResolution {
					if !yield(NewGridPoint2(root, x, y)) {
						return
					}
				}
			}
		}
	}
}

// ChunkOriginFor возвращает начало чанка, хранящего точку p.
// Точки на дальней границе панели относятся к последнему чанку.
func (s Spec) ChunkOriginFor(p GridPoint2) GridPoint2 {
	res := s.Resolution()
	return NewGridPoint2(p.Root, alignDown(p.X, res.X(), s.ChunkResolution), alignDown(p.Y, res.Y(), s.ChunkResolution))
}

func alignDown(v, limit, step GridCoord) GridCoord {
	if v >= limit {
		return limit - step
	}
	return v - v%step
}

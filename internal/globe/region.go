package globe

import (
	"errors"
	"fmt"
)

// Region геометрическая категория точки панели.
// Каждая точка попадает ровно в одну категорию.
type Region uint8

const (
	Interior Region = iota
	NorthPole
	SouthPole
	EastArctic
	WestArctic
	EastTropics
	WestTropics
	EastAntarctic
	WestAntarctic
)

// String возвращает строковое представление региона
func (r Region) String() string {
	switch r {
	case Interior:
		return "interior"
	case NorthPole:
		return "north_pole"
	case SouthPole:
		return "south_pole"
	case EastArctic:
		return "east_arctic"
	case WestArctic:
		return "west_arctic"
	case EastTropics:
		return "east_tropics"
	case WestTropics:
		return "west_tropics"
	case EastAntarctic:
		return "east_antarctic"
	case WestAntarctic:
		return "west_antarctic"
	default:
		return "unknown"
	}
}

// IsPole true для обоих полюсов
func (r Region) IsPole() bool {
	return r == NorthPole || r == SouthPole
}

// IsSeam true для шести категорий шва между панелями
func (r Region) IsSeam() bool {
	return r >= EastArctic && r <= WestAntarctic
}

// Cardinality размер класса эквивалентности точки этого региона
func (r Region) Cardinality() int {
	switch {
	case r.IsPole():
		return RootCount
	case r.IsSeam():
		return 2
	default:
		return 1
	}
}

// Classify относит точку к одной из девяти категорий.
// Порядок проверок важен: граничные равенства пересекаются,
// и более ранние правила выигрывают.
func Classify(p GridPoint3, res RootResolution) Region {
	xRes, yRes := res.X(), res.Y()
	switch {
	case p.X == 0 && p.Y == 0:
		return NorthPole
	case p.X == xRes && p.Y == yRes:
		return SouthPole
	case p.X == 0 && p.Y < xRes:
		return EastArctic
	case p.Y == 0:
		return WestArctic
	case p.X == 0:
		// y >= xRes
		return EastTropics
	case p.X == xRes && p.Y < xRes:
		return WestTropics
	case p.Y == yRes:
		return EastAntarctic
	case p.X == xRes:
		// y >= xRes
		return WestAntarctic
	default:
		return Interior
	}
}

var (
	ErrInvalidResolution = errors.New("invalid root resolution")
	ErrInvalidRoot       = errors.New("root index out of ring")
	ErrOutOfBounds       = errors.New("grid point out of bounds")
)

// CheckBounds проверяет предусловия резолвера на границе системы.
// Нарушение означает ошибку вызывающей стороны.
func CheckBounds(p GridPoint3, res RootResolution) error {
	if !res.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidResolution, res)
	}
	if !p.Root.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRoot, p.Root)
	}
	if p.X > res.X() || p.Y > res.Y() {
		return fmt.Errorf("%w: %s outside %s", ErrOutOfBounds, p, res)
	}
	return nil
}

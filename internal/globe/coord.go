package globe

import (
	"cmp"
	"fmt"
	"math"
)

// RootCount количество корневых панелей в кольце глобуса
const RootCount = 5

// GridCoord скалярная координата вдоль одной оси панели
type GridCoord uint64

// Root идентификатор панели в циклическом кольце из RootCount элементов
type Root uint8

// NextEast возвращает соседнюю панель на востоке
func (r Root) NextEast() Root {
	return Root((uint(r) + 1) % RootCount)
}

// NextWest возвращает соседнюю панель на западе
func (r Root) NextWest() Root {
	return Root((uint(r) + RootCount - 1) % RootCount)
}

// Valid проверяет, что индекс панели лежит в кольце
func (r Root) Valid() bool {
	return uint(r) < RootCount
}

// MaxRootResolution наибольшая ширина панели, при которой 2 * xRes
// помещается в GridCoord
const MaxRootResolution GridCoord = math.MaxUint64 / 2

// RootResolution размеры панели [xRes, yRes], одинаковые для всех панелей.
// Панель всегда вдвое выше, чем шире: yRes = 2 * xRes.
type RootResolution [2]GridCoord

// NewRootResolution создает разрешение панели по ширине
func NewRootResolution(xRes GridCoord) RootResolution {
	return RootResolution{xRes, 2 * xRes}
}

// X ширина панели
func (r RootResolution) X() GridCoord { return r[0] }

// Y высота панели
func (r RootResolution) Y() GridCoord { return r[1] }

// Valid проверяет инвариант yRes = 2 * xRes и отсекает вырожденное xRes = 0
func (r RootResolution) Valid() bool {
	return r[0] > 0 && r[0] <= MaxRootResolution && r[1] == 2*r[0]
}

func (r RootResolution) String() string {
	return fmt.Sprintf("[%d, %d]", r[0], r[1])
}

// GridPoint2 точка в координатном пространстве одной панели
type GridPoint2 struct {
	Root Root      `json:"root" yaml:"root"`
	X    GridCoord `json:"x" yaml:"x"`
	Y    GridCoord `json:"y" yaml:"y"`
}

// NewGridPoint2 создает 2D точку сетки
func NewGridPoint2(root Root, x, y GridCoord) GridPoint2 {
	return GridPoint2{Root: root, X: x, Y: y}
}

// WithZ дополняет точку слоем z
func (p GridPoint2) WithZ(z GridCoord) GridPoint3 {
	return GridPoint3{GridPoint2: p, Z: z}
}

func (p GridPoint2) String() string {
	return fmt.Sprintf("(root=%d, x=%d, y=%d)", p.Root, p.X, p.Y)
}

// GridPoint3 точка сетки со слоем z. Слой не участвует в разрешении
// эквивалентности и переносится без изменений.
type GridPoint3 struct {
	GridPoint2
	Z GridCoord `json:"z" yaml:"z"`
}

// NewGridPoint3 создает 3D точку сетки
func NewGridPoint3(root Root, x, y, z GridCoord) GridPoint3 {
	return GridPoint3{GridPoint2: GridPoint2{Root: root, X: x, Y: y}, Z: z}
}

// Point2 отбрасывает слой z
func (p GridPoint3) Point2() GridPoint2 {
	return p.GridPoint2
}

// moved возвращает копию точки на другой панели с новыми x, y
func (p GridPoint3) moved(root Root, x, y GridCoord) GridPoint3 {
	return NewGridPoint3(root, x, y, p.Z)
}

func (p GridPoint3) String() string {
	return fmt.Sprintf("(root=%d, x=%d, y=%d, z=%d)", p.Root, p.X, p.Y, p.Z)
}

// ComparePoints задает канонический порядок (root, x, y, z)
func ComparePoints(a, b GridPoint3) int {
	switch {
	case a.Root != b.Root:
		return cmp.Compare(a.Root, b.Root)
	case a.X != b.X:
		return cmp.Compare(a.X, b.X)
	case a.Y != b.Y:
		return cmp.Compare(a.Y, b.Y)
	default:
		return cmp.Compare(a.Z, b.Z)
	}
}

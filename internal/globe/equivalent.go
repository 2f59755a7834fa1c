package globe

import (
	"iter"
	"slices"
)

// pointPair буфер фиксированной емкости для классов размером не больше двух
type pointPair struct {
	points [2]GridPoint3
	n      int
}

func (pp *pointPair) push(p GridPoint3) {
	pp.points[pp.n] = p
	pp.n++
}

// seamTransform переносит точку шва на соседнюю панель
type seamTransform func(p GridPoint3, res RootResolution) GridPoint3

// Восток: шов панели приклеен к другому участку границы восточного соседа,
// запад аналогично. Панели образуют вертушку вокруг экватора.
var seamTransforms = [...]seamTransform{
	EastArctic: func(p GridPoint3, _ RootResolution) GridPoint3 {
		return p.moved(p.Root.NextEast(), p.Y, 0)
	},
	WestArctic: func(p GridPoint3, _ RootResolution) GridPoint3 {
		return p.moved(p.Root.NextWest(), 0, p.X)
	},
	EastTropics: func(p GridPoint3, res RootResolution) GridPoint3 {
		return p.moved(p.Root.NextEast(), res.X(), p.Y-res.X())
	},
	WestTropics: func(p GridPoint3, res RootResolution) GridPoint3 {
		return p.moved(p.Root.NextWest(), 0, p.Y+res.X())
	},
	EastAntarctic: func(p GridPoint3, res RootResolution) GridPoint3 {
		return p.moved(p.Root.NextEast(), res.X(), p.X+res.X())
	},
	WestAntarctic: func(p GridPoint3, res RootResolution) GridPoint3 {
		return p.moved(p.Root.NextWest(), p.Y-res.X(), res.Y())
	},
}

// Equivalents ленивая конечная последовательность всех представлений
// одной физической точки. Вариант выбирается регионом; полюс хранит
// только индекс следующей панели, шов и внутренняя точка держат
// не больше двух готовых точек.
type Equivalents struct {
	region Region
	origin GridPoint3
	pair   pointPair
	cursor int
}

// EquivalentPoints возвращает все представления точки p, включая саму p.
// Точка за пределами res является ошибкой вызывающей стороны и
// приводит к панике; на границе системы используйте CheckBounds.
func EquivalentPoints(p GridPoint3, res RootResolution) Equivalents {
	if err := CheckBounds(p, res); err != nil {
		panic(err)
	}

	region := Classify(p, res)
	eq := Equivalents{region: region, origin: p}
	switch {
	case region.IsPole():
		// координаты уже прижаты к углу, перебираем только панели
	case region.IsSeam():
		eq.pair.push(p)
		eq.pair.push(seamTransforms[region](p, res))
	default:
		eq.pair.push(p)
	}
	return eq
}

// Region категория исходной точки
func (e Equivalents) Region() Region {
	return e.region
}

// Len полный размер класса эквивалентности
func (e Equivalents) Len() int {
	return e.region.Cardinality()
}

// Next выдает следующую точку последовательности
func (e *Equivalents) Next() (GridPoint3, bool) {
	if e.region.IsPole() {
		if e.cursor >= RootCount {
			return GridPoint3{}, false
		}
		p := e.origin
		p.Root = Root(e.cursor)
		e.cursor++
		return p, true
	}

	if e.cursor >= e.pair.n {
		return GridPoint3{}, false
	}
	p := e.pair.points[e.cursor]
	e.cursor++
	return p, true
}

// Reset возвращает курсор в начало
func (e *Equivalents) Reset() {
	e.cursor = 0
}

// All возвращает перезапускаемую последовательность. Курсор самой
// Equivalents не сдвигается.
func (e Equivalents) All() iter.Seq[GridPoint3] {
	return func(yield func(GridPoint3) bool) {
		it := e
		it.Reset()
		for {
			p, ok := it.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Contains проверяет принадлежность точки классу
func (e Equivalents) Contains(q GridPoint3) bool {
	for p := range e.All() {
		if p == q {
			return true
		}
	}
	return false
}

// Collect возвращает класс эквивалентности в каноническом порядке
func Collect(p GridPoint3, res RootResolution) []GridPoint3 {
	eq := EquivalentPoints(p, res)
	points := make([]GridPoint3, 0, eq.Len())
	points = slices.AppendSeq(points, eq.All())
	slices.SortFunc(points, ComparePoints)
	return points
}

// Canonical возвращает наименьшее представление точки в порядке ComparePoints
func Canonical(p GridPoint3, res RootResolution) GridPoint3 {
	eq := EquivalentPoints(p, res)
	best, _ := eq.Next()
	for {
		q, ok := eq.Next()
		if !ok {
			return best
		}
		if ComparePoints(q, best) < 0 {
			best = q
		}
	}
}

// SameLocation проверяет, что две точки задают одно физическое место
func SameLocation(a, b GridPoint3, res RootResolution) bool {
	return EquivalentPoints(a, res).Contains(b)
}

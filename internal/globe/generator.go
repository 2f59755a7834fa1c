package globe

import (
	"github.com/annel0/mmo-globe/internal/util"
)

// Константы генерации высот
const (
	BaseHeight      = 1.0  // Средняя высота поверхности
	HeightAmplitude = 0.1  // Отклонение от средней высоты
	NoiseScale      = 0.37 // Масштаб координат сетки для шума
	RootNoiseOffset = 97.0 // Сдвиг шума между панелями
)

// Generator вычисляет высоты клеток по шуму Перлина
type Generator struct {
	res   RootResolution
	noise *util.Noise
}

// NewGenerator создает генератор для глобуса с заданными параметрами
func NewGenerator(spec Spec) *Generator {
	return &Generator{
		res:   spec.Resolution(),
		noise: util.NewNoise(spec.Seed),
	}
}

// HeightAt возвращает высоту в точке. Шум берется в каноническом
// представлении точки, поэтому все представления одного места на
// разных панелях получают одну и ту же высоту.
func (g *Generator) HeightAt(p GridPoint2) float64 {
	c := Canonical(p.WithZ(0), g.res)
	x := float64(c.X) * NoiseScale
	y := float64(c.Y) * NoiseScale
	z := float64(c.Root) * RootNoiseOffset
	// Колеблемся вокруг BaseHeight
	return g.noise.Noise3D(x, y, z)*HeightAmplitude + BaseHeight
}

// Fill заполняет клетки чанка
func (g *Generator) Fill(chunk *Chunk) {
	for p := range chunk.Points {
		chunk.SetCell(p, Cell{Height: g.HeightAt(p)})
	}
}

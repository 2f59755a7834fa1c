package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина
const (
	NoiseAlpha   = 2.0 // Сглаживание шума
	NoiseBeta    = 2.0 // Частота шума
	NoiseOctaves = 4   // Количество октав
)

// Noise детерминированный генератор шума Перлина с фиксированным сидом.
// В отличие от глобального генератора каждый экземпляр независим.
type Noise struct {
	perlin *perlin.Perlin
}

// NewNoise создает генератор шума для сида
func NewNoise(seed int64) *Noise {
	return &Noise{perlin: perlin.NewPerlin(NoiseAlpha, NoiseBeta, NoiseOctaves, seed)}
}

// Noise3D возвращает значение шума в диапазоне примерно от -1 до 1
func (n *Noise) Noise3D(x, y, z float64) float64 {
	return n.perlin.Noise3D(x, y, z)
}

package globe

// Cell данные одной клетки сетки. Пока хранится только высота.
type Cell struct {
	Height float64 `json:"height"`
}

// Chunk квадратный участок панели. Клетки покрывают замкнутый квадрат
// [origin, origin+resolution] по обеим осям, поэтому соседние чанки
// делят граничные клетки. Клетки отсортированы по (y, x).
type Chunk struct {
	Origin     GridPoint2 `json:"origin"`
	Resolution GridCoord  `json:"resolution"`
	Cells      []Cell     `json:"cells"`
}

// NewChunk создает чанк с нулевыми клетками
func NewChunk(origin GridPoint2, resolution GridCoord) *Chunk {
	side := int(resolution) + 1
	return &Chunk{
		Origin:     origin,
		Resolution: resolution,
		Cells:      make([]Cell, side*side),
	}
}

// Contains проверяет, что точка лежит внутри чанка (включая границу)
func (c *Chunk) Contains(p GridPoint2) bool {
	if p.Root != c.Origin.Root {
		return false
	}
	return p.X >= c.Origin.X && p.X <= c.Origin.X+c.Resolution &&
		p.Y >= c.Origin.Y && p.Y <= c.Origin.Y+c.Resolution
}

// Cell возвращает клетку по точке панели
func (c *Chunk) Cell(p GridPoint2) (Cell, bool) {
	if !c.Contains(p) {
		return Cell{}, false
	}
	return c.Cells[c.index(p)], true
}

// SetCell записывает клетку; точки вне чанка игнорируются
func (c *Chunk) SetCell(p GridPoint2, cell Cell) bool {
	if !c.Contains(p) {
		return false
	}
	c.Cells[c.index(p)] = cell
	return true
}

// Points перебирает все точки чанка в порядке хранения клеток
func (c *Chunk) Points(yield func(GridPoint2) bool) {
	for y := c.Origin.Y; y <= c.Origin.Y+c.Resolution; y++ {
		for x := c.Origin.X; x <= c.Origin.X+c.Resolution; x++ {
			if !yield(NewGridPoint2(c.Origin.Root, x, y)) {
				return
			}
		}
	}
}

func (c *Chunk) index(p GridPoint2) int {
	side := int(c.Resolution) + 1
	return int(p.Y-c.Origin.Y)*side + int(p.X-c.Origin.X)
}

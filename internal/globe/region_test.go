package globe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Priority(t *testing.T) {
	res := NewRootResolution(8)

	tests := []struct {
		x, y     GridCoord
		expected Region
	}{
		{0, 0, NorthPole},
		{8, 16, SouthPole},
		{0, 1, EastArctic},
		{0, 7, EastArctic},
		{1, 0, WestArctic},
		{8, 0, WestArctic},
		{0, 8, EastTropics},
		{0, 16, EastTropics},
		{8, 1, WestTropics},
		{8, 7, WestTropics},
		{1, 16, EastAntarctic},
		{7, 16, EastAntarctic},
		{8, 8, WestAntarctic},
		{8, 15, WestAntarctic},
		{3, 5, Interior},
		{7, 15, Interior},
	}

	for _, tt := range tests {
		p := NewGridPoint3(2, tt.x, tt.y, 0)
		assert.Equal(t, tt.expected, Classify(p, res), "точка (%d,%d)", tt.x, tt.y)
	}
}

func TestClassify_IgnoresRootAndZ(t *testing.T) {
	res := NewRootResolution(4)
	for root := Root(0); root < RootCount; root++ {
		assert.Equal(t, EastTropics, Classify(NewGridPoint3(root, 0, 6, 100), res))
	}
}

func TestRegion_Cardinality(t *testing.T) {
	assert.Equal(t, RootCount, NorthPole.Cardinality())
	assert.Equal(t, RootCount, SouthPole.Cardinality())
	for _, r := range []Region{EastArctic, WestArctic, EastTropics, WestTropics, EastAntarctic, WestAntarctic} {
		assert.True(t, r.IsSeam(), r.String())
		assert.Equal(t, 2, r.Cardinality(), r.String())
	}
	assert.Equal(t, 1, Interior.Cardinality())
	assert.False(t, Interior.IsSeam())
	assert.False(t, Interior.IsPole())
}

func TestRegion_String(t *testing.T) {
	assert.Equal(t, "north_pole", NorthPole.String())
	assert.Equal(t, "west_antarctic", WestAntarctic.String())
	assert.Equal(t, "unknown", Region(42).String())
}

func TestCheckBounds(t *testing.T) {
	res := NewRootResolution(8)

	assert.NoError(t, CheckBounds(NewGridPoint3(4, 8, 16, 999), res))
	assert.NoError(t, CheckBounds(NewGridPoint3(0, 0, 0, 0), res))

	err := CheckBounds(NewGridPoint3(0, 9, 0, 0), res)
	assert.True(t, errors.Is(err, ErrOutOfBounds), "ожидалась ErrOutOfBounds, получено %v", err)

	err = CheckBounds(NewGridPoint3(0, 0, 17, 0), res)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	err = CheckBounds(NewGridPoint3(5, 0, 0, 0), res)
	assert.ErrorIs(t, err, ErrInvalidRoot)

	err = CheckBounds(NewGridPoint3(0, 0, 0, 0), NewRootResolution(0))
	assert.ErrorIs(t, err, ErrInvalidResolution)

	err = CheckBounds(NewGridPoint3(0, 0, 0, 0), RootResolution{8, 8})
	assert.ErrorIs(t, err, ErrInvalidResolution)

	err = CheckBounds(NewGridPoint3(0, 5, 0, 0), RootResolution{1 << 63, 0})
	assert.ErrorIs(t, err, ErrInvalidResolution, "переполненное разрешение недопустимо")
	assert.Panics(t, func() {
		EquivalentPoints(NewGridPoint3(0, 5, 0, 0), RootResolution{1 << 63, 0})
	})
}

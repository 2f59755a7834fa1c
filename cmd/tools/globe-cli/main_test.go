package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/annel0/mmo-globe/internal/globe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() globe.Spec {
	spec := globe.ExampleSpec()
	spec.RootResolution = 8
	return spec
}

func TestRun_Equiv(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, "equiv", testSpec(), globe.NewGridPoint3(3, 0, 3, 77), false)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "east_arctic, 2 point(s)")
	assert.Contains(t, text, "(root=4, x=3, y=0, z=77)")
}

func TestRun_EquivJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, "equiv", testSpec(), globe.NewGridPoint3(1, 0, 0, 5), true)
	require.NoError(t, err)

	var points []globe.GridPoint3
	require.NoError(t, json.Unmarshal(out.Bytes(), &points))
	assert.Len(t, points, globe.RootCount)
}

func TestRun_Classify(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, "classify", testSpec(), globe.NewGridPoint3(4, 3, 5, 0), true))
	assert.JSONEq(t, `{"region":"interior"}`, out.String())
}

func TestRun_Chunks(t *testing.T) {
	var out bytes.Buffer
	spec := testSpec()
	require.NoError(t, run(&out, "chunks", spec, globe.GridPoint3{}, false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, spec.ChunkCount())
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, "equiv", testSpec(), globe.NewGridPoint3(0, 9, 0, 0), false)
	assert.ErrorIs(t, err, globe.ErrOutOfBounds)

	err = run(&out, "bogus", testSpec(), globe.GridPoint3{}, false)
	assert.Error(t, err)
}

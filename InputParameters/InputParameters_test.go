package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefineParameters(t *testing.T) {
	rp := NewRefineParameters()
	require.NoError(t, rp.Validate())
	input := []byte(`
Title: "Rectangle sequence"
Generator: rectangle
Nx: 8
Ny: 2
XMax: 4
NumLevels: 4
Field: xy
Output: out/refine
Compress: true
`)
	require.NoError(t, rp.Parse(input))
	assert.Equal(t, "Rectangle sequence", rp.Title)
	assert.Equal(t, "rectangle", rp.Generator)
	assert.Equal(t, 8, rp.Nx)
	assert.Equal(t, 2, rp.Ny)
	assert.Equal(t, 4., rp.XMax)
	assert.Equal(t, 1., rp.YMax) // Default retained
	assert.Equal(t, 4, rp.NumLevels)
	assert.Equal(t, "xy", rp.Field)
	assert.Equal(t, "out/refine", rp.Output)
	assert.True(t, rp.Compress)
	rp.Print()

	rp = NewRefineParameters()
	assert.Error(t, rp.Parse([]byte("NumLevels: 0\n")))
	rp = NewRefineParameters()
	assert.Error(t, rp.Parse([]byte("Field: cos\n")))
	rp = NewRefineParameters()
	assert.Error(t, rp.Parse([]byte("Generator: hexagon\n")))
	rp = NewRefineParameters()
	assert.Error(t, rp.Parse([]byte("Generator: rectangle\nNy: 0\n")))
	rp = NewRefineParameters()
	assert.Error(t, rp.Parse([]byte("NumLevels: [1, 2]\n")))

	// A named mesh file bypasses the generator checks
	rp = NewRefineParameters()
	require.NoError(t, rp.Parse([]byte("Mesh: meshes/oneHole.1\nGenerator: none\n")))
	assert.Equal(t, "meshes/oneHole.1", rp.Mesh)
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/viewer"
)

func TestBuildViewScene(t *testing.T) {
	rp := InputParameters.NewRefineParameters()
	vo := &ViewOptions{Level: 2, Origins: true, Shade: true}
	sc, m, field, err := BuildViewScene(rp, vo)
	require.NoError(t, err)
	assert.Equal(t, 25, m.NumVertices())
	assert.Len(t, field, 25)
	// Three levels of origins, one cross hair per vertex
	colors := viewer.DistinctColors(3)
	var crosses int
	for _, col := range colors {
		crosses += len(sc.Lines[col]) / 8
	}
	assert.Equal(t, 25, crosses)
	assert.Len(t, sc.Lines[colors[0]], 4*8)

	rp.Generator = "line"
	sc, m, field, err = BuildViewScene(rp, &ViewOptions{Level: 1, Shade: true})
	require.NoError(t, err)
	assert.Equal(t, 9, m.NumVertices())
	assert.Nil(t, field)
	assert.NotEmpty(t, sc.Lines)
}

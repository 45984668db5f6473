/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/mesh1D"
	"github.com/notargets/gomesh/mesh2D"
	"github.com/notargets/gomesh/refinement"
	"github.com/notargets/gomesh/viewer"
)

type ViewOptions struct {
	Level   int  // Refinement level shown, 0 is the coarse mesh
	Origins bool // Mark vertices by the level that introduced them
	Shade   bool // Shade the test field under the mesh
	Scale   float64
}

// ViewCmd represents the view command
var ViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display a mesh, optionally refined, with its edge labels",
	Long: `
Opens a window showing the mesh edges colored by label. With --origins, vertices are marked in the
color of the refinement level that introduced them. With --shade, the test field is drawn under the
mesh. The window stays open until the process is interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			fl  = cmd.Flags()
			rp  = InputParameters.NewRefineParameters()
			vo  = &ViewOptions{}
		)
		rp.Mesh, _ = fl.GetString("gridFile")
		if fl.Changed("generator") {
			rp.Generator, _ = fl.GetString("generator")
		}
		if fl.Changed("nx") {
			rp.Nx, _ = fl.GetInt("nx")
		}
		if fl.Changed("ny") {
			rp.Ny, _ = fl.GetInt("ny")
		}
		if fl.Changed("field") {
			rp.Field, _ = fl.GetString("field")
		}
		vo.Level, _ = fl.GetInt("level")
		vo.Origins, _ = fl.GetBool("origins")
		vo.Shade, _ = fl.GetBool("shade")
		vo.Scale, _ = fl.GetFloat64("scale")
		rp.NumLevels = vo.Level + 1
		if err = rp.Validate(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		var (
			sc    *viewer.Scene
			m     refinement.Mesh
			field []float64
		)
		if sc, m, field, err = BuildViewScene(rp, vo); err != nil {
			klog.Errorf("%v", err)
			os.Exit(1)
		}
		RenderScene(sc, m, field, vo.Scale)
	},
}

func init() {
	rootCmd.AddCommand(ViewCmd)
	ViewCmd.Flags().StringP("gridFile", "F", "", "Triangle mesh basename, reads <name>.node, <name>.edge and <name>.ele")
	ViewCmd.Flags().StringP("generator", "g", "", "mesh generator to use when no grid file is given")
	ViewCmd.Flags().Int("nx", 0, "generator cells in x")
	ViewCmd.Flags().Int("ny", 0, "generator cells in y")
	ViewCmd.Flags().IntP("level", "l", 0, "refinement level to display")
	ViewCmd.Flags().Bool("origins", false, "mark vertices by the level that introduced them")
	ViewCmd.Flags().Bool("shade", false, "shade the test field under the mesh")
	ViewCmd.Flags().StringP("field", "f", "", "test field used for shading")
	ViewCmd.Flags().Float64("scale", 1.1, "zoom out factor about the mesh center")
}

// BuildViewScene refines the coarse mesh to the requested level and collects its lines
func BuildViewScene(rp *InputParameters.RefineParameters, vo *ViewOptions) (sc *viewer.Scene,
	m refinement.Mesh, field []float64, err error) {
	var (
		coarse refinement.Mesh
		seq    *refinement.Sequence
	)
	if coarse, err = NewCoarseMesh(rp); err != nil {
		return
	}
	if seq, err = refinement.NewSequence(coarse, vo.Level+1); err != nil {
		return
	}
	m = seq.Mesh(vo.Level)
	sc = viewer.NewScene()
	switch mm := m.(type) {
	case *mesh2D.Mesh:
		sc.AddMesh(mm)
		if vo.Origins {
			if err = sc.AddAggregates(mm, seq.VertexOrigins(), nil); err != nil {
				return
			}
		}
		if vo.Shade {
			field = SampleField(mm, fieldFunc(rp.Field))
		}
	case *mesh1D.Mesh:
		sc.AddLineMesh(mm)
	}
	return
}

// RenderScene opens a chart window and blocks
func RenderScene(sc *viewer.Scene, m refinement.Mesh, field []float64, scale float64) {
	xMin, xMax, yMin, yMax := sc.Bounds(scale)
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	if mm, ok := m.(*mesh2D.Mesh); ok && field != nil {
		xy, triVerts := viewer.TriMeshArrays(mm)
		gm := geometry.TriMesh{
			XY:       xy,
			TriVerts: triVerts,
		}
		pField := make([]float32, len(field))
		for i, f := range field {
			pField[i] = float32(f)
		}
		vs := geometry.VertexScalar{
			TMesh:       &gm,
			FieldValues: pField,
		}
		fMin, fMax := floats.Min(field), floats.Max(field)
		fmt.Printf("fMin: %f, fMax: %f\n", fMin, fMax)
		ch.AddShadedVertexScalar(&vs, float32(fMin), float32(fMax))
	}
	for col, line := range sc.Lines {
		ch.AddLine(line, col)
	}
	for {
	}
}

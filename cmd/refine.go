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
	"io"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/mesh1D"
	"github.com/notargets/gomesh/mesh2D"
	"github.com/notargets/gomesh/readfiles"
	"github.com/notargets/gomesh/refinement"
)

type LevelReport struct {
	NumVertices    int
	NumElements    int
	UpErr, DownErr float64
	FileName       string
}

type RefineReport struct {
	Levels []LevelReport
	Finest refinement.Mesh
	Seq    *refinement.Sequence
}

// RefineCmd represents the refine command
var RefineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Build a uniformly refined mesh hierarchy and check its transfer operators",
	Long: `
Refines a coarse mesh, either read from Triangle files or generated, through a number of levels. A
test field is sampled on every level, interpolated up from the coarse level and restricted down from
the finest level, and the per level errors are reported. Each 2D level can be written as a .vtu file.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			rp  = processRefineInput(cmd)
		)
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		rp.Print()
		var rep *RefineReport
		if rep, err = RunRefine(rp, os.Stdout); err != nil {
			klog.Errorf("%v", err)
			klog.Flush()
			os.Exit(1)
		}
		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			switch m := rep.Finest.(type) {
			case *mesh2D.Mesh:
				m.Dump(os.Stdout)
			case *mesh1D.Mesh:
				m.Dump(os.Stdout)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(RefineCmd)
	RefineCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file with refinement parameters")
	RefineCmd.Flags().StringP("gridFile", "F", "", "Triangle mesh basename, reads <name>.node, <name>.edge and <name>.ele")
	RefineCmd.Flags().StringP("generator", "g", "", "mesh generator to use when no grid file is given")
	RefineCmd.Flags().Int("nx", 0, "generator cells in x")
	RefineCmd.Flags().Int("ny", 0, "generator cells in y")
	RefineCmd.Flags().IntP("levels", "l", 0, "number of levels, including the coarse mesh")
	RefineCmd.Flags().StringP("field", "f", "", "test field sampled on each level")
	RefineCmd.Flags().StringP("output", "o", "", "prefix of the per level .vtu files")
	RefineCmd.Flags().Bool("gz", false, "gzip the .vtu output")
	RefineCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	RefineCmd.Flags().Bool("dump", false, "dump the finest mesh to stdout")
	viper.BindPFlag("output", RefineCmd.Flags().Lookup("output"))
	viper.BindPFlag("gz", RefineCmd.Flags().Lookup("gz"))
}

func processRefineInput(cmd *cobra.Command) (rp *InputParameters.RefineParameters) {
	var (
		err error
		fl  = cmd.Flags()
	)
	rp = InputParameters.NewRefineParameters()
	if icFile, _ := fl.GetString("inputConditionsFile"); icFile != "" {
		var data []byte
		if data, err = ioutil.ReadFile(icFile); err != nil {
			panic(err)
		}
		if err = rp.Parse(data); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			exampleFile := `
########################################
Title: "Goofy square"
Generator: goofy   # rectangle, twoelem, goofy or line
#Mesh: meshes/oneHole.1
Nx: 4
Ny: 4
NumLevels: 4
Field: sinsin      # sinsin, xy or x
Output: out/goofy
Compress: false
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
	}
	if fl.Changed("gridFile") {
		rp.Mesh, _ = fl.GetString("gridFile")
	}
	if fl.Changed("generator") {
		rp.Generator, _ = fl.GetString("generator")
	}
	if fl.Changed("nx") {
		rp.Nx, _ = fl.GetInt("nx")
	}
	if fl.Changed("ny") {
		rp.Ny, _ = fl.GetInt("ny")
	}
	if fl.Changed("levels") {
		rp.NumLevels, _ = fl.GetInt("levels")
	}
	if fl.Changed("field") {
		rp.Field, _ = fl.GetString("field")
	}
	// Flag, GOMESH_OUTPUT or the config file, in that order
	if out := viper.GetString("output"); out != "" {
		rp.Output = out
	}
	if viper.GetBool("gz") {
		rp.Compress = true
	}
	if err = rp.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

// NewCoarseMesh reads the named Triangle mesh, or runs the requested generator
func NewCoarseMesh(rp *InputParameters.RefineParameters) (m refinement.Mesh, err error) {
	if rp.Mesh != "" {
		return readfiles.ReadTriangleMesh(rp.Mesh)
	}
	switch rp.Generator {
	case "rectangle":
		return mesh2D.UniformRectangle(rp.XMin, rp.XMax, rp.Nx, rp.YMin, rp.YMax, rp.Ny)
	case "twoelem":
		m = mesh2D.TwoElemSquare()
	case "goofy":
		m = mesh2D.GoofySquare()
	case "line":
		return mesh1D.UniformLine(rp.XMin, rp.XMax, rp.Nx)
	default:
		err = fmt.Errorf("unknown generator [%s]", rp.Generator)
	}
	return
}

func fieldFunc(name string) (f func(x, y float64) float64) {
	switch name {
	case "xy":
		f = func(x, y float64) float64 { return x * y }
	case "x":
		f = func(x, y float64) float64 { return x }
	default:
		f = func(x, y float64) float64 { return math.Sin(math.Pi*x) * math.Sin(math.Pi*y) }
	}
	return
}

// SampleField evaluates f at the mesh vertices, line meshes are sampled along y = 0.5
func SampleField(m refinement.Mesh, f func(x, y float64) float64) (vals []float64) {
	vals = make([]float64, m.NumVertices())
	switch mm := m.(type) {
	case *mesh2D.Mesh:
		for i, v := range mm.Verts {
			vals[i] = f(v.X[0], v.X[1])
		}
	case *mesh1D.Mesh:
		for i, v := range mm.Verts {
			vals[i] = f(v.X, 0.5)
		}
	}
	return
}

func numElements(m refinement.Mesh) int {
	switch mm := m.(type) {
	case *mesh2D.Mesh:
		return mm.NumElements()
	case *mesh1D.Mesh:
		return mm.NumElements()
	}
	return 0
}

/*
RunRefine builds the hierarchy described by rp and reports, per level, the RMS style error between the
sampled field and the field interpolated up from the coarse level (UpErr), and the field restricted
down from the finest level (DownErr). Each error is the 2-norm of the difference over the vertex count
*/
func RunRefine(rp *InputParameters.RefineParameters, w io.Writer) (rep *RefineReport, err error) {
	var (
		coarse refinement.Mesh
		seq    *refinement.Sequence
		f      = fieldFunc(rp.Field)
	)
	if coarse, err = NewCoarseMesh(rp); err != nil {
		return
	}
	if seq, err = refinement.NewSequence(coarse, rp.NumLevels); err != nil {
		return
	}
	var (
		nl         = seq.NumLevels()
		fEx        = make([][]float64, nl)
		fUp, fDown [][]float64
	)
	for i := 0; i < nl; i++ {
		fEx[i] = SampleField(seq.Mesh(i), f)
	}
	if fUp, err = seq.Prolong(fEx[0]); err != nil {
		return
	}
	if fDown, err = seq.MakeVectorSequence(fEx[nl-1]); err != nil {
		return
	}
	rep = &RefineReport{
		Levels: make([]LevelReport, nl),
		Finest: seq.Mesh(nl - 1),
		Seq:    seq,
	}
	for i := 0; i < nl; i++ {
		nv := float64(seq.Mesh(i).NumVertices())
		lr := &rep.Levels[i]
		lr.NumVertices = seq.Mesh(i).NumVertices()
		lr.NumElements = numElements(seq.Mesh(i))
		lr.UpErr = floats.Distance(fUp[i], fEx[i], 2) / nv
		lr.DownErr = floats.Distance(fDown[i], fEx[i], 2) / nv
		fmt.Fprintf(w, "%6d up err = %10.3g down err = %10.3g\n", lr.NumVertices, lr.UpErr, lr.DownErr)
	}
	if rp.Output == "" {
		return
	}
	if coarse.Dim() != 2 {
		klog.V(1).Infof("no .vtu output for dimension %d meshes", coarse.Dim())
		return
	}
	if dir := filepath.Dir(rp.Output); dir != "." {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "unable to create output directory")
		}
	}
	var g errgroup.Group
	for i := 0; i < nl; i++ {
		fileName := fmt.Sprintf("%s.%d.vtu", rp.Output, i)
		if rp.Compress {
			fileName += ".gz"
		}
		rep.Levels[i].FileName = fileName
		vw := readfiles.NewVTKWriter(seq.Mesh(i).(*mesh2D.Mesh))
		fields := map[string][]float64{"fEx": fEx[i], "fUp": fUp[i], "fDown": fDown[i]}
		for _, name := range []string{"fEx", "fUp", "fDown"} {
			if err = vw.AddField(name, fields[name]); err != nil {
				return nil, err
			}
		}
		g.Go(func() error {
			klog.V(1).Infof("writing %s", fileName)
			return vw.WriteFile(fileName)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return
}

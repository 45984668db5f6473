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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	"github.com/notargets/gomesh/geometry2D"
)

// Example geometries written by the poly command, keyed by file stem
var polyExamples = map[string]func() *geometry2D.PSLG{
	"oneHole":  geometry2D.OneHole,
	"twoHoles": geometry2D.TwoHoles,
}

// PolyCmd represents the poly command
var PolyCmd = &cobra.Command{
	Use:   "poly [file.poly ...]",
	Short: "Write the example PSLG geometries, or summarize existing .poly files",
	Long: `
With no arguments, writes oneHole.poly and twoHoles.poly to the output directory, ready for
triangulation with Triangle (for example "triangle -pqea0.01 oneHole.poly"). Given .poly files,
reads each and prints its vertex, segment and hole counts.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		if len(args) == 0 {
			dir, _ := cmd.Flags().GetString("dir")
			_, err = WriteExamplePolys(dir, os.Stdout)
		} else {
			err = SummarizePolys(args, os.Stdout)
		}
		if err != nil {
			klog.Errorf("%v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(PolyCmd)
	PolyCmd.Flags().StringP("dir", "d", ".", "directory for the example .poly files")
}

func WriteExamplePolys(dir string, w io.Writer) (files []string, err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	for _, name := range []string{"oneHole", "twoHoles"} {
		p := polyExamples[name]()
		if err = p.CheckHoles(); err != nil {
			return nil, errors.Wrap(err, name)
		}
		fileName := filepath.Join(dir, name+".poly")
		if err = p.WriteFile(fileName); err != nil {
			return nil, errors.Wrapf(err, "writing %s", fileName)
		}
		fmt.Fprintf(w, "wrote %s: %d vertices, %d segments, %d holes\n",
			fileName, len(p.Verts), len(p.Edges), len(p.Holes))
		files = append(files, fileName)
	}
	return
}

func SummarizePolys(fileNames []string, w io.Writer) (err error) {
	for _, fileName := range fileNames {
		var (
			file *os.File
			p    *geometry2D.PSLG
		)
		if file, err = os.Open(fileName); err != nil {
			return
		}
		p, err = geometry2D.ReadPoly(file, fileName)
		file.Close()
		if err != nil {
			return
		}
		bb := p.BoundingBox()
		fmt.Fprintf(w, "%s: %d vertices, %d segments, %d holes, box [%g,%g]x[%g,%g]\n",
			fileName, len(p.Verts), len(p.Edges), len(p.Holes),
			bb.XMin[0], bb.XMax[0], bb.XMin[1], bb.XMax[1])
	}
	return
}

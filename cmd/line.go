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

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	"github.com/notargets/gomesh/mesh1D"
	"github.com/notargets/gomesh/refinement"
	"github.com/notargets/gomesh/utils"
)

// LineCmd represents the line command
var LineCmd = &cobra.Command{
	Use:   "line",
	Short: "Refine a line mesh and report the transfer operators between levels",
	Long: `
Refines either the irregular four element line on [0,1] or a uniform line of nx segments, and prints
the vertex counts and operator sizes for each level.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err    error
			coarse *mesh1D.Mesh
		)
		nx, _ := cmd.Flags().GetInt("nx")
		levels, _ := cmd.Flags().GetInt("levels")
		dump, _ := cmd.Flags().GetBool("dump")
		if nx == 0 {
			coarse = mesh1D.FourElemLine()
		} else if coarse, err = mesh1D.UniformLine(0, 1, nx); err != nil {
			klog.Errorf("%v", err)
			os.Exit(1)
		}
		if err = RunLine(coarse, levels, dump, os.Stdout); err != nil {
			klog.Errorf("%v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(LineCmd)
	LineCmd.Flags().Int("nx", 0, "number of uniform segments on [0,1], zero for the four element line")
	LineCmd.Flags().IntP("levels", "l", 3, "number of levels, including the coarse mesh")
	LineCmd.Flags().Bool("dump", false, "dump every level")
}

func RunLine(coarse *mesh1D.Mesh, levels int, dump bool, w io.Writer) (err error) {
	var (
		seq *refinement.Sequence
	)
	if seq, err = refinement.NewSequence(coarse, levels); err != nil {
		return
	}
	for i := 0; i < seq.NumLevels(); i++ {
		m := seq.Mesh(i).(*mesh1D.Mesh)
		fmt.Fprintf(w, "level %d: %d vertices, %d elements", i, m.NumVertices(), m.NumElements())
		if i > 0 {
			for _, op := range []utils.CSR{seq.Update(i), seq.Downdate(i)} {
				fmt.Fprintf(w, ", %s nnz = %d", op.Name(), op.NNZ())
			}
		}
		fmt.Fprintln(w)
		if dump {
			m.Dump(w)
		}
	}
	return
}

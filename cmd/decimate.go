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
	"path/filepath"
	"runtime"
	"strings"

	"github.com/notargets/cortsurf/gifti"
	"github.com/notargets/cortsurf/surface"
	"github.com/notargets/cortsurf/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// DecimateCmd represents the decimate command
var DecimateCmd = &cobra.Command{
	Use:   "decimate",
	Short: "Reduce the resolution of one or more surfaces",
	Long: `Downsamples surface meshes toward a fraction of their original vertex
count with deterministic quadric edge collapses. Multiple input files are
independent meshes and are processed concurrently; with --matched they are
instead treated as topologically corresponding cortical layers and
decimated in lockstep, so the outputs share a single face topology.

cortsurf decimate -F white.gii -r 0.1 --iterative`,
	Run: func(cmd *cobra.Command, args []string) {
		inFiles, _ := cmd.Flags().GetStringArray("surfaceFile")
		fraction, _ := cmd.Flags().GetFloat64("ratio")
		iterative, _ := cmd.Flags().GetBool("iterative")
		matched, _ := cmd.Flags().GetBool("matched")
		doProfile, _ := cmd.Flags().GetBool("profile")
		if len(inFiles) == 0 {
			fmt.Println("error: must supply at least one surface file (-F) in GIfTI (.gii) format")
			os.Exit(1)
		}
		if doProfile {
			defer profile.Start().Stop()
		}
		if matched {
			runMatched(inFiles, fraction)
			return
		}
		err := utils.RunBatch(runtime.NumCPU(), len(inFiles), func(i int) error {
			m, err := gifti.Read(inFiles[i])
			if err != nil {
				return err
			}
			var ds *surface.Mesh
			if iterative {
				ds, err = surface.IterativeDownsampleSingleSurface(m, fraction)
			} else {
				ds, err = surface.DownsampleSingleSurface(m, fraction)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d -> %d vertices, %d -> %d faces\n", inFiles[i],
				m.NumVertices(), ds.NumVertices(), m.NumFaces(), ds.NumFaces())
			return gifti.Write(dsName(inFiles[i]), ds)
		})
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

// dsName maps layer.gii to layer.ds.gii, the naming the orientation stage
// expects.
func dsName(inFile string) string {
	ext := filepath.Ext(inFile)
	return strings.TrimSuffix(inFile, ext) + ".ds" + ext
}

func runMatched(inFiles []string, fraction float64) {
	meshes := make([]*surface.Mesh, len(inFiles))
	for i, f := range inFiles {
		m, err := gifti.Read(f)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		meshes[i] = m
	}
	ds, err := surface.DownsampleMultipleSurfaces(meshes, fraction)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	for i, m := range ds {
		fmt.Printf("%s: %d -> %d vertices\n", inFiles[i],
			meshes[i].NumVertices(), m.NumVertices())
		if err = gifti.Write(dsName(inFiles[i]), m); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	}
}

func init() {
	rootCmd.AddCommand(DecimateCmd)
	DecimateCmd.Flags().StringArrayP("surfaceFile", "F", nil, "Surface file(s) to decimate, in GIfTI (.gii) format")
	DecimateCmd.Flags().Float64P("ratio", "r", 0.1, "Target fraction of the original vertex count, in (0,1]")
	DecimateCmd.Flags().BoolP("iterative", "i", false, "repeat passes until the target fraction is reached")
	DecimateCmd.Flags().BoolP("matched", "m", false, "decimate inputs as corresponding cortical layers sharing one topology")
	DecimateCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

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

	"github.com/notargets/cortsurf/gifti"
	"github.com/notargets/cortsurf/surface"
	"github.com/spf13/cobra"
)

// CombineCmd represents the combine command
var CombineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Concatenate surfaces into one composite mesh",
	Long: `Concatenates the vertex and face arrays of the input surfaces in
order, offsetting face indices by the cumulative vertex counts. Used to
assemble multi-layer or multi-region composite surfaces; no geometry is
modified.

cortsurf combine -F pial.ds.gii -F white.ds.gii -o combined.ds.gii`,
	Run: func(cmd *cobra.Command, args []string) {
		inFiles, _ := cmd.Flags().GetStringArray("surfaceFile")
		outFile, _ := cmd.Flags().GetString("outputFile")
		if len(inFiles) < 2 || outFile == "" {
			fmt.Println("error: must supply at least two surface files (-F) and an output file (-o)")
			os.Exit(1)
		}
		meshes := make([]*surface.Mesh, len(inFiles))
		for i, f := range inFiles {
			m, err := gifti.Read(f)
			if err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			meshes[i] = m
		}
		combined := surface.CombineSurfaces(meshes)
		fmt.Printf("%d surfaces -> %d vertices, %d faces\n", len(meshes),
			combined.NumVertices(), combined.NumFaces())
		if err := gifti.Write(outFile, combined); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(CombineCmd)
	CombineCmd.Flags().StringArrayP("surfaceFile", "F", nil, "Surface files to combine, in input order")
	CombineCmd.Flags().StringP("outputFile", "o", "", "Output surface file")
}

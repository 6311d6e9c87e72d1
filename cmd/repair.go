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

// RepairCmd represents the repair command
var RepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Remove non-manifold edges and unconnected vertices from a surface",
	Long: `Removes every face touching an edge shared by more than two faces,
repeating until the surface is manifold, then prunes vertices left without
any face.

cortsurf repair -F pial.gii -o pial.fixed.gii`,
	Run: func(cmd *cobra.Command, args []string) {
		inFile, _ := cmd.Flags().GetString("surfaceFile")
		outFile, _ := cmd.Flags().GetString("outputFile")
		if inFile == "" || outFile == "" {
			fmt.Println("error: must supply a surface file (-F) and an output file (-o)")
			os.Exit(1)
		}
		m, err := gifti.Read(inFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		defects := surface.FindNonManifoldEdges(m.Faces)
		verts, faces := surface.FixNonManifoldEdges(m.Vertices, m.Faces)
		repaired := &surface.Mesh{Vertices: verts, Faces: faces, Normals: m.Normals}
		repaired = surface.RemoveUnconnectedVertices(repaired)
		fmt.Printf("%s: %d non-manifold edges, %d/%d faces and %d/%d vertices kept\n",
			inFile, len(defects), repaired.NumFaces(), m.NumFaces(),
			repaired.NumVertices(), m.NumVertices())
		if err = gifti.Write(outFile, repaired); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(RepairCmd)
	RepairCmd.Flags().StringP("surfaceFile", "F", "", "Surface file to repair, in GIfTI (.gii) format")
	RepairCmd.Flags().StringP("outputFile", "o", "", "Output surface file")
}

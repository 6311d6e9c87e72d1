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
	"bufio"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/notargets/cortsurf/InputParameters"
	"github.com/notargets/cortsurf/gifti"
	"github.com/spf13/cobra"
)

// OrientCmd represents the orient command
var OrientCmd = &cobra.Command{
	Use:   "orient",
	Short: "Compute per-vertex dipole orientation vectors for cortical layers",
	Long: `Computes one unit orientation vector per vertex per cortical layer
from the layer surfaces named in the YAML parameter file, using one of the
methods link_vector, ds_surf_norm, orig_surf_norm or cps.

cortsurf orient -I subject.yaml -o orientations.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		ipFile, _ := cmd.Flags().GetString("inputParametersFile")
		outFile, _ := cmd.Flags().GetString("outputFile")
		pp := processOrientInput(ipFile, outFile)
		orientations, err := gifti.ComputeDipoleOrientations(
			pp.OrientationMethod, pp.LayerNames, pp.SurfaceDir, pp.FixedOrientation)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = writeOrientations(outFile, pp.LayerNames, orientations); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("%d layers x %d vertices oriented with [%s]\n",
			len(orientations), len(orientations[0]), pp.OrientationMethod)
	},
}

func processOrientInput(ipFile, outFile string) (pp *InputParameters.PipelineParameters) {
	var (
		willExit bool
	)
	if len(ipFile) == 0 {
		fmt.Println("error: must supply an input parameters file (-I, --inputParametersFile)")
		exampleFile := `
########################################
Title: "Sample Subject"
SurfaceDir: ./output
LayerNames: [pial, white]
OrientationMethod: link_vector  # or ds_surf_norm, orig_surf_norm, cps
FixedOrientation: true
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if len(outFile) == 0 {
		fmt.Println("error: must supply an output file (-o)")
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	data, err := ioutil.ReadFile(ipFile)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	pp = &InputParameters.PipelineParameters{}
	if err = pp.Parse(data); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	pp.Print()
	return
}

// writeOrientations emits one "layer vx vy vz" line per vertex per layer,
// layers in parameter-file order.
func writeOrientations(filename string, layerNames []string, orientations [][][3]float64) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for li, layer := range orientations {
		for _, v := range layer {
			fmt.Fprintf(w, "%s %.9g %.9g %.9g\n", layerNames[li], v[0], v[1], v[2])
		}
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(OrientCmd)
	OrientCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file naming the surface directory, layers and method")
	OrientCmd.Flags().StringP("outputFile", "o", "", "Output file, one orientation vector per vertex per layer")
}

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
	"os"
	"strconv"
	"strings"

	"github.com/notargets/cortsurf/gifti"
	"github.com/notargets/cortsurf/surface"
	"github.com/spf13/cobra"
)

// InterpCmd represents the interp command
var InterpCmd = &cobra.Command{
	Use:   "interp",
	Short: "Map per-vertex data between surfaces of different resolution",
	Long: `Assigns each vertex of the target surface the value of its nearest
vertex on the source surface. Data files are one value per line.

cortsurf interp --target white.gii --source white.ds.gii --data ds_values.txt -o values.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		targetFile, _ := cmd.Flags().GetString("target")
		sourceFile, _ := cmd.Flags().GetString("source")
		dataFile, _ := cmd.Flags().GetString("data")
		outFile, _ := cmd.Flags().GetString("outputFile")
		if targetFile == "" || sourceFile == "" || dataFile == "" || outFile == "" {
			fmt.Println("error: must supply --target, --source, --data and -o files")
			os.Exit(1)
		}
		target, err := gifti.Read(targetFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		source, err := gifti.Read(sourceFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		values, err := readValues(dataFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		interp, err := surface.InterpolateData(target, source, values)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = writeValues(outFile, interp); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("%d source values -> %d target values\n", len(values), len(interp))
	},
}

func readValues(filename string) (values []float64, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var v float64
		if v, err = strconv.ParseFloat(line, 64); err != nil {
			return
		}
		values = append(values, v)
	}
	err = scanner.Err()
	return
}

func writeValues(filename string, values []float64) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, v := range values {
		fmt.Fprintf(w, "%.17g\n", v)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(InterpCmd)
	InterpCmd.Flags().String("target", "", "Target surface file, in GIfTI (.gii) format")
	InterpCmd.Flags().String("source", "", "Source surface file, in GIfTI (.gii) format")
	InterpCmd.Flags().String("data", "", "Per-vertex data for the source surface, one value per line")
	InterpCmd.Flags().StringP("outputFile", "o", "", "Output data file, one value per target vertex")
}

package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file driving a subject's
// surface pipeline
type PipelineParameters struct {
	Title             string   `yaml:"Title"`
	SurfaceDir        string   `yaml:"SurfaceDir"`
	LayerNames        []string `yaml:"LayerNames"` // Outermost first, innermost last
	OrientationMethod string   `yaml:"OrientationMethod"`
	FixedOrientation  bool     `yaml:"FixedOrientation"`
	DownsampleFactor  float64  `yaml:"DownsampleFactor"`
	Iterative         bool     `yaml:"Iterative"`
}

func (pp *PipelineParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, pp)
}

func (pp *PipelineParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", pp.Title)
	fmt.Printf("[%s]\t\t= SurfaceDir\n", pp.SurfaceDir)
	fmt.Printf("%v\t\t= LayerNames\n", pp.LayerNames)
	fmt.Printf("[%s]\t= OrientationMethod\n", pp.OrientationMethod)
	fmt.Printf("[%v]\t\t\t= FixedOrientation\n", pp.FixedOrientation)
	fmt.Printf("%8.5f\t\t= DownsampleFactor\n", pp.DownsampleFactor)
	fmt.Printf("[%v]\t\t\t= Iterative\n", pp.Iterative)
}

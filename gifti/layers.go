package gifti

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/notargets/cortsurf/surface"
)

/*
LoadLayers reads the per-layer surfaces for a subject from dir. Each layer
name maps to "<name>.ds.gii" (the decimated surface, required) and
"<name>.gii" (the original high-resolution surface, loaded when present -
only the normal-mapping orientation methods need it).
*/
func LoadLayers(layerNames []string, dir string) (layers []surface.Layer, err error) {
	layers = make([]surface.Layer, len(layerNames))
	for i, name := range layerNames {
		l := surface.Layer{Name: name}
		if l.Ds, err = Read(filepath.Join(dir, name+".ds.gii")); err != nil {
			return nil, fmt.Errorf("layer %s: %v", name, err)
		}
		origPath := filepath.Join(dir, name+".gii")
		if _, statErr := os.Stat(origPath); statErr == nil {
			if l.Orig, err = Read(origPath); err != nil {
				return nil, fmt.Errorf("layer %s: %v", name, err)
			}
		}
		layers[i] = l
	}
	return
}

/*
ComputeDipoleOrientations loads the named cortical layer surfaces from dir
and computes per-vertex dipole orientation vectors with the requested
method. It is the file-level entry point over
surface.DipoleOrientations; see there for the method definitions and the
fixed-orientation semantics. The result holds one unit vector per vertex
per layer, ordered as the layer name list.
*/
func ComputeDipoleOrientations(method string, layerNames []string, dir string, fixed bool) (orientations [][][3]float64, err error) {
	layers, err := LoadLayers(layerNames, dir)
	if err != nil {
		return
	}
	orientations, err = surface.DipoleOrientations(method, layers, fixed)
	return
}

package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Mesh generators available when no Triangle mesh is named
var Generators = map[string]string{
	"rectangle": "uniform rectangle of Nx by Ny cells",
	"twoelem":   "unit square split along a diagonal",
	"goofy":     "irregular 13 element unit square",
	"line":      "uniform line of Nx segments on [XMin,XMax]",
}

// Test fields sampled at the mesh vertices of every level
var Fields = map[string]string{
	"sinsin": "sin(pi x) sin(pi y)",
	"xy":     "x y",
	"x":      "x",
}

// Parameters obtained from the YAML run file, ghodss/yaml matches keys through the json tags
type RefineParameters struct {
	Title     string  `json:"Title"`
	Mesh      string  `json:"Mesh"` // Triangle basename, reads Mesh.node, Mesh.edge and Mesh.ele
	Generator string  `json:"Generator"`
	Nx        int     `json:"Nx"`
	Ny        int     `json:"Ny"`
	XMin      float64 `json:"XMin"`
	XMax      float64 `json:"XMax"`
	YMin      float64 `json:"YMin"`
	YMax      float64 `json:"YMax"`
	NumLevels int     `json:"NumLevels"`
	Field     string  `json:"Field"`
	Output    string  `json:"Output"` // Prefix of the per level .vtu files, empty for none
	Compress  bool    `json:"Compress"`
}

func NewRefineParameters() (rp *RefineParameters) {
	rp = &RefineParameters{
		Generator: "twoelem",
		Nx:        4,
		Ny:        4,
		XMax:      1,
		YMax:      1,
		NumLevels: 3,
		Field:     "sinsin",
	}
	return
}

// Parse overlays the run file on the current values
func (rp *RefineParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, rp); err != nil {
		return
	}
	return rp.Validate()
}

func (rp *RefineParameters) Validate() (err error) {
	if rp.NumLevels < 1 {
		return fmt.Errorf("NumLevels must be at least 1, have %d", rp.NumLevels)
	}
	if _, ok := Fields[rp.Field]; !ok {
		return fmt.Errorf("unknown Field [%s], choose from %v", rp.Field, sortedKeys(Fields))
	}
	if rp.Mesh == "" {
		if _, ok := Generators[rp.Generator]; !ok {
			return fmt.Errorf("unknown Generator [%s], choose from %v", rp.Generator, sortedKeys(Generators))
		}
		if rp.Nx < 1 || (rp.Generator == "rectangle" && rp.Ny < 1) {
			return fmt.Errorf("need at least one cell in each direction, have Nx = %d, Ny = %d", rp.Nx, rp.Ny)
		}
	}
	return
}

func (rp *RefineParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	if rp.Mesh != "" {
		fmt.Printf("[%s]\t\t= Mesh\n", rp.Mesh)
	} else {
		fmt.Printf("[%s]\t\t= Generator, %s\n", rp.Generator, Generators[rp.Generator])
		fmt.Printf("[%d x %d]\t\t= Nx x Ny\n", rp.Nx, rp.Ny)
		fmt.Printf("[%g,%g]x[%g,%g]\t= Domain\n", rp.XMin, rp.XMax, rp.YMin, rp.YMax)
	}
	fmt.Printf("[%d]\t\t\t= Number of Levels\n", rp.NumLevels)
	fmt.Printf("[%s]\t\t= Field, %s\n", rp.Field, Fields[rp.Field])
	if rp.Output != "" {
		fmt.Printf("[%s]\t\t= Output, compressed = %v\n", rp.Output, rp.Compress)
	}
}

func sortedKeys(m map[string]string) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

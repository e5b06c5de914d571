package ssimulacra

import(
	"fmt"
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

verbosity: 1
keepheatmaps: true
debugprefix: out/diff
writehdr: false
tonemapper: drago03
dumpgrids: true

*/

// Config controls the side channels of a comparison. The score itself
// does not depend on any of it; the weights are fixed.
type Config struct {
	Verbosity    int

	// Fill in Result.SSIMMap and Result.EdgeDiffMap (scale 0, only for >=3 channels)
	KeepHeatmaps bool

	// Where debug output goes; outputs are named <prefix>.<something>.png
	DebugPrefix  string
	WriteHDR     bool   // also write the raw float maps as .hdr files
	Tonemapper   string // also write a tonemapped edge-diff map, see heatmap.Tonemappers
	DumpGrids    bool // write a grayscale image for each SSIM channel map at every scale
}

func NewConfig() Config {
	return Config{}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func LoadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	c, err := newConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config parse %s: %v", filename, err)
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Printf("Can't marshal config yaml: %v\n", err)
		return ""
	}
	return string(b)
}

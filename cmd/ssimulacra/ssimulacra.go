package main

import(
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abworrall/ssimulacra/pkg/eimage"
	"github.com/abworrall/ssimulacra/pkg/heatmap"
	"github.com/abworrall/ssimulacra/pkg/ssimulacra"
)

type options struct {
	Verbosity  int
	ConfigFile string
	WriteHDR   bool
	DumpGrids  bool
	Tonemapper string
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("ssimulacra", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&opts.Verbosity, "v", 0, "how verbose to get (logs go to stderr)")
	fs.StringVar(&opts.ConfigFile, "config", "", "yaml file of settings; flags given explicitly win")
	fs.BoolVar(&opts.WriteHDR, "hdr", false, "with a prefix, also write the raw maps as <prefix>.ssim.hdr and <prefix>.edgediff.hdr")
	fs.BoolVar(&opts.DumpGrids, "dumpgrids", false, "write a grayscale png of every SSIM channel, at every scale")
	fs.StringVar(&opts.Tonemapper, "tonemapper", "", "with a prefix, also write tonemapped maps using one of "+heatmap.ListTonemappers())

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s orig_image distorted_image [difference output prefix]\n", fs.Name())
		fmt.Fprintf(stderr, "Returns a value between 0 (images are identical) and 1 (images are very different)\n")
		fmt.Fprintf(stderr, "If the value is above 0.1 (or so), the distortion is likely to be perceptible / annoying.\n")
		fmt.Fprintf(stderr, "If the value is below 0.01 (or so), the distortion is likely to be imperceptible.\n")
		fs.PrintDefaults()
	}
	return fs
}

// getConfig layers the config file, then any flags given explicitly,
// then the positional prefix. Anything that names a prefix wants the
// heatmaps.
func getConfig(fs *flag.FlagSet, opts options, prefix string) (ssimulacra.Config, error) {
	cfg := ssimulacra.NewConfig()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = ssimulacra.LoadConfig(opts.ConfigFile); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":          cfg.Verbosity = opts.Verbosity
		case "hdr":        cfg.WriteHDR = opts.WriteHDR
		case "dumpgrids":  cfg.DumpGrids = opts.DumpGrids
		case "tonemapper": cfg.Tonemapper = opts.Tonemapper
		}
	})

	if prefix != "" {
		cfg.DebugPrefix = prefix
	}
	if cfg.DebugPrefix != "" {
		cfg.KeepHeatmaps = true
	}

	if cfg.Tonemapper != "" && !knownTonemapper(cfg.Tonemapper) {
		return cfg, fmt.Errorf("tonemapper %q not recognized, wanted %s", cfg.Tonemapper, heatmap.ListTonemappers())
	}
	return cfg, nil
}

func knownTonemapper(name string) bool {
	for _, tm := range heatmap.Tonemappers {
		if tm == name {
			return true
		}
	}
	return false
}

func writeHeatmaps(cfg ssimulacra.Config, res ssimulacra.Result) error {
	if res.SSIMMap == nil {
		return nil // grayscale
	}

	if err := heatmap.WriteSSIM(cfg.DebugPrefix, res.SSIMMap); err != nil {
		return err
	}
	if err := heatmap.WriteEdgeDiff(cfg.DebugPrefix, res.EdgeDiffMap); err != nil {
		return err
	}

	if cfg.WriteHDR {
		if err := heatmap.WriteHDR(cfg.DebugPrefix+".ssim.hdr", res.SSIMMap); err != nil {
			return err
		}
		if err := heatmap.WriteHDR(cfg.DebugPrefix+".edgediff.hdr", res.EdgeDiffMap); err != nil {
			return err
		}
	}

	if cfg.Tonemapper != "" {
		filename := fmt.Sprintf("%s.edgediff-%s.png", cfg.DebugPrefix, cfg.Tonemapper)
		if err := heatmap.WriteTonemapped(filename, res.EdgeDiffMap, cfg.Tonemapper); err != nil {
			return err
		}
	}

	return nil
}

// run is the whole command; it returns the process exit status. Only
// the score goes to stdout.
func run(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)
	log.SetFlags(0)

	fail := func(err error) int {
		fmt.Fprintf(stderr, "%v\n", err)
		return -1
	}

	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		return -1 // fs has already reported it
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return -1
	}

	prefix := ""
	if fs.NArg() > 2 {
		prefix = fs.Arg(2)
	}

	cfg, err := getConfig(fs, opts, prefix)
	if err != nil {
		return fail(err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	orig, err := eimage.Load(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	dist, err := eimage.Load(fs.Arg(1))
	if err != nil {
		return fail(err)
	}

	res, err := ssimulacra.Compare(cfg, orig, dist)
	if err != nil {
		return fail(err)
	}

	if cfg.DebugPrefix != "" {
		if err := writeHeatmaps(cfg, res); err != nil {
			log.Printf("writing heatmaps: %v\n", err)
		}
	}

	fmt.Fprintf(stdout, "%.8f\n", res.Score)
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

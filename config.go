package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the fully-resolved, read-only configuration shared by every
// worker for the duration of a run. It is constructed once in main and
// never mutated afterwards.
type Config struct {
	InputPath  string
	OutputPath string

	Matrix  MatrixKind
	Layout  ChannelLayout
	MinAmp  float64 // -minimum: amplitude threshold for pan
	LowHz   float64 // -low: lowest steered frequency
	Loud    bool
	Quiet   bool
	Threads int

	KeepAwake bool

	MetricsAddr string // optional -metrics-addr debug endpoint, empty disables it
	DryRun      bool
}

// fileDefaults is the on-disk YAML shape of an optional -defaults file:
// the subset of Config that can be pre-seeded before flag parsing.
type fileDefaults struct {
	Matrix    string  `yaml:"matrix"`
	Channels  string  `yaml:"channels"`
	Minimum   float64 `yaml:"minimum"`
	Low       float64 `yaml:"low"`
	Loud      bool    `yaml:"loud"`
	Quiet     bool    `yaml:"quiet"`
	Threads   int     `yaml:"threads"`
	KeepAwake *bool   `yaml:"keepawake"`
}

func loadFileDefaults(path string) (*fileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newIOError("failed to read defaults file", err)
	}
	var fd fileDefaults
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, newConfigError("failed to parse -defaults %s: %v", path, err)
	}
	return &fd, nil
}

// parseArgs parses the CLI flags documented in §6 into a Config, applying
// an optional -defaults YAML file as pre-seeded flag defaults. Flags given
// explicitly on the command line always win over the YAML file.
func parseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("surroundup", flag.ContinueOnError)

	matrixName := fs.String("matrix", "default", "decoder matrix: default, horseshoe, dolby, qs, rm, sq, sqexperimental")
	channelsName := fs.String("channels", "5.1", "output channel layout: 4, 5, or 5.1")
	minimum := fs.Float64("minimum", 0.01, "amplitude threshold for pan (must be > 0)")
	low := fs.Float64("low", 20, "lowest steered frequency in Hz (must be > 0 and < sr/2)")
	loud := fs.Bool("loud", false, "disable quiet-mode center/LFE attenuation")
	quiet := fs.Bool("quiet", false, "force quiet-mode center/LFE attenuation")
	threads := fs.Int("threads", 0, "worker thread count (0 = platform hint)")
	keepawake := fs.Bool("keepawake", true, "hold a best-effort OS wake lock while running")
	defaultsPath := fs.String("defaults", "", "optional YAML file of flag defaults")
	metricsAddr := fs.String("metrics-addr", "", "optional host:port to serve Prometheus metrics on while running")
	dryRun := fs.Bool("dry-run", false, "validate flags and print the resolved window plan, without reading or writing audio")
	version := fs.Bool("version", false, "print the version and exit")

	// A -defaults file only changes flag *defaults*: a first Parse finds
	// its path, the file's values are installed, and a second Parse of the
	// same args puts back every flag the user actually typed on top.
	if err := fs.Parse(args); err != nil {
		return nil, newConfigError("%v", err)
	}

	if *defaultsPath != "" {
		fd, err := loadFileDefaults(*defaultsPath)
		if err != nil {
			return nil, err
		}
		if fd.Matrix != "" {
			_ = matrixName
			*matrixName = fd.Matrix
		}
		if fd.Channels != "" {
			*channelsName = fd.Channels
		}
		if fd.Minimum != 0 {
			*minimum = fd.Minimum
		}
		if fd.Low != 0 {
			*low = fd.Low
		}
		*loud = fd.Loud
		*quiet = fd.Quiet
		if fd.Threads != 0 {
			*threads = fd.Threads
		}
		if fd.KeepAwake != nil {
			*keepawake = *fd.KeepAwake
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, newConfigError("%v", err)
	}

	if *version {
		fmt.Println(buildVersion)
		os.Exit(exitOK)
	}

	if !*dryRun {
		positional := fs.Args()
		if len(positional) != 2 {
			return nil, newConfigError("expected <input.wav> <output.wav>, got %d positional argument(s)", len(positional))
		}
	}

	matrix, err := parseMatrixKind(*matrixName)
	if err != nil {
		return nil, err
	}

	layout, err := parseChannelLayout(*channelsName)
	if err != nil {
		return nil, err
	}

	if *minimum <= 0 {
		return nil, newConfigError("-minimum must be > 0, got %g", *minimum)
	}
	if *low <= 0 {
		return nil, newConfigError("-low must be > 0, got %g", *low)
	}
	if *loud && *quiet {
		return nil, newConfigError("-loud and -quiet are mutually exclusive")
	}
	if *quiet && layout == Layout4_0 {
		return nil, newConfigError("-quiet is invalid with -channels 4 (4.0 has no center/LFE to quiet)")
	}
	if *loud && layout == Layout4_0 {
		return nil, newConfigError("-loud is invalid with -channels 4 (4.0 has no center/LFE to quiet)")
	}
	if *threads < 0 {
		return nil, newConfigError("-threads must be >= 0, got %d", *threads)
	}

	cfg := &Config{
		Matrix:      matrix,
		Layout:      layout,
		MinAmp:      *minimum,
		LowHz:       *low,
		Loud:        *loud,
		Quiet:       *quiet,
		Threads:     *threads,
		KeepAwake:   *keepawake,
		MetricsAddr: *metricsAddr,
		DryRun:      *dryRun,
	}

	if !*dryRun {
		positional := fs.Args()
		cfg.InputPath = positional[0]
		cfg.OutputPath = positional[1]
	}

	if cfg.Threads == 0 {
		cfg.Threads = defaultThreadCount()
	}

	return cfg, nil
}

// centerLFEQuiet resolves the level-policy scaling contract of §4.7:
// 4.0 has no center/LFE to scale (both -loud and -quiet rejected above);
// 5.0/5.1 default to quiet (1/sqrt(2) scaling), with -loud disabling it and
// -quiet a no-op restating the default.
func (c *Config) centerLFEQuiet() bool {
	switch c.Layout {
	case Layout4_0:
		return false
	default:
		return !c.Loud
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

const buildVersion = "surroundup 1.0.0"

package config

import "flag"

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagBase          = flag.String("base", "", "Base mesh (.obj)")
	flagTargetPattern = flag.String("targets", "", "Target mesh pattern, e.g. faces/%d.obj")
	flagTargetCount   = flag.Int("count", 0, "Number of target meshes")
	flagWeights       = flag.String("weights", "", "Weight file, one value per line")
	flagCapturePrefix = flag.String("capture-prefix", "", "Prefix for captured frame files")
	flagCaptureFormat = flag.String("capture-format", "", "Capture format: ppm, png or webp")
	flagBlendNormals  = flag.Bool("blend-normals", false, "Blend normals as well as positions")
	flagWidth         = flag.Int("width", 0, "Window width")
	flagHeight        = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagBase != "" {
		cfg.Shapes.Base = *flagBase
	}
	if *flagTargetPattern != "" {
		cfg.Shapes.Targets = nil
		cfg.Shapes.TargetPattern = *flagTargetPattern
	}
	if *flagTargetCount > 0 {
		cfg.Shapes.TargetCount = *flagTargetCount
	}
	if *flagWeights != "" {
		cfg.Shapes.Weights = *flagWeights
	}
	if *flagCapturePrefix != "" {
		cfg.Capture.Prefix = *flagCapturePrefix
	}
	if *flagCaptureFormat != "" {
		cfg.Capture.Format = *flagCaptureFormat
	}
	if *flagBlendNormals {
		cfg.Render.BlendNormals = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}

package config

const (
	defaultConfigPath       = "~/.config/adrtools/config.toml"
	projectConfigName       = "adrtools.toml"
	defaultOutputDir        = "."
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultFrameRate        = 25.0
	defaultIdealSeconds     = 5.0
	defaultMaxSeconds       = 8.0
	defaultMaxGapTicks      = 500
	defaultRatio            = 75
	defaultSplitRatio       = 80
	defaultDensityWindows   = 100
	defaultWorkers          = 4
	defaultScriptExtension  = ".tsv"
	defaultCueExtension     = ".gen.TAB"
	defaultUnknownCharacter = "UNKNOWN"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Timing: Timing{
			FrameRate:    defaultFrameRate,
			IdealSeconds: defaultIdealSeconds,
			MaxSeconds:   defaultMaxSeconds,
			MaxGapTicks:  defaultMaxGapTicks,
		},
		Speakers: Speakers{
			Ratio:            defaultRatio,
			SplitRatio:       defaultSplitRatio,
			ExcludeFromMerge: []string{defaultUnknownCharacter},
		},
		Density: Density{
			Windows: defaultDensityWindows,
		},
		Batch: Batch{
			Workers:         defaultWorkers,
			ScriptExtension: defaultScriptExtension,
			CueExtension:    defaultCueExtension,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

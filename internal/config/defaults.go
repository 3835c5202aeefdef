package config

const (
	defaultDataDir              = "~/.local/share/muscat"
	defaultLogDir               = "~/.local/share/muscat/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultScanProgressInterval = 500
	defaultCopyProgressInterval = 250
)

// fixedExcludeExtensions are skipped during traversal regardless of user
// configuration. Property lists and image thumbnails are catalog noise.
var fixedExcludeExtensions = []string{"plist", "jpg"}

// FixedExcludeExtensions returns the extensions every scan skips no matter
// what the configuration adds.
func FixedExcludeExtensions() []string {
	return append([]string(nil), fixedExcludeExtensions...)
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Scan: Scan{
			ExcludeExtensions: FixedExcludeExtensions(),
			ProgressInterval:  defaultScanProgressInterval,
		},
		Copy: Copy{
			ProgressInterval: defaultCopyProgressInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

// Default configuration values.
const (
	DefaultCacheDir    = ".archlens"
	DefaultScanWorkers = 4
)

// ApplyDefaults applies default values to a ProjectConfig.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = DefaultScanWorkers
	}
}

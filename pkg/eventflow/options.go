package eventflow

// Default documentation metadata.
const (
	DefaultTitle   = "Events Documentation"
	DefaultVersion = "1.0.0"
)

// buildConfig holds configuration for a documentation build.
type buildConfig struct {
	title   string
	version string
}

// defaultBuildConfig returns the default build configuration.
func defaultBuildConfig() buildConfig {
	return buildConfig{
		title:   DefaultTitle,
		version: DefaultVersion,
	}
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithTitle sets Info.Title.
// Default: "Events Documentation"
func WithTitle(title string) BuildOption {
	return func(c *buildConfig) {
		if title != "" {
			c.title = title
		}
	}
}

// WithVersion sets Info.Version.
// Default: "1.0.0"
func WithVersion(version string) BuildOption {
	return func(c *buildConfig) {
		if version != "" {
			c.version = version
		}
	}
}

package config

const (
	defaultStagingDir             = "~/.cache/fanvault/staging"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultDownloadTimeoutSeconds = 600
	defaultBuildTimeoutSeconds    = 3600
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			Fanficfare:   "fanficfare",
			EbookConvert: "ebook-convert",
			Zimwriterfs:  "zimwriterfs",
		},
		Download: Download{
			IncludeImages:  true,
			TimeoutSeconds: defaultDownloadTimeoutSeconds,
		},
		Build: Build{
			StagingDir:     defaultStagingDir,
			TimeoutSeconds: defaultBuildTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

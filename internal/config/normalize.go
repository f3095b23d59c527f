package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTools()
	if err := c.normalizeBuild(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.Fanficfare = strings.TrimSpace(c.Tools.Fanficfare)
	if c.Tools.Fanficfare == "" {
		c.Tools.Fanficfare = "fanficfare"
	}
	c.Tools.EbookConvert = strings.TrimSpace(c.Tools.EbookConvert)
	if c.Tools.EbookConvert == "" {
		c.Tools.EbookConvert = "ebook-convert"
	}
	c.Tools.Zimwriterfs = strings.TrimSpace(c.Tools.Zimwriterfs)
	if c.Tools.Zimwriterfs == "" {
		c.Tools.Zimwriterfs = "zimwriterfs"
	}
}

func (c *Config) normalizeBuild() error {
	if strings.TrimSpace(c.Build.StagingDir) == "" {
		c.Build.StagingDir = defaultStagingDir
	}
	var err error
	if c.Build.StagingDir, err = expandPath(c.Build.StagingDir); err != nil {
		return fmt.Errorf("build.staging_dir: %w", err)
	}
	if c.Build.TimeoutSeconds <= 0 {
		c.Build.TimeoutSeconds = defaultBuildTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"fanvault/internal/config"
	"fanvault/internal/history"
	"fanvault/internal/logging"
	"fanvault/internal/project"
	"fanvault/internal/services/ebookconvert"
	"fanvault/internal/services/fanficfare"
	"fanvault/internal/services/zimwriterfs"
)

type commandContext struct {
	configFlag  *string
	projectFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, projectFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		projectFlag: projectFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: os.Stderr,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) projectPath() string {
	if c.projectFlag == nil || strings.TrimSpace(*c.projectFlag) == "" {
		return "."
	}
	return strings.TrimSpace(*c.projectFlag)
}

func (c *commandContext) openProject() (*project.Project, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return project.Open(c.projectPath(), logger)
}

func (c *commandContext) fetcher() (*fanficfare.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return fanficfare.New(cfg.Tools.Fanficfare,
		fanficfare.WithTimeout(time.Duration(cfg.Download.TimeoutSeconds)*time.Second))
}

func (c *commandContext) converter() (*ebookconvert.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return ebookconvert.New(cfg.Tools.EbookConvert)
}

func (c *commandContext) packager() (*zimwriterfs.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return zimwriterfs.New(cfg.Tools.Zimwriterfs,
		zimwriterfs.WithTimeout(time.Duration(cfg.Build.TimeoutSeconds)*time.Second))
}

func (c *commandContext) openHistory(p *project.Project) (*history.Store, error) {
	return history.Open(p.Path)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

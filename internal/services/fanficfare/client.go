package fanficfare

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"fanvault/internal/services"
)

// DefaultBinary is used when the configuration names no retrieval tool.
const DefaultBinary = "fanficfare"

// outputTemplate tells the tool to place each story under
// SOURCE/ID/story.EXT beneath the working directory. The placeholders are
// expanded by the tool itself from the story's own metadata.
const outputTemplate = "${siteabbrev}" + string(filepath.Separator) +
	"${storyId}" + string(filepath.Separator) + "story${formatext}"

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout caps how long one fetch may run. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps fanficfare CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    services.Executor
}

// New constructs a fanficfare client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("fanficfare binary required")
	}
	client := &Client{
		binary: binary,
		exec:   services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Fetch downloads the story behind url into an artifact directory beneath
// storyRoot and returns the metadata JSON the tool prints on stdout.
func (c *Client) Fetch(ctx context.Context, url, storyRoot string, includeImages bool) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, services.Wrap(services.ErrValidation, "fanficfare", "fetch", "url required", nil)
	}
	if strings.TrimSpace(storyRoot) == "" {
		return nil, services.Wrap(services.ErrValidation, "fanficfare", "fetch", "story root required", nil)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"-f", "html",
		"-j",
		"--non-interactive",
		"-o", "is_adult=true",
		"-o", "output_filename=" + outputTemplate,
	}
	if includeImages {
		args = append(args,
			"-o", "include_images=true",
			"-o", "skip_author_cover=false",
		)
	}
	args = append(args, url)

	var out strings.Builder
	err := c.exec.Run(ctx, services.Command{
		Binary: c.binary,
		Args:   args,
		Dir:    storyRoot,
	}, func(line string) {
		out.WriteString(line)
		out.WriteByte('\n')
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "fanficfare", "fetch", url, err)
	}

	metadata := strings.TrimSpace(out.String())
	if metadata == "" {
		return nil, services.Wrap(services.ErrExternalTool, "fanficfare", "fetch", "tool produced no metadata", nil)
	}
	return []byte(metadata), nil
}

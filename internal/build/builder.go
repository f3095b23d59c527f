package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"fanvault/internal/catalog"
	"fanvault/internal/fileutil"
	"fanvault/internal/language"
	"fanvault/internal/logging"
	"fanvault/internal/project"
	"fanvault/internal/render"
	"fanvault/internal/services/zimwriterfs"
	"fanvault/internal/target"
)

// Packager packs a rendered archive tree into the output file.
type Packager interface {
	Build(ctx context.Context, req zimwriterfs.BuildRequest, onProgress func(string)) error
}

// Request describes one build run.
type Request struct {
	OutputPath         string
	IncludeSubprojects bool
	// KeepStaging leaves the staging tree in place for inspection.
	KeepStaging bool
}

// Result reports what a finished build produced.
type Result struct {
	OutputPath string
	Stats      catalog.Stats
}

// Builder renders and packages projects.
type Builder struct {
	stagingRoot string
	engine      *catalog.Engine
	renderer    *render.Renderer
	packager    Packager
	logger      *slog.Logger
}

// New constructs a builder that stages under stagingRoot.
func New(stagingRoot string, packager Packager, logger *slog.Logger) (*Builder, error) {
	if stagingRoot == "" {
		return nil, fmt.Errorf("staging root required")
	}
	if packager == nil {
		return nil, fmt.Errorf("packager required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	renderer, err := render.New(logger)
	if err != nil {
		return nil, err
	}
	return &Builder{
		stagingRoot: stagingRoot,
		engine:      catalog.NewEngine(logger),
		renderer:    renderer,
		packager:    packager,
		logger:      logging.NewComponentLogger(logger, "build"),
	}, nil
}

// Run builds one project into req.OutputPath. The project lock is held for
// the whole run so downloads cannot race the story copy.
func (b *Builder) Run(ctx context.Context, p *project.Project, req Request) (*Result, error) {
	if req.OutputPath == "" {
		return nil, fmt.Errorf("output path required")
	}
	if info, err := os.Stat(req.OutputPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s points to a directory", project.ErrAlreadyExists, req.OutputPath)
	}

	release, err := p.Lock()
	if err != nil {
		return nil, err
	}
	defer release()

	idx, err := b.engine.Aggregate(p, req.IncludeSubprojects)
	if err != nil {
		return nil, err
	}
	stats := idx.ComputeStats()
	b.logger.Info("aggregated catalog",
		logging.Int("stories", stats.Stories),
		logging.Int("categories", stats.Categories),
		logging.Int("authors", stats.Authors))

	stagingDir := filepath.Join(b.stagingRoot, uuid.NewString())
	htmlDir := filepath.Join(stagingDir, "html")
	if err := os.MkdirAll(htmlDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	if !req.KeepStaging {
		defer func() {
			if err := os.RemoveAll(stagingDir); err != nil {
				b.logger.Warn("failed to remove staging dir",
					logging.String("dir", stagingDir),
					logging.Error(err))
			}
		}()
	}

	title := p.GetOptionString("build", "title", "fanfiction archive")
	if err := b.renderer.RenderSite(htmlDir, title, idx); err != nil {
		return nil, err
	}
	if err := b.copyStories(p, idx, htmlDir); err != nil {
		return nil, err
	}
	if err := b.ensureFavicon(p, htmlDir); err != nil {
		return nil, err
	}

	b.logger.Info("packaging archive", logging.String("output", req.OutputPath))
	err = b.packager.Build(ctx, zimwriterfs.BuildRequest{
		SourceDir:   htmlDir,
		OutputPath:  req.OutputPath,
		Welcome:     render.WelcomePage,
		Favicon:     render.ResourceDirName + "/favicon.icon",
		Language:    language.ToISO3(p.GetOptionString("build", "language", "EN")),
		Title:       title,
		Description: p.GetOptionString("build", "description", "Archived fanfictions"),
		Creator:     p.GetOptionString("build", "creator", "various"),
		Publisher:   p.GetOptionString("build", "publisher", "UNKNOWN"),
	}, func(line string) {
		b.logger.Debug("zimwriterfs", logging.String("line", line))
	})
	if err != nil {
		return nil, err
	}

	return &Result{OutputPath: req.OutputPath, Stats: stats}, nil
}

// copyStories places each indexed story (and its images, when downloaded)
// under htmlDir/stories keyed by source-id.
func (b *Builder) copyStories(p *project.Project, idx *catalog.Index, htmlDir string) error {
	includeImages := p.GetOptionBool("download", "include_images", true)

	ids := make([]target.Identity, 0, len(idx.Stories))
	for id := range idx.Stories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })

	for _, id := range ids {
		origin := idx.Origins[id]
		if origin == "" {
			origin = p.TargetDir(id)
		}
		dstDir := filepath.Join(htmlDir, render.StoryDirName, id.Key())
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			return fmt.Errorf("create story dir for %s: %w", id, err)
		}
		src := filepath.Join(origin, "story.html")
		if err := fileutil.CopyFile(src, filepath.Join(dstDir, "story.html")); err != nil {
			return fmt.Errorf("copy story %s: %w", id, err)
		}
		if includeImages {
			imgSrc := filepath.Join(origin, "images")
			if info, err := os.Stat(imgSrc); err == nil && info.IsDir() {
				if err := fileutil.CopyTree(imgSrc, filepath.Join(dstDir, "images")); err != nil {
					return fmt.Errorf("copy images for %s: %w", id, err)
				}
			}
		}
	}
	return nil
}

// defaultFavicon is a 1x1 transparent PNG used when the project ships no
// favicon of its own.
var defaultFavicon = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x60, 0x00, 0x02, 0x00,
	0x00, 0x05, 0x00, 0x01, 0xe9, 0xfa, 0xdc, 0xd8, 0x00, 0x00, 0x00, 0x00,
	0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func (b *Builder) ensureFavicon(p *project.Project, htmlDir string) error {
	dst := filepath.Join(htmlDir, render.ResourceDirName, "favicon.icon")
	src := filepath.Join(p.Path, "resources", "favicon.icon")
	if _, err := os.Stat(src); err == nil {
		return fileutil.CopyFile(src, dst)
	}
	if err := os.WriteFile(dst, defaultFavicon, 0o644); err != nil {
		return fmt.Errorf("write favicon: %w", err)
	}
	return nil
}

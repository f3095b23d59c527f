package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"fanvault/internal/logging"
	"fanvault/internal/metadata"
	"fanvault/internal/project"
	"fanvault/internal/target"
)

// Engine aggregates project trees into catalog indexes.
type Engine struct {
	logger *slog.Logger
}

// NewEngine constructs an aggregation engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{logger: logging.NewComponentLogger(logger, "catalog")}
}

// Aggregate walks the root project and, when includeSubprojects is set, its
// subproject tree in pre-order (root first, then each subproject's subtree
// in listed order) and merges every locally stored story into one index.
//
// Stories appearing in more than one project keep the version from the
// earliest-visited project; later occurrences are discarded without a merge.
// Category aliases are resolved against the alias table of the project each
// story was read from; alias tables are not inherited or merged. A target
// whose metadata file is missing or unreadable is skipped with a warning and
// does not abort the rest of the walk.
func (e *Engine) Aggregate(root *project.Project, includeSubprojects bool) (*Index, error) {
	projects := []*project.Project{root}
	if includeSubprojects {
		subs, err := root.Subprojects()
		if err != nil {
			return nil, fmt.Errorf("resolve subprojects: %w", err)
		}
		projects = append(projects, subs...)
	}

	idx := NewIndex()
	for _, p := range projects {
		if err := e.aggregateProject(idx, p); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (e *Engine) aggregateProject(idx *Index, p *project.Project) error {
	aliases, err := p.Aliases()
	if err != nil {
		return fmt.Errorf("project %s: %w", p.Path, err)
	}

	for _, id := range e.localStories(p) {
		c, err := e.readStory(p, id)
		if err != nil {
			e.logger.Warn("skipping story",
				logging.String("project", p.Path),
				logging.String("target", id.String()),
				logging.Error(err))
			continue
		}

		resolved := aliases.Resolve(c.Category)
		if resolved == "" {
			resolved = "Unknown"
		}
		c.Category = resolved
		if idx.insert(id, c) {
			idx.Origins[id] = p.TargetDir(id)
		}
	}
	return nil
}

// localStories enumerates the artifact directories of a project in sorted
// (source, id) order.
func (e *Engine) localStories(p *project.Project) []target.Identity {
	root := p.StoryRoot()
	sourceDirs, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var ids []target.Identity
	for _, sourceDir := range sourceDirs {
		if !sourceDir.IsDir() {
			continue
		}
		storyDirs, err := os.ReadDir(filepath.Join(root, sourceDir.Name()))
		if err != nil {
			continue
		}
		names := make([]string, 0, len(storyDirs))
		for _, storyDir := range storyDirs {
			if storyDir.IsDir() {
				names = append(names, storyDir.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			ids = append(ids, target.Identity{Source: sourceDir.Name(), ID: name})
		}
	}
	return ids
}

// readStory loads and converts one story's raw metadata.
func (e *Engine) readStory(p *project.Project, id target.Identity) (metadata.Canonical, error) {
	path := p.MetadataPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return metadata.Canonical{}, fmt.Errorf("%w: %s", project.ErrMissingMetadata, path)
		}
		return metadata.Canonical{}, fmt.Errorf("read metadata: %w", err)
	}

	var raw metadata.Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return metadata.Canonical{}, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	return metadata.Convert(id, raw)
}

package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fanvault/internal/logging"
	"fanvault/internal/target"
)

// Project directory layout:
//
//	PROJECTDIR/
//	  project.json      marker file: version tag and category/key options
//	  target_urls.txt   one reference per line, '#' comments ignored
//	  aliases.json      category alias table
//	  to_update.json    references marked for re-download
//	  subprojects.txt   relative paths of child projects, '#' comments ignored
//	  stories/
//	    SOURCE/ID/      one artifact directory per downloaded target
//	      story.html
//	      metadata.json
//	      images/
const (
	markerFile     = "project.json"
	targetListFile = "target_urls.txt"
	aliasFile      = "aliases.json"
	updateFile     = "to_update.json"
	subprojectFile = "subprojects.txt"
	storyDirName   = "stories"
	lockFileName   = ".fanvault.lock"
)

const projectVersion = "1"

const targetListSeed = `# fanvault target list.
# Add one story URL or ID per line.
# Lines starting with '#' are ignored.
`

// Project is a directory-backed unit owning targets, options, category
// aliases, update marks, and optional subprojects.
type Project struct {
	Path   string
	logger *slog.Logger
}

// IsProject reports whether path points at a directory containing a project
// marker file.
func IsProject(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	marker, err := os.Stat(filepath.Join(path, markerFile))
	if err != nil {
		return false
	}
	return marker.Mode().IsRegular()
}

// Open returns a Project over an existing project directory. It fails with
// ErrNotAProject when the marker file is absent.
func Open(path string, logger *slog.Logger) (*Project, error) {
	if !IsProject(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotAProject, path)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Project{
		Path:   path,
		logger: logging.NewComponentLogger(logger, "project"),
	}, nil
}

// Init creates and seeds a new project directory. The directory itself is
// created if needed, but not its parents. An existing non-empty directory is
// rejected.
func Init(path string, logger *slog.Logger) (*Project, error) {
	if IsProject(path) {
		return nil, fmt.Errorf("%w: %s is already a project", ErrAlreadyExists, path)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.Mkdir(path, 0o755); err != nil {
			return nil, fmt.Errorf("create project dir: %w", err)
		}
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read project dir: %w", err)
	}
	if len(entries) != 0 {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotEmpty, path)
	}

	marker := map[string]any{"version": projectVersion}
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(path, markerFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("write marker: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, targetListFile), []byte(targetListSeed), 0o644); err != nil {
		return nil, fmt.Errorf("write target list: %w", err)
	}
	return Open(path, logger)
}

// StoryRoot returns the directory that holds per-target artifact dirs.
func (p *Project) StoryRoot() string {
	return filepath.Join(p.Path, storyDirName)
}

// TargetDir returns the artifact directory for the given identity.
func (p *Project) TargetDir(id target.Identity) string {
	return filepath.Join(p.StoryRoot(), id.Subpath())
}

// MetadataPath returns the metadata file path for the given identity.
func (p *Project) MetadataPath(id target.Identity) string {
	return filepath.Join(p.TargetDir(id), "metadata.json")
}

// StoryHTMLPath returns the story content file path for the given identity.
func (p *Project) StoryHTMLPath(id target.Identity) string {
	return filepath.Join(p.TargetDir(id), "story.html")
}

// HasLocal reports whether the target's artifact directory exists.
func (p *Project) HasLocal(id target.Identity) bool {
	_, err := os.Stat(p.TargetDir(id))
	return err == nil
}

// GetOption reads a project option by category and name. The fallback is
// returned when the category or name is absent.
func (p *Project) GetOption(category, name string, fallback any) any {
	content, err := p.readMarker()
	if err != nil {
		return fallback
	}
	section, ok := content[category].(map[string]any)
	if !ok {
		return fallback
	}
	value, ok := section[name]
	if !ok {
		return fallback
	}
	return value
}

// GetOptionString reads a string-valued option.
func (p *Project) GetOptionString(category, name, fallback string) string {
	if v, ok := p.GetOption(category, name, fallback).(string); ok {
		return v
	}
	return fallback
}

// GetOptionBool reads a bool-valued option.
func (p *Project) GetOptionBool(category, name string, fallback bool) bool {
	if v, ok := p.GetOption(category, name, fallback).(bool); ok {
		return v
	}
	return fallback
}

// SetOption writes a project option and persists the marker file
// immediately.
func (p *Project) SetOption(category, name string, value any) error {
	content, err := p.readMarker()
	if err != nil {
		return err
	}
	section, ok := content[category].(map[string]any)
	if !ok {
		section = make(map[string]any)
		content[category] = section
	}
	section[name] = value
	return p.writeMarker(content)
}

func (p *Project) readMarker() (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(p.Path, markerFile))
	if err != nil {
		return nil, fmt.Errorf("%w: read marker: %v", ErrNotAProject, err)
	}
	var content map[string]any
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("%w: parse marker: %v", ErrNotAProject, err)
	}
	return content, nil
}

func (p *Project) writeMarker(content map[string]any) error {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(p.Path, markerFile), data, 0o644); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	return nil
}

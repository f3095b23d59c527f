package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SubprojectPaths reads the relative subproject paths declared by this
// project, in listed order. A missing subproject file yields an empty list.
func (p *Project) SubprojectPaths() ([]string, error) {
	file, err := os.Open(filepath.Join(p.Path, subprojectFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open subproject list: %w", err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subproject list: %w", err)
	}
	return paths, nil
}

// AddSubproject appends a relative subproject path to the subproject list.
// The path must point at a valid project relative to this project's
// directory.
func (p *Project) AddSubproject(relPath string) error {
	resolved := filepath.Join(p.Path, relPath)
	if !IsProject(resolved) {
		return fmt.Errorf("%w: %s", ErrNotAProject, resolved)
	}
	file, err := os.OpenFile(filepath.Join(p.Path, subprojectFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open subproject list: %w", err)
	}
	if _, err := fmt.Fprintln(file, relPath); err != nil {
		file.Close()
		return fmt.Errorf("append subproject: %w", err)
	}
	return file.Close()
}

// Subprojects resolves the project's subprojects recursively into Project
// values, depth-first in listed order, each followed by its own subtree. A
// chain that loops back onto an ancestor fails with ErrCyclicSubproject
// instead of recursing without bound.
func (p *Project) Subprojects() ([]*Project, error) {
	root, err := filepath.Abs(p.Path)
	if err != nil {
		return nil, err
	}
	return p.collectSubprojects(map[string]struct{}{root: {}})
}

func (p *Project) collectSubprojects(ancestors map[string]struct{}) ([]*Project, error) {
	paths, err := p.SubprojectPaths()
	if err != nil {
		return nil, err
	}

	var result []*Project
	for _, rel := range paths {
		abs, err := filepath.Abs(filepath.Join(p.Path, rel))
		if err != nil {
			return nil, err
		}
		if _, onStack := ancestors[abs]; onStack {
			return nil, fmt.Errorf("%w: %s", ErrCyclicSubproject, abs)
		}
		child, err := Open(abs, p.logger)
		if err != nil {
			return nil, fmt.Errorf("subproject %s: %w", rel, err)
		}
		result = append(result, child)

		ancestors[abs] = struct{}{}
		grandchildren, err := child.collectSubprojects(ancestors)
		delete(ancestors, abs)
		if err != nil {
			return nil, err
		}
		result = append(result, grandchildren...)
	}
	return result, nil
}

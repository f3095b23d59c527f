package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fanvault/internal/logging"
	"fanvault/internal/target"
)

// AddTarget resolves a reference and appends it to the target list. It
// returns false without error when an equal identity is already present
// (idempotent add). Resolution failures propagate
// target.ErrInvalidReference.
func (p *Project) AddTarget(reference string) (bool, error) {
	t, err := target.Resolve(reference)
	if err != nil {
		return false, err
	}
	existing, err := p.ListTargets(false)
	if err != nil {
		return false, err
	}
	for _, have := range existing {
		if have.Identity == t.Identity {
			return false, nil
		}
	}
	if err := p.appendTargets([]target.Target{t}); err != nil {
		return false, err
	}
	return true, nil
}

// AddTargetsBulk merge-inserts a batch of references, adding only those not
// already present. Both the existing list and the resolvable candidates are
// sorted by identity and combined with a linear two-pointer pass, so a bulk
// source with thousands of entries costs O(n+m) comparisons rather than a
// membership probe per candidate. It returns the number of targets added;
// unresolvable candidates are skipped with a warning.
func (p *Project) AddTargetsBulk(references []string) (int, error) {
	existing, err := p.ListTargets(false)
	if err != nil {
		return 0, err
	}

	candidates := make([]target.Target, 0, len(references))
	for _, ref := range references {
		t, err := target.Resolve(ref)
		if err != nil {
			p.logger.Warn("skipping unresolvable reference",
				logging.String("reference", ref),
				logging.Error(err))
			continue
		}
		candidates = append(candidates, t)
	}

	sort.Slice(existing, func(i, j int) bool {
		return existing[i].Identity.Compare(existing[j].Identity) < 0
	})
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Identity.Compare(candidates[j].Identity) < 0
	})

	fresh := make([]target.Target, 0, len(candidates))
	i := 0
	var last *target.Identity
	for _, cand := range candidates {
		if last != nil && cand.Identity == *last {
			continue
		}
		for i < len(existing) && existing[i].Identity.Compare(cand.Identity) < 0 {
			i++
		}
		if i < len(existing) && existing[i].Identity == cand.Identity {
			continue
		}
		fresh = append(fresh, cand)
		id := cand.Identity
		last = &id
	}

	if len(fresh) == 0 {
		return 0, nil
	}
	if err := p.appendTargets(fresh); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

// ListTargets returns the project's targets in list order, deduplicated by
// identity. With excludeDownloaded set, targets whose artifact directory
// already exists are filtered out. Unresolvable lines are skipped with a
// warning.
func (p *Project) ListTargets(excludeDownloaded bool) ([]target.Target, error) {
	path := filepath.Join(p.Path, targetListFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open target list: %w", err)
	}
	defer file.Close()

	var targets []target.Target
	seen := make(map[target.Identity]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := target.Resolve(line)
		if err != nil {
			p.logger.Warn("skipping unresolvable target list line",
				logging.String("line", line),
				logging.Error(err))
			continue
		}
		if _, dup := seen[t.Identity]; dup {
			continue
		}
		seen[t.Identity] = struct{}{}
		if excludeDownloaded && p.HasLocal(t.Identity) {
			continue
		}
		targets = append(targets, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read target list: %w", err)
	}
	return targets, nil
}

// HasTarget reports whether the reference resolves to an identity already in
// the target list.
func (p *Project) HasTarget(reference string) (bool, error) {
	t, err := target.Resolve(reference)
	if err != nil {
		return false, err
	}
	targets, err := p.ListTargets(false)
	if err != nil {
		return false, err
	}
	for _, have := range targets {
		if have.Identity == t.Identity {
			return true, nil
		}
	}
	return false, nil
}

func (p *Project) appendTargets(targets []target.Target) error {
	path := filepath.Join(p.Path, targetListFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open target list: %w", err)
	}
	for _, t := range targets {
		if _, err := fmt.Fprintln(file, t.URL); err != nil {
			file.Close()
			return fmt.Errorf("append target: %w", err)
		}
	}
	return file.Close()
}

package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fanvault/internal/logging"
	"fanvault/internal/target"
)

// UpdateMarks returns the targets currently marked for re-download.
// References that no longer resolve are dropped with a warning.
func (p *Project) UpdateMarks() ([]target.Target, error) {
	refs, err := p.readUpdateRefs()
	if err != nil {
		return nil, err
	}
	marks := make([]target.Target, 0, len(refs))
	for _, ref := range refs {
		t, err := target.Resolve(ref)
		if err != nil {
			p.logger.Warn("dropping unresolvable update mark",
				logging.String("reference", ref),
				logging.Error(err))
			continue
		}
		marks = append(marks, t)
	}
	return marks, nil
}

// IsMarkedForUpdate reports whether the identity carries an update mark.
// Comparison happens on resolved identities, not raw reference strings.
func (p *Project) IsMarkedForUpdate(id target.Identity) (bool, error) {
	marks, err := p.UpdateMarks()
	if err != nil {
		return false, err
	}
	for _, m := range marks {
		if m.Identity == id {
			return true, nil
		}
	}
	return false, nil
}

// SetUpdateMark adds (marked=true) or removes (marked=false) the update mark
// for the target. Both directions are idempotent; the mark set is persisted
// immediately.
func (p *Project) SetUpdateMark(t target.Target, marked bool) error {
	refs, err := p.readUpdateRefs()
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(refs)+1)
	present := false
	for _, ref := range refs {
		existing, err := target.Resolve(ref)
		if err == nil && existing.Identity == t.Identity {
			present = true
			if !marked {
				continue
			}
		}
		kept = append(kept, ref)
	}
	if marked && !present {
		kept = append(kept, t.URL)
	}
	if marked == present {
		return nil
	}
	return p.writeUpdateRefs(kept)
}

func (p *Project) readUpdateRefs() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(p.Path, updateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read update marks: %w", err)
	}
	var refs []string
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("parse update marks: %w", err)
	}
	return refs, nil
}

func (p *Project) writeUpdateRefs(refs []string) error {
	if refs == nil {
		refs = []string{}
	}
	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(p.Path, updateFile), data, 0o644); err != nil {
		return fmt.Errorf("write update marks: %w", err)
	}
	return nil
}

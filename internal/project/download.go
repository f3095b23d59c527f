package project

import (
	"context"
	"fmt"
	"os"

	"fanvault/internal/logging"
	"fanvault/internal/target"
)

// Fetcher is the narrow contract for the external retrieval tool. Fetch
// downloads the story behind url into an artifact directory beneath
// storyRoot (SOURCE/ID is chosen by the tool from the story's own metadata)
// and returns the raw metadata text emitted on success.
type Fetcher interface {
	Fetch(ctx context.Context, url, storyRoot string, includeImages bool) ([]byte, error)
}

// DownloadTarget fetches one target into the project. The artifact directory
// is all-or-nothing: when the tool fails, or reports success without
// producing the directory, any partial output is removed and the call fails
// with ErrCollaboratorFailure. An existing artifact directory fails with
// ErrAlreadyExists before the tool is invoked.
func (p *Project) DownloadTarget(ctx context.Context, t target.Target, fetcher Fetcher) error {
	dir := p.TargetDir(t.Identity)
	if p.HasLocal(t.Identity) {
		return fmt.Errorf("%w: %s already downloaded", ErrAlreadyExists, t.Identity)
	}
	if err := os.MkdirAll(p.StoryRoot(), 0o755); err != nil {
		return fmt.Errorf("ensure story root: %w", err)
	}

	includeImages := p.GetOptionBool("download", "include_images", true)
	p.logger.Info("downloading target",
		logging.String("target", t.Identity.String()),
		logging.String("url", t.URL))

	rawMetadata, err := fetcher.Fetch(ctx, t.URL, p.StoryRoot(), includeImages)
	if err != nil {
		p.cleanupTargetDir(dir)
		return fmt.Errorf("%w: %s: %v", ErrCollaboratorFailure, t.Identity, err)
	}

	// The tool can exit zero without writing anything; treat that the same
	// as a failed invocation.
	if _, statErr := os.Stat(dir); statErr != nil {
		return fmt.Errorf("%w: %s: tool reported success but produced no output directory", ErrCollaboratorFailure, t.Identity)
	}

	if err := os.WriteFile(p.MetadataPath(t.Identity), rawMetadata, 0o644); err != nil {
		p.cleanupTargetDir(dir)
		return fmt.Errorf("persist metadata for %s: %w", t.Identity, err)
	}
	return nil
}

// RemoveTargetArtifacts deletes a target's artifact directory, used when a
// marked target is re-downloaded.
func (p *Project) RemoveTargetArtifacts(id target.Identity) error {
	if !p.HasLocal(id) {
		return nil
	}
	if err := os.RemoveAll(p.TargetDir(id)); err != nil {
		return fmt.Errorf("remove artifacts for %s: %w", id, err)
	}
	return nil
}

func (p *Project) cleanupTargetDir(dir string) {
	if _, err := os.Stat(dir); err != nil {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn("failed to clean up partial download",
			logging.String("dir", dir),
			logging.Error(err))
	}
}

// Package deps checks that the external tools fanvault shells out to are
// installed and reachable.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external binary a command may invoke.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForTools builds the requirement list for the configured tool binaries.
// Absolute paths and bare command names are both accepted.
func ForTools(fanficfare, ebookConvert, zimwriterfs string) []Requirement {
	return []Requirement{
		{
			Name:        "FanFicFare",
			Command:     fanficfare,
			Description: "downloads stories and metadata from fanfiction sites",
		},
		{
			Name:        "Calibre ebook-convert",
			Command:     ebookConvert,
			Description: "converts downloaded stories to EPUB",
			Optional:    true,
		},
		{
			Name:        "zimwriterfs",
			Command:     zimwriterfs,
			Description: "packages the rendered archive into a ZIM file",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

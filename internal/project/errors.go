package project

import "errors"

var (
	// ErrNotAProject reports a path without a recognizable project marker.
	ErrNotAProject = errors.New("not a valid project")
	// ErrAlreadyExists reports a duplicate target artifact or an init over an
	// existing project.
	ErrAlreadyExists = errors.New("already exists")
	// ErrDirectoryNotEmpty reports an init target directory with content.
	ErrDirectoryNotEmpty = errors.New("directory not empty")
	// ErrMissingMetadata reports a target directory without a metadata file.
	ErrMissingMetadata = errors.New("metadata file missing")
	// ErrCollaboratorFailure reports an external tool invocation that failed
	// or produced no output.
	ErrCollaboratorFailure = errors.New("collaborator failure")
	// ErrCyclicSubproject reports a subproject chain that loops back on an
	// ancestor.
	ErrCyclicSubproject = errors.New("cyclic subproject reference")
)

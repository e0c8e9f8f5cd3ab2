package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched through errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrCycleDetected = errors.New("cycle detected")
	ErrPathNotFound  = errors.New("path not found")
	ErrAmbiguous     = errors.New("ambiguous")
	ErrInvalidRecord = errors.New("invalid record")
)

// NotFoundError is returned when an id is referenced but absent from the index.
type NotFoundError struct {
	Kind string // "folder" or "note"
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("id %q not found", e.ID)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CycleDetectedError is returned when walking ancestors exceeds the record bound.
type CycleDetectedError struct {
	ID    string
	Steps int
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("cycle detected resolving %q: no root after %d steps", e.ID, e.Steps)
}

func (e *CycleDetectedError) Is(target error) bool {
	return target == ErrCycleDetected
}

// PathNotFoundError is returned by the tree merge when a non-final path
// element has no matching node.
type PathNotFoundError struct {
	Path    []string
	Missing string
	Depth   int
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path %q: no node named %q at depth %d", strings.Join(e.Path, "/"), e.Missing, e.Depth)
}

func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}

// AmbiguousError is returned when a folder selector matches more than one folder.
type AmbiguousError struct {
	Selector string
	IDs      []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q matches %d folders (%s)", e.Selector, len(e.IDs), strings.Join(e.IDs, ", "))
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// Package errors provides a structured error type hierarchy for the binget CLI.
//
// This package defines base error types for each way the install pipeline can
// fail, wrapped error types that add contextual information (the candidates
// that were available before a filter emptied the set, the directory listing
// of an extracted tree, and so on), and helper functions for error wrapping
// and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrValidation - malformed repository or binary name
//   - ErrNetwork - request failure or timeout
//   - ErrNotFound - no releases, no assets, or an empty filter result
//   - ErrExtraction - unsupported or corrupt archive
//   - ErrLocate - binary absent from the extracted tree
//   - ErrPermission - install directory unwritable with no elevation
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrNotFound
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "fetch catalog")
//
//	// Use structured error types
//	return &errors.NoMatchError{Stage: "os", Available: names}
//
//	// Check error types
//	if errors.IsPermission(err) {
//	    // fall back to the user-local install directory
//	}
//
// Of these, only ErrPermission is recoverable: the caller retries the
// install into a user-owned directory. Everything else terminates the run.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Base error types (sentinel errors).
var (
	// ErrValidation indicates a malformed repository identifier or binary name.
	ErrValidation = baseError("validation failed")

	// ErrNetwork indicates a request could not complete.
	ErrNetwork = baseError("network failure")

	// ErrNotFound indicates no release, asset, or candidate survived.
	ErrNotFound = baseError("not found")

	// ErrExtraction indicates an unsupported or corrupt archive.
	ErrExtraction = baseError("extraction failed")

	// ErrLocate indicates the binary is absent from the extracted tree.
	ErrLocate = baseError("binary not located")

	// ErrPermission indicates the install directory cannot be written and
	// no elevation mechanism is available.
	ErrPermission = baseError("permission denied")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// NoMatchError is returned when a filtering pass empties the candidate set.
// Available holds the names that existed before the failing pass so a user
// can see what the feed actually published.
type NoMatchError struct {
	// Stage is the filtering pass that produced an empty set
	// (e.g., "os", "arch", "pattern").
	Stage string
	// Wanted describes what the pass was matching against.
	Wanted string
	// Available is the pre-filter candidate list (names only).
	Available []string
}

func (e *NoMatchError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no asset matched %s %q (nothing to filter)", e.Stage, e.Wanted)
	}
	return fmt.Sprintf("no asset matched %s %q among: %s", e.Stage, e.Wanted, strings.Join(e.Available, ", "))
}

func (e *NoMatchError) Unwrap() error { return ErrNotFound }

// ReleaseError is returned when the feed has no usable release for a
// repository. Variants lists the tag spellings that were probed.
type ReleaseError struct {
	// Repo is the owner/repo identifier.
	Repo string
	// Variants lists the tag variants tried, in probe order (optional).
	Variants []string
	// Err is the underlying error (optional).
	Err error
}

func (e *ReleaseError) Error() string {
	if len(e.Variants) > 0 {
		return fmt.Sprintf("no release with assets for %s (tried tags %s); the release may be source-only, check the releases page",
			e.Repo, strings.Join(e.Variants, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("no release found for %s: %s", e.Repo, e.Err)
	}
	return fmt.Sprintf("no release found for %s", e.Repo)
}

func (e *ReleaseError) Unwrap() error { return ErrNotFound }

// LocateError is returned when the binary cannot be found inside the
// extracted tree. Listing carries a capped dump of the tree for diagnosis.
type LocateError struct {
	// Name is the binary name that was searched for.
	Name string
	// Dir is the directory that was searched.
	Dir string
	// Listing is a capped listing of the searched tree.
	Listing []string
}

func (e *LocateError) Error() string {
	if len(e.Listing) == 0 {
		return fmt.Sprintf("binary %q not found under %s", e.Name, e.Dir)
	}
	return fmt.Sprintf("binary %q not found under %s; extracted contents:\n  %s",
		e.Name, e.Dir, strings.Join(e.Listing, "\n  "))
}

func (e *LocateError) Unwrap() error { return ErrLocate }

// DownloadError is returned when all download attempts are exhausted.
type DownloadError struct {
	// URL is the asset URL that failed.
	URL string
	// Attempts is how many attempts were made.
	Attempts int
	// Err is the last underlying error.
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed after %d attempts: %s", e.URL, e.Attempts, e.Err)
}

func (e *DownloadError) Unwrap() error { return ErrNetwork }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// IsValidation reports whether err is or wraps ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNetwork reports whether err is or wraps ErrNetwork.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsExtraction reports whether err is or wraps ErrExtraction.
func IsExtraction(err error) bool {
	return errors.Is(err, ErrExtraction)
}

// IsLocate reports whether err is or wraps ErrLocate.
func IsLocate(err error) bool {
	return errors.Is(err, ErrLocate)
}

// IsPermission reports whether err is or wraps ErrPermission.
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// AsNoMatchError reports whether err can be typed as a *NoMatchError.
func AsNoMatchError(err error) (*NoMatchError, bool) {
	var ne *NoMatchError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}

// AsLocateError reports whether err can be typed as a *LocateError.
func AsLocateError(err error) (*LocateError, bool) {
	var le *LocateError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

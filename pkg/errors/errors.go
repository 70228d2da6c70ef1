// Package errors provides the error types used across the skubridge engine.
// Every failure category in a reconciliation cycle has a typed error here so
// callers can check programmatically which stage failed and for which platform
// or item.
package errors

import (
	"errors"
	"fmt"

	"github.com/skubridge/skubridge/pkg/platform"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Join is an alias for the standard library errors.Join.
var Join = errors.Join

// Common sentinel errors for the skubridge engine
var (
	// ErrCycleRunning indicates a reconciliation cycle is already in flight;
	// the triggering call was skipped, not queued.
	ErrCycleRunning = errors.New("reconciliation cycle already running")

	// ErrSchedulerRunning indicates the background loop has already been
	// started.
	ErrSchedulerRunning = errors.New("scheduler already running")

	// ErrSchedulerStopped indicates the background loop is not running.
	ErrSchedulerStopped = errors.New("scheduler not running")

	// ErrInvalidInterval indicates a non-positive scheduling interval.
	ErrInvalidInterval = errors.New("interval must be positive")

	// ErrFetchFailed indicates a platform's snapshot fetch failed for one
	// cycle.
	ErrFetchFailed = errors.New("platform fetch failed")

	// ErrPushFailed indicates a single item's push to a platform failed.
	ErrPushFailed = errors.New("platform push failed")

	// ErrStorage indicates the persistence store failed to save or load.
	ErrStorage = errors.New("storage failure")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// NormalizationError records one raw record that could not become a canonical
// item. Per-record and non-fatal: the rest of the batch proceeds.
type NormalizationError struct {
	Platform platform.ID
	NativeID string
	Reason   string
}

// Error implements the error interface
func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization failed for record %s on %s: %s", e.NativeID, e.Platform, e.Reason)
}

// Is implements errors.Is support
func (e *NormalizationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// FetchError records a platform whose FetchAll failed this cycle. Per-platform
// and non-fatal: the platform contributes no candidates for one cycle.
type FetchError struct {
	Platform platform.ID
	Err      error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching snapshot from %s: %v", e.Platform, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// PushError records one item whose push to one platform failed. Per-item and
// non-fatal: the item stays canonical and is retried on the next cycle.
type PushError struct {
	Platform platform.ID
	Key      string
	Err      error
}

// Error implements the error interface
func (e *PushError) Error() string {
	return fmt.Sprintf("pushing %s to %s: %v", e.Key, e.Platform, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PushError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PushError) Is(target error) bool {
	return target == ErrPushFailed
}

// StorageError records a persistence failure. Cycle-fatal on save: the
// in-memory snapshot is still published, but the durable copy is stale.
type StorageError struct {
	Operation string // "read", "write", "rename"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// ConfigError represents an engine configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns

// WrapFetch wraps an error as a FetchError
func WrapFetch(id platform.ID, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Platform: id, Err: err}
}

// WrapPush wraps an error as a PushError
func WrapPush(id platform.ID, key string, err error) error {
	if err == nil {
		return nil
	}
	return &PushError{Platform: id, Key: key, Err: err}
}

// WrapStorage wraps an error as a StorageError
func WrapStorage(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Operation: operation, Path: path, Err: err}
}

package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Error kinds. Every fatal error surfaced to the CLI carries exactly one of
// these, attached with Fail.
var (
	// ErrVersionControl is returned when a version control operation fails.
	ErrVersionControl = zerr.New("version control operation failed")

	// ErrConfigSyntax is returned when the override file cannot be read or parsed.
	ErrConfigSyntax = zerr.New("invalid override file")

	// ErrUnknownSignature is returned when a recipe name does not exist in the registry.
	ErrUnknownSignature = zerr.New("unknown recipe")

	// ErrCopyFailed is reported for a single path that could not be copied.
	ErrCopyFailed = zerr.New("copy operation failed")

	// ErrReconcileFailed is returned when the reconciliation command exits non-zero.
	ErrReconcileFailed = zerr.New("reconciliation command failed")

	// ErrWorkingCopyExists is returned when the target path of a new working copy is taken.
	ErrWorkingCopyExists = zerr.New("working copy already exists")

	// ErrWorkingCopyNotFound is returned when no working copy matches a path or branch.
	ErrWorkingCopyNotFound = zerr.New("working copy not found")

	// ErrInvalidArguments is returned when the command line is not usable.
	ErrInvalidArguments = zerr.New("invalid arguments")
)

// Kind is the stable, machine-readable name of an error kind.
type Kind string

// Kind names as they appear in structured output.
const (
	KindVersionControl  Kind = "version_control_failure"
	KindConfigSyntax    Kind = "configuration_syntax_error"
	KindUnknownRecipe   Kind = "unknown_signature_reference"
	KindCopyFailed      Kind = "copy_operation_failure"
	KindReconcileFailed Kind = "reconciliation_command_failure"
	KindExists          Kind = "working_copy_already_exists"
	KindNotFound        Kind = "working_copy_not_found"
	KindInvalidArgs     Kind = "invalid_invocation_arguments"
	KindInternal        Kind = "internal_error"
)

var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrVersionControl, KindVersionControl},
	{ErrConfigSyntax, KindConfigSyntax},
	{ErrUnknownSignature, KindUnknownRecipe},
	{ErrCopyFailed, KindCopyFailed},
	{ErrReconcileFailed, KindReconcileFailed},
	{ErrWorkingCopyExists, KindExists},
	{ErrWorkingCopyNotFound, KindNotFound},
	{ErrInvalidArguments, KindInvalidArgs},
}

// Failure binds an error kind to the error that caused it.
type Failure struct {
	kind  error
	cause error
}

// Fail attaches kind to cause. A nil cause yields the bare kind.
func Fail(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &Failure{kind: kind, cause: cause}
}

func (f *Failure) Error() string {
	return f.kind.Error() + ": " + f.cause.Error()
}

// Message returns the kind's message without the cause chain.
func (f *Failure) Message() string {
	return f.kind.Error()
}

// Unwrap returns the cause.
func (f *Failure) Unwrap() error {
	return f.cause
}

// Is reports whether target is the kind of this failure.
func (f *Failure) Is(target error) bool {
	return target == f.kind
}

// KindOf resolves the kind carried by err.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindInternal
}

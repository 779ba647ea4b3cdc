package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so hosts embedding the
// import pipeline can branch on failure classes without matching message
// strings.
const (
	codeImportValidation = "IMPORT_COMMAND_VALIDATION"
	codeImportCanceled   = "IMPORT_COMMAND_CANCELED"
	codeImportTimeout    = "IMPORT_COMMAND_TIMEOUT"
	codeImportContext    = "IMPORT_COMMAND_CONTEXT"
	codeImportFailed     = "IMPORT_COMMAND_FAILED"
)

// wrapValidationError tags message validation failures. Errors already
// wrapped by go-errors pass through untouched so categories assigned closer
// to the failure win.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "import command validation failed").
		WithTextCode(codeImportValidation)
}

// wrapContextError distinguishes cancellation from deadline expiry; anything
// else on the context is tagged generically.
func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	msg, code := "import command context error", codeImportContext
	switch {
	case errors.Is(err, context.Canceled):
		msg, code = "import command canceled", codeImportCanceled
	case errors.Is(err, context.DeadlineExceeded):
		msg, code = "import command timed out", codeImportTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "import command execution failed").
		WithTextCode(codeImportFailed)
}

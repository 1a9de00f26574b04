package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/triage/internal/logger"
)

// Sentinel kinds. Concrete errors wrap one of these so callers can classify
// with errors.Is regardless of the message.
var (
	ErrNotFound   = stderrors.New("not found")
	ErrTransient  = stderrors.New("network error")
	ErrValidation = stderrors.New("invalid input")
)

// NotFound reports a reference to a feedback id that does not exist.
func NotFound(id string) error {
	return fmt.Errorf("feedback with id %s: %w", id, ErrNotFound)
}

// Transient reports a failed or timed-out gateway call for op.
func Transient(op string) error {
	return fmt.Errorf("%s failed: %w", op, ErrTransient)
}

// Validation reports input rejected before any gateway call.
func Validation(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}

// Kind returns the sentinel an error belongs to, or nil when unclassified.
// Context deadline and cancellation errors count as transient.
func Kind(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, ErrNotFound):
		return ErrNotFound
	case stderrors.Is(err, ErrValidation):
		return ErrValidation
	case stderrors.Is(err, ErrTransient),
		stderrors.Is(err, context.DeadlineExceeded),
		stderrors.Is(err, context.Canceled):
		return ErrTransient
	default:
		return nil
	}
}

// UserMessage turns an error into the text shown in the dashboard's error bar.
func UserMessage(action string, err error) string {
	if err == nil {
		return ""
	}
	switch Kind(err) {
	case ErrNotFound:
		return fmt.Sprintf("Could not %s: the item no longer exists.", action)
	case ErrValidation:
		return fmt.Sprintf("Could not %s: %v", action, err)
	case ErrTransient:
		return fmt.Sprintf("Could not %s: network error, please try again.", action)
	default:
		return fmt.Sprintf("Could not %s: %v", action, err)
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Package errs defines the error taxonomy shared by the parser, the
// evaluator and the template renderer. Callers classify failures with
// errors.Is against the four sentinel kinds.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax marks malformed or unsupported expression text. Produced by
	// the parser (including errors surfaced from the underlying ECMAScript
	// parser), never by the evaluator itself.
	ErrSyntax = errors.New("syntax error")

	// ErrReference marks an identifier that was not found in any scope frame.
	ErrReference = errors.New("reference error")

	// ErrType marks a value used against its type: property access on
	// null/undefined, or invocation of a non-function.
	ErrType = errors.New("type error")

	// ErrSecurity marks an attempt to use a blocked capability: a mutating
	// built-in, the Function constructor, delete, or this.
	ErrSecurity = errors.New("security error")
)

// Syntaxf wraps ErrSyntax with a formatted message.
func Syntaxf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

// Referencef wraps ErrReference with a formatted message.
func Referencef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrReference, fmt.Sprintf(format, args...))
}

// Typef wraps ErrType with a formatted message.
func Typef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrType, fmt.Sprintf(format, args...))
}

// Securityf wraps ErrSecurity with a formatted message.
func Securityf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSecurity, fmt.Sprintf(format, args...))
}

// Snippet truncates source text for inclusion in error messages, so a long
// expression does not flood the message.
func Snippet(src string) string {
	const limit = 40
	if len(src) <= limit {
		return src
	}
	return src[:limit] + "..."
}

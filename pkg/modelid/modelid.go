// Package modelid validates and synthesizes model identities.
//
// Generated Go models import this package from their builders: an explicit
// identity must be a canonical UUID, and a builder that was never given one
// synthesizes a fresh identity when the model is built. The message and hint
// constants are also rendered verbatim into the Java and TypeScript output.
package modelid

import (
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

const (
	// Message is the error message for an identity that is not a canonical UUID
	Message = "model ID must be unique in the format of UUID"

	// Hint explains how to recover from a malformed identity
	Hint = "If you are creating a new object, leave ID blank and one will be generated for you. " +
		"Otherwise, if you are referencing an existing object, be sure you are getting the correct ID for it."
)

// canonical is the 8-4-4-4-12 hex form; uuid.Parse also accepts braces,
// urn prefixes and the 32-digit form, which are not valid identities.
var canonical = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// MalformedIDError reports an identity that is not a canonical UUID.
// It is recoverable: the caller can retry without an explicit identity.
type MalformedIDError struct {
	Value string
	cause error
}

func (e *MalformedIDError) Error() string {
	return Message + ": " + e.Value
}

// Unwrap returns the parse failure, if any
func (e *MalformedIDError) Unwrap() error {
	return e.cause
}

// Hint returns the remediation hint
func (e *MalformedIDError) Hint() string {
	return Hint
}

// Recoverable reports that the failure does not invalidate the builder
func (e *MalformedIDError) Recoverable() bool {
	return true
}

// Validate returns a *MalformedIDError (carrying Hint) when id is not a canonical UUID
func Validate(id string) error {
	var cause error
	if !canonical.MatchString(id) {
		cause = errors.Newf("%q is not in 8-4-4-4-12 form", id)
	} else if _, err := uuid.Parse(id); err != nil {
		cause = err
	}
	if cause == nil {
		return nil
	}
	return errors.WithHint(&MalformedIDError{Value: id, cause: cause}, Hint)
}

// New returns a fresh random identity in canonical form
func New() string {
	return uuid.NewString()
}

// IsMalformed reports whether err is, or wraps, a *MalformedIDError
func IsMalformed(err error) bool {
	var target *MalformedIDError
	return errors.As(err, &target)
}

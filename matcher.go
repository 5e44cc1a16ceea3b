package qalink

import "context"

// Matcher resolves a free-text prompt to a short text reply using an
// external text-matching service. Implementations wrap a subprocess or a
// remote model API; callers depend only on this signature, never on the
// underlying tool or its flags.
type Matcher interface {
	// Query sends a prompt and returns the service's reply with
	// surrounding whitespace trimmed. A non-zero exit or transport
	// failure is returned as an error; enforcing a deadline is the
	// implementation's responsibility when the context carries none.
	Query(ctx context.Context, prompt string) (string, error)
}

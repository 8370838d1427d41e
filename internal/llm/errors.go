package llm

import "errors"

var (
	// ErrUnavailable means the provider could not be reached at all.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout means the task deadline passed before an answer arrived.
	ErrTimeout = errors.New("llm request timed out")

	// ErrRetryExhausted wraps the last failure once every attempt is spent.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrRequestRejected means the provider refused the request itself;
	// retrying the same request cannot succeed.
	ErrRequestRejected = errors.New("llm provider rejected the request")

	// ErrEmptyResponse means the provider answered with blank text.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrProviderConfig means the configured provider cannot be used.
	ErrProviderConfig = errors.New("invalid llm provider configuration")
)

// permanentError marks an attempt failure that is not worth retrying.
type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return permanentError{err: err}
}

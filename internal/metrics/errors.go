package metrics

// UnknownErrorMessage replaces failure values that carry no usable message.
const UnknownErrorMessage = "Unknown error occurred"

// ProviderFailure is the only error GetMetrics returns. Its message is the
// provider's message, unchanged.
type ProviderFailure struct {
	Message string
	Err     error
}

func (e *ProviderFailure) Error() string {
	return e.Message
}

func (e *ProviderFailure) Unwrap() error {
	return e.Err
}

// newProviderFailure wraps any failure value. A ProviderFailure passes
// through untouched; one wrapped inside another error is wrapped again so
// the outer message survives.
func newProviderFailure(v any) *ProviderFailure {
	if pf, ok := v.(*ProviderFailure); ok && pf != nil {
		return pf
	}
	err, _ := v.(error)
	return &ProviderFailure{Message: DescribeFailure(v), Err: err}
}

// DescribeFailure turns any failure value into a display string. Errors
// yield their message; anything else, including a nil or message-less
// error, yields UnknownErrorMessage.
func DescribeFailure(v any) string {
	err, ok := v.(error)
	if !ok || err == nil {
		return UnknownErrorMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}

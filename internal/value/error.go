package value

// ErrorData backs Tardi's optional first-class Error value (spec §3.1).
// It wraps a host-side error so it can be pushed, inspected, and rendered
// like any other value, without introducing user-level exception handling
// (spec §7 explicitly defers that).
type ErrorData struct {
	Cause error
}

func NewErrorData(err error) *ErrorData { return &ErrorData{Cause: err} }

func (e *ErrorData) Error() string {
	if e.Cause == nil {
		return "error"
	}
	return e.Cause.Error()
}

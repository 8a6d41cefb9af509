package errors

const (
	ErrorInvalid     string = "Invalid"
	ErrorUnavailable string = "Unavailable"
)

// RequestError reports why a profiling target or tool input could not be
// accepted.
type RequestError struct {
	ErrorMessage string
	ErrorType    string
}

func (e RequestError) Error() string {
	return e.ErrorMessage
}

// NewErrorInvalid flags an input the caller got wrong.
func NewErrorInvalid(message string) error {
	return RequestError{
		ErrorMessage: message,
		ErrorType:    ErrorInvalid,
	}
}

// NewErrorUnavailable flags a toolchain or upstream that cannot be reached.
func NewErrorUnavailable(message string) error {
	return RequestError{
		ErrorMessage: message,
		ErrorType:    ErrorUnavailable,
	}
}

func IsInvalidError(err error) bool {
	return reasonForError(err) == ErrorInvalid
}

func IsUnavailableError(err error) bool {
	return reasonForError(err) == ErrorUnavailable
}

func reasonForError(err error) string {
	myErr, ok := err.(RequestError)
	if ok {
		return myErr.ErrorType
	}
	return ""
}

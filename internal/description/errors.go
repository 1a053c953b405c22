package description

import "fmt"

// ErrorType represents the category of descriptor resolution failure
type ErrorType int

const (
	// ErrTypeFetch indicates a network-level failure retrieving the
	// description document.
	ErrTypeFetch ErrorType = iota
	// ErrTypeHTTP indicates a non-success HTTP status from the device.
	ErrTypeHTTP
	// ErrTypeDecode indicates the document body could not be read or
	// decoded as XML.
	ErrTypeDecode
	// ErrTypeParse indicates a well-formed document missing the expected
	// device element.
	ErrTypeParse
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeFetch:
		return "Fetch Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeDecode:
		return "Decode Error"
	case ErrTypeParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DescriptorError classifies why a single device's descriptor could not
// be resolved. Failures are always confined to that device; callers use
// the classification for logging and tests, never for control flow that
// crosses devices.
type DescriptorError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	Location   string    // Description document URL (for context)
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *DescriptorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DescriptorError) Unwrap() error {
	return e.Err
}

func newFetchError(location string, err error) *DescriptorError {
	return &DescriptorError{
		Type:     ErrTypeFetch,
		Message:  "failed to fetch description document",
		Location: location,
		Err:      err,
	}
}

func newHTTPError(location string, statusCode int) *DescriptorError {
	return &DescriptorError{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		Location:   location,
		StatusCode: statusCode,
	}
}

func newDecodeError(location string, err error) *DescriptorError {
	return &DescriptorError{
		Type:     ErrTypeDecode,
		Message:  "failed to decode description document",
		Location: location,
		Err:      err,
	}
}

func newParseError(location, message string) *DescriptorError {
	return &DescriptorError{
		Type:     ErrTypeParse,
		Message:  message,
		Location: location,
	}
}

// IsFetchError checks if an error is a network-level fetch error
func IsFetchError(err error) bool {
	if descErr, ok := err.(*DescriptorError); ok {
		return descErr.Type == ErrTypeFetch
	}
	return false
}

// IsHTTPError checks if an error is an HTTP status error
func IsHTTPError(err error) bool {
	if descErr, ok := err.(*DescriptorError); ok {
		return descErr.Type == ErrTypeHTTP
	}
	return false
}

// IsDecodeError checks if an error is an XML decode error
func IsDecodeError(err error) bool {
	if descErr, ok := err.(*DescriptorError); ok {
		return descErr.Type == ErrTypeDecode
	}
	return false
}

// IsParseError checks if an error is a document structure error
func IsParseError(err error) bool {
	if descErr, ok := err.(*DescriptorError); ok {
		return descErr.Type == ErrTypeParse
	}
	return false
}

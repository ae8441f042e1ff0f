package capture

import "fmt"

// Code classifies a capture failure. The set is closed so callers can map
// each failure to a distinct user-facing message without matching on
// platform error strings.
type Code string

const (
	// Camera acquisition failures.
	PermissionDenied  Code = "permission_denied"
	DeviceNotFound    Code = "device_not_found"
	DeviceBusy        Code = "device_busy"
	DeviceUnavailable Code = "device_unavailable"

	// Frame rendering failures.
	CaptureFailed      Code = "capture_failed"
	ContextUnavailable Code = "context_unavailable"

	// File ingestion failures.
	InvalidFileType   Code = "invalid_file_type"
	UnsupportedFormat Code = "unsupported_format"
)

// userMessages maps each code to the message shown to the user.
var userMessages = map[Code]string{
	PermissionDenied:   "Camera access was denied. Please allow camera access and try again.",
	DeviceNotFound:     "No camera was found on this device.",
	DeviceBusy:         "The camera is already in use by another application.",
	DeviceUnavailable:  "The camera could not be started.",
	CaptureFailed:      "Could not capture a frame. Please try again.",
	ContextUnavailable: "Could not prepare the image for capture.",
	InvalidFileType:    "The selected file is not an image.",
	UnsupportedFormat:  "Unsupported image format. Please use one of: image/png, image/jpeg, image/gif, image/webp",
}

// Error is a classified capture error.
type Error struct {
	Code  Code
	cause error
}

// NewError builds a classified error wrapping an optional cause.
func NewError(code Code, cause error) *Error {
	return &Error{Code: code, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.cause)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

// UserMessage returns the message to display for this error.
func (e *Error) UserMessage() string {
	if msg, ok := userMessages[e.Code]; ok {
		return msg
	}
	return userMessages[DeviceUnavailable]
}

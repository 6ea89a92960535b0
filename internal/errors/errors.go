package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput        = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON       = errors.New("invalid JSON format")
	ErrInvalidYAML       = errors.New("invalid YAML format")
	ErrInvalidTOML       = errors.New("invalid TOML format")
	ErrMultipleJSON      = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileEmpty         = errors.New("file is empty")
	ErrNoInput           = errors.New("no input provided: please pass a file or pipe data to stdin")
	ErrInvalidFilePath   = errors.New("invalid file path")
	ErrInvalidIndex      = errors.New("invalid index in path")
	ErrKeyNotFound       = errors.New("key not found")
	ErrExpectedObject    = errors.New("expected object")
	ErrIndexOutOfBounds  = errors.New("index out of bounds")
	ErrExpectedArray     = errors.New("expected array")
	ErrUnknownTheme      = errors.New("unknown theme")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMaxNesting        = errors.New("maximum nesting depth exceeded")
	ErrUnsupportedShape  = errors.New("value shape not supported by output format")
	ErrExcessiveAliasing = errors.New("YAML document contains excessive aliasing")
	ErrUnsupportedShell  = errors.New("unsupported shell")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypePathSyntax ErrorType = "path syntax"
	ErrorTypePath       ErrorType = "path"
	ErrorTypeTheme      ErrorType = "theme"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeFormat     ErrorType = "format"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeWatch      ErrorType = "watch"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(t ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError creates a new error related to decoding JSON, YAML or TOML
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewPathSyntaxError creates a new error for a malformed extraction path
func NewPathSyntaxError(message string, err error) *AppError {
	return newError(ErrorTypePathSyntax, message, err)
}

// NewPathError creates a new error for a path that does not fit the document
func NewPathError(message string, err error) *AppError {
	return newError(ErrorTypePath, message, err)
}

// NewThemeError creates a new error for an unknown or invalid theme
func NewThemeError(message string, err error) *AppError {
	return newError(ErrorTypeTheme, message, err)
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewFormatError creates a new error related to rendering or serialization
func NewFormatError(message string, err error) *AppError {
	return newError(ErrorTypeFormat, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// NewWatchError creates a new error related to watching a file
func NewWatchError(message string, err error) *AppError {
	return newError(ErrorTypeWatch, message, err)
}

// TypeOf returns the ErrorType of the first AppError in err's chain.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// ExitCode maps an error to the process exit status. Bad documents and bad
// paths exit 1, everything else (configuration, I/O, usage) exits 2.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch TypeOf(err) {
	case ErrorTypeParsing, ErrorTypePath, ErrorTypePathSyntax:
		return 1
	default:
		return 2
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("Parse error: %s", appErr.Message)
		case ErrorTypePathSyntax:
			return fmt.Sprintf("Path syntax error: %s", appErr.Message)
		case ErrorTypePath:
			return fmt.Sprintf("Path error: %s", appErr.Message)
		case ErrorTypeTheme:
			return fmt.Sprintf("Theme error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Config error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Format error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeWatch:
			return fmt.Sprintf("Watch error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a JSON, YAML or TOML document."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON document."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please pass a file or pipe data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}

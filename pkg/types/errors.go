package types

import "errors"

// Lookup and decoding errors.
var (
	ErrTypeNotFound   = errors.New("type not found")
	ErrEntityNotFound = errors.New("entity not found")
	ErrNoSchema       = errors.New("entity has no associated schema")
	ErrNotObject      = errors.New("document must be a JSON object")
	ErrTrailingData   = errors.New("decoding document: unexpected data after top-level object")
)

// Entity store errors.
var (
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrInvalidEntity   = errors.New("invalid entity data")
	ErrInvalidMetaKey  = errors.New("metadata key must not be empty")
	ErrStoreDetached   = errors.New("entity store is detached")
	ErrAlreadyAttached = errors.New("entity store is already attached")
)

// Validation error codes.
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
)

// ValidationError reports the first property a document fails on. Path is
// dotted, with array positions in brackets (offers.price, mainEntity[0].name).
type ValidationError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MissingProperty returns the error for an absent or blank required property.
func MissingProperty(path string) *ValidationError {
	return &ValidationError{
		Path:    path,
		Code:    CodeRequired,
		Message: "missing required property: " + path,
	}
}

// InvalidType returns the error for a property whose value has the wrong shape.
func InvalidType(path, want string) *ValidationError {
	return &ValidationError{
		Path:    path,
		Code:    CodeInvalidType,
		Message: "property " + path + " must be " + want,
	}
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

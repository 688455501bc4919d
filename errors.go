package pullsync

import "errors"

// Resolution errors
var (
	// ErrInvalidConfig indicates a config file exists but does not match the schema.
	// This is an authoring error in the target repository.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidDefaultConfig indicates a synthesized fork config failed validation.
	ErrInvalidDefaultConfig = errors.New("invalid default config")

	// ErrInvalidExtends indicates an _extends value that cannot be parsed.
	ErrInvalidExtends = errors.New("invalid _extends reference")

	// ErrExtendsNotFound indicates an _extends reference names a missing file.
	ErrExtendsNotFound = errors.New("_extends target not found")

	// ErrExtendsDepth indicates an _extends chain that is too deep or loops.
	ErrExtendsDepth = errors.New("_extends chain too deep or cyclic")

	// ErrInvalidJob indicates job data without an owner or repository.
	ErrInvalidJob = errors.New("owner and repo are required")
)

// IsInvalidConfig reports whether err is a fatal configuration failure,
// as opposed to a remote read failure.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrInvalidDefaultConfig)
}

// ValidationErrors returns the schema violations carried by err, if any.
func ValidationErrors(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Errors
	}
	return nil
}

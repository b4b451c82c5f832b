package identity

import "errors"

// Per-file failure classes. Callers match them with errors.Is.
var (
	// ErrValidation marks a file whose DeviceSerialNumber is absent or not numeric.
	ErrValidation = errors.New("validation error")
	// ErrParse marks a malformed date, time, UID or instance number.
	ErrParse = errors.New("parse error")
	// ErrEvaluation marks a StudyInstanceUID whose components cannot be summed.
	ErrEvaluation = errors.New("evaluation error")
	// ErrIO marks a directory creation or write failure.
	ErrIO = errors.New("io error")
)

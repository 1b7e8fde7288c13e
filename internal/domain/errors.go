package domain

import "github.com/m-mizutani/goerr/v2"

// Error kinds. Concrete errors wrap one of these so callers can branch with errors.Is.
var (
	// ErrValidation marks input the user can correct and retry.
	ErrValidation = goerr.New("validation error")
	// ErrEncoding marks a payload/level/version combination the QR encoder rejected.
	ErrEncoding = goerr.New("encoding error")
	// ErrArgument marks a programming-contract violation.
	ErrArgument = goerr.New("argument error")
	// ErrIO marks a filesystem failure.
	ErrIO = goerr.New("io error")
	// ErrCorruptHistory marks a history file that exists but cannot be parsed.
	ErrCorruptHistory = goerr.New("corrupt history")
)

package domain

import "errors"

// Sentinel errors for the family domain. Use errors.Is() to check these.
var (
	// ErrFamilyNotFound indicates the requested family does not exist.
	ErrFamilyNotFound = errors.New("family not found")

	// ErrMemberNotFound indicates the requested member does not exist.
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvalidJoinCode indicates no family matches the presented join code.
	ErrInvalidJoinCode = errors.New("invalid family code")

	// ErrFamilyFull indicates the family has reached its member limit.
	ErrFamilyFull = errors.New("family has reached maximum members")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrJoinCodeTaken indicates a generated join code collided with an
	// existing family. Callers regenerate and retry.
	ErrJoinCodeTaken = errors.New("join code already in use")

	// ErrInvalidCredentials indicates a failed login. Unknown email and wrong
	// password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidFamilyName indicates the family name violates domain constraints.
	ErrInvalidFamilyName = errors.New("invalid family name")

	// ErrInvalidMemberName indicates the member display name violates domain constraints.
	ErrInvalidMemberName = errors.New("invalid member name")
)

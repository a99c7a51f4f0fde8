package applications

import "errors"

var (
	// ErrDuplicateApplication is wrapped by Submit when the user already
	// applied for the vacancy.
	ErrDuplicateApplication = errors.New("duplicate application")
	// ErrNotJobseeker is wrapped by Submit for employer accounts.
	ErrNotJobseeker = errors.New("only jobseekers can apply")
	// ErrIllegalTransition is wrapped by Transition for moves the status
	// graph does not allow.
	ErrIllegalTransition = errors.New("illegal status transition")
)

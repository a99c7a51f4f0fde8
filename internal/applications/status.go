// Package applications implements the job-application workflow.
//
// Valid status graph:
//
//	pending ──► viewed ──► approved
//	   │           │
//	   │           └─────► rejected
//	   ├─────────────────► approved
//	   └─────────────────► rejected
//
// approved and rejected are terminal states.
package applications

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/types"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[types.ApplicationStatus][]types.ApplicationStatus{
	types.StatusPending: {types.StatusViewed, types.StatusApproved, types.StatusRejected},
	types.StatusViewed:  {types.StatusApproved, types.StatusRejected},
}

// ParseStatus converts a raw string to a status, returning an error for
// unknown values.
func ParseStatus(s string) (types.ApplicationStatus, error) {
	st := types.ApplicationStatus(s)
	switch st {
	case types.StatusPending, types.StatusViewed, types.StatusApproved, types.StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanTransition reports whether moving from → to is permitted.
func CanTransition(from, to types.ApplicationStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s types.ApplicationStatus) bool {
	return s == types.StatusApproved || s == types.StatusRejected
}

// HasApplied reports whether the user's applied set holds vacancyID.
func HasApplied(user types.User, vacancyID string) bool {
	for _, id := range user.Profile.AppliedJobs {
		if id == vacancyID {
			return true
		}
	}
	return false
}

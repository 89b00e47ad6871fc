package auth

import "civicreport-be/models"

// Decision is the outcome of an access check for a protected surface
type Decision int

const (
	// DecisionPending means the initial session restore has not finished;
	// render nothing rather than a wrong redirect.
	DecisionPending Decision = iota
	// DecisionAllow renders the protected content
	DecisionAllow
	// DecisionSignIn redirects to the sign-in entry point
	DecisionSignIn
	// DecisionForbidden redirects to the not-authorized page
	DecisionForbidden
)

// Evaluate decides whether the session may access content gated behind
// the required role. Pure: recomputed on every navigation, no state.
func Evaluate(session Session, ready bool, required models.Role) Decision {
	if !ready {
		return DecisionPending
	}
	switch s := session.(type) {
	case Authenticated:
		if required == "" || s.Role == required {
			return DecisionAllow
		}
		return DecisionForbidden
	default:
		return DecisionSignIn
	}
}

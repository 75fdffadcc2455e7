// Package guard decides whether a session may reach protected views.
package guard

import "github.com/detective-ambiental/detective/internal/api"

// Decision is the outcome of a guard check.
type Decision int

const (
	// Allow renders the protected view.
	Allow Decision = iota
	// RedirectLogin sends the visitor to the login flow.
	RedirectLogin
	// RedirectInactive sends the visitor to the inactive-account notice.
	RedirectInactive
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectInactive:
		return "redirect-inactive"
	default:
		return "unknown"
	}
}

// Check applies the gate rules in order, first match wins:
//
//  1. no valid session -> RedirectLogin
//  2. account inactive -> RedirectInactive
//  3. otherwise        -> Allow
//
// It must be re-evaluated on every session state change.
func Check(authenticated bool, user *api.User) Decision {
	if !authenticated || user == nil {
		return RedirectLogin
	}
	if !user.Active {
		return RedirectInactive
	}
	return Allow
}

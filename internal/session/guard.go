package session

import "github.com/naveenspark/foodcourt/pkg/domain"

// Decision is what a guarded view should do with the current state.
type Decision int

const (
	// DecisionWait renders a neutral placeholder; the session is still loading.
	DecisionWait Decision = iota
	// DecisionRedirectLogin sends the user to the login view.
	DecisionRedirectLogin
	// DecisionRedirectHome sends an under-privileged user to the home view.
	DecisionRedirectHome
	// DecisionRender shows the guarded view.
	DecisionRender
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	case DecisionRender:
		return "render"
	default:
		return "unknown"
	}
}

// Check decides access to a view needing an authenticated session and,
// when required is non-empty, at least that role. It is a UI gate only.
func Check(st State, required domain.Role) Decision {
	if st.Loading {
		return DecisionWait
	}
	if !st.Authenticated() {
		return DecisionRedirectLogin
	}
	if required != "" && !st.Role().AtLeast(required) {
		return DecisionRedirectHome
	}
	return DecisionRender
}

package domain

// Action is the closed set of operations the auth endpoint dispatches on.
type Action string

const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"
	ActionVerify   Action = "verify"
	ActionProfile  Action = "profile"
	ActionUsers    Action = "users"
)

// Actions lists every recognized action.
var Actions = []Action{ActionRegister, ActionLogin, ActionVerify, ActionProfile, ActionUsers}

// ParseAction returns the action named by s. Matching is exact.
func ParseAction(s string) (Action, bool) {
	for _, a := range Actions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

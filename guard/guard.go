package guard

// State is the derived session/account state that navigation decisions are
// made from. StateOf is the only constructor, so "has an account but not
// logged in" is unrepresentable.
type State int

const (
	LoggedOut State = iota
	LoggedInNoAccount
	LoggedInWithAccount
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged-out"
	case LoggedInNoAccount:
		return "logged-in-no-account"
	case LoggedInWithAccount:
		return "logged-in-with-account"
	}
	return "unknown"
}

// StateOf derives the guard state. Account state is meaningless without a
// session, so hasAccount is ignored for a logged-out caller.
func StateOf(loggedIn, hasAccount bool) State {
	switch {
	case !loggedIn:
		return LoggedOut
	case hasAccount:
		return LoggedInWithAccount
	default:
		return LoggedInNoAccount
	}
}

// Requirements are the preconditions a destination declares.
type Requirements struct {
	Login   bool
	Account bool // implies Login
}

// Action is what the guard decided to do with a navigation attempt.
type Action int

const (
	Proceed Action = iota
	RedirectLogin
	RedirectAccountSetup
)

// Redirect targets.
const (
	LoginTarget   = "/login"
	AccountTarget = "/account"
)

// Decision is the outcome of one authorization attempt. Target is the
// destination on Proceed and the redirect target otherwise; Notice is the
// user-facing message accompanying a redirect.
type Decision struct {
	Action Action
	Target string
	Notice string
}

// Authorize decides whether dest may be visited in the given state.
//
// The login requirement is always evaluated before the account requirement:
// a logged-out visitor must never be redirected toward account setup, since
// that would leak a private path before authentication.
func Authorize(dest string, req Requirements, st State) Decision {
	if (req.Login || req.Account) && st == LoggedOut {
		return Decision{
			Action: RedirectLogin,
			Target: LoginTarget,
			Notice: "login required",
		}
	}
	if req.Account && st != LoggedInWithAccount {
		return Decision{
			Action: RedirectAccountSetup,
			Target: AccountTarget,
			Notice: "register a brokerage account first",
		}
	}
	return Decision{Action: Proceed, Target: dest}
}
